package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyBookHasNoQuotes(t *testing.T) {
	ob := NewOrderBook()
	assert.True(t, ob.Empty())
	assert.False(t, ob.BestBid().Valid)
	assert.False(t, ob.BestAsk().Valid)
}

func TestSingleLevelAggregate(t *testing.T) {
	ob := NewOrderBook()
	ob.AddLimit(Buy, 100, 3)
	ob.AddLimit(Buy, 100, 4)

	bb := ob.BestBid()
	require.True(t, bb.Valid)
	assert.Equal(t, Price(100), bb.Price)
	assert.Equal(t, Quantity(7), bb.Qty)
}

func TestMarketOrderSweepsAcrossLevels(t *testing.T) {
	ob := NewOrderBook()
	ob.AddLimit(Sell, 100, 5)
	ob.AddLimit(Sell, 101, 5)

	mr := ob.ExecuteMarket(Buy, 8)
	assert.Equal(t, Quantity(8), mr.Requested)
	assert.Equal(t, Quantity(8), mr.Filled)
	assert.Equal(t, Quantity(0), mr.Remaining)
	require.Len(t, mr.Trades, 2)
	assert.Equal(t, Price(100), mr.Trades[0].Price)
	assert.Equal(t, Quantity(5), mr.Trades[0].Qty)
	assert.Equal(t, Price(101), mr.Trades[1].Price)
	assert.Equal(t, Quantity(3), mr.Trades[1].Qty)

	ba := ob.BestAsk()
	require.True(t, ba.Valid)
	assert.Equal(t, Price(101), ba.Price)
	assert.Equal(t, Quantity(2), ba.Qty)
}

func TestMarketOrderPartialFillWhenBookExhausted(t *testing.T) {
	ob := NewOrderBook()
	ob.AddLimit(Sell, 100, 3)

	mr := ob.ExecuteMarket(Buy, 10)
	assert.Equal(t, Quantity(3), mr.Filled)
	assert.Equal(t, Quantity(7), mr.Remaining)
	assert.True(t, ob.Empty())
}

func TestAggressiveLimitCrossesAndRests(t *testing.T) {
	ob := NewOrderBook()
	ob.AddLimit(Sell, 100, 5)

	_, mr := ob.AddLimit(Buy, 102, 8)
	assert.Equal(t, Quantity(5), mr.Filled)
	assert.Equal(t, Quantity(3), mr.Remaining)
	require.Len(t, mr.Trades, 1)
	assert.Equal(t, Price(100), mr.Trades[0].Price) // trade prints at the maker's price

	bb := ob.BestBid()
	require.True(t, bb.Valid)
	assert.Equal(t, Price(102), bb.Price)
	assert.Equal(t, Quantity(3), bb.Qty)
	assert.False(t, ob.BestAsk().Valid)
}

func TestAggressiveLimitDoesNotCrossBeyondLimitPrice(t *testing.T) {
	ob := NewOrderBook()
	ob.AddLimit(Sell, 105, 5)

	id, mr := ob.AddLimit(Buy, 100, 5)
	assert.Equal(t, Quantity(0), mr.Filled)
	assert.Equal(t, Quantity(5), mr.Remaining)

	bb := ob.BestBid()
	require.True(t, bb.Valid)
	assert.Equal(t, Price(100), bb.Price)

	require.True(t, ob.Cancel(id))
}

func TestCancelRemovesOrderAndDoesNotAffectOtherSide(t *testing.T) {
	ob := NewOrderBook()
	bidID, _ := ob.AddLimit(Buy, 99, 5)
	ob.AddLimit(Sell, 101, 5)

	require.True(t, ob.Cancel(bidID))
	assert.False(t, ob.BestBid().Valid)

	ba := ob.BestAsk()
	require.True(t, ba.Valid)
	assert.Equal(t, Price(101), ba.Price)
}

func TestCancelIsIdempotent(t *testing.T) {
	ob := NewOrderBook()
	id, _ := ob.AddLimit(Buy, 99, 5)

	assert.True(t, ob.Cancel(id))
	assert.False(t, ob.Cancel(id))
}

func TestCancelUnknownIDReturnsFalse(t *testing.T) {
	ob := NewOrderBook()
	assert.False(t, ob.Cancel(12345))
}

func TestPriceTimePriorityFIFOWithinLevel(t *testing.T) {
	ob := NewOrderBook()
	firstID, _ := ob.AddLimit(Sell, 100, 5)
	ob.AddLimit(Sell, 100, 5)

	mr := ob.ExecuteMarket(Buy, 3)
	require.Len(t, mr.Trades, 1)
	assert.Equal(t, firstID, mr.Trades[0].MakerOrderId)
}

func TestAddLimitZeroQtyIsNoop(t *testing.T) {
	ob := NewOrderBook()
	id, mr := ob.AddLimit(Buy, 100, 0)
	assert.Equal(t, OrderId(0), id)
	assert.Equal(t, MatchResult{}, mr)
	assert.True(t, ob.Empty())
}

func TestAddLimitWithIDReplacesResidentOrder(t *testing.T) {
	ob := NewOrderBook()
	ob.AddLimitWithID(7, Buy, 100, 5)

	bb := ob.BestBid()
	require.True(t, bb.Valid)
	assert.Equal(t, Quantity(5), bb.Qty)

	// Replace id 7 with a different price/qty; the old resting quantity
	// at 100 must be gone, not aliased by the new order.
	ob.AddLimitWithID(7, Buy, 103, 9)

	bb = ob.BestBid()
	require.True(t, bb.Valid)
	assert.Equal(t, Price(103), bb.Price)
	assert.Equal(t, Quantity(9), bb.Qty)

	assert.True(t, ob.Cancel(7))
	assert.False(t, ob.BestBid().Valid)
}

func TestMarketOrderZeroQtyIsNoop(t *testing.T) {
	ob := NewOrderBook()
	ob.AddLimit(Sell, 100, 5)

	mr := ob.ExecuteMarket(Buy, 0)
	assert.Equal(t, MatchResult{Requested: 0, Remaining: 0}, mr)
}

func TestConservationOfQuantityAcrossMatches(t *testing.T) {
	ob := NewOrderBook()
	ob.AddLimit(Sell, 100, 4)
	ob.AddLimit(Sell, 101, 6)

	mr := ob.ExecuteMarket(Buy, 10)
	var traded Quantity
	for _, tr := range mr.Trades {
		traded += tr.Qty
	}
	assert.Equal(t, mr.Filled, traded)
	assert.Equal(t, mr.Requested, mr.Filled+mr.Remaining)
}

func TestNoCrossedBookAfterAggressiveLimit(t *testing.T) {
	ob := NewOrderBook()
	ob.AddLimit(Sell, 100, 5)
	ob.AddLimit(Buy, 100, 3)

	bb := ob.BestBid()
	ba := ob.BestAsk()
	if bb.Valid && ba.Valid {
		assert.True(t, bb.Price < ba.Price, "book is crossed: bid=%d ask=%d", bb.Price, ba.Price)
	}
}
