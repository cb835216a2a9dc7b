package feed

import (
	"testing"

	"github.com/kprice-io/lob-engine"
	"github.com/stretchr/testify/assert"
)

func TestReplayStatsRecordAdd(t *testing.T) {
	s := NewReplayStats()
	s.RecordAdd(book.Buy, 5)
	s.RecordAdd(book.Sell, 3)

	assert.Equal(t, 2, s.AddCount)
	assert.Equal(t, book.Quantity(5), s.TotalAddedBuy)
	assert.Equal(t, book.Quantity(3), s.TotalAddedSell)
}

func TestReplayStatsRecordMarketOutcomes(t *testing.T) {
	s := NewReplayStats()

	s.RecordMarket(book.Buy, 10, book.MatchResult{Requested: 10, Filled: 0, Remaining: 10})
	assert.Equal(t, 1, s.MktZeroFillCount)

	s.RecordMarket(book.Buy, 10, book.MatchResult{Requested: 10, Filled: 10, Remaining: 0})
	assert.Equal(t, 1, s.MktFullFillCount)

	s.RecordMarket(book.Buy, 10, book.MatchResult{Requested: 10, Filled: 4, Remaining: 6})
	assert.Equal(t, 1, s.MktPartialFillCount)

	assert.Equal(t, book.Quantity(14), s.TotalMktFillBuy)
}

func TestReplayStatsRecordMarketVWAP(t *testing.T) {
	s := NewReplayStats()
	s.RecordMarket(book.Buy, 5, book.MatchResult{
		Filled: 5,
		Trades: []book.Trade{{Price: 100, Qty: 5, TakerSide: book.Buy}},
	})
	assert.Equal(t, 500.0, s.TradedNotionalBuy)
}

func TestReplayStatsRecordCancel(t *testing.T) {
	s := NewReplayStats()
	s.RecordCancel(true)
	s.RecordCancel(false)
	assert.Equal(t, 2, s.CancelCount)
	assert.Equal(t, 1, s.CancelSuccess)
	assert.Equal(t, 1, s.CancelFail)
}

func TestReplayStatsUpdateBookStatsTracksSpread(t *testing.T) {
	ob := book.NewOrderBook()
	ob.AddLimit(book.Buy, 98, 5)
	ob.AddLimit(book.Sell, 102, 5)

	s := NewReplayStats()
	s.UpdateBookStats(ob)

	assert.True(t, s.SeenBid)
	assert.True(t, s.SeenAsk)
	assert.Equal(t, 1, s.SpreadCount)
	assert.Equal(t, 4.0, s.SpreadSum)
}
