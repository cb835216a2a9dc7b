package book

import "github.com/igrmk/treemap/v2"

// DepthLevel is one aggregated price level in a depth snapshot: a price
// plus the total resting quantity across every order at that price.
type DepthLevel struct {
	Price Price
	Qty   Quantity
}

// AggregatedBook is a read-side depth view, separate from the matching
// engine's own per-order levels: a treemap keyed on price per side, used
// by consumers (e.g. a market-data publisher) that only need price/qty
// pairs and shouldn't reach into the engine's order arena directly.
//
// Maintains an analogous depth view keyed on integer-tick Price rather
// than a decimal type.
type AggregatedBook struct {
	bids *treemap.TreeMap[Price, Quantity] // iterated in reverse for Depth(Buy, ...)
	asks *treemap.TreeMap[Price, Quantity]
}

// NewAggregatedBook builds an empty aggregated view.
func NewAggregatedBook() *AggregatedBook {
	return &AggregatedBook{
		bids: newPriceTreeMap(),
		asks: newPriceTreeMap(),
	}
}

// Rebuild replaces the aggregated view's contents with a full scan of ob's
// resting orders. Intended for periodic or on-demand refresh, not for
// every trade — callers that need live depth on every match should call
// SetLevel incrementally instead, keyed off the post-match level quantity
// (e.g. via OrderBook.BestBid/BestAsk or a fuller level enumeration).
func (ag *AggregatedBook) Rebuild(ob *OrderBook) {
	ag.bids = newPriceTreeMap()
	ag.asks = newPriceTreeMap()

	for el := ob.bids.levels.Front(); el != nil; el = el.Next() {
		lv := el.Value.(*level)
		ag.bids.Set(lv.price, lv.qty)
	}
	for el := ob.asks.levels.Front(); el != nil; el = el.Next() {
		lv := el.Value.(*level)
		ag.asks.Set(lv.price, lv.qty)
	}
}

// SetLevel records the current aggregate quantity at price for side,
// removing the level entirely when qty is zero. Callers drive this
// incrementally off MatchResult/Cancel outcomes to keep the view live
// without a full Rebuild.
func (ag *AggregatedBook) SetLevel(side Side, price Price, qty Quantity) {
	m := ag.bids
	if side == Sell {
		m = ag.asks
	}
	if qty <= 0 {
		m.Del(price)
		return
	}
	m.Set(price, qty)
}

// Depth returns up to n levels from the best price outward for side.
func (ag *AggregatedBook) Depth(side Side, n int) []DepthLevel {
	if side == Buy {
		return depthDescending(ag.bids, n)
	}
	return depthAscending(ag.asks, n)
}

func depthAscending(m *treemap.TreeMap[Price, Quantity], n int) []DepthLevel {
	out := make([]DepthLevel, 0, n)
	for it := m.Iterator(); it.Valid() && len(out) < n; it.Next() {
		out = append(out, DepthLevel{Price: it.Key(), Qty: it.Value()})
	}
	return out
}

func depthDescending(m *treemap.TreeMap[Price, Quantity], n int) []DepthLevel {
	out := make([]DepthLevel, 0, n)
	for it := m.Reverse(); it.Valid() && len(out) < n; it.Next() {
		out = append(out, DepthLevel{Price: it.Key(), Qty: it.Value()})
	}
	return out
}

// newPriceTreeMap builds an ascending-by-price treemap via the explicit
// key-compare constructor rather than the package's ordered-constraint
// convenience constructor, which we never observed exercised in the pack.
func newPriceTreeMap() *treemap.TreeMap[Price, Quantity] {
	return treemap.NewWithKeyCompare[Price, Quantity](func(a, b Price) bool { return a < b })
}
