package book

// OrderBook holds the resting orders for one instrument on both sides and
// matches incoming orders against them under price-time priority. It is
// owned by a single goroutine; see the package doc comment.
type OrderBook struct {
	arena  *arena
	bids   *sideBook
	asks   *sideBook
	index  map[OrderId]slotIndex
	nextID uint64
}

// BookOption configures a new OrderBook at construction time.
type BookOption func(*bookOptions)

type bookOptions struct {
	arenaCapacityHint int
}

// WithArenaCapacityHint pre-sizes the order arena and id index, avoiding
// early reallocation for callers that know roughly how many resting
// orders to expect.
func WithArenaCapacityHint(n int) BookOption {
	return func(o *bookOptions) { o.arenaCapacityHint = n }
}

// NewOrderBook creates an empty order book. Generated order ids start at 1.
func NewOrderBook(opts ...BookOption) *OrderBook {
	o := bookOptions{arenaCapacityHint: 1024}
	for _, opt := range opts {
		opt(&o)
	}
	return &OrderBook{
		arena:  newArena(o.arenaCapacityHint),
		bids:   newSideBook(Buy),
		asks:   newSideBook(Sell),
		index:  make(map[OrderId]slotIndex, o.arenaCapacityHint),
		nextID: 1,
	}
}

// Empty reports whether both sides of the book are empty.
func (ob *OrderBook) Empty() bool {
	return ob.bids.empty() && ob.asks.empty()
}

// AddLimit submits a new limit order, returning a fresh, monotonically
// increasing id. If qty <= 0 the call is a no-op and the sentinel id 0 is
// returned.
//
// The order first acts as a taker against the opposite book under the
// limit cross predicate; only a non-zero residual is inserted as a
// resting maker order. When the order is fully consumed by taker
// matching, no resting order is created and the id is never registered
// in the id index — but an id is still returned here, matching the
// reference implementation's documented-if-surprising behavior. Callers
// must not treat the returned id as proof of residency; consult the book
// (e.g. Cancel) instead.
func (ob *OrderBook) AddLimit(side Side, price Price, qty Quantity) (OrderId, MatchResult) {
	if qty <= 0 {
		return 0, MatchResult{}
	}
	id := OrderId(ob.nextID)
	ob.nextID++
	return ob.addLimit(id, side, price, qty)
}

// AddLimitWithID is AddLimit but with a caller-supplied id, for
// deterministic replay of externally-sequenced event streams. If an
// order with that id is already resident, the old order is evicted
// (deactivated and removed from the id index) before the new one is
// processed.
func (ob *OrderBook) AddLimitWithID(id OrderId, side Side, price Price, qty Quantity) (OrderId, MatchResult) {
	if qty <= 0 {
		return id, MatchResult{}
	}
	if existing, ok := ob.index[id]; ok {
		ob.evict(existing, id)
	}
	return ob.addLimit(id, side, price, qty)
}

// evict deactivates and fully removes a resident order ahead of an
// add_limit_with_id replacement. Like Cancel, eviction removes the stale
// slot index from its level eagerly, and here it must: leaving
// it in place risks the freed slot being reallocated to the very order
// being inserted in the same call, which would make the old level alias
// the new order's data. Eager removal here is the chosen resolution of
// that hazard.
func (ob *OrderBook) evict(idx slotIndex, id OrderId) {
	slot := ob.arena.get(idx)

	sb := ob.bids
	if slot.side == Sell {
		sb = ob.asks
	}
	if el, ok := sb.byPrice[slot.price]; ok {
		lv := el.Value.(*level)
		for i, li := range lv.indices {
			if li == idx {
				lv.removeAt(i, slot.qty)
				break
			}
		}
		if lv.empty() {
			sb.erase(slot.price, el)
		}
	}

	ob.arena.release(idx)
	delete(ob.index, id)
}

func (ob *OrderBook) addLimit(id OrderId, side Side, price Price, qty Quantity) (OrderId, MatchResult) {
	result := MatchResult{Requested: qty}

	var residual Quantity
	var trades []Trade
	if side == Buy {
		residual, trades = ob.sweep(ob.asks, side, qty, func(top Price) bool { return top <= price })
	} else {
		residual, trades = ob.sweep(ob.bids, side, qty, func(top Price) bool { return top >= price })
	}

	result.Trades = trades
	result.Filled = qty - residual
	result.Remaining = residual

	if residual <= 0 {
		return id, result
	}

	idx := ob.arena.alloc()
	*ob.arena.get(idx) = orderSlot{id: id, side: side, price: price, qty: residual, active: true}
	ob.index[id] = idx

	sb := ob.bids
	if side == Sell {
		sb = ob.asks
	}
	sb.levelAt(price).pushBack(idx, residual)

	return id, result
}

// Cancel removes the resting order with the given id. Returns true iff an
// active order was found and removed; a second cancel of the same id
// returns false (idempotence).
func (ob *OrderBook) Cancel(id OrderId) bool {
	idx, ok := ob.index[id]
	if !ok {
		return false
	}
	slot := ob.arena.get(idx)
	if !slot.active {
		delete(ob.index, id)
		return false
	}

	sb := ob.bids
	if slot.side == Sell {
		sb = ob.asks
	}
	if el, ok := sb.byPrice[slot.price]; ok {
		lv := el.Value.(*level)
		for i, li := range lv.indices {
			if li == idx {
				lv.removeAt(i, slot.qty)
				break
			}
		}
		if lv.empty() {
			sb.erase(slot.price, el)
		}
	}

	ob.arena.release(idx)
	delete(ob.index, id)
	return true
}

// ExecuteMarket consumes up to qty units from the opposite book, starting
// at the best price, never creating resting orders. qty <= 0 returns a
// zero-filled result.
func (ob *OrderBook) ExecuteMarket(side Side, qty Quantity) MatchResult {
	result := MatchResult{Requested: qty, Remaining: qty}
	if qty <= 0 {
		return result
	}

	target := ob.asks
	if side == Sell {
		target = ob.bids
	}

	remaining, trades := ob.sweep(target, side, qty, func(Price) bool { return true })

	result.Trades = trades
	result.Filled = qty - remaining
	result.Remaining = remaining
	return result
}

// BestBid returns the best (highest) bid price and the aggregate active
// quantity resting at that price, or an invalid quote if bids are empty.
func (ob *OrderBook) BestBid() BestQuote {
	return ob.bestOf(ob.bids)
}

// BestAsk returns the best (lowest) ask price and the aggregate active
// quantity resting at that price, or an invalid quote if asks are empty.
func (ob *OrderBook) BestAsk() BestQuote {
	return ob.bestOf(ob.asks)
}

func (ob *OrderBook) bestOf(sb *sideBook) BestQuote {
	el := sb.levels.Front()
	if el == nil {
		return BestQuote{}
	}
	lv := el.Value.(*level)
	if lv.qty <= 0 {
		// Legal transient: all orders at this level were just cancelled
		// but the level not yet erased. Report absent.
		return BestQuote{}
	}
	return BestQuote{Price: lv.price, Qty: lv.qty, Valid: true}
}
