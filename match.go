package book

import "github.com/huandu/skiplist"

// sweepLevel consumes up to remaining units of liquidity from one level,
// oldest order first, compacting the level's index slice in place as it
// goes (read/write cursor over the same backing slice — no allocation).
// It returns the quantity left over after this level and the trades
// generated against it.
//
// Grounded on original_source/src/order_book.cpp's match_on_book inner
// loop.
func (ob *OrderBook) sweepLevel(lv *level, takerSide Side, remaining Quantity, trades []Trade) (Quantity, []Trade) {
	w := 0
	i := 0
	for ; i < len(lv.indices) && remaining > 0; i++ {
		idx := lv.indices[i]
		slot := ob.arena.get(idx)

		traded := slot.qty
		if remaining < traded {
			traded = remaining
		}

		slot.qty -= traded
		remaining -= traded
		lv.qty -= traded

		trades = append(trades, Trade{
			MakerOrderId: slot.id,
			TakerSide:    takerSide,
			Price:        lv.price,
			Qty:          traded,
		})

		if slot.qty == 0 {
			ob.arena.release(idx)
			delete(ob.index, slot.id)
			continue
		}

		lv.indices[w] = idx
		w++
	}
	// Copy over any untouched tail (remaining became 0 before the level
	// was exhausted).
	tail := copy(lv.indices[w:], lv.indices[i:])
	lv.indices = lv.indices[:w+tail]

	return remaining, trades
}

// sweep walks levels of book from the best outward, consuming qty while
// shouldCross allows it, until qty is exhausted or the book empties.
// Returns the unfilled remainder and the ordered trade list.
func (ob *OrderBook) sweep(sb *sideBook, takerSide Side, qty Quantity, shouldCross func(Price) bool) (Quantity, []Trade) {
	remaining := qty
	var trades []Trade

	for remaining > 0 {
		el := sb.levels.Front()
		if el == nil {
			break
		}
		lv := el.Value.(*level)

		if !shouldCross(lv.price) {
			break
		}

		remaining, trades = ob.sweepLevel(lv, takerSide, remaining, trades)

		if lv.empty() {
			sb.erase(lv.price, el)
		}
	}

	return remaining, trades
}

// sideBook is one side's price-ordered set of levels: a skiplist keyed by
// Price (bids descending, asks ascending) mapping to *level, plus a
// Price->*skiplist.Element index for O(1) level lookup on insert/erase.
type sideBook struct {
	side    Side
	levels  *skiplist.SkipList
	byPrice map[Price]*skiplist.Element
}

func newSideBook(side Side) *sideBook {
	var cmp skiplist.GreaterThanFunc
	if side == Buy {
		// Bids ordered descending: best (highest) bid sorts first.
		cmp = func(lhs, rhs any) int {
			a, b := lhs.(Price), rhs.(Price)
			switch {
			case a < b:
				return 1
			case a > b:
				return -1
			default:
				return 0
			}
		}
	} else {
		// Asks ordered ascending: best (lowest) ask sorts first.
		cmp = func(lhs, rhs any) int {
			a, b := lhs.(Price), rhs.(Price)
			switch {
			case a > b:
				return 1
			case a < b:
				return -1
			default:
				return 0
			}
		}
	}

	return &sideBook{
		side:    side,
		levels:  skiplist.New(cmp),
		byPrice: make(map[Price]*skiplist.Element),
	}
}

// levelAt returns the level at price, creating it (and registering it in
// the skiplist) if absent.
func (sb *sideBook) levelAt(price Price) *level {
	if el, ok := sb.byPrice[price]; ok {
		return el.Value.(*level)
	}
	lv := newLevel(price)
	el := sb.levels.Set(price, lv)
	sb.byPrice[price] = el
	return lv
}

func (sb *sideBook) erase(price Price, el *skiplist.Element) {
	sb.levels.RemoveElement(el)
	delete(sb.byPrice, price)
}

func (sb *sideBook) empty() bool {
	return sb.levels.Front() == nil
}
