package feed

import (
	"math"

	"github.com/kprice-io/lob-engine"
)

// ReplayStats accumulates summary statistics over a replayed event
// stream: counts, filled volume, market-order fill outcomes, cancel
// success/failure, best-bid/ask ranges, spread, and aggressor VWAP.
//
// Grounded on original_source/app/replay_main.cpp's ReplayStats struct
// and update_book_stats/print_stats functions, with the printing
// responsibility left to the caller (this package only accumulates).
type ReplayStats struct {
	AddCount    int
	MktCount    int
	CancelCount int

	TotalAddedBuy  book.Quantity
	TotalAddedSell book.Quantity

	TotalMktReqBuy  book.Quantity
	TotalMktReqSell book.Quantity
	TotalMktFillBuy  book.Quantity
	TotalMktFillSell book.Quantity

	MktFullFillCount    int
	MktPartialFillCount int
	MktZeroFillCount    int

	CancelSuccess int
	CancelFail    int

	SeenBid    bool
	SeenAsk    bool
	MinBestBid book.Price
	MaxBestBid book.Price
	MinBestAsk book.Price
	MaxBestAsk book.Price

	MaxBestBidQty book.Quantity
	MaxBestAskQty book.Quantity

	SpreadSum   float64
	SpreadMin   float64
	SpreadMax   float64
	SpreadCount int

	TradedNotionalBuy  float64
	TradedNotionalSell float64
}

// NewReplayStats returns a zeroed ReplayStats ready for accumulation,
// with the min/max price trackers primed the way the reference
// implementation primes them (min starts at +infinity-equivalent, max at
// -infinity-equivalent, so the first observation always wins).
func NewReplayStats() *ReplayStats {
	return &ReplayStats{
		MinBestBid: book.Price(1<<63 - 1),
		MaxBestBid: book.Price(-(1<<63 - 1) - 1),
		MinBestAsk: book.Price(1<<63 - 1),
		MaxBestAsk: book.Price(-(1<<63 - 1) - 1),
		SpreadMin:  math.Inf(1),
	}
}

// RecordAdd updates add-volume counters for an Add event.
func (s *ReplayStats) RecordAdd(side book.Side, qty book.Quantity) {
	s.AddCount++
	if side == book.Buy {
		s.TotalAddedBuy += qty
	} else {
		s.TotalAddedSell += qty
	}
}

// RecordMarket updates market-order request/fill counters and aggressor
// VWAP inputs from a MatchResult returned by book.OrderBook.ExecuteMarket.
func (s *ReplayStats) RecordMarket(side book.Side, requested book.Quantity, mr book.MatchResult) {
	s.MktCount++
	if side == book.Buy {
		s.TotalMktReqBuy += requested
		s.TotalMktFillBuy += mr.Filled
	} else {
		s.TotalMktReqSell += requested
		s.TotalMktFillSell += mr.Filled
	}

	switch {
	case mr.Filled == 0:
		s.MktZeroFillCount++
	case mr.Remaining == 0:
		s.MktFullFillCount++
	default:
		s.MktPartialFillCount++
	}

	for _, tr := range mr.Trades {
		notional := float64(tr.Price) * float64(tr.Qty)
		if tr.TakerSide == book.Buy {
			s.TradedNotionalBuy += notional
		} else {
			s.TradedNotionalSell += notional
		}
	}
}

// RecordCancel updates cancel success/failure counters.
func (s *ReplayStats) RecordCancel(ok bool) {
	s.CancelCount++
	if ok {
		s.CancelSuccess++
	} else {
		s.CancelFail++
	}
}

// UpdateBookStats should be called once per processed event to fold the
// current best bid/ask/spread into the running ranges.
func (s *ReplayStats) UpdateBookStats(ob *book.OrderBook) {
	bb := ob.BestBid()
	ba := ob.BestAsk()

	if bb.Valid {
		s.SeenBid = true
		if bb.Price < s.MinBestBid {
			s.MinBestBid = bb.Price
		}
		if bb.Price > s.MaxBestBid {
			s.MaxBestBid = bb.Price
		}
		if bb.Qty > s.MaxBestBidQty {
			s.MaxBestBidQty = bb.Qty
		}
	}

	if ba.Valid {
		s.SeenAsk = true
		if ba.Price < s.MinBestAsk {
			s.MinBestAsk = ba.Price
		}
		if ba.Price > s.MaxBestAsk {
			s.MaxBestAsk = ba.Price
		}
		if ba.Qty > s.MaxBestAskQty {
			s.MaxBestAskQty = ba.Qty
		}
	}

	if bb.Valid && ba.Valid {
		spread := float64(ba.Price - bb.Price)
		s.SpreadSum += spread
		if spread < s.SpreadMin {
			s.SpreadMin = spread
		}
		if spread > s.SpreadMax {
			s.SpreadMax = spread
		}
		s.SpreadCount++
	}
}
