// Package feed provides the event model and producer/consumer plumbing
// that couples an external order stream to a book.OrderBook through a
// queue.SPSC, plus the two text grammars used to read such a stream from
// a file or a live source.
//
// Grounded on original_source/include/trading/event.hpp (Event/EventType
// shape), app/mt_bench_main.cpp (TimedEvent, EventGenerator, the
// producer/consumer loop pair and its latency sampling), app/replay_main.cpp
// (the compact CSV grammar and ReplayStats), and app/live_feed_main.cpp
// (the timestamped grammar).
package feed

import "github.com/kprice-io/lob-engine"

// EventType tags which variant of Event is populated.
type EventType uint8

const (
	Add EventType = iota
	Market
	Cancel
	End // sentinel consumed by Producer/Consumer to signal stream completion
)

func (t EventType) String() string {
	switch t {
	case Add:
		return "ADD"
	case Market:
		return "MARKET"
	case Cancel:
		return "CANCEL"
	case End:
		return "END"
	default:
		return "UNKNOWN"
	}
}

// Event is a single instruction against an order book, read from any
// source (a generator, a file, a websocket feed). Only the fields valid
// for Type are meaningful; others must not be consulted and need not be
// zero (ParseTimestampedLine fills Side, Price and Qty for every type).
type Event struct {
	Type  EventType
	Side  book.Side
	Price book.Price // valid for Add
	Qty   book.Quantity // valid for Add/Market
	ID    book.OrderId  // valid for Cancel, optional for Add
	TsNs  int64         // feed-assigned timestamp in nanoseconds, optional
}

// TimedEvent wraps an Event with the producer-assigned sequence id and
// enqueue time used for end-to-end latency sampling between Producer and
// Consumer.
type TimedEvent struct {
	Ev        Event
	Seq       uint64
	EnqueueNs int64 // time.Now().UnixNano() at the moment Producer pushed it
}
