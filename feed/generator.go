package feed

import (
	"math/rand"

	"github.com/kprice-io/lob-engine"
)

// Generator produces a deterministic, bounded synthetic event stream for
// load-testing a book.OrderBook: about 60% Add, 30% Market, 10% Cancel,
// always choosing a live order id to cancel when one exists. It ends the
// stream with a single End event.
//
// Grounded on original_source/app/mt_bench_main.cpp's EventGenerator,
// translated from its std::mt19937_64 + per-field uniform_int_distribution
// setup to math/rand.Rand with the same field ranges (price in [95,105],
// qty in [1,10]).
type Generator struct {
	numEvents int
	generated int
	nextID    book.OrderId
	activeIDs []book.OrderId
	rng       *rand.Rand
}

// NewGenerator creates a generator that will emit numEvents Add/Market/
// Cancel events before a terminal End, seeded for reproducibility.
func NewGenerator(numEvents int, seed int64) *Generator {
	return &Generator{
		numEvents: numEvents,
		nextID:    1,
		activeIDs: make([]book.OrderId, 0, numEvents),
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Next returns the next event in the stream, or an End event once
// numEvents have been produced (every subsequent call keeps returning
// End).
func (g *Generator) Next() Event {
	if g.generated >= g.numEvents {
		return Event{Type: End}
	}
	g.generated++

	forceAdd := len(g.activeIDs) == 0
	r := g.rng.Intn(100)

	switch {
	case forceAdd || r < 60:
		return g.add()
	case r < 90:
		return Event{Type: Market, Side: g.randSide(), Qty: g.randQty()}
	default:
		return g.cancel()
	}
}

func (g *Generator) add() Event {
	id := g.nextID
	g.nextID++
	g.activeIDs = append(g.activeIDs, id)
	return Event{Type: Add, Side: g.randSide(), Price: g.randPrice(), Qty: g.randQty(), ID: id}
}

func (g *Generator) cancel() Event {
	if len(g.activeIDs) == 0 {
		return g.add()
	}
	i := g.rng.Intn(len(g.activeIDs))
	id := g.activeIDs[i]
	last := len(g.activeIDs) - 1
	g.activeIDs[i] = g.activeIDs[last]
	g.activeIDs = g.activeIDs[:last]
	return Event{Type: Cancel, ID: id}
}

func (g *Generator) randSide() book.Side {
	if g.rng.Intn(2) == 0 {
		return book.Buy
	}
	return book.Sell
}

func (g *Generator) randPrice() book.Price {
	return book.Price(95 + g.rng.Intn(11)) // [95, 105]
}

func (g *Generator) randQty() book.Quantity {
	return book.Quantity(1 + g.rng.Intn(10)) // [1, 10]
}
