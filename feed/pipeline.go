package feed

import (
	"runtime"
	"sync/atomic"
	"time"

	"github.com/kprice-io/lob-engine"
	"github.com/kprice-io/lob-engine/queue"
)

// Producer reads events from next until it returns an End event, stamps
// each with a sequence id and enqueue timestamp, and pushes them onto q,
// retrying with a scheduler yield while q is full. It sets done once the
// End event (or the sentinel itself) has been pushed.
//
// session correlates this run's log lines with the matching Consumer's;
// it is always logged, as an empty value when "" is passed.
//
// Grounded on original_source/app/mt_bench_main.cpp's producer_thread
// lambda: same retry-on-full loop via a yield, same "assign ids 0..N-1,
// End gets no real id" convention.
func Producer(q *queue.SPSC[TimedEvent], next func() Event, done *atomic.Bool, session SessionID) {
	logger.Info("feed producer starting", "session", session)
	var seq uint64
	for {
		ev := next()
		tev := TimedEvent{Ev: ev, EnqueueNs: time.Now().UnixNano()}
		if ev.Type != End {
			tev.Seq = seq
			seq++
		}

		for !q.Push(tev) {
			runtime.Gosched()
		}

		if ev.Type == End {
			break
		}
	}
	done.Store(true)
	logger.Info("feed producer finished", "session", session, "events", seq)
}

// Consumer pops events from q and applies them to ob until producerDone
// is set and q is empty, recording end-to-end latency for each event via
// recordLatency (may be nil to skip sampling) and returning the number
// of events applied (End itself is not counted).
//
// session correlates this run's log lines with the matching Producer's;
// it is always logged, as an empty value when "" is passed.
//
// Grounded on original_source/app/mt_bench_main.cpp's consumer_thread
// lambda: pop-or-yield loop, latency sample taken right after pop and
// before dispatch, exit condition is "producer done AND queue empty".
func Consumer(q *queue.SPSC[TimedEvent], ob *book.OrderBook, producerDone *atomic.Bool, recordLatency func(seq uint64, latencyNs int64), session SessionID) uint64 {
	var consumed uint64
	for {
		tev, ok := q.Pop()
		if !ok {
			if producerDone.Load() && q.Empty() {
				logger.Info("feed consumer finished", "session", session, "consumed", consumed)
				return consumed
			}
			runtime.Gosched()
			continue
		}

		if tev.Ev.Type == End {
			logger.Info("feed consumer finished", "session", session, "consumed", consumed)
			return consumed
		}

		if recordLatency != nil {
			recordLatency(tev.Seq, time.Now().UnixNano()-tev.EnqueueNs)
		}

		Apply(ob, tev.Ev)
		consumed++
	}
}

// Apply dispatches a single event against an order book. Add uses the
// caller-supplied id (book.OrderBook.AddLimitWithID) since replayed and
// generated streams pre-assign ids, matching add_limit_order_with_id in
// the reference consumer loops. An Add with id 0 carries no id (as
// produced by ParseTimestampedLine) and goes through book.OrderBook.AddLimit,
// which generates ids from 1, so id 0 never becomes resident through Apply
// and Cancel with id 0 is a guaranteed no-op.
func Apply(ob *book.OrderBook, ev Event) book.MatchResult {
	switch ev.Type {
	case Add:
		if ev.ID == 0 {
			_, mr := ob.AddLimit(ev.Side, ev.Price, ev.Qty)
			return mr
		}
		_, mr := ob.AddLimitWithID(ev.ID, ev.Side, ev.Price, ev.Qty)
		return mr
	case Market:
		return ob.ExecuteMarket(ev.Side, ev.Qty)
	case Cancel:
		ob.Cancel(ev.ID)
		return book.MatchResult{}
	default:
		return book.MatchResult{}
	}
}
