package feed

import "sync"

// LatencyRecorder collects enqueue-to-processed latency samples indexed
// by a producer-assigned sequence id, the same shape as mt_bench's
// latencies_ns vector. It only stores samples; percentile extraction is
// left to the caller's benchmark harness, not this library (mt_bench's
// own p50/p95/p99 reporting is presentation, not engine behavior).
//
// Safe for one writer (the Consumer goroutine); Samples should only be
// read after the writer has stopped.
type LatencyRecorder struct {
	mu      sync.Mutex
	samples []int64
}

// NewLatencyRecorder preallocates room for expected samples.
func NewLatencyRecorder(expected int) *LatencyRecorder {
	return &LatencyRecorder{samples: make([]int64, 0, expected)}
}

// Record appends a latency sample in nanoseconds. seq is accepted for
// symmetry with mt_bench's index-addressed vector but is not otherwise
// used — samples are stored in arrival order, which for a single
// consumer goroutine is the same as seq order.
func (r *LatencyRecorder) Record(seq uint64, latencyNs int64) {
	r.mu.Lock()
	r.samples = append(r.samples, latencyNs)
	r.mu.Unlock()
}

// Samples returns a copy of the recorded latencies in arrival order.
func (r *LatencyRecorder) Samples() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int64, len(r.samples))
	copy(out, r.samples)
	return out
}
