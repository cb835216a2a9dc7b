// Package book implements a single-instrument, in-memory limit order book
// with price-time priority matching.
//
// An OrderBook is owned by exactly one goroutine. It is not safe for
// concurrent use — callers that need to couple a feed goroutine to an
// engine goroutine should do so through package queue, the same way the
// reference pipeline in package feed does.
package book
