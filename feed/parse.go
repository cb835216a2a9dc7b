package feed

import (
	"errors"
	"strconv"
	"strings"

	"github.com/kprice-io/lob-engine"
)

// ErrNotAnEvent is returned by the parsers for blank lines, comment
// lines, and lines that don't match the grammar. Replay callers should
// treat it as "skip this line", not as a fatal error.
var ErrNotAnEvent = errors.New("feed: line is not a parseable event")

// ParseCompactLine parses the compact CSV replay grammar:
//
//	ADD,<side>,<price>,<qty>,<id>
//	MKT,<side>,<qty>
//	CANCEL,<id>
//
// Blank lines and lines whose first non-space character is '#' parse as
// ErrNotAnEvent, same as an unrecognized line — both are meant to be
// silently skipped by the caller.
//
// Grounded on original_source/app/replay_main.cpp's parse_line.
func ParseCompactLine(line string) (Event, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Event{}, ErrNotAnEvent
	}

	fields := strings.Split(trimmed, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	switch strings.ToUpper(fields[0]) {
	case "ADD":
		if len(fields) != 5 {
			return Event{}, ErrNotAnEvent
		}
		side, ok := parseSide(fields[1])
		if !ok {
			return Event{}, ErrNotAnEvent
		}
		price, err1 := strconv.ParseInt(fields[2], 10, 64)
		qty, err2 := strconv.ParseInt(fields[3], 10, 64)
		id, err3 := strconv.ParseUint(fields[4], 10, 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return Event{}, ErrNotAnEvent
		}
		return Event{Type: Add, Side: side, Price: book.Price(price), Qty: book.Quantity(qty), ID: book.OrderId(id)}, nil

	case "MKT", "MARKET":
		if len(fields) != 3 {
			return Event{}, ErrNotAnEvent
		}
		side, ok := parseSide(fields[1])
		if !ok {
			return Event{}, ErrNotAnEvent
		}
		qty, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return Event{}, ErrNotAnEvent
		}
		return Event{Type: Market, Side: side, Qty: book.Quantity(qty)}, nil

	case "CANCEL", "CXL":
		if len(fields) != 2 {
			return Event{}, ErrNotAnEvent
		}
		id, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return Event{}, ErrNotAnEvent
		}
		return Event{Type: Cancel, ID: book.OrderId(id)}, nil

	default:
		return Event{}, ErrNotAnEvent
	}
}

func parseSide(token string) (book.Side, bool) {
	switch strings.ToUpper(token) {
	case "BUY", "B":
		return book.Buy, true
	case "SELL", "S":
		return book.Sell, true
	default:
		return 0, false
	}
}

// ParseTimestampedLine parses the timestamped live-feed grammar:
//
//	<ts_ns>,<T|A|C>,<side>,<price>,<qty>
//
// where T=Market, A=Add, C=Cancel. This format carries no order id, so a
// parsed Cancel always has ID 0 — applying it to a book.OrderBook through
// Apply is a guaranteed no-op, matching the reference feed's documented
// limitation rather than treating it as an error.
//
// Grounded on original_source/app/live_feed_main.cpp's parse_event_line.
func ParseTimestampedLine(line string) (Event, error) {
	if line == "" {
		return Event{}, ErrNotAnEvent
	}
	fields := strings.SplitN(line, ",", 5)
	if len(fields) != 5 {
		return Event{}, ErrNotAnEvent
	}

	ts, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return Event{}, ErrNotAnEvent
	}

	var typ EventType
	switch fields[1] {
	case "T":
		typ = Market
	case "A":
		typ = Add
	case "C":
		typ = Cancel
	default:
		return Event{}, ErrNotAnEvent
	}

	side := book.Sell
	if len(fields[2]) > 0 && (fields[2][0] == 'B' || fields[2][0] == 'b') {
		side = book.Buy
	}

	price, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return Event{}, ErrNotAnEvent
	}
	qty, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return Event{}, ErrNotAnEvent
	}

	return Event{Type: typ, Side: side, Price: book.Price(price), Qty: book.Quantity(qty), TsNs: ts}, nil
}
