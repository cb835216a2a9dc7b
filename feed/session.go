package feed

import "github.com/rs/xid"

// SessionID correlates the start/finish log lines Producer and Consumer
// emit for one run (a single replay, benchmark, or live-feed invocation),
// distinct from an Event's OrderId space.
type SessionID string

// NewSessionID generates a fresh, sortable, globally unique session id.
func NewSessionID() SessionID {
	return SessionID(xid.New().String())
}
