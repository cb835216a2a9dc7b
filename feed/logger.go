package feed

import (
	"log/slog"
	"os"
)

// logger is used for run-boundary events only (a Producer/Consumer pair
// starting and finishing one stream) — never per-event, which would
// defeat the point of decoupling feed and engine through queue.SPSC in
// the first place.
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger replaces the package logger, e.g. to route it through a host
// application's own structured logger.
func SetLogger(l *slog.Logger) {
	logger = l
}
