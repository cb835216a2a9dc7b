package book

import (
	"log/slog"
	"os"
)

// logger is used for rare, non-hot-path conditions only (arena growth).
// It is never called from the matching sweep.
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger replaces the package logger, e.g. to route it through a host
// application's own structured logger.
func SetLogger(l *slog.Logger) {
	logger = l
}
