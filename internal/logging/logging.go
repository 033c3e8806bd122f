// Package logging configures structured logging for Altair components.
// Built on slog: text to stderr for CLI use (Unix convention), JSON for the
// service deployment.
package logging

import (
	"log/slog"
	"os"
)

// New returns a logger writing to stderr in the given format ("json" or
// anything else for text).
func New(format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if format == "json" {
		h = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		h = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(h)
}

// Default is the stderr text logger at info level.
func Default() *slog.Logger {
	return New("text", slog.LevelInfo)
}
