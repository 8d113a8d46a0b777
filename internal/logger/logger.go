// File: internal/logger/logger.go
package logger

import (
	"io"
	"log/slog"
)

// Builds the application logger. The level is a Leveler so the CLI can raise
// it to Debug once --verbose has been parsed.
func NewLogger(w io.Writer, level slog.Leveler) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(w, opts)

	logger := slog.New(handler)

	slog.SetDefault(logger)
	return logger
}

// Returns a logger that drops everything, used where no logger was injected
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
