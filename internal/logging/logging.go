// Package logging provides the shared structured-logging conventions.
//
// Loggers are dependency-injected, never global: main() builds the base
// logger and every component receives its own scoped copy at construction
// time via slog.With. Components never touch slog.SetDefault.
//
// Logging stays out of the hot path. The tokenizer's scan loop emits
// nothing; lifecycle boundaries (open, close, watch events) are the
// intended log points.
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// discardHandler drops every record.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// Discard returns a logger that drops all output.
func Discard() *slog.Logger {
	return slog.New(discardHandler{})
}

// Default returns logger if non-nil, otherwise a discard logger. The
// standard pattern for optional logger parameters:
//
//	func New(logger *slog.Logger) *Thing {
//	    return &Thing{logger: logging.Default(logger).With("component", "thing")}
//	}
func Default(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return Discard()
}

// ParseLevel maps a level name (debug, info, warn, error) to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}
