// Package log provides structured logging for godml estimators.
//
// The package defines a minimal, slog-compatible Logger interface so the
// backend can be swapped without touching estimator code, plus standard
// attribute keys for cross-fitting diagnostics (fold, repetition, nuisance
// name, procedure). The default implementation is backed by log/slog with a
// handler that extracts cockroachdb/errors stack traces into a dedicated
// attribute.
package log

import (
	"context"
)

// Logger is a structured logging interface compatible with Go's log/slog.
// Fields are alternating key-value pairs, as in slog.
type Logger interface {
	// Debug logs detailed diagnostic information, e.g. per-fold thetas.
	Debug(msg string, fields ...any)

	// Info logs operational information about an estimator run.
	Info(msg string, fields ...any)

	// Warn logs conditions that do not abort a fit but deserve attention.
	Warn(msg string, fields ...any)

	// Error logs error conditions. If a field value is an error carrying a
	// cockroachdb stack trace, the trace is emitted as a separate attribute.
	Error(msg string, fields ...any)

	// With returns a Logger that includes the given fields in every record.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	Enabled(ctx context.Context, level Level) bool
}

// Level is a logging level with slog-compatible values.
type Level int

const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
