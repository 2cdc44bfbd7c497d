// Package log provides the structured logging interface used by neighfit.
//
// The interface is slog-shaped (message plus alternating key/value fields)
// so implementations can be swapped without touching call sites. The default
// implementation is backed by zerolog; tests use the capture provider from
// testing.go.
package log

import "context"

// Logger is a minimal structured logger. Fields are alternating key/value
// pairs; an error value may be passed directly and is attached under the
// "error" key with its structured representation when available.
type Logger interface {
	// Debug logs detailed diagnostic information.
	Debug(msg string, fields ...any)

	// Info logs general operational information.
	Info(msg string, fields ...any)

	// Warn logs conditions that are suspicious but not fatal.
	Warn(msg string, fields ...any)

	// Error logs failures that should be investigated.
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	Enabled(ctx context.Context, level Level) bool
}

// Level is a logging level. Values are compatible with slog.Level.
type Level int

// Standard levels.
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

// ToLogLevel parses a level name, defaulting to info.
func ToLogLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return LevelDebug
	case "warn", "WARN":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// LoggerProvider creates named loggers. Packages hold a provider rather than
// a concrete logger so tests can inject a capture implementation.
type LoggerProvider interface {
	// GetLogger returns the default logger.
	GetLogger() Logger

	// GetLoggerWithName returns a logger tagged with a component name.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum emitted level for loggers from this provider.
	SetLevel(level Level)
}
