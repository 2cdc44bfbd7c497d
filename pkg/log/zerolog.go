package log

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// ZerologProvider is the default LoggerProvider, emitting JSON records to
// stderr via zerolog.
type ZerologProvider struct {
	mu     sync.RWMutex
	root   zerolog.Logger
	level  Level
	zLevel zerolog.Level
}

// NewZerologProvider creates a provider with the given minimum level.
func NewZerologProvider(level Level) *ZerologProvider {
	zl := toZerologLevel(level)
	root := zerolog.New(os.Stderr).Level(zl).With().Timestamp().Logger()
	return &ZerologProvider{root: root, level: level, zLevel: zl}
}

// NewZerologProviderWithLogger wraps an existing zerolog.Logger, for callers
// that already configured output or sampling.
func NewZerologProviderWithLogger(logger zerolog.Logger, level Level) *ZerologProvider {
	return &ZerologProvider{root: logger, level: level, zLevel: toZerologLevel(level)}
}

// GetLogger returns the default logger.
func (p *ZerologProvider) GetLogger() Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return &zerologLogger{logger: p.root.Level(p.zLevel), level: p.level}
}

// GetLoggerWithName returns a logger tagged with a component name.
func (p *ZerologProvider) GetLoggerWithName(name string) Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	tagged := p.root.Level(p.zLevel).With().Str(ComponentKey, name).Logger()
	return &zerologLogger{logger: tagged, level: p.level}
}

// SetLevel sets the minimum emitted level for subsequently created loggers.
func (p *ZerologProvider) SetLevel(level Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
	p.zLevel = toZerologLevel(level)
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

type zerologLogger struct {
	logger zerolog.Logger
	level  Level
}

func (l *zerologLogger) Debug(msg string, fields ...any) {
	emit(l.logger.Debug(), msg, fields)
}

func (l *zerologLogger) Info(msg string, fields ...any) {
	emit(l.logger.Info(), msg, fields)
}

func (l *zerologLogger) Warn(msg string, fields ...any) {
	emit(l.logger.Warn(), msg, fields)
}

func (l *zerologLogger) Error(msg string, fields ...any) {
	emit(l.logger.Error(), msg, fields)
}

func (l *zerologLogger) With(fields ...any) Logger {
	ctx := l.logger.With()
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			key = fmt.Sprint(fields[i])
		}
		ctx = ctx.Interface(key, fields[i+1])
	}
	return &zerologLogger{logger: ctx.Logger(), level: l.level}
}

func (l *zerologLogger) Enabled(_ context.Context, level Level) bool {
	return level >= l.level
}

// emit applies alternating key/value fields to a zerolog event. A bare error
// value (no preceding key) is attached under ErrKey; errors implementing
// zerolog.LogObjectMarshaler keep their structured fields.
func emit(event *zerolog.Event, msg string, fields []any) {
	i := 0
	for i < len(fields) {
		if err, ok := fields[i].(error); ok {
			attachError(event, err)
			i++
			continue
		}
		if i+1 >= len(fields) {
			break
		}
		key, ok := fields[i].(string)
		if !ok {
			key = fmt.Sprint(fields[i])
		}
		if err, ok := fields[i+1].(error); ok && key == ErrKey {
			attachError(event, err)
		} else {
			event = event.Interface(key, fields[i+1])
		}
		i += 2
	}
	event.Msg(msg)
}

func attachError(event *zerolog.Event, err error) {
	if obj, ok := err.(zerolog.LogObjectMarshaler); ok {
		event.Object(ErrKey, obj)
		return
	}
	event.Str(ErrKey, err.Error())
}
