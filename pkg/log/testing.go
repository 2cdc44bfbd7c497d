package log

import (
	"context"
	"sync"
)

// Record is one captured log entry.
type Record struct {
	Level   Level
	Message string
	Fields  []any
}

// CaptureProvider is a LoggerProvider that records entries in memory for
// assertions in tests.
type CaptureProvider struct {
	mu      sync.Mutex
	level   Level
	records []Record
}

// NewCaptureProvider creates a provider that records everything at or above
// the given level.
func NewCaptureProvider(level Level) *CaptureProvider {
	return &CaptureProvider{level: level}
}

// GetLogger returns the capturing logger.
func (p *CaptureProvider) GetLogger() Logger {
	return &captureLogger{provider: p}
}

// GetLoggerWithName returns a capturing logger tagged with a component name.
func (p *CaptureProvider) GetLoggerWithName(name string) Logger {
	return &captureLogger{provider: p, fields: []any{ComponentKey, name}}
}

// SetLevel sets the minimum recorded level.
func (p *CaptureProvider) SetLevel(level Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
}

// Records returns a copy of everything recorded so far.
func (p *CaptureProvider) Records() []Record {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Record, len(p.records))
	copy(out, p.records)
	return out
}

func (p *CaptureProvider) record(level Level, msg string, fields []any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if level < p.level {
		return
	}
	p.records = append(p.records, Record{Level: level, Message: msg, Fields: fields})
}

type captureLogger struct {
	provider *CaptureProvider
	fields   []any
}

func (l *captureLogger) Debug(msg string, fields ...any) {
	l.provider.record(LevelDebug, msg, append(l.fields, fields...))
}

func (l *captureLogger) Info(msg string, fields ...any) {
	l.provider.record(LevelInfo, msg, append(l.fields, fields...))
}

func (l *captureLogger) Warn(msg string, fields ...any) {
	l.provider.record(LevelWarn, msg, append(l.fields, fields...))
}

func (l *captureLogger) Error(msg string, fields ...any) {
	l.provider.record(LevelError, msg, append(l.fields, fields...))
}

func (l *captureLogger) With(fields ...any) Logger {
	merged := make([]any, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)
	return &captureLogger{provider: l.provider, fields: merged}
}

func (l *captureLogger) Enabled(_ context.Context, level Level) bool {
	l.provider.mu.Lock()
	defer l.provider.mu.Unlock()
	return level >= l.provider.level
}
