// Package telemetry provides the structured logger threaded through the
// analysis core. It wraps go.uber.org/zap the way cmd/nerd wires a
// *zap.Logger through its command tree: built once at the edge, passed down
// explicitly, never read off a package-level global.
package telemetry

import "go.uber.org/zap"

// Logger is the structured logger used throughout the analysis core.
type Logger struct {
	z *zap.Logger
}

// NewProduction builds a Logger suitable for a production language-server
// process: JSON output, info level and above.
func NewProduction() (*Logger, error) {
	z, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return &Logger{z: z}, nil
}

// NewDevelopment builds a Logger suitable for local debugging: console
// output, debug level and above.
func NewDevelopment() (*Logger, error) {
	z, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return &Logger{z: z}, nil
}

// Nop returns a Logger that discards everything. With on a nil Logger
// returns one.
func Nop() *Logger {
	return &Logger{z: zap.NewNop()}
}

// With returns a child Logger with the given structured fields attached to
// every subsequent entry.
func (l *Logger) With(fields ...zap.Field) *Logger {
	if l == nil {
		return Nop()
	}
	return &Logger{z: l.z.With(fields...)}
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, fields ...zap.Field) {
	if l == nil {
		return
	}
	l.z.Debug(msg, fields...)
}

// Info logs at info level.
func (l *Logger) Info(msg string, fields ...zap.Field) {
	if l == nil {
		return
	}
	l.z.Info(msg, fields...)
}

// Warn logs at warn level.
func (l *Logger) Warn(msg string, fields ...zap.Field) {
	if l == nil {
		return
	}
	l.z.Warn(msg, fields...)
}

// Error logs at error level.
func (l *Logger) Error(msg string, fields ...zap.Field) {
	if l == nil {
		return
	}
	l.z.Error(msg, fields...)
}

// Sync flushes any buffered log entries. Callers should defer Sync on
// process shutdown; the error is usually safe to ignore on stderr-backed
// loggers.
func (l *Logger) Sync() error {
	if l == nil {
		return nil
	}
	return l.z.Sync()
}
