// Package zaplog adapts a zap logger to the kratos log.Logger interface so
// the whole application logs through one zap core.
package zaplog

import (
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
	"go.uber.org/zap"
)

// Compile-time interface check
var _ log.Logger = (*Logger)(nil)

// Logger is a kratos log.Logger backed by zap.
type Logger struct {
	zl *zap.Logger
}

// NewLogger wraps a zap logger.
func NewLogger(zl *zap.Logger) *Logger {
	// Skip this adapter frame so caller info points at the call site.
	return &Logger{zl: zl.WithOptions(zap.AddCallerSkip(2))}
}

// Log implements log.Logger. keyvals come in alternating key/value pairs.
func (l *Logger) Log(level log.Level, keyvals ...interface{}) error {
	if len(keyvals)%2 != 0 {
		keyvals = append(keyvals, "")
	}

	var msg string
	fields := make([]zap.Field, 0, len(keyvals)/2)
	for i := 0; i < len(keyvals); i += 2 {
		key := fmt.Sprint(keyvals[i])
		if key == log.DefaultMessageKey {
			msg = fmt.Sprint(keyvals[i+1])
			continue
		}
		fields = append(fields, zap.Any(key, keyvals[i+1]))
	}

	switch level {
	case log.LevelDebug:
		l.zl.Debug(msg, fields...)
	case log.LevelInfo:
		l.zl.Info(msg, fields...)
	case log.LevelWarn:
		l.zl.Warn(msg, fields...)
	case log.LevelError:
		l.zl.Error(msg, fields...)
	case log.LevelFatal:
		l.zl.Fatal(msg, fields...)
	default:
		l.zl.Info(msg, fields...)
	}
	return nil
}
