// Package zaplog adapts a 'zap.Logger' so that it may be supplied wherever a 'log.Logger' is accepted.
package zaplog

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/soitun/aistore/log"
)

// Logger forwards library log statements to zap.
type Logger struct {
	sugar *zap.SugaredLogger
}

var _ log.Logger = (*Logger)(nil)

// New wraps the given zap logger; a <nil> logger results in a no-op zap logger.
func New(logger *zap.Logger) *Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Logger{sugar: logger.WithOptions(zap.AddCallerSkip(2)).Sugar()}
}

// NewFromConfig builds a zap logger in the given format ("json" or "console") at the given level.
func NewFromConfig(level log.Level, format string) (*Logger, error) {
	config := zap.NewProductionConfig()
	if level <= log.LevelDebug {
		config = zap.NewDevelopmentConfig()
	}

	config.Level = zap.NewAtomicLevelAt(ToZapLevel(level))

	switch format {
	case "console":
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		config.DisableStacktrace = true
	case "", "json":
		config.Encoding = "json"
	default:
		return nil, fmt.Errorf("unknown log format '%s'", format)
	}

	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.MessageKey = "message"

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build zap logger: %w", err)
	}

	return New(logger), nil
}

func (l *Logger) Log(level log.Level, format string, args ...any) {
	switch level {
	case log.LevelTrace, log.LevelDebug:
		l.sugar.Debugf(format, args...)
	case log.LevelInfo:
		l.sugar.Infof(format, args...)
	case log.LevelWarning:
		l.sugar.Warnf(format, args...)
	case log.LevelError:
		l.sugar.Errorf(format, args...)
	case log.LevelPanic:
		// The caller panics itself, so don't let zap do it first.
		l.sugar.Errorf(format, args...)
	}
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}

// ToZapLevel converts a library level into the closest zap level; zap has no trace level.
func ToZapLevel(level log.Level) zapcore.Level {
	switch level {
	case log.LevelTrace, log.LevelDebug:
		return zapcore.DebugLevel
	case log.LevelInfo:
		return zapcore.InfoLevel
	case log.LevelWarning:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}
