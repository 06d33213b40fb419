// Package logruslog adapts a logrus logger so that it may be supplied wherever a 'log.Logger' is accepted.
package logruslog

import (
	"github.com/sirupsen/logrus"

	"github.com/soitun/aistore/log"
)

// Logger forwards library log statements to logrus.
type Logger struct {
	entry logrus.FieldLogger
}

var _ log.Logger = (*Logger)(nil)

// New wraps the given logrus logger (or entry); <nil> uses the logrus standard logger.
func New(logger logrus.FieldLogger) *Logger {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Logger{entry: logger.WithField("component", "aistore")}
}

func (l *Logger) Log(level log.Level, format string, args ...any) {
	switch level {
	case log.LevelTrace, log.LevelDebug:
		l.entry.Debugf(format, args...)
	case log.LevelInfo:
		l.entry.Infof(format, args...)
	case log.LevelWarning:
		l.entry.Warnf(format, args...)
	default:
		l.entry.Errorf(format, args...)
	}
}

// ToLogrusLevel converts the given level into the closest logrus level.
func ToLogrusLevel(level log.Level) logrus.Level {
	switch level {
	case log.LevelTrace:
		return logrus.TraceLevel
	case log.LevelDebug:
		return logrus.DebugLevel
	case log.LevelInfo:
		return logrus.InfoLevel
	case log.LevelWarning:
		return logrus.WarnLevel
	default:
		return logrus.ErrorLevel
	}
}
