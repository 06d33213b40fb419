package log

// WrappedLogger adds leveled helpers on top of a user provided 'Logger', tagging each statement with the prefix of the
// component which emitted it e.g. '(AIS)' or '(REST)'.
type WrappedLogger struct {
	logger Logger
	prefix string
}

// NewWrappedLogger returns a WrappedLogger without a prefix, a nil logger discards everything.
func NewWrappedLogger(logger Logger) WrappedLogger {
	if logger == nil {
		logger = nopLogger{}
	}

	return WrappedLogger{logger: logger}
}

// WithPrefix returns a copy of the logger which tags statements with the given prefix.
func (w WrappedLogger) WithPrefix(prefix string) WrappedLogger {
	return WrappedLogger{logger: w.logger, prefix: prefix}
}

// Log implements the 'Logger' interface so that the wrapped logger may be handed down to other components.
func (w WrappedLogger) Log(level Level, format string, args ...any) {
	if w.logger == nil {
		return
	}

	if w.prefix != "" {
		format = w.prefix + " " + format
	}

	w.logger.Log(level, format, args...)
}

func (w WrappedLogger) Tracef(format string, args ...any) {
	w.Log(LevelTrace, format, args...)
}

func (w WrappedLogger) Debugf(format string, args ...any) {
	w.Log(LevelDebug, format, args...)
}

func (w WrappedLogger) Infof(format string, args ...any) {
	w.Log(LevelInfo, format, args...)
}

func (w WrappedLogger) Warnf(format string, args ...any) {
	w.Log(LevelWarning, format, args...)
}

func (w WrappedLogger) Errorf(format string, args ...any) {
	w.Log(LevelError, format, args...)
}
