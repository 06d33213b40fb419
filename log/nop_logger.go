package log

// nopLogger discards every statement, it's used when the user doesn't provide a logger.
type nopLogger struct{}

func (nopLogger) Log(_ Level, _ string, _ ...any) {}
