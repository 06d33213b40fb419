package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockLogger struct {
	mock.Mock
}

func (m *mockLogger) Log(level Level, format string, args ...any) {
	m.Called(level, format, args)
}

func TestWrappedLoggerLevels(t *testing.T) {
	type test struct {
		name  string
		fn    func(w WrappedLogger)
		level Level
	}

	tests := []test{
		{name: "Trace", fn: func(w WrappedLogger) { w.Tracef("msg %d", 1) }, level: LevelTrace},
		{name: "Debug", fn: func(w WrappedLogger) { w.Debugf("msg %d", 1) }, level: LevelDebug},
		{name: "Info", fn: func(w WrappedLogger) { w.Infof("msg %d", 1) }, level: LevelInfo},
		{name: "Warning", fn: func(w WrappedLogger) { w.Warnf("msg %d", 1) }, level: LevelWarning},
		{name: "Error", fn: func(w WrappedLogger) { w.Errorf("msg %d", 1) }, level: LevelError},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			logger := &mockLogger{}
			logger.On("Log", test.level, "msg %d", []any{1}).Return()

			wrapped := NewWrappedLogger(logger)
			test.fn(wrapped)

			logger.AssertExpectations(t)
		})
	}
}

func TestWrappedLoggerPrefix(t *testing.T) {
	logger := &mockLogger{}
	logger.On("Log", LevelInfo, "(AIS) created %s", []any{"bucket"}).Return()
	logger.On("Log", LevelWarning, "retrying", []any(nil)).Return()

	wrapped := NewWrappedLogger(logger)
	wrapped.WithPrefix("(AIS)").Infof("created %s", "bucket")
	wrapped.Warnf("retrying")

	logger.AssertExpectations(t)
}

func TestNewWrappedLoggerNil(t *testing.T) {
	wrapped := NewWrappedLogger(nil)
	require.Equal(t, nopLogger{}, wrapped.logger)
	require.NotPanics(t, func() { wrapped.WithPrefix("(AIS)").Infof("discarded") })
	require.NotPanics(t, func() { WrappedLogger{}.Errorf("discarded") })
}

func TestStdoutLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := StdoutLogger{MinLevel: LevelInfo, Out: &buf}
	logger.Log(LevelDebug, "hidden")
	logger.Log(LevelWarning, "shown %s", UserData("bucket"))

	require.Equal(t, 1, strings.Count(buf.String(), "\n"))
	require.Contains(t, buf.String(), "WARN: shown <ud>bucket</ud>")
}

func TestParseLevel(t *testing.T) {
	type test struct {
		input    string
		expected Level
		err      bool
	}

	tests := []test{
		{input: "trace", expected: LevelTrace},
		{input: "DEBUG", expected: LevelDebug},
		{input: "", expected: LevelInfo},
		{input: " warning ", expected: LevelWarning},
		{input: "warn", expected: LevelWarning},
		{input: "error", expected: LevelError},
		{input: "panic", expected: LevelPanic},
		{input: "verbose", err: true},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			level, err := ParseLevel(test.input)
			if test.err {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, test.expected, level)
		})
	}
}
