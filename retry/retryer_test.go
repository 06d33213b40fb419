package retry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRetryer(t *testing.T) {
	retryer := NewRetryer(RetryerOptions[int]{})

	expected := RetryerOptions[int]{
		Algorithm:  AlgorithmFibonacci,
		MaxRetries: 3,
		MinDelay:   50 * time.Millisecond,
		MaxDelay:   2*time.Second + 500*time.Millisecond,
	}

	require.Equal(t, Retryer[int]{options: expected}, retryer)
	require.Equal(t, 3, retryer.MaxRetries())
}

func TestRetryerDo(t *testing.T) {
	var called int

	payload, err := NewRetryer(RetryerOptions[string]{}).Do(func(_ *Context) (string, error) {
		called++
		return "payload", nil
	})

	require.NoError(t, err)
	require.Equal(t, "payload", payload)
	require.Equal(t, 1, called)
}

func TestRetryerDoRetriesUntilSuccess(t *testing.T) {
	var called int

	options := RetryerOptions[int]{MinDelay: time.Millisecond, MaxDelay: time.Millisecond}

	payload, err := NewRetryer(options).Do(func(ctx *Context) (int, error) {
		called++

		if ctx.Attempt() < 3 {
			return 0, assert.AnError
		}

		return ctx.Attempt(), nil
	})

	require.NoError(t, err)
	require.Equal(t, 3, payload)
	require.Equal(t, 3, called)
}

func TestRetryerDoExhausted(t *testing.T) {
	options := RetryerOptions[int]{MinDelay: time.Millisecond, MaxDelay: time.Millisecond}

	_, err := NewRetryer(options).Do(func(_ *Context) (int, error) { return 0, assert.AnError })
	require.True(t, IsRetriesExhausted(err))
	require.ErrorIs(t, err, assert.AnError)
}

func TestRetryerDoWithAbort(t *testing.T) {
	var called int

	payload, err := NewRetryer(RetryerOptions[int]{}).Do(func(_ *Context) (int, error) {
		called++
		return 42, NewAbortRetriesError(assert.AnError)
	})

	require.True(t, IsRetriesAborted(err))
	require.ErrorIs(t, err, assert.AnError)
	require.Equal(t, 42, payload)
	require.Equal(t, 1, called)
}

func TestRetryerDoWithLogFuncAllButLast(t *testing.T) {
	var (
		called  int
		options = RetryerOptions[int]{
			MinDelay: time.Millisecond,
			MaxDelay: time.Millisecond,
			Log: func(ctx *Context, _ int, _ error) {
				require.Equal(t, called+1, ctx.Attempt())
				called++
			},
		}
	)

	_, err := NewRetryer(options).Do(func(_ *Context) (int, error) { return 0, assert.AnError })
	require.Error(t, err)
	require.Equal(t, 2, called)
}

func TestRetryerDoCleanupAllButLast(t *testing.T) {
	var cleaned []int

	options := RetryerOptions[int]{
		MinDelay: time.Millisecond,
		MaxDelay: time.Millisecond,
		Cleanup:  func(payload int) { cleaned = append(cleaned, payload) },
	}

	payload, err := NewRetryer(options).Do(func(ctx *Context) (int, error) { return ctx.Attempt(), assert.AnError })
	require.Error(t, err)
	require.Equal(t, 3, payload)
	require.Equal(t, []int{1, 2}, cleaned)
}

func TestRetryerDoWithShouldRetry(t *testing.T) {
	var called int

	options := RetryerOptions[int]{
		ShouldRetry: func(_ *Context, payload int, _ error) bool { return payload != 200 },
		MinDelay:    time.Millisecond,
		MaxDelay:    time.Millisecond,
	}

	payload, err := NewRetryer(options).Do(func(_ *Context) (int, error) {
		called++

		if called == 1 {
			return 503, nil
		}

		return 200, nil
	})

	require.NoError(t, err)
	require.Equal(t, 200, payload)
	require.Equal(t, 2, called)
}

func TestRetryerDoWithCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRetryer(RetryerOptions[int]{}).DoWithContext(ctx, func(_ *Context) (int, error) {
		t.Fatal("expected the function not to be run")
		return 0, nil
	})

	require.True(t, IsRetriesAborted(err))
	require.ErrorIs(t, err, context.Canceled)
}

func TestRetryerDuration(t *testing.T) {
	type test struct {
		name      string
		algorithm Algorithm
		expected  []time.Duration
	}

	tests := []test{
		{
			name:      "Fibonacci",
			algorithm: AlgorithmFibonacci,
			expected:  []time.Duration{50, 50, 100, 150, 250},
		},
		{
			name:      "Exponential",
			algorithm: AlgorithmExponential,
			expected:  []time.Duration{100, 200, 400, 800, 1600},
		},
		{
			name:      "Linear",
			algorithm: AlgorithmLinear,
			expected:  []time.Duration{50, 100, 150, 200, 250},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			retryer := NewRetryer(RetryerOptions[int]{Algorithm: test.algorithm})

			for i, expected := range test.expected {
				require.Equal(t, expected*time.Millisecond, retryer.Duration(i+1))
			}
		})
	}
}

func TestRetryerDurationClamped(t *testing.T) {
	retryer := NewRetryer(RetryerOptions[int]{Algorithm: AlgorithmExponential, MaxDelay: time.Second})
	require.Equal(t, time.Second, retryer.Duration(10))
	require.Equal(t, time.Second, retryer.Duration(1000))
}

func TestRetryerJitter(t *testing.T) {
	retryer := NewRetryer(RetryerOptions[int]{MinDelay: 100 * time.Millisecond, Jitter: 0.5})

	for i := 0; i < 100; i++ {
		duration := retryer.jitter(100 * time.Millisecond)
		require.GreaterOrEqual(t, duration, 50*time.Millisecond)
		require.LessOrEqual(t, duration, 100*time.Millisecond)
	}

	require.Equal(t, time.Second, NewRetryer(RetryerOptions[int]{}).jitter(time.Second))
}

func TestRetryerErrorAttempts(t *testing.T) {
	options := RetryerOptions[int]{MaxRetries: 2, MinDelay: time.Millisecond, MaxDelay: time.Millisecond}

	_, err := NewRetryer(options).Do(func(_ *Context) (int, error) { return 0, assert.AnError })

	var exhausted *RetriesExhaustedError
	require.ErrorAs(t, err, &exhausted)
	require.Equal(t, 2, exhausted.Attempts())
	require.Equal(t, "exhausted retry count after 2 attempts: "+assert.AnError.Error(), err.Error())
}
