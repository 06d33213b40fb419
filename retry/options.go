package retry

import "time"

// Algorithm selects how the delay between attempts grows.
type Algorithm int

const (
	// AlgorithmFibonacci backs off using the fibonacci sequence e.g. 50ms, 50ms, 100ms, 150ms, 250ms.
	AlgorithmFibonacci Algorithm = iota

	// AlgorithmExponential doubles the delay each time e.g. 100ms, 200ms, 400ms.
	AlgorithmExponential

	// AlgorithmLinear grows the delay by the minimum delay each time e.g. 50ms, 100ms, 150ms.
	AlgorithmLinear
)

// LogFunc is run before each retry, after a failed attempt.
type LogFunc[T any] func(ctx *Context, payload T, err error)

// ShouldRetryFunc decides whether a failed attempt should be retried.
//
// NOTE: When not supplied, any non-nil error is retried.
type ShouldRetryFunc[T any] func(ctx *Context, payload T, err error) bool

// CleanupFunc releases the payload of every attempt but the last.
//
// NOTE: The final payload is left alone since the caller may want to read it to build a better error.
type CleanupFunc[T any] func(payload T)

// RetryerOptions encapsulates the options available when creating a retryer.
type RetryerOptions[T any] struct {
	// Algorithm is used to calculate the back-off between attempts.
	Algorithm Algorithm

	// MaxRetries is the total number of attempts that will be made.
	MaxRetries int

	// MinDelay is the smallest delay between two attempts.
	MinDelay time.Duration

	// MaxDelay caps the delay between two attempts.
	MaxDelay time.Duration

	// Jitter is the fraction (between zero and one) by which each delay may be randomly shortened, zero disables it.
	Jitter float64

	ShouldRetry ShouldRetryFunc[T]
	Log         LogFunc[T]
	Cleanup     CleanupFunc[T]
}

func (r *RetryerOptions[T]) defaults() {
	if r.MaxRetries <= 0 {
		r.MaxRetries = 3
	}

	if r.MinDelay == 0 {
		r.MinDelay = 50 * time.Millisecond
	}

	if r.MaxDelay == 0 {
		r.MaxDelay = 2*time.Second + 500*time.Millisecond
	}
}
