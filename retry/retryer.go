// Package retry exposes a 'Retryer' which conditionally re-runs a function, backing off between attempts.
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// maxAttemptMultiplier caps the attempt used to compute the back-off, larger values overflow exponential delays.
const maxAttemptMultiplier = 50

// RetryableFunc is a function which may be run more than once.
type RetryableFunc[T any] func(ctx *Context) (T, error)

// Retryer runs a function until it succeeds, it decides not to retry, or the attempts run out.
type Retryer[T any] struct {
	options RetryerOptions[T]
}

// NewRetryer returns a new retryer, unset options are given sane defaults.
func NewRetryer[T any](options RetryerOptions[T]) Retryer[T] {
	options.defaults()

	return Retryer[T]{options: options}
}

// MaxRetries returns the total number of attempts the retryer will make.
func (r Retryer[T]) MaxRetries() int {
	return r.options.MaxRetries
}

// Do runs the given function using a background context.
func (r Retryer[T]) Do(fn RetryableFunc[T]) (T, error) {
	return r.DoWithContext(context.Background(), fn)
}

// DoWithContext runs the given function, cancelling the context aborts any remaining attempts.
func (r Retryer[T]) DoWithContext(ctx context.Context, fn RetryableFunc[T]) (T, error) {
	var (
		wrapped = NewContext(ctx)
		payload T
		err     error
	)

	for {
		if cErr := wrapped.Err(); cErr != nil {
			return *new(T), newAborted(wrapped.attempt-1, cErr)
		}

		payload, err = fn(wrapped)

		var abort *AbortRetriesError
		if errors.As(err, &abort) {
			return payload, newAborted(wrapped.attempt, abort.Unwrap())
		}

		if !r.shouldRetry(wrapped, payload, err) {
			return payload, err
		}

		// The final payload is returned to the caller, so isn't cleaned up
		if wrapped.attempt >= r.options.MaxRetries {
			return payload, newExhausted(r.options.MaxRetries, err)
		}

		if r.options.Log != nil {
			r.options.Log(wrapped, payload, err)
		}

		if r.options.Cleanup != nil {
			r.options.Cleanup(payload)
		}

		if sErr := r.sleep(wrapped); sErr != nil {
			return *new(T), sErr
		}

		wrapped.attempt++
	}
}

func (r Retryer[T]) shouldRetry(ctx *Context, payload T, err error) bool {
	if r.options.ShouldRetry != nil {
		return r.options.ShouldRetry(ctx, payload, err)
	}

	return err != nil
}

func (r Retryer[T]) sleep(ctx *Context) error {
	timer := time.NewTimer(r.jitter(r.Duration(ctx.Attempt())))
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return newAborted(ctx.attempt, ctx.Err())
	}
}

// jitter randomly shortens the given duration by up to the configured fraction, spreading out the retries of clients
// which failed at the same time.
func (r Retryer[T]) jitter(duration time.Duration) time.Duration {
	if r.options.Jitter <= 0 || duration <= 0 {
		return duration
	}

	spread := int64(float64(duration) * min(r.options.Jitter, 1))
	if spread <= 0 {
		return duration
	}

	//nolint:gosec
	return duration - time.Duration(rand.Int63n(spread+1))
}

// Duration returns the back-off after the given attempt, clamped between the minimum and maximum delay.
func (r Retryer[T]) Duration(attempt int) time.Duration {
	n := r.multiplier(min(attempt, maxAttemptMultiplier))

	duration := n * r.options.MinDelay
	if n != 0 && duration/n != r.options.MinDelay {
		return r.options.MaxDelay
	}

	return min(max(duration, r.options.MinDelay), r.options.MaxDelay)
}

func (r Retryer[T]) multiplier(attempt int) time.Duration {
	switch r.options.Algorithm {
	case AlgorithmLinear:
		return time.Duration(attempt)
	case AlgorithmExponential:
		return 1 << attempt
	case AlgorithmFibonacci:
		return time.Duration(math.Round(math.Pow(math.Phi, float64(attempt)) / math.Sqrt(5)))
	}

	return 0
}
