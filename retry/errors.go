package retry

import (
	"errors"
	"fmt"
)

// attemptsError records how many attempts were made before retrying stopped, and the error which stopped it.
type attemptsError struct {
	attempts int
	err      error
}

// Attempts returns the number of attempts made before retrying stopped.
func (a attemptsError) Attempts() int {
	return a.attempts
}

func (a attemptsError) Unwrap() error {
	return a.err
}

func (a attemptsError) message(prefix string) string {
	if a.err == nil {
		return prefix
	}

	return fmt.Sprintf("%s: %s", prefix, a.err)
}

// RetriesExhaustedError is returned once the maximum number of attempts has been made; unwrapping it yields the error
// from the final attempt.
type RetriesExhaustedError struct {
	attemptsError
}

func (r *RetriesExhaustedError) Error() string {
	return r.message(fmt.Sprintf("exhausted retry count after %d attempts", r.attempts))
}

// IsRetriesExhausted returns a boolean indicating whether the given error is a 'RetriesExhaustedError'.
func IsRetriesExhausted(err error) bool {
	var exhausted *RetriesExhaustedError
	return errors.As(err, &exhausted)
}

// RetriesAbortedError is returned when retrying stopped early, either because the context was cancelled or because the
// function returned an 'AbortRetriesError'.
type RetriesAbortedError struct {
	attemptsError
}

func (r *RetriesAbortedError) Error() string {
	return r.message(fmt.Sprintf("retries aborted after %d attempt(s)", r.attempts))
}

// IsRetriesAborted returns a boolean indicating whether the given error is a 'RetriesAbortedError'.
func IsRetriesAborted(err error) bool {
	var aborted *RetriesAbortedError
	return errors.As(err, &aborted)
}

func newExhausted(attempts int, err error) error {
	return &RetriesExhaustedError{attemptsError{attempts: attempts, err: err}}
}

func newAborted(attempts int, err error) error {
	return &RetriesAbortedError{attemptsError{attempts: attempts, err: err}}
}

// NewAbortRetriesError wraps the given error so that returning it from a 'RetryableFunc' stops any further attempts.
func NewAbortRetriesError(err error) error {
	return &AbortRetriesError{err: err}
}

// AbortRetriesError is a sentinel used to stop retrying on a fatal error.
//
// NOTE: Callers never receive this type, they receive a 'RetriesAbortedError' wrapping the original error.
type AbortRetriesError struct {
	err error
}

func (a *AbortRetriesError) Error() string {
	return fmt.Sprintf("retries aborted due to error: %s", a.err)
}

func (a *AbortRetriesError) Unwrap() error {
	return a.err
}
