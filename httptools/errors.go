package httptools

import (
	"errors"
	"fmt"
	"net/http"
)

// RequestInfo identifies the request which resulted in an error.
type RequestInfo struct {
	Method   Method
	Endpoint Endpoint
}

func (r RequestInfo) String() string {
	return fmt.Sprintf("'%s' request to '%s'", r.Method, r.Endpoint)
}

// SocketClosedInFlightError is returned if the connection was closed by the gateway before a response was received,
// this is retried for idempotent requests.
type SocketClosedInFlightError struct {
	RequestInfo
}

func (e *SocketClosedInFlightError) Error() string {
	return fmt.Sprintf("socket closed in flight whilst executing %s, check the logs for more details", e.RequestInfo)
}

// RetriesExhaustedError is returned once a request has failed the configured number of times, unwrapping it yields
// the error from the final attempt.
type RetriesExhaustedError struct {
	Retries int
	err     error
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("exhausted retry count after %d retries, last error: %s", e.Retries, e.err)
}

func (e *RetriesExhaustedError) Unwrap() error {
	return e.err
}

// UnexpectedEndOfBodyError is returned if the response body is shorter than its advertised 'Content-Length'.
type UnexpectedEndOfBodyError struct {
	RequestInfo
	Expected int64
	Got      int
}

func (e *UnexpectedEndOfBodyError) Error() string {
	return fmt.Sprintf("unexpected EOF whilst reading response body for %s, expected %d bytes but got %d bytes",
		e.RequestInfo, e.Expected, e.Got)
}

// UnknownX509Error wraps certificate failures which aren't otherwise handled, they're not retried.
type UnknownX509Error struct {
	inner error
}

func (e *UnknownX509Error) Unwrap() error {
	return e.inner
}

func (e *UnknownX509Error) Error() string {
	return e.inner.Error()
}

// UnexpectedStatusCodeError is returned when a gateway responds, but with a status other than the expected one.
//
// NOTE: Callers which understand the cluster's error payloads should convert this error into something more
// informative, it exposes everything required to do so.
type UnexpectedStatusCodeError struct {
	RequestInfo
	Status int
	Header http.Header
	Body   []byte
}

func (e *UnexpectedStatusCodeError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("unexpected status code %d for %s, check the logs for more details", e.Status, e.RequestInfo)
	}

	return fmt.Sprintf("unexpected status code %d for %s, %s", e.Status, e.RequestInfo, e.Body)
}

// IsUnexpectedStatusCode returns a boolean indicating whether the given error is an 'UnexpectedStatusCodeError' with
// the given status.
func IsUnexpectedStatusCode(err error, status int) bool {
	var unexpected *UnexpectedStatusCodeError
	return errors.As(err, &unexpected) && unexpected.Status == status
}
