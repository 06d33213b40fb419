package httptools

import (
	"bufio"
	"crypto/x509"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/soitun/aistore/netutil"
)

// NewHTTPClient returns a new HTTP client with the given client/transport.
//
// NOTE: This is used to ensure that all uses of a HTTP client use the same configuration.
func NewHTTPClient(timeout time.Duration, transport http.RoundTripper) *http.Client {
	return &http.Client{Timeout: timeout, Transport: transport}
}

// ReadBody returns the entire response body returning an informative error in the case where the response body is less
// than the expected length.
func ReadBody(method Method, endpoint Endpoint, reader io.Reader, contentLength int64) ([]byte, error) {
	body, err := io.ReadAll(bufio.NewReader(reader))
	if err == nil {
		return body, nil
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, &UnexpectedEndOfBodyError{
			RequestInfo: RequestInfo{Method: method, Endpoint: endpoint},
			Expected:    contentLength,
			Got:         len(body),
		}
	}

	return nil, err
}

// waitForRetryAfter sleeps until we can retry the request for the given response.
//
// NOTE: Truncates the value from the 'Retry-After' header to a maximum of 'MaxRetryAfter'.
func waitForRetryAfter(resp *http.Response) {
	if resp.StatusCode != http.StatusServiceUnavailable && resp.StatusCode != http.StatusTooManyRequests {
		return
	}

	after := resp.Header.Get("Retry-After")
	if after == "" {
		return
	}

	duration := waitForRetryDuration(after)
	if duration <= 0 {
		return
	}

	time.Sleep(min(duration, MaxRetryAfter))
}

// waitForRetryDuration returns the duration to wait until we've satisfied the given 'Retry-After' header.
func waitForRetryDuration(after string) time.Duration {
	seconds, err := strconv.Atoi(after)
	if err == nil {
		return time.Duration(seconds) * time.Second
	}

	date, err := time.Parse(time.RFC1123, after)
	if err == nil {
		return time.Until(date.UTC())
	}

	return 0
}

// HandleRequestError is a utility function which converts a failed request error (hard failure as returned by the
// standard library) into a more useful/user friendly error.
func HandleRequestError(req *http.Request, err error) error {
	// String comparisons aren't ideal for error handling, but this allows us to handle future x509 error types without
	// modification.
	if strings.HasPrefix(rootError(err).Error(), "x509") {
		return &UnknownX509Error{inner: err}
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &SocketClosedInFlightError{RequestInfo{Method: Method(req.Method), Endpoint: Endpoint(req.URL.Path)}}
	}

	return err
}

// HandleResponseError converts a failed request (soft failure i.e. the request itself was successful) into an error.
func HandleResponseError(method Method, endpoint Endpoint, statusCode int, header http.Header, body []byte) error {
	return &UnexpectedStatusCodeError{
		RequestInfo: RequestInfo{Method: method, Endpoint: endpoint},
		Status:      statusCode,
		Header:      header,
		Body:        body,
	}
}

// ShouldRetry returns a boolean indicating whether the request which returned the given error should be retried.
func ShouldRetry(err error) bool {
	var (
		socketClosed *SocketClosedInFlightError
		unknownAuth  *x509.UnknownAuthorityError
	)

	return netutil.IsTemporaryError(err) || errors.As(err, &socketClosed) || errors.As(err, &unknownAuth)
}

// rootError completely unwraps an error, returning the source/root error.
func rootError(err error) error {
	for err != nil {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			break
		}

		err = unwrapped
	}

	return err
}

// isClosedBody returns a boolean indicating whether the error was caused by reading an already closed body.
func isClosedBody(err error) bool {
	return errors.Is(err, http.ErrBodyReadAfterClose) ||
		(err != nil && strings.Contains(err.Error(), "http: read on closed response body"))
}
