package httptools

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/soitun/aistore/netutil"
)

// Method is a readability wrapper around the HTTP method used to dispatch a request.
type Method string

// ContentType represents the 'Content-Type' of a request body.
type ContentType string

const (
	// ContentTypeNone indicates that the request has no body, the 'Content-Type' header will not be set.
	ContentTypeNone ContentType = ""

	// ContentTypeJSON is used for action messages sent to the cluster.
	ContentTypeJSON ContentType = "application/json"

	// ContentTypeOctetStream is used for raw object payloads.
	ContentTypeOctetStream ContentType = "application/octet-stream"

	// ContentTypeURLEncoded is used for form encoded request bodies.
	ContentTypeURLEncoded ContentType = "application/x-www-form-urlencoded"
)

// Endpoint represents a single REST endpoint.
//
// NOTE: Endpoints should not include query parameters, they may be supplied as raw 'url.Values' via the 'Request' data
// structure and will be encoded and postfixed to the request URL accordingly.
type Endpoint string

// Format returns a new endpoint using 'fmt.Sprintf' to fill in any missing/required elements of the endpoint using the
// given arguments. All arguments will automatically be path escaped before being inserted into the endpoint.
//
// NOTE: No validation takes place to ensure the correct number of arguments are supplied, that's down to you...
func (e Endpoint) Format(args ...string) Endpoint {
	escaped := make([]any, len(args))
	for index, arg := range args {
		escaped[index] = url.PathEscape(arg)
	}

	return Endpoint(fmt.Sprintf(string(e), escaped...))
}

// Request encapsulates the parameters/options which are required when sending a request.
type Request struct {
	// Host is the base URL the request is sent to e.g. 'http://localhost:8080', may be overridden by a
	// 'RetryCustomizer'.
	Host string

	Method      Method
	Endpoint    Endpoint
	ContentType ContentType

	// Header contains additional headers, note that the 'Content-Type', 'Authorization' and 'User-Agent' headers take
	// precedence.
	Header http.Header

	// QueryParameters will be encoded and postfixed to the request URL.
	QueryParameters url.Values

	// Body is an in-memory request body.
	Body []byte

	// Reader is a streamed request body, it takes precedence over 'Body' and is rewound before each attempt.
	Reader io.ReadSeeker

	// ExpectedStatusCode is the status code which indicates success, any other status is converted to an error.
	ExpectedStatusCode int

	// RetryOnStatusCodes are additional status codes which should be retried.
	RetryOnStatusCodes []int

	// NoRetryOnStatusCodes are status codes which should never be retried, takes precedence over the temporary failure
	// status codes.
	NoRetryOnStatusCodes []int

	// Idempotent marks a request which is safe to retry even though its method is not idempotent e.g. a listing sent as
	// a 'POST'.
	Idempotent bool

	// Timeout overrides the per attempt timeout of the client when it's larger, -1 means no timeout.
	Timeout time.Duration
}

// IsIdempotent returns a boolean indicating whether the request may be safely retried.
func (r *Request) IsIdempotent() bool {
	return r.Idempotent || netutil.IsMethodIdempotent(string(r.Method))
}

// body returns a reader for the request body along with its length, streamed bodies are rewound to the start.
func (r *Request) body() (io.Reader, int64, error) {
	if r.Reader == nil {
		return nil, int64(len(r.Body)), nil
	}

	length, err := r.Reader.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to determine body length: %w", err)
	}

	_, err = r.Reader.Seek(0, io.SeekStart)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to rewind body: %w", err)
	}

	return r.Reader, length, nil
}

// Response represents a response from the cluster where the body has been read in full.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}
