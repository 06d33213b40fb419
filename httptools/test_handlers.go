package httptools

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soitun/aistore/testutil"
)

// TestHandlers maps 'METHOD:path' to the handler used by a test server.
type TestHandlers map[string]http.HandlerFunc

// Add registers the handler for the given method and path.
func (h TestHandlers) Add(method, path string, handler http.HandlerFunc) {
	h[handlerKey(method, path)] = handler
}

// Lookup returns the handler registered for the given request, if any.
func (h TestHandlers) Lookup(request *http.Request) (http.HandlerFunc, bool) {
	handler, ok := h[handlerKey(request.Method, request.URL.Path)]
	return handler, ok
}

// Handle dispatches the request to the registered handler, responding with a 404 if there isn't one.
func (h TestHandlers) Handle(writer http.ResponseWriter, request *http.Request) {
	handler, ok := h.Lookup(request)
	if !ok {
		writer.WriteHeader(http.StatusNotFound)
		return
	}

	handler(writer, request)
}

func handlerKey(method, path string) string {
	return method + ":" + path
}

// TestResponse is a canned response written by a test handler.
type TestResponse struct {
	Status int
	Header http.Header
	Body   []byte
}

// Write the response, failing the test if the body can't be written.
func (r TestResponse) Write(t *testing.T, writer http.ResponseWriter) {
	for key, values := range r.Header {
		writer.Header()[key] = values
	}

	writer.WriteHeader(r.Status)

	_, err := writer.Write(r.Body)
	require.NoError(t, err)
}

// NewTestHandler returns a handler which always responds with the given status/body.
func NewTestHandler(t *testing.T, status int, body []byte) http.HandlerFunc {
	response := TestResponse{Status: status, Body: body}

	return func(writer http.ResponseWriter, _ *http.Request) {
		response.Write(t, writer)
	}
}

// NewTestHandlerWithRetries simulates a busy gateway which responds with the retry status for the first 'numRetries'
// requests, and the success status thereafter.
func NewTestHandlerWithRetries(
	t *testing.T,
	numRetries, retryStatus, successStatus int,
	after string,
	body []byte,
) http.HandlerFunc {
	var attempts atomic.Int64

	return func(writer http.ResponseWriter, _ *http.Request) {
		response := TestResponse{Status: successStatus, Body: body}

		if attempts.Add(1) <= int64(numRetries) {
			response.Status = retryStatus
			response.Header = http.Header{"Retry-After": []string{after}}
		}

		response.Write(t, writer)
	}
}

// NewTestHandlerWithEOF returns a handler which advertises a body it never sends, reading it results in an EOF.
func NewTestHandlerWithEOF(t *testing.T) http.HandlerFunc {
	return func(writer http.ResponseWriter, _ *http.Request) {
		TestResponse{
			Status: http.StatusOK,
			Header: http.Header{"Content-Length": []string{strconv.Itoa(1)}},
		}.Write(t, writer)
	}
}

// NewTestHandlerWithHijack returns a handler which closes the connection without responding.
func NewTestHandlerWithHijack(t *testing.T) http.HandlerFunc {
	return func(writer http.ResponseWriter, _ *http.Request) {
		hijacker, ok := writer.(http.Hijacker)
		require.True(t, ok)

		conn, _, err := hijacker.Hijack()
		require.NoError(t, err)
		require.NoError(t, conn.Close())
	}
}

// NewTestHandlerWithValue returns a handler which captures the body/headers of the request before responding, either
// destination may be <nil>.
func NewTestHandlerWithValue(
	t *testing.T,
	status int,
	body []byte,
	value *[]byte,
	header *http.Header,
) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		if value != nil {
			*value = testutil.ReadAll(t, request.Body)
		}

		if header != nil {
			*header = request.Header.Clone()
		}

		TestResponse{Status: status, Body: body}.Write(t, writer)
	}
}
