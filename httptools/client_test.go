package httptools

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/soitun/aistore/aprov"
	"github.com/soitun/aistore/log"
)

const (
	token     = "token"
	userAgent = "user-agent"
)

// defaultClient returns the default client for testing
func defaultClient() *Client {
	return NewClient(
		http.DefaultClient,
		&aprov.Static{Token: token, UserAgent: userAgent},
		log.StdoutLogger{MinLevel: log.LevelPanic},
		ClientOptions{},
	)
}

func newTestServer(t *testing.T, handlers TestHandlers) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(handlers.Handle))
	t.Cleanup(server.Close)

	return server
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(http.DefaultClient, nil, nil, ClientOptions{})
	require.Equal(t, DefaultRequestRetries, client.RequestRetries())
	require.Equal(t, DefaultRequestTimeout, client.requestTimeout)

	client = NewClient(http.DefaultClient, nil, nil, ClientOptions{RequestRetries: 10, RequestTimeout: time.Second})
	require.Equal(t, 10, client.RequestRetries())
	require.Equal(t, time.Second, client.requestTimeout)
}

func TestClientExecute(t *testing.T) {
	type test struct {
		name     string
		handler  func(t *testing.T) http.HandlerFunc
		request  *Request
		expected *Response
	}

	tests := []test{
		{
			name:    "Get",
			handler: func(t *testing.T) http.HandlerFunc { return NewTestHandler(t, http.StatusOK, []byte("body")) },
			request: &Request{
				Method:             http.MethodGet,
				Endpoint:           "/test",
				ExpectedStatusCode: http.StatusOK,
			},
			expected: &Response{StatusCode: http.StatusOK, Body: []byte("body")},
		},
		{
			name: "PostWithRetries",
			handler: func(t *testing.T) http.HandlerFunc {
				return NewTestHandlerWithRetries(t, 2, http.StatusServiceUnavailable, http.StatusCreated, "",
					[]byte("done"))
			},
			request: &Request{
				Method:             http.MethodPost,
				Endpoint:           "/test",
				ContentType:        ContentTypeJSON,
				Body:               []byte(`{"action":"list"}`),
				ExpectedStatusCode: http.StatusCreated,
				Idempotent:         true,
			},
			expected: &Response{StatusCode: http.StatusCreated, Body: []byte("done")},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			handlers := make(TestHandlers)
			handlers.Add(string(test.request.Method), "/test", test.handler(t))

			test.request.Host = newTestServer(t, handlers).URL

			actual, err := defaultClient().ExecuteWithRetries(context.Background(), test.request, nil)
			require.NoError(t, err)
			require.Equal(t, test.expected.StatusCode, actual.StatusCode)
			require.Equal(t, test.expected.Body, actual.Body)
		})
	}
}

func TestClientExecuteSetsHeaders(t *testing.T) {
	var (
		body     []byte
		header   http.Header
		handlers = make(TestHandlers)
	)

	handlers.Add(http.MethodPut, "/v1/objects/bck/obj", NewTestHandlerWithValue(t, http.StatusOK, nil, &body, &header))

	request := &Request{
		Host:               newTestServer(t, handlers).URL,
		Method:             http.MethodPut,
		Endpoint:           Endpoint("/v1/objects/%s/%s").Format("bck", "obj"),
		ContentType:        ContentTypeOctetStream,
		Header:             http.Header{"X-Custom": {"value"}},
		Reader:             strings.NewReader("payload"),
		ExpectedStatusCode: http.StatusOK,
	}

	_, err := defaultClient().ExecuteWithRetries(context.Background(), request, nil)
	require.NoError(t, err)

	require.Equal(t, []byte("payload"), body)
	require.Equal(t, "Bearer "+token, header.Get("Authorization"))
	require.Equal(t, userAgent, header.Get("User-Agent"))
	require.Equal(t, string(ContentTypeOctetStream), header.Get("Content-Type"))
	require.Equal(t, "value", header.Get("X-Custom"))
}

func TestClientExecuteRewindsReaderOnRetry(t *testing.T) {
	var (
		attempts int
		bodies   []string
		handlers = make(TestHandlers)
	)

	handlers.Add(http.MethodPut, "/test", func(writer http.ResponseWriter, request *http.Request) {
		data, _ := io.ReadAll(request.Body)
		bodies = append(bodies, string(data))

		attempts++
		if attempts == 1 {
			writer.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		writer.WriteHeader(http.StatusOK)
	})

	request := &Request{
		Host:               newTestServer(t, handlers).URL,
		Method:             http.MethodPut,
		Endpoint:           "/test",
		Reader:             bytes.NewReader([]byte("payload")),
		ExpectedStatusCode: http.StatusOK,
	}

	_, err := defaultClient().ExecuteWithRetries(context.Background(), request, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"payload", "payload"}, bodies)
}

func TestClientExecuteUnexpectedStatus(t *testing.T) {
	handlers := make(TestHandlers)
	handlers.Add(http.MethodGet, "/test", NewTestHandler(t, http.StatusBadRequest, []byte(`{"message":"bad"}`)))

	request := &Request{
		Host:               newTestServer(t, handlers).URL,
		Method:             http.MethodGet,
		Endpoint:           "/test",
		ExpectedStatusCode: http.StatusOK,
	}

	_, err := defaultClient().ExecuteWithRetries(context.Background(), request, nil)

	var unexpected *UnexpectedStatusCodeError

	require.ErrorAs(t, err, &unexpected)
	require.Equal(t, http.StatusBadRequest, unexpected.Status)
	require.Equal(t, []byte(`{"message":"bad"}`), unexpected.Body)
	require.True(t, IsUnexpectedStatusCode(err, http.StatusBadRequest))
	require.False(t, IsUnexpectedStatusCode(err, http.StatusNotFound))
}

func TestClientExecuteWithNonIdempotentRequest(t *testing.T) {
	handlers := make(TestHandlers)
	handlers.Add(http.MethodPost, "/test", NewTestHandler(t, http.StatusTooEarly, make([]byte, 0)))

	request := &Request{
		Host:               newTestServer(t, handlers).URL,
		Method:             http.MethodPost,
		Endpoint:           "/test",
		ExpectedStatusCode: http.StatusOK,
		RetryOnStatusCodes: []int{http.StatusTooEarly},
	}

	_, err := defaultClient().ExecuteWithRetries(context.Background(), request, nil)
	require.Error(t, err)

	var (
		retriesExhausted *RetriesExhaustedError
		unexpectedStatus *UnexpectedStatusCodeError
	)

	require.False(t, errors.As(err, &retriesExhausted))
	require.ErrorAs(t, err, &unexpectedStatus)
}

func TestClientExecuteWithRetriesExhausted(t *testing.T) {
	handlers := make(TestHandlers)
	handlers.Add(http.MethodGet, "/test", NewTestHandler(t, http.StatusTooEarly, []byte("too early")))

	request := &Request{
		Host:               newTestServer(t, handlers).URL,
		Method:             http.MethodGet,
		Endpoint:           "/test",
		ExpectedStatusCode: http.StatusOK,
		RetryOnStatusCodes: []int{http.StatusTooEarly},
	}

	_, err := defaultClient().ExecuteWithRetries(context.Background(), request, nil)
	require.Error(t, err)

	var (
		retriesExhausted *RetriesExhaustedError
		unexpectedStatus *UnexpectedStatusCodeError
	)

	require.ErrorAs(t, err, &retriesExhausted)
	require.ErrorAs(t, err, &unexpectedStatus)
	require.Equal(t, []byte("too early"), unexpectedStatus.Body)
}

func TestClientExecuteNoRetryOnStatusCodes(t *testing.T) {
	var (
		attempts int
		handlers = make(TestHandlers)
	)

	handlers.Add(http.MethodGet, "/test", func(writer http.ResponseWriter, _ *http.Request) {
		attempts++
		writer.WriteHeader(http.StatusServiceUnavailable)
	})

	request := &Request{
		Host:                 newTestServer(t, handlers).URL,
		Method:               http.MethodGet,
		Endpoint:             "/test",
		ExpectedStatusCode:   http.StatusOK,
		NoRetryOnStatusCodes: []int{http.StatusServiceUnavailable},
	}

	_, err := defaultClient().ExecuteWithRetries(context.Background(), request, nil)
	require.True(t, IsUnexpectedStatusCode(err, http.StatusServiceUnavailable))
	require.Equal(t, 1, attempts)
}

func TestClientExecuteSocketClosedInFlight(t *testing.T) {
	handlers := make(TestHandlers)
	handlers.Add(http.MethodGet, "/test", NewTestHandlerWithHijack(t))

	request := &Request{
		Host:               newTestServer(t, handlers).URL,
		Method:             http.MethodGet,
		Endpoint:           "/test",
		ExpectedStatusCode: http.StatusOK,
	}

	_, err := defaultClient().ExecuteWithRetries(context.Background(), request, nil)

	var socketClosed *SocketClosedInFlightError

	require.ErrorAs(t, err, &socketClosed)
	require.ErrorAs(t, err, new(*RetriesExhaustedError))
}

func TestClientExecuteUnexpectedEOF(t *testing.T) {
	handlers := make(TestHandlers)
	handlers.Add(http.MethodGet, "/test", NewTestHandlerWithEOF(t))

	request := &Request{
		Host:               newTestServer(t, handlers).URL,
		Method:             http.MethodGet,
		Endpoint:           "/test",
		ExpectedStatusCode: http.StatusOK,
	}

	_, err := defaultClient().ExecuteWithRetries(context.Background(), request, nil)

	var unexpectedEOF *UnexpectedEndOfBodyError

	require.ErrorAs(t, err, &unexpectedEOF)
}

func TestClientDoStreamsBody(t *testing.T) {
	handlers := make(TestHandlers)
	handlers.Add(http.MethodGet, "/test", NewTestHandler(t, http.StatusOK, []byte("streamed")))

	request := &Request{
		Host:               newTestServer(t, handlers).URL,
		Method:             http.MethodGet,
		Endpoint:           "/test",
		ExpectedStatusCode: http.StatusOK,
	}

	client := defaultClient()

	resp, err := client.Do(context.Background(), request, nil)
	require.NoError(t, err)

	defer client.CleanupResp(resp)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, []byte("streamed"), data)
}

func TestClientRoundRobinCustomizer(t *testing.T) {
	var (
		down     = make(TestHandlers)
		up       = make(TestHandlers)
		attempts int
	)

	down.Add(http.MethodGet, "/test", func(writer http.ResponseWriter, _ *http.Request) {
		attempts++
		writer.WriteHeader(http.StatusServiceUnavailable)
	})

	up.Add(http.MethodGet, "/test", NewTestHandler(t, http.StatusOK, []byte("up")))

	request := &Request{
		Method:             http.MethodGet,
		Endpoint:           "/test",
		ExpectedStatusCode: http.StatusOK,
	}

	customizer := &RoundRobinCustomizer{Hosts: []string{newTestServer(t, down).URL, newTestServer(t, up).URL}}

	resp, err := defaultClient().ExecuteWithRetries(context.Background(), request, customizer)
	require.NoError(t, err)
	require.Equal(t, []byte("up"), resp.Body)
	require.Equal(t, 1, attempts)
}

func TestClientMetrics(t *testing.T) {
	handlers := make(TestHandlers)
	handlers.Add(http.MethodGet, "/test", NewTestHandlerWithRetries(t, 1, http.StatusServiceUnavailable, http.StatusOK,
		"", nil))

	registry := prometheus.NewRegistry()

	metrics, err := NewMetrics(registry, "ais")
	require.NoError(t, err)

	client := NewClient(http.DefaultClient, nil, nil, ClientOptions{Metrics: metrics})

	request := &Request{
		Host:               newTestServer(t, handlers).URL,
		Method:             http.MethodGet,
		Endpoint:           "/test",
		ExpectedStatusCode: http.StatusOK,
	}

	_, err = client.ExecuteWithRetries(context.Background(), request, nil)
	require.NoError(t, err)

	require.Equal(t, float64(1), promtest.ToFloat64(metrics.requests.WithLabelValues(http.MethodGet, "503")))
	require.Equal(t, float64(1), promtest.ToFloat64(metrics.requests.WithLabelValues(http.MethodGet, "200")))
	require.Equal(t, 1, promtest.CollectAndCount(metrics.duration))

	_, err = NewMetrics(registry, "ais")
	require.Error(t, err)
}

func TestClientContextCancelled(t *testing.T) {
	handlers := make(TestHandlers)
	handlers.Add(http.MethodGet, "/test", NewTestHandler(t, http.StatusServiceUnavailable, nil))

	request := &Request{
		Host:               newTestServer(t, handlers).URL,
		Method:             http.MethodGet,
		Endpoint:           "/test",
		ExpectedStatusCode: http.StatusOK,
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := defaultClient().ExecuteWithRetries(ctx, request, nil)
	require.ErrorIs(t, err, context.Canceled)
}
