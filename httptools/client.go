package httptools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/exp/slices"

	"github.com/soitun/aistore/aprov"
	"github.com/soitun/aistore/log"
	"github.com/soitun/aistore/netutil"
	"github.com/soitun/aistore/retry"
)

// Client is a generalized client for sending and receiving http requests that wraps various functionality such as error
// handling, logging as well as robust and customizable request retrying.
type Client struct {
	client         *http.Client
	reqResLogLevel log.Level
	logger         log.WrappedLogger
	requestRetries int
	requestTimeout time.Duration
	authProvider   aprov.Provider
	metrics        *Metrics
}

// ClientOptions wraps all optional parameters for client creation.
type ClientOptions struct {
	// RequestRetries is the number of times a request should be attempted.
	// Default is 3.
	RequestRetries int

	// RequestTimeout is the timeout for requests executed using 'ExecuteWithRetries', including retries.
	// Default is 2m.
	RequestTimeout time.Duration

	// ReqResLogLevel is the level at which each request/response is logged at.
	// Default is TRACE.
	ReqResLogLevel log.Level

	// Metrics, when non-nil, records every attempt.
	Metrics *Metrics
}

// NewClient creates a new generic REST client.
//
// Parameters:
//   - client: client is the base http client that should be used to send/receive requests.
//   - authProvider: authProvider returns the token/user agent to attach to each request, may be <nil>.
//   - logger: logger is the passed Logger struct that implements the Log method for logger the user wants to use.
//   - options: options is an object that contains optional parameters for the client.
func NewClient(client *http.Client, authProvider aprov.Provider, logger log.Logger, options ClientOptions) *Client {
	if options.RequestRetries <= 0 {
		options.RequestRetries = DefaultRequestRetries
	}

	if options.RequestTimeout == 0 {
		options.RequestTimeout = DefaultRequestTimeout
	}

	return &Client{
		client:         client,
		reqResLogLevel: options.ReqResLogLevel,
		logger:         log.NewWrappedLogger(logger).WithPrefix("(REST)"),
		requestRetries: options.RequestRetries,
		requestTimeout: options.RequestTimeout,
		authProvider:   authProvider,
		metrics:        options.Metrics,
	}
}

// RequestRetries returns the number of times a request will be attempted for known failure cases.
func (c *Client) RequestRetries() int {
	return c.requestRetries
}

// ExecuteWithRetries the given request to completion, using the provided context, reading the entire response body
// whilst honoring request level retries/timeout.
func (c *Client) ExecuteWithRetries(
	ctx context.Context,
	request *Request,
	customizer RetryCustomizer,
) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	resp, err := c.Do(ctx, request, customizer) //nolint:bodyclose
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}

	defer c.CleanupResp(resp)

	response := &Response{StatusCode: resp.StatusCode, Header: resp.Header}

	response.Body, err = ReadBody(request.Method, request.Endpoint, resp.Body, resp.ContentLength)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return response, nil
}

// Do converts and executes the provided request returning the raw HTTP response. In general users should prefer to use
// 'ExecuteWithRetries' which handles closing resources, 'Do' should be used when the response body must be streamed.
//
// NOTE: If the returned error is nil, the response has the expected status code and a non-nil body which the caller is
// expected to close.
func (c *Client) Do(ctx context.Context, request *Request, customizer RetryCustomizer) (*http.Response, error) {
	if customizer == nil {
		customizer = &DefaultRetryCustomizer{Request: *request}
	}

	retryer := c.newRetryer(request, customizer)

	resp, err := retryer.DoWithContext(
		ctx,
		func(ctx *retry.Context) (*http.Response, error) { return c.buildAndDo(ctx, request, customizer) },
	)

	if err == nil && resp != nil && resp.StatusCode == request.ExpectedStatusCode {
		return resp, nil
	}

	if retry.IsRetriesExhausted(err) {
		last := c.enhanceError(errors.Unwrap(err), request, resp)
		return nil, &RetriesExhaustedError{Retries: c.requestRetries, err: last}
	}

	if err != nil {
		c.CleanupResp(resp)
		return nil, err
	}

	return nil, c.enhanceError(nil, request, resp)
}

// newRetryer creates a retryer that respects the parameters in the request and has additional logic from the
// customizer.
func (c *Client) newRetryer(request *Request, customizer RetryCustomizer) retry.Retryer[*http.Response] {
	shouldRetry := func(ctx *retry.Context, resp *http.Response, err error) bool {
		if resp != nil {
			return c.shouldRetryWithResponse(ctx, request, resp, customizer)
		}

		return c.shouldRetryWithError(ctx, request, err, customizer)
	}

	logRetry := func(ctx *retry.Context, resp *http.Response, err error) {
		msg := fmt.Sprintf("(Attempt %d) (%s) Retrying request to endpoint '%s'", ctx.Attempt(), request.Method,
			request.Endpoint)

		if err != nil {
			msg = fmt.Sprintf("%s: which failed due to error: %s", msg, err)
		} else if resp != nil {
			msg = fmt.Sprintf("%s: which failed with status code %d", msg, resp.StatusCode)
		}

		// We don't log at error level because we expect some requests to fail and be explicitly handled by the caller.
		c.logger.Warnf("%s", msg)
	}

	return retry.NewRetryer(retry.RetryerOptions[*http.Response]{
		MaxRetries:  c.requestRetries,
		ShouldRetry: shouldRetry,
		Log:         logRetry,
		Cleanup:     c.CleanupResp,
		Jitter:      0.2,
	})
}

// enhanceError returns a more informative error using information from the given request/response.
func (c *Client) enhanceError(err error, request *Request, resp *http.Response) error {
	if err != nil || resp == nil {
		return err
	}

	defer c.CleanupResp(resp)

	body, _ := ReadBody(request.Method, request.Endpoint, resp.Body, resp.ContentLength)

	return HandleResponseError(request.Method, request.Endpoint, resp.StatusCode, resp.Header, body)
}

// buildAndDo is a convenience which prepares then performs the provided request.
func (c *Client) buildAndDo(ctx *retry.Context, request *Request, customizer RetryCustomizer) (*http.Response, error) {
	prep, err := c.prepare(ctx, request, customizer)
	if err != nil {
		return nil, retry.NewAbortRetriesError(fmt.Errorf("failed to prepare request: %w", err))
	}

	resp, err := c.perform(ctx, prep, request.Timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}

	return resp, nil
}

// prepare converts the request into a raw HTTP request which can be dispatched to the cluster. Uses the same context
// meaning the request timeout is not reset by retries.
func (c *Client) prepare(ctx *retry.Context, request *Request, customizer RetryCustomizer) (*http.Request, error) {
	host, err := customizer.GetRequestHost(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get request host: %w", err)
	}

	body, length, err := request.body()
	if err != nil {
		return nil, err
	}

	if body == nil {
		body = bytes.NewReader(request.Body)
	}

	req, err := http.NewRequestWithContext(ctx, string(request.Method), host+string(request.Endpoint), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Gateways redirect object requests to the target which owns the object, streamed bodies must be replayable for the
	// redirect to be followed.
	if request.Reader != nil {
		req.ContentLength = length
		req.GetBody = func() (io.ReadCloser, error) {
			_, err := request.Reader.Seek(0, io.SeekStart)
			return io.NopCloser(request.Reader), err
		}

		if length == 0 {
			req.Body = http.NoBody
		}
	}

	if len(request.QueryParameters) != 0 {
		req.URL.RawQuery = request.QueryParameters.Encode()
	}

	// Using 'Set' overwrites an existing values set in the header, set these values first to that the settings below
	// take precedence.
	for key, values := range request.Header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	aprov.SetAuthHeaders(req.Header, host, c.authProvider)

	if request.ContentType != ContentTypeNone {
		req.Header.Set("Content-Type", string(request.ContentType))
	}

	return req, nil
}

// perform synchronously executes the provided request returning the response and any error that occurred during the
// process.
func (c *Client) perform(ctx *retry.Context, req *http.Request, timeout time.Duration) (*http.Response, error) {
	c.logger.Log(c.reqResLogLevel, "(Attempt %d) (%s) Dispatching request to '%s'", ctx.Attempt(), req.Method,
		req.URL)

	client := c.client

	// We only use the custom timeout if it is bigger than the client one. This is so that it can be overridden via
	// environmental variables.
	if timeout == -1 || (client.Timeout != 0 && timeout > client.Timeout) {
		client = NewHTTPClient(max(0, timeout), client.Transport)
	}

	start := time.Now()

	resp, err := client.Do(req)
	if err == nil {
		c.metrics.observe(req.Method, resp.StatusCode, time.Since(start))

		c.logger.Log(c.reqResLogLevel, "(Attempt %d) (%s) (%d) Received response from '%s'", ctx.Attempt(),
			req.Method, resp.StatusCode, req.URL)

		return resp, nil
	}

	c.metrics.observe(req.Method, 0, time.Since(start))

	c.logger.Errorf("(Attempt %d) (%s) Failed to perform request to '%s': %s", ctx.Attempt(), req.Method,
		req.URL, err)

	return nil, HandleRequestError(req, err)
}

// shouldRetryWithError returns a boolean indicating whether the given error is retryable.
func (c *Client) shouldRetryWithError(
	ctx *retry.Context,
	request *Request,
	err error,
	customizer RetryCustomizer,
) bool {
	c.logger.Warnf("(Attempt %d) (%s) Request to endpoint '%s' failed due to error: %s", ctx.Attempt(),
		request.Method, request.Endpoint, err)

	return customizer.RetryWithErrorExtension(ctx, request.IsIdempotent() && ShouldRetry(err), err)
}

// shouldRetryWithResponse returns a boolean indicating whether the given request is retryable.
// If the response contains a Retry-After field this will block for the duration of Retry-After and then return true.
func (c *Client) shouldRetryWithResponse(
	ctx *retry.Context,
	request *Request,
	resp *http.Response,
	customizer RetryCustomizer,
) bool {
	// We've got our expected status code, don't retry
	if resp.StatusCode == request.ExpectedStatusCode {
		return false
	}

	c.logger.Debugf("(Attempt %d) (%s) Request to endpoint '%s' failed with status code %d", ctx.Attempt(),
		request.Method, request.Endpoint, resp.StatusCode)

	// Either this request can't be retried, or the user has explicitly stated that they don't want this status code
	// retried, don't retry.
	if !request.IsIdempotent() || slices.Contains(request.NoRetryOnStatusCodes, resp.StatusCode) {
		return false
	}

	shouldRetry := netutil.IsTemporaryFailure(resp.StatusCode) ||
		slices.Contains(request.RetryOnStatusCodes, resp.StatusCode)

	if !customizer.RetryWithResponseExtension(ctx, shouldRetry, resp) {
		return false
	}

	waitForRetryAfter(resp)

	return true
}

// CleanupResp drains the response body and ensures it's closed.
func (c *Client) CleanupResp(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}

	defer resp.Body.Close()

	_, err := io.Copy(io.Discard, resp.Body)
	if err == nil || isClosedBody(err) {
		return
	}

	c.logger.Warnf("Failed to drain response body due to unexpected error: %s", err)
}
