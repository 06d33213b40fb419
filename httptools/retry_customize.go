package httptools

import (
	"net/http"

	"github.com/soitun/aistore/retry"
)

// RetryCustomizer defines an interface for injecting custom behaviour into the default httptools retry logic.
type RetryCustomizer interface {
	// RetryWithErrorExtension is called when a request returns any error.
	// Parameters:
	// - ctx: the context of the retry. Contains the attempt number.
	// - shouldRetry: is a boolean that depicts the previous default checks decision. This can be useful when the custom
	//   check is not as important and we want to prioritize the default behaviour.
	// - err: the error that was thrown by the request.
	RetryWithErrorExtension(ctx *retry.Context, shouldRetry bool, err error) bool

	// RetryWithResponseExtension is called when a request returns a response with an unexpected status code.
	RetryWithResponseExtension(ctx *retry.Context, shouldRetry bool, resp *http.Response) bool

	// GetRequestHost is called when forming a request and returns the host that should be used. Useful when the host
	// is dynamic e.g. when rotating between the gateways of a cluster.
	GetRequestHost(ctx *retry.Context) (string, error)
}

var _ RetryCustomizer = new(DefaultRetryCustomizer)

// DefaultRetryCustomizer implements the RetryCustomizer interface. It is used when the caller does not set their own
// custom behaviour and just want the default behaviour.
type DefaultRetryCustomizer struct {
	Request
}

// RetryWithErrorExtension returns shouldRetry
func (d *DefaultRetryCustomizer) RetryWithErrorExtension(_ *retry.Context, shouldRetry bool, _ error) bool {
	return shouldRetry
}

// RetryWithResponseExtension returns shouldRetry
func (d *DefaultRetryCustomizer) RetryWithResponseExtension(_ *retry.Context, shouldRetry bool, _ *http.Response,
) bool {
	return shouldRetry
}

// GetRequestHost returns the host name set in the Request object.
func (d *DefaultRetryCustomizer) GetRequestHost(_ *retry.Context) (string, error) {
	return d.Request.Host, nil
}

// RoundRobinCustomizer rotates through the given hosts, moving to the next host on each attempt.
type RoundRobinCustomizer struct {
	DefaultRetryCustomizer

	// Hosts are the candidate hosts, the first attempt uses the host at 'Offset'.
	Hosts  []string
	Offset int
}

var _ RetryCustomizer = new(RoundRobinCustomizer)

// GetRequestHost returns the host for the current attempt, falling back to the request host if there are no hosts.
func (r *RoundRobinCustomizer) GetRequestHost(ctx *retry.Context) (string, error) {
	if len(r.Hosts) == 0 {
		return r.DefaultRetryCustomizer.GetRequestHost(ctx)
	}

	return r.Hosts[(r.Offset+ctx.Attempt()-1)%len(r.Hosts)], nil
}
