package httptools

import "time"

const (
	// DefaultClientTimeout is the timeout for a single attempt i.e. this doesn't include retries.
	//
	// NOTE: Object bodies are streamed, so this is zero; slow downloads are bounded by the caller's context instead.
	DefaultClientTimeout = 0

	// DefaultRequestTimeout is the default timeout for requests whose response is read in full, note that this includes
	// retries.
	DefaultRequestTimeout = 2 * time.Minute

	// DefaultRequestRetries is the number of times to attempt a request for known failure scenarios. When sending a new
	// request the overall request timeout is not reset, however, the per attempt timeout is.
	DefaultRequestRetries = 3

	// MaxRetryAfter caps the amount of time we'll wait to satisfy a 'Retry-After' header.
	MaxRetryAfter = time.Minute
)
