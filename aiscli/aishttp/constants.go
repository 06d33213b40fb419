package aishttp

const (
	// EnvClientTimeout overrides the timeout of the underlying HTTP client e.g. '30s'.
	EnvClientTimeout = "AIS_CLIENT_TIMEOUT"

	// EnvRequestTimeout overrides the timeout for requests which read the whole response, including retries.
	EnvRequestTimeout = "AIS_CLIENT_REQUEST_TIMEOUT"

	// EnvNumRetries overrides the number of times a request is attempted.
	EnvNumRetries = "AIS_CLIENT_NUM_RETRIES"
)

// DefaultUserAgent is sent with every request when the auth provider doesn't supply one.
const DefaultUserAgent = "aistore-go-client"
