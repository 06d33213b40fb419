package netutil

import (
	"net/http"

	"golang.org/x/exp/slices"
)

// TemporaryFailureStatusCodes are status codes which the gateways return while the cluster is busy (e.g. during
// rebalance or when a target is restarting) and which should be retried by default.
var TemporaryFailureStatusCodes = []int{
	http.StatusTooManyRequests,
	http.StatusBadGateway,
	http.StatusServiceUnavailable,
	http.StatusGatewayTimeout,
}

// IsTemporaryFailure returns a boolean indicating whether the provided status code represents a temporary error and
// should be retried.
func IsTemporaryFailure(status int) bool {
	return slices.Contains(TemporaryFailureStatusCodes, status)
}

// IsMethodIdempotent returns a boolean indicating whether the given method is idempotent.
func IsMethodIdempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}
