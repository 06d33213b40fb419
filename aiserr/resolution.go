package aiserr

import (
	"errors"
	"net"
)

// ErrEndpointResolutionFailed is returned if we've failed to resolve a gateway hostname.
var ErrEndpointResolutionFailed = errors.New("cluster endpoint domain name resolution failed, check the endpoint is " +
	"valid")

// HandleError converts the given error into a user friendly error where possible, returning the given error when not.
func HandleError(err error) error {
	if handled := TryHandleError(err); handled != nil {
		return handled
	}

	return err
}

// TryHandleError converts the given error into a user friendly error where possible, returning <nil> where not.
func TryHandleError(err error) error {
	var dnsError *net.DNSError

	if errors.As(err, &dnsError) && dnsError.IsNotFound {
		return ErrEndpointResolutionFailed
	}

	return nil
}
