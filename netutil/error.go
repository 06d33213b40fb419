// Package netutil contains helpers to classify network failures and build HTTP transports.
package netutil

import (
	"errors"
	"net"
	"strings"
	"syscall"
)

// temporaryErrnos are the socket errors caused by a gateway restarting or dropping connections.
var temporaryErrnos = []syscall.Errno{
	syscall.ECONNREFUSED,
	syscall.ECONNRESET,
	syscall.ECONNABORTED,
	syscall.EPIPE,
	syscall.ETIMEDOUT,
}

// temporaryMessages match failures which the standard library doesn't expose as typed errors.
var temporaryMessages = []string{
	"bad record MAC",
	"broken pipe",
	"connection refused",
	"connection reset",
	"net/http: TLS handshake timeout",
	"server closed idle connection",
	"transport connection broken",
	"use of closed network connection",
}

// IsTemporaryError returns a boolean indicating whether the provided error is a result of a temporary failure and
// should be retried.
func IsTemporaryError(err error) bool {
	if err == nil {
		return false
	}

	return isTemporaryNetError(err) || isTemporaryErrno(err) || hasTemporaryMessage(err)
}

func isTemporaryNetError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return !dnsErr.IsNotFound
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}

	var netErr net.Error

	return errors.As(err, &netErr) && netErr.Timeout()
}

func isTemporaryErrno(err error) bool {
	for _, errno := range temporaryErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}

	return false
}

func hasTemporaryMessage(err error) bool {
	msg := err.Error()

	for _, temporary := range temporaryMessages {
		if strings.Contains(msg, temporary) {
			return true
		}
	}

	return false
}
