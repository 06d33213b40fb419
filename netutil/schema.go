package netutil

import "strings"

// TrimSchema trims known schema prefixes from the given host.
func TrimSchema(host string) string {
	for _, prefix := range []string{"http://", "https://", "ais://", "aiss://"} {
		host = strings.TrimPrefix(host, prefix)
	}

	return host
}

// ReconstructIPV6 wraps a bare IPv6 address in square brackets so it may be joined with a port.
func ReconstructIPV6(host string) string {
	if strings.Count(host, ":") < 2 || strings.HasPrefix(host, "[") {
		return host
	}

	return "[" + host + "]"
}
