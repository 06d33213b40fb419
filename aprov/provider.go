// Package aprov provides the credentials/information attached to every request sent to the cluster.
package aprov

// Provider supplies the authentication token and user agent for requests.
type Provider interface {
	// GetToken returns the bearer token to send to the given host, an empty token means no 'Authorization' header.
	GetToken(host string) string

	// GetUserAgent returns the 'User-Agent' to use so requests may be traced by the cluster.
	GetUserAgent() string
}

// SetAuthHeaders populates the 'Authorization' and 'User-Agent' headers using the given provider.
func SetAuthHeaders(header map[string][]string, host string, provider Provider) {
	if provider == nil {
		return
	}

	if token := provider.GetToken(host); token != "" {
		header["Authorization"] = []string{"Bearer " + token}
	}

	if agent := provider.GetUserAgent(); agent != "" {
		header["User-Agent"] = []string{agent}
	}
}
