package netutil

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// HTTPTimeouts are the connection level timeouts used when building a HTTP transport; zero values use the defaults.
type HTTPTimeouts struct {
	Dialer                  time.Duration
	KeepAlive               time.Duration
	TransportIdleConn       time.Duration
	TransportContinue       time.Duration
	TransportResponseHeader time.Duration
	TransportTLSHandshake   time.Duration
}

const (
	defaultDialerTimeout       = 30 * time.Second
	defaultDialerKeepAlive     = 30 * time.Second
	defaultIdleConnTimeout     = 90 * time.Second
	defaultTLSHandshakeTimeout = 10 * time.Second
)

func (h HTTPTimeouts) withDefaults() HTTPTimeouts {
	if h.Dialer == 0 {
		h.Dialer = defaultDialerTimeout
	}

	if h.KeepAlive == 0 {
		h.KeepAlive = defaultDialerKeepAlive
	}

	if h.TransportIdleConn == 0 {
		h.TransportIdleConn = defaultIdleConnTimeout
	}

	if h.TransportTLSHandshake == 0 {
		h.TransportTLSHandshake = defaultTLSHandshakeTimeout
	}

	return h
}

// NewHTTPTransport returns a transport configured with the given timeouts and (optional) TLS configuration.
func NewHTTPTransport(tlsConfig *tls.Config, timeouts HTTPTimeouts) *http.Transport {
	timeouts = timeouts.withDefaults()

	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeouts.Dialer,
			KeepAlive: timeouts.KeepAlive,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   32,
		IdleConnTimeout:       timeouts.TransportIdleConn,
		TLSHandshakeTimeout:   timeouts.TransportTLSHandshake,
		ExpectContinueTimeout: timeouts.TransportContinue,
		ResponseHeaderTimeout: timeouts.TransportResponseHeader,
		TLSClientConfig:       tlsConfig,
	}
}
