// Package endpoint parses and resolves the gateway endpoints used to bootstrap a cluster client.
package endpoint

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// DefaultPort is the default port used by cluster gateways, used when no port is supplied.
const DefaultPort = 8080

var (
	// partMatcher groups the parts of an endpoint, for example 'aiss://10.0.0.1:8080,10.0.0.2?x=y' yields the scheme
	// 'aiss', the hosts '10.0.0.1:8080,10.0.0.2' and the params 'x=y'.
	partMatcher = regexp.MustCompile(
		`((?P<scheme>.*):\/\/)?(([^\/?:]*)(:([^\/?:@]*))?@)?(?P<hosts>[^\/?]*)(\/([^\?]*))?(\?(?P<params>.*))?`,
	)

	// hostMatcher groups each host/port in a comma separated list of hosts, IPv6 addresses must be bracketed.
	hostMatcher = regexp.MustCompile(`(?P<host>(\[[^\]]+\]+)|([^;\,\:]+))(:(?P<port>[0-9]*))?(;\,)?`)
)

// Address is a single gateway address.
type Address struct {
	// Host is an IP/DNS hostname.
	Host string

	// Port is a port number.
	//
	// NOTE: May be zero if omitted by the user.
	Port uint16
}

// String returns the address in the 'host:port' format.
func (a Address) String() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

// Endpoint represents a user supplied endpoint which lists one or more gateways of a cluster.
type Endpoint struct {
	// Scheme is the parsed scheme without '://'.
	Scheme string

	// Addresses represents the gateway addresses.
	//
	// NOTE: This attribute is required, and must be non-empty.
	Addresses []Address

	// Params are any parsed query parameters, will be <nil> if none were parsed.
	Params url.Values
}

// ResolvedEndpoint is similar to an 'Endpoint', however, ports/schemes are resolved into something that may be used to
// send requests.
type ResolvedEndpoint struct {
	// UseTLS indicates whether requests should be sent using HTTPS.
	UseTLS bool

	// Addresses represents the resolved gateway addresses.
	Addresses []Address

	// Params are any parsed query parameters, will be <nil> if none were parsed.
	Params url.Values
}

// Hosts returns the base URL of each resolved gateway e.g. 'http://localhost:8080'.
func (r *ResolvedEndpoint) Hosts() []string {
	scheme := "http"
	if r.UseTLS {
		scheme = "https"
	}

	hosts := make([]string, 0, len(r.Addresses))

	for _, address := range r.Addresses {
		hosts = append(hosts, scheme+"://"+address.String())
	}

	return hosts
}

// Parse the given endpoint performing first tier validation i.e. it's possible for a parsed endpoint to fail when
// 'Resolve' is called.
func Parse(endpoint string) (*Endpoint, error) {
	parts := partMatcher.FindStringSubmatch(endpoint)
	if parts == nil {
		return nil, ErrInvalidEndpoint
	}

	parsed := &Endpoint{
		Scheme: parts[partMatcher.SubexpIndex("scheme")],
	}

	if !slices.Contains([]string{"", "http", "https", "ais", "aiss"}, parsed.Scheme) {
		return nil, ErrBadScheme
	}

	for _, hostInfo := range hostMatcher.FindAllStringSubmatch(parts[partMatcher.SubexpIndex("hosts")], -1) {
		address, err := parseHost(hostInfo)
		if err != nil {
			return nil, err
		}

		parsed.Addresses = append(parsed.Addresses, address)
	}

	if len(parsed.Addresses) == 0 {
		return nil, ErrNoAddressesParsed
	}

	params, err := url.ParseQuery(parts[partMatcher.SubexpIndex("params")])
	if err != nil {
		return nil, fmt.Errorf("failed to parse query parameters: %w", err)
	}

	if len(params) != 0 {
		parsed.Params = params
	}

	return parsed, nil
}

// parseHost extracts the address from the given regex match.
func parseHost(hostInfo []string) (Address, error) {
	address := Address{
		Host: hostInfo[hostMatcher.SubexpIndex("host")],
	}

	port := hostInfo[hostMatcher.SubexpIndex("port")]
	if port == "" {
		return address, nil
	}

	parsed, err := strconv.ParseUint(port, 10, 16)
	if err != nil {
		return Address{}, ErrBadPort
	}

	address.Port = uint16(parsed)

	return address, nil
}

// Resolve the endpoint into addresses which can be used to send requests.
//
// NOTE: An 'ais'/'aiss' endpoint with a single hostname and no port is looked up as the '_ais._tcp' SRV record, falling
// back to the hostname itself when no records exist.
func (e *Endpoint) Resolve(ctx context.Context) (*ResolvedEndpoint, error) {
	resolved := &ResolvedEndpoint{Params: e.Params}

	switch e.Scheme {
	case "", "http", "ais":
	case "https", "aiss":
		resolved.UseTLS = true
	default:
		return nil, ErrBadScheme
	}

	if addresses := e.resolveSRV(ctx); len(addresses) != 0 {
		resolved.Addresses = addresses
		return resolved, nil
	}

	for _, address := range e.Addresses {
		if address.Port == 0 {
			address.Port = DefaultPort
		}

		resolved.Addresses = append(resolved.Addresses, address)
	}

	if len(resolved.Addresses) == 0 {
		return nil, ErrNoAddressesResolved
	}

	return resolved, nil
}

// resolveSRV attempts to resolve the endpoint as an SRV record, returning <nil> if it's not a valid SRV endpoint or the
// lookup failed.
func (e *Endpoint) resolveSRV(ctx context.Context) []Address {
	if e.Scheme != "ais" && e.Scheme != "aiss" {
		return nil
	}

	if len(e.Addresses) != 1 || e.Addresses[0].Port != 0 {
		return nil
	}

	host := e.Addresses[0].Host
	if strings.Contains(host, ":") || net.ParseIP(host) != nil {
		return nil
	}

	_, servers, err := net.DefaultResolver.LookupSRV(ctx, "ais", "tcp", host)
	if err != nil || len(servers) == 0 {
		return nil
	}

	addresses := make([]Address, 0, len(servers))

	for _, server := range servers {
		port := server.Port
		if port == 0 {
			port = DefaultPort
		}

		addresses = append(addresses, Address{Host: strings.TrimSuffix(server.Target, "."), Port: port})
	}

	return addresses
}

// ParseAndResolve is a convenience wrapper which parses then resolves the given endpoint.
func ParseAndResolve(ctx context.Context, endpoint string) (*ResolvedEndpoint, error) {
	parsed, err := Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to parse endpoint: %w", err)
	}

	resolved, err := parsed.Resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve endpoint: %w", err)
	}

	return resolved, nil
}
