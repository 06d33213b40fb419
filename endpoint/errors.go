package endpoint

import "errors"

var (
	// ErrInvalidEndpoint is returned if the endpoint could not be matched at all.
	ErrInvalidEndpoint = errors.New("invalid endpoint")

	// ErrBadScheme is returned if the endpoint uses a scheme other than 'http', 'https', 'ais' or 'aiss'.
	ErrBadScheme = errors.New("bad scheme")

	// ErrBadPort is returned if a port is not a valid 16 bit unsigned integer.
	ErrBadPort = errors.New("bad port")

	// ErrNoAddressesParsed is returned if the endpoint did not contain any gateway addresses.
	ErrNoAddressesParsed = errors.New("no addresses parsed")

	// ErrNoAddressesResolved is returned if resolving the endpoint yielded no usable addresses.
	ErrNoAddressesResolved = errors.New("no addresses resolved")
)
