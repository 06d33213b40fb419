package aisval

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// MaxBucketNameLen is the longest bucket name accepted for native buckets.
const MaxBucketNameLen = 64

var (
	// nativeName matches names accepted for native buckets.
	nativeName = regexp.MustCompile(`^[A-Za-z0-9_.\-]+$`)

	// remoteName matches names accepted by the S3 style remote providers.
	remoteName = regexp.MustCompile(`^[a-z0-9][a-z0-9.\-]{1,61}[a-z0-9]$`)
)

// Bck identifies a bucket, the zero value 'Provider' is the native provider.
//
// NOTE: A 'Bck' carries no state, two values with the same name/provider refer to the same bucket.
type Bck struct {
	Name     string   `json:"name"`
	Provider Provider `json:"provider"`
}

// NewBck returns a native bucket with the given name.
func NewBck(name string) Bck {
	return Bck{Name: name, Provider: ProviderAIS}
}

// ParseBck parses a bucket in the 'provider://name' format, a bare name is a native bucket.
func ParseBck(s string) (Bck, error) {
	provider, name, ok := strings.Cut(s, "://")
	if !ok {
		return NewBck(s), nil
	}

	parsed, err := ParseProvider(provider)
	if err != nil {
		return Bck{}, err
	}

	return Bck{Name: strings.TrimSuffix(name, "/"), Provider: parsed}, nil
}

// String renders the bucket in the 'provider://name' format.
func (b Bck) String() string {
	return b.Provider.String() + "://" + b.Name
}

// Cname renders the fully qualified name of an object in this bucket.
func (b Bck) Cname(object string) string {
	return b.String() + "/" + object
}

// Query returns the query parameters identifying the provider of this bucket.
func (b Bck) Query() url.Values {
	return url.Values{QparamProvider: {b.Provider.String()}}
}

// Validate returns an 'ErrInvalidBucketName' if the name does not satisfy the naming rules of the provider.
//
// NOTE: The client doesn't validate names before sending requests; the cluster is the source of truth.
func (b Bck) Validate() error {
	if b.Provider.IsRemote() {
		if !remoteName.MatchString(b.Name) || strings.Contains(b.Name, "..") {
			return fmt.Errorf("%w '%s' for provider '%s'", ErrInvalidBucketName, b.Name, b.Provider)
		}

		return nil
	}

	if len(b.Name) > MaxBucketNameLen || b.Name == "." || b.Name == ".." || !nativeName.MatchString(b.Name) {
		return fmt.Errorf("%w '%s'", ErrInvalidBucketName, b.Name)
	}

	return nil
}
