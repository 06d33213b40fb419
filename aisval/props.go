package aisval

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ObjectProps are the properties of an object as returned in the headers of a 'HEAD' request, keyed by the lower cased
// header name e.g. 'ais-version' or 'content-length'.
type ObjectProps map[string]string

// NewObjectProps builds the properties from the given response headers.
func NewObjectProps(header http.Header) ObjectProps {
	props := make(ObjectProps, len(header))

	for key, values := range header {
		if len(values) != 0 {
			props[strings.ToLower(key)] = values[0]
		}
	}

	return props
}

// Get returns the value of the given property, the name is case insensitive.
func (p ObjectProps) Get(name string) string {
	return p[strings.ToLower(name)]
}

// Version returns the version of the object, versions start at "1" and are incremented on each overwrite.
func (p ObjectProps) Version() string {
	return p.Get(HeaderVersion)
}

// Size returns the size of the object in bytes, or -1 if it wasn't returned.
func (p ObjectProps) Size() int64 {
	for _, header := range []string{HeaderObjSize, HeaderContentLength} {
		size, err := strconv.ParseInt(p.Get(header), 10, 64)
		if err == nil {
			return size
		}
	}

	return -1
}

// Checksum returns the checksum of the object.
func (p ObjectProps) Checksum() Checksum {
	return Checksum{Type: p.Get(HeaderChecksumType), Value: p.Get(HeaderChecksumValue)}
}

// Atime returns the last access time of the object, the zero time if it wasn't returned.
func (p ObjectProps) Atime() time.Time {
	nanos, err := strconv.ParseInt(p.Get(HeaderAtime), 10, 64)
	if err != nil {
		return time.Time{}
	}

	return time.Unix(0, nanos)
}

// BucketProps are the properties of a bucket as returned by a 'HEAD' request.
type BucketProps struct {
	Provider   Provider       `json:"provider"`
	BID        uint64         `json:"bid"`
	Created    int64          `json:"created"`
	Access     uint64         `json:"access,string"`
	Versioning VersioningConf `json:"versioning"`
	Checksum   ChecksumConf   `json:"checksum"`
	Backend    *Bck           `json:"backend_bck,omitempty"`
}

// VersioningConf configures object versioning for a bucket.
type VersioningConf struct {
	Enabled bool `json:"enabled"`
}

// ChecksumConf configures the checksums computed for a bucket.
type ChecksumConf struct {
	Type string `json:"type"`
}
