package aisval

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"hash"

	"github.com/cespare/xxhash/v2"
)

// Checksum types supported by the cluster.
const (
	ChecksumNone    = "none"
	ChecksumXXHash  = "xxhash"
	ChecksumXXHash2 = "xxhash2"
	ChecksumMD5     = "md5"
)

// xxhashSeed seeds the XXH64 digest of the 'xxhash' checksum type, 'xxhash2' is unseeded.
const xxhashSeed = 1103515245

// DefaultChecksumType is the checksum computed for new buckets.
const DefaultChecksumType = ChecksumXXHash

// Checksum is a checksum value along with the algorithm used to compute it.
type Checksum struct {
	Type  string
	Value string
}

// IsEmpty returns a boolean indicating whether there is a checksum to validate against.
func (c Checksum) IsEmpty() bool {
	return c.Type == "" || c.Type == ChecksumNone || c.Value == ""
}

// String renders the checksum as '<type>[<value>]'.
func (c Checksum) String() string {
	return fmt.Sprintf("%s[%s]", c.Type, c.Value)
}

// NewHash returns the hash used to compute checksums of the given type.
func NewHash(checksumType string) (hash.Hash, error) {
	switch checksumType {
	case ChecksumXXHash:
		return xxhash.NewWithSeed(xxhashSeed), nil
	case ChecksumXXHash2:
		return xxhash.New(), nil
	case ChecksumMD5:
		return md5.New(), nil
	}

	return nil, fmt.Errorf("%w '%s'", ErrUnknownChecksumType, checksumType)
}

// EncodeHash returns the checksum value of the data written to the given hash.
func EncodeHash(h hash.Hash) string {
	return hex.EncodeToString(h.Sum(nil))
}

// ComputeChecksum returns the checksum of the given data.
func ComputeChecksum(checksumType string, data []byte) (Checksum, error) {
	h, err := NewHash(checksumType)
	if err != nil {
		return Checksum{}, err
	}

	_, _ = h.Write(data)

	return Checksum{Type: checksumType, Value: EncodeHash(h)}, nil
}
