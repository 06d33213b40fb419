package aisval

import "errors"

var (
	// ErrUnknownProvider is returned when parsing an unsupported provider.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrInvalidBucketName is returned when a bucket name does not satisfy the naming rules of its provider.
	ErrInvalidBucketName = errors.New("invalid bucket name")

	// ErrUnknownChecksumType is returned when asked to compute a checksum we don't support.
	ErrUnknownChecksumType = errors.New("unknown checksum type")
)
