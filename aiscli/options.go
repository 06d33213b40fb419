package aiscli

import "github.com/soitun/aistore/aisval"

// DefaultChunkSize is the size of the chunks returned when iterating over an 'ObjectStream'.
const DefaultChunkSize = 32 * 1024

// GetObjectOptions encapsulates the options available when using the 'GetObject' function.
type GetObjectOptions struct {
	// ChunkSize is the size of the chunks returned by 'ObjectStream.Next', defaults to 'DefaultChunkSize'.
	ChunkSize int

	// ValidateChecksum hashes the payload as it's read, returning a 'ChecksumMismatchError' once the whole object has
	// been read if it does not match the checksum returned by the cluster.
	//
	// NOTE: Ignored when reading a byte range.
	ValidateChecksum bool

	// ByteRange allows reading only part of the object.
	ByteRange *aisval.ByteRange
}

func (o GetObjectOptions) chunkSize() int {
	if o.ChunkSize <= 0 {
		return DefaultChunkSize
	}

	return o.ChunkSize
}

// ListObjectsOptions encapsulates the options available when listing objects.
type ListObjectsOptions struct {
	// PageSize caps the number of entries in each page, zero means the cluster's default which for native buckets is the
	// entire bucket.
	PageSize uint

	// Prefix only lists objects whose names start with the prefix.
	Prefix string

	// Props are the properties to return for each entry, defaults to 'aisval.DefaultProps'.
	Props []string

	// ContinuationToken resumes a previous listing, empty to start from the beginning.
	ContinuationToken string

	// UUID identifies the listing session of a previous page.
	UUID string
}

// Msg returns the list message sent to the cluster for these options.
func (o ListObjectsOptions) Msg() *aisval.LsoMsg {
	msg := &aisval.LsoMsg{
		UUID:              o.UUID,
		Prefix:            o.Prefix,
		ContinuationToken: o.ContinuationToken,
		PageSize:          o.PageSize,
	}

	msg.SetProps(o.Props...)

	return msg
}
