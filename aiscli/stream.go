package aiscli

import (
	"errors"
	"fmt"
	"hash"
	"io"
	"strconv"

	"google.golang.org/api/iterator"

	"github.com/soitun/aistore/aisval"
)

// ChecksumMismatchError is returned once an object has been read in full if its checksum does not match the one
// returned by the cluster.
type ChecksumMismatchError struct {
	Expected aisval.Checksum
	Got      aisval.Checksum
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch, expected %s but got %s", e.Expected, e.Got)
}

// ObjectStream is a forward only, single pass, stream of an object's payload.
//
// The payload may be consumed using 'Read', 'Next' (chunks) or 'ReadAll', but all of them consume the same underlying
// transfer; bytes returned by one are not returned by another.
type ObjectStream struct {
	// ContentLength is the number of bytes in the stream, -1 if unknown.
	ContentLength int64

	// ETag is the checksum value of the object as reported by the cluster.
	ETag string

	// ETagType is the algorithm used to compute the 'ETag'.
	ETagType string

	// Props are all the properties returned alongside the payload.
	Props aisval.ObjectProps

	body      io.ReadCloser
	chunkSize int

	hash     hash.Hash
	expected aisval.Checksum

	err error
}

// NewObjectStream wraps the given body, the stream takes ownership of the body.
//
// NOTE: Validation is skipped if the cluster didn't return a checksum, or returned one of an unsupported type.
func NewObjectStream(body io.ReadCloser, props aisval.ObjectProps, opts GetObjectOptions) *ObjectStream {
	checksum := props.Checksum()

	stream := &ObjectStream{
		ContentLength: contentLength(props),
		ETag:          checksum.Value,
		ETagType:      checksum.Type,
		Props:         props,
		body:          body,
		chunkSize:     opts.chunkSize(),
	}

	if !opts.ValidateChecksum || opts.ByteRange != nil || checksum.IsEmpty() {
		return stream
	}

	if h, err := aisval.NewHash(checksum.Type); err == nil {
		stream.hash, stream.expected = h, checksum
	}

	return stream
}

// contentLength returns the length of the payload, the object size is not used since it differs for byte ranges.
func contentLength(props aisval.ObjectProps) int64 {
	length, err := strconv.ParseInt(props.Get(aisval.HeaderContentLength), 10, 64)
	if err != nil {
		return -1
	}

	return length
}

// ChunkSize returns the size of the chunks returned by 'Next'.
func (s *ObjectStream) ChunkSize() int {
	return s.chunkSize
}

// Read implements the 'io.Reader' interface, the underlying body is closed once it's been read in full.
func (s *ObjectStream) Read(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}

	n, err := s.body.Read(p)
	if s.hash != nil && n > 0 {
		_, _ = s.hash.Write(p[:n])
	}

	if err == nil {
		return n, nil
	}

	s.finish(err)

	return n, s.err
}

// finish records the terminal error of the stream, validating the checksum if the payload was read in full.
func (s *ObjectStream) finish(err error) {
	_ = s.body.Close()

	s.err = err

	if !errors.Is(err, io.EOF) || s.hash == nil {
		return
	}

	got := aisval.Checksum{Type: s.expected.Type, Value: aisval.EncodeHash(s.hash)}
	if got.Value != s.expected.Value {
		s.err = &ChecksumMismatchError{Expected: s.expected, Got: got}
	}
}

// Next returns the next chunk of the payload, chunks are 'ChunkSize' bytes long except for the last one which may be
// shorter. Returns 'iterator.Done' once the payload has been read in full.
func (s *ObjectStream) Next() ([]byte, error) {
	buf := make([]byte, s.chunkSize)

	n, err := io.ReadFull(s, buf)
	if err == nil {
		return buf, nil
	}

	if errors.Is(err, io.ErrUnexpectedEOF) {
		return buf[:n], nil
	}

	if errors.Is(err, io.EOF) {
		return nil, iterator.Done
	}

	return nil, err
}

// ReadAll reads the remaining payload, closing the stream.
func (s *ObjectStream) ReadAll() ([]byte, error) {
	defer s.Close()

	data, err := io.ReadAll(s)
	if err != nil {
		return nil, err
	}

	return data, nil
}

// Close releases the underlying connection, it's safe to call more than once.
func (s *ObjectStream) Close() error {
	if s.err != nil {
		return nil
	}

	s.err = errClosed

	return s.body.Close()
}

// errClosed is returned when reading from a closed stream.
var errClosed = errors.New("read from closed object stream")
