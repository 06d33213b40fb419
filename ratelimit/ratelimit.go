// Package ratelimit throttles the bytes read from object payloads, used to cap the bandwidth of uploads/downloads.
package ratelimit

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/time/rate"
)

// throttle blocks readers until the limiter permits the bytes they've read.
type throttle struct {
	ctx     context.Context
	limiter *rate.Limiter
}

// account waits for the 'n' bytes returned by a read, the read error is only returned if the wait succeeds.
func (t throttle) account(n int, err error) (int, error) {
	for remaining := n; remaining > 0; {
		// 'WaitN' rejects requests larger than the burst outright.
		chunk := min(remaining, t.limiter.Burst())

		if wErr := t.limiter.WaitN(t.ctx, chunk); wErr != nil {
			return n, fmt.Errorf("could not wait for limiter: %w", wErr)
		}

		remaining -= chunk
	}

	return n, err
}

// Reader limits the rate at which bytes are read from the underlying reader.
type Reader struct {
	throttle
	r io.Reader
}

// NewReader returns a reader whose throughput is limited in bytes by the given limiter.
func NewReader(ctx context.Context, r io.Reader, limiter *rate.Limiter) *Reader {
	return &Reader{throttle: throttle{ctx: ctx, limiter: limiter}, r: r}
}

func (r *Reader) Read(p []byte) (int, error) {
	return r.account(r.r.Read(p))
}

// ReadCloser is a 'Reader' which closes the underlying reader, used for response bodies.
type ReadCloser struct {
	*Reader
	c io.Closer
}

// NewReadCloser returns a read closer whose throughput is limited in bytes by the given limiter.
func NewReadCloser(ctx context.Context, rc io.ReadCloser, limiter *rate.Limiter) *ReadCloser {
	return &ReadCloser{Reader: NewReader(ctx, rc, limiter), c: rc}
}

func (r *ReadCloser) Close() error {
	return r.c.Close()
}

// ReadSeeker is a 'Reader' which may be rewound, used for request bodies which are replayed on retries.
type ReadSeeker struct {
	*Reader
	s io.Seeker
}

// NewReadSeeker returns a read seeker whose throughput is limited in bytes by the given limiter.
func NewReadSeeker(ctx context.Context, rs io.ReadSeeker, limiter *rate.Limiter) *ReadSeeker {
	return &ReadSeeker{Reader: NewReader(ctx, rs, limiter), s: rs}
}

func (r *ReadSeeker) Seek(offset int64, whence int) (int64, error) {
	return r.s.Seek(offset, whence)
}

var (
	_ io.Reader     = (*Reader)(nil)
	_ io.ReadCloser = (*ReadCloser)(nil)
	_ io.ReadSeeker = (*ReadSeeker)(nil)
)
