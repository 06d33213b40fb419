package aiscli

import (
	"context"
	"io"

	"golang.org/x/time/rate"

	"github.com/soitun/aistore/aisval"
	"github.com/soitun/aistore/ratelimit"
)

// RateLimitedClient implements the 'Client' interface mostly by deferring to the underlying client, but where the
// methods which involve uploading/downloading objects, the rate limiter is used to control the rate of data transfer.
//
// The rate-limited methods are:
//
// - GetObject
// - PutObject
type RateLimitedClient struct {
	c  Client
	rl *rate.Limiter
}

var _ Client = (*RateLimitedClient)(nil)

// NewRateLimitedClient returns a RateLimitedClient, the limiter is in bytes per second.
func NewRateLimitedClient(c Client, rl *rate.Limiter) *RateLimitedClient {
	return &RateLimitedClient{c: c, rl: rl}
}

func (r *RateLimitedClient) CreateBucket(ctx context.Context, bck aisval.Bck) error {
	return r.c.CreateBucket(ctx, bck)
}

func (r *RateLimitedClient) DestroyBucket(ctx context.Context, bck aisval.Bck) error {
	return r.c.DestroyBucket(ctx, bck)
}

func (r *RateLimitedClient) HeadBucket(ctx context.Context, bck aisval.Bck) (aisval.BucketProps, error) {
	return r.c.HeadBucket(ctx, bck)
}

func (r *RateLimitedClient) ListBuckets(ctx context.Context, provider aisval.Provider) ([]aisval.Bck, error) {
	return r.c.ListBuckets(ctx, provider)
}

func (r *RateLimitedClient) PutObject(ctx context.Context, bck aisval.Bck, name string, body io.ReadSeeker) error {
	return r.c.PutObject(ctx, bck, name, ratelimit.NewReadSeeker(ctx, body, r.rl))
}

func (r *RateLimitedClient) HeadObject(ctx context.Context, bck aisval.Bck, name string) (aisval.ObjectProps, error) {
	return r.c.HeadObject(ctx, bck, name)
}

func (r *RateLimitedClient) GetObject(
	ctx context.Context,
	bck aisval.Bck,
	name string,
	opts GetObjectOptions,
) (*ObjectStream, error) {
	stream, err := r.c.GetObject(ctx, bck, name, opts)
	if err != nil {
		return nil, err
	}

	stream.body = ratelimit.NewReadCloser(ctx, stream.body, r.rl)

	return stream, nil
}

func (r *RateLimitedClient) DeleteObject(ctx context.Context, bck aisval.Bck, name string) error {
	return r.c.DeleteObject(ctx, bck, name)
}

func (r *RateLimitedClient) ListObjects(
	ctx context.Context,
	bck aisval.Bck,
	opts ListObjectsOptions,
) (*aisval.LsoResult, error) {
	return r.c.ListObjects(ctx, bck, opts)
}

func (r *RateLimitedClient) ListAllObjects(
	ctx context.Context,
	bck aisval.Bck,
	opts ListObjectsOptions,
) ([]*aisval.LsoEntry, error) {
	return r.c.ListAllObjects(ctx, bck, opts)
}

func (r *RateLimitedClient) ListObjectsIter(
	ctx context.Context,
	bck aisval.Bck,
	opts ListObjectsOptions,
) *ObjectIterator {
	return r.c.ListObjectsIter(ctx, bck, opts)
}
