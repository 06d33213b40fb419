// Package aiscli exposes the 'Client' interface used to manage the buckets/objects stored in a cluster.
package aiscli

import (
	"context"
	"io"

	"github.com/soitun/aistore/aisval"
)

//go:generate mockgen -source=client.go -destination=mock_client.go -package=aiscli

// Lister returns a single page of a listing, it's the only operation required to implement full listings/iteration.
type Lister interface {
	ListObjects(ctx context.Context, bck aisval.Bck, opts ListObjectsOptions) (*aisval.LsoResult, error)
}

// Client is the interface used to manage the buckets/objects stored in a cluster.
//
// NOTE: Operations referencing a bucket which does not exist return an 'aiserr.NotFoundError'.
type Client interface {
	Lister

	// CreateBucket creates the given bucket, creating a bucket which already exists is not an error.
	CreateBucket(ctx context.Context, bck aisval.Bck) error

	// DestroyBucket removes the given bucket along with all of its objects.
	DestroyBucket(ctx context.Context, bck aisval.Bck) error

	// HeadBucket returns the properties of the given bucket.
	HeadBucket(ctx context.Context, bck aisval.Bck) (aisval.BucketProps, error)

	// ListBuckets returns the buckets of the given provider, an empty provider lists the buckets of all providers.
	ListBuckets(ctx context.Context, provider aisval.Provider) ([]aisval.Bck, error)

	// PutObject creates/overwrites the object with the given name.
	//
	// NOTE: Required to be a 'ReadSeeker' so the body may be sent again when the request is retried.
	PutObject(ctx context.Context, bck aisval.Bck, name string, body io.ReadSeeker) error

	// HeadObject returns the properties of the object with the given name.
	//
	// NOTE: HEAD responses carry no error payload, so a missing bucket is reported as an object 'aiserr.NotFoundError';
	// use 'aiserr.IsNotFound' rather than 'aiserr.IsBucketNotFound' to detect either case.
	HeadObject(ctx context.Context, bck aisval.Bck, name string) (aisval.ObjectProps, error)

	// GetObject returns a stream of the object with the given name, the payload is read lazily.
	//
	// NOTE: The returned stream must be read to completion or closed to avoid resource leaks.
	GetObject(ctx context.Context, bck aisval.Bck, name string, opts GetObjectOptions) (*ObjectStream, error)

	// DeleteObject removes the object with the given name.
	DeleteObject(ctx context.Context, bck aisval.Bck, name string) error

	// ListAllObjects follows the listing until it's complete, returning the entries of every page in order.
	ListAllObjects(ctx context.Context, bck aisval.Bck, opts ListObjectsOptions) ([]*aisval.LsoEntry, error)

	// ListObjectsIter returns an iterator which lazily fetches the pages of a listing.
	ListObjectsIter(ctx context.Context, bck aisval.Bck, opts ListObjectsOptions) *ObjectIterator
}
