package aiscli

import (
	"context"
	"fmt"

	"google.golang.org/api/iterator"

	"github.com/soitun/aistore/aisval"
)

// ObjectIterator lazily iterates over the entries of a listing, fetching pages from the cluster on demand.
//
// NOTE: Implements the 'iterator.Pageable' interface so 'iterator.NewPager' may be used to iterate page by page.
type ObjectIterator struct {
	ctx    context.Context
	lister Lister
	bck    aisval.Bck
	opts   ListObjectsOptions

	pageInfo *iterator.PageInfo
	nextFunc func() error
	items    []*aisval.LsoEntry
}

// NewObjectIterator returns an iterator over the listing of the given bucket, nothing is fetched until 'Next' is called.
func NewObjectIterator(ctx context.Context, lister Lister, bck aisval.Bck, opts ListObjectsOptions) *ObjectIterator {
	it := &ObjectIterator{ctx: ctx, lister: lister, bck: bck, opts: opts}

	it.pageInfo, it.nextFunc = iterator.NewPageInfo(
		it.fetch,
		func() int { return len(it.items) },
		func() any { b := it.items; it.items = nil; return b },
	)

	it.pageInfo.Token = opts.ContinuationToken
	it.pageInfo.MaxSize = int(opts.PageSize)

	return it
}

// PageInfo supports pagination, see the 'google.golang.org/api/iterator' package for details.
func (it *ObjectIterator) PageInfo() *iterator.PageInfo {
	return it.pageInfo
}

// Next returns the next entry, 'iterator.Done' is returned once there are no more entries.
func (it *ObjectIterator) Next() (*aisval.LsoEntry, error) {
	if err := it.nextFunc(); err != nil {
		return nil, err
	}

	item := it.items[0]
	it.items = it.items[1:]

	return item, nil
}

// fetch requests a single page, appending its entries to the buffered items.
func (it *ObjectIterator) fetch(pageSize int, pageToken string) (string, error) {
	opts := it.opts
	opts.ContinuationToken = pageToken

	if pageSize > 0 {
		opts.PageSize = uint(pageSize)
	}

	result, err := it.lister.ListObjects(it.ctx, it.bck, opts)
	if err != nil {
		return "", err
	}

	if result.ContinuationToken != "" && result.ContinuationToken == pageToken {
		return "", noProgressError(it.bck, pageToken)
	}

	it.opts.UUID = result.UUID
	it.items = append(it.items, result.Entries...)

	return result.ContinuationToken, nil
}

// ListAll follows the listing of the given bucket until it's complete, returning the entries of every page in order.
func ListAll(ctx context.Context, lister Lister, bck aisval.Bck, opts ListObjectsOptions) ([]*aisval.LsoEntry, error) {
	entries := make([]*aisval.LsoEntry, 0)

	for {
		result, err := lister.ListObjects(ctx, bck, opts)
		if err != nil {
			return nil, err
		}

		entries = append(entries, result.Entries...)

		if result.ContinuationToken == "" {
			return entries, nil
		}

		if result.ContinuationToken == opts.ContinuationToken {
			return nil, noProgressError(bck, result.ContinuationToken)
		}

		opts.ContinuationToken, opts.UUID = result.ContinuationToken, result.UUID
	}
}

// noProgressError is returned when the cluster hands back the continuation token it was given, following it would
// never terminate.
func noProgressError(bck aisval.Bck, token string) error {
	return fmt.Errorf("listing of '%s' did not progress past continuation token '%s'", bck, token)
}
