package aiscli

import (
	"context"
	"fmt"
	"os"

	"github.com/soitun/aistore/aiserr"
	"github.com/soitun/aistore/aisval"
	"github.com/soitun/aistore/fsutil"
	"github.com/soitun/aistore/hofp"
	"github.com/soitun/aistore/log"
)

// PutObjectFromFile streams the file at the given path into the object with the given name.
func PutObjectFromFile(ctx context.Context, client Client, bck aisval.Bck, name, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	err = client.PutObject(ctx, bck, name, file)
	if err != nil {
		return fmt.Errorf("failed to put object: %w", err)
	}

	return nil
}

// GetObjectToFile downloads the object with the given name to the file at the given path, the file is only created
// once the object has been downloaded (and validated) in full.
func GetObjectToFile(ctx context.Context, client Client, bck aisval.Bck, name, path string) error {
	stream, err := client.GetObject(ctx, bck, name, GetObjectOptions{ValidateChecksum: true})
	if err != nil {
		return fmt.Errorf("failed to get object: %w", err)
	}
	defer stream.Close()

	err = fsutil.Atomic(path, func(temp string) error { return fsutil.WriteToFile(temp, stream, 0) })
	if err != nil {
		return fmt.Errorf("failed to download object: %w", err)
	}

	return nil
}

// BulkOptions encapsulates the options for operations which send a request per object.
type BulkOptions struct {
	// Workers is the number of concurrent requests, defaults to the number of vCPUs.
	Workers int

	// IgnoreNotFound skips objects which have already been removed.
	IgnoreNotFound bool

	Logger log.Logger
}

// DeleteObjects concurrently removes the objects with the given names, stopping at the first failure.
func DeleteObjects(ctx context.Context, client Client, bck aisval.Bck, names []string, opts BulkOptions) error {
	pool := hofp.NewPool(hofp.Options{
		Context:   ctx,
		Size:      opts.Workers,
		Logger:    opts.Logger,
		LogPrefix: "(Delete)",
	})

	queue := func(name string) error {
		return pool.Queue(func(ctx context.Context) error {
			err := client.DeleteObject(ctx, bck, name)
			if opts.IgnoreNotFound && aiserr.IsObjectNotFound(err) {
				return nil
			}

			return err
		})
	}

	for _, name := range names {
		if queue(name) != nil {
			break
		}
	}

	return pool.Stop()
}

// DeletePrefix removes every object whose name starts with the given prefix, returning the number of objects removed.
func DeletePrefix(ctx context.Context, client Client, bck aisval.Bck, prefix string, opts BulkOptions) (int, error) {
	entries, err := client.ListAllObjects(ctx, bck, ListObjectsOptions{Prefix: prefix, Props: []string{aisval.GetPropsName}})
	if err != nil {
		return 0, fmt.Errorf("failed to list objects: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name)
	}

	err = DeleteObjects(ctx, client, bck, names, opts)
	if err != nil {
		return 0, fmt.Errorf("failed to delete objects: %w", err)
	}

	return len(names), nil
}
