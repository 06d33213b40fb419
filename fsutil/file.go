// Package fsutil contains the filesystem helpers used to move objects between the cluster and local files.
package fsutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const (
	// DefaultFileMode is used for files created without an explicit mode.
	DefaultFileMode = 0o660

	// DefaultDirMode is used for directories created without an explicit mode.
	DefaultDirMode = 0o770
)

// FileExists returns a boolean indicating whether a file at the provided path exists.
func FileExists(path string) (bool, error) {
	stats, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	if stats.IsDir() {
		return false, ErrNotFile
	}

	return true, nil
}

// CreateFile creates (or truncates) the file at the given path for writing, creating any missing parent directories.
//
// NOTE: A zero mode uses 'DefaultFileMode'.
func CreateFile(path string, mode os.FileMode) (*os.File, error) {
	if mode == 0 {
		mode = DefaultFileMode
	}

	err := os.MkdirAll(filepath.Dir(path), DefaultDirMode)
	if err != nil {
		return nil, fmt.Errorf("failed to create parent directories: %w", err)
	}

	return os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
}

// WriteToFile copies everything from the given reader into the file at the given path, syncing it to disk.
func WriteToFile(path string, reader io.Reader, mode os.FileMode) error {
	file, err := CreateFile(path, mode)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(file, reader)
	if err != nil {
		return err
	}

	return file.Sync()
}

// Atomic runs the given function against a temporary path, which is renamed to the given path if it succeeds. The
// function is required to create the file at the path it's given; it's removed should the function fail.
//
// NOTE: This only works to the degree that the underlying operating system guarantees that renames are atomic.
func Atomic(path string, fn func(path string) error) error {
	temp := temporaryPath(path)

	err := fn(temp)
	if err != nil {
		_ = os.Remove(temp)
		return err
	}

	return os.Rename(temp, path)
}

// temporaryPath returns a unique path alongside the given one, which still hints at what the file is for.
func temporaryPath(path string) string {
	return filepath.Join(filepath.Dir(path), fmt.Sprintf(".temporary_%s_%s", uuid.NewString(), filepath.Base(path)))
}
