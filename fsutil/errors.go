package fsutil

import "errors"

// ErrNotFile is returned by 'FileExists' if a directory exists at the provided path.
var ErrNotFile = errors.New("not a file")
