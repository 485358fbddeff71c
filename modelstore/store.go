package modelstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a bundle does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store is an abstraction for caching immutable deployment bundles (zip
// archives downloaded from the Studio) under a name of the caller's
// choosing, typically "<project>-v<deploy version>.zip".
type Store interface {
	// Open opens a bundle for reading.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Put writes a bundle atomically: a partially written bundle is never
	// observable under name.
	Put(ctx context.Context, name string, data []byte) error

	// Delete removes a bundle. Deleting a missing bundle is not an error.
	Delete(ctx context.Context, name string) error

	// List returns all bundle names with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}
