// Package blobstore provides the storage abstraction snapshots are written
// to and read from.
//
// A snapshot is a pair of small immutable blobs, so the interface works on
// whole blobs rather than streams.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem with atomic writes (temp file + rename)
//   - MemoryStore: in-memory, for tests
//   - ThrottledStore: wraps another store with rate/concurrency limits
//   - minio.Store: MinIO and S3-compatible object storage
//   - s3.Store: Amazon S3
package blobstore

import (
	"context"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store is an abstraction for reading and writing immutable data blobs.
// Implementations must be safe for concurrent use.
type Store interface {
	// Put writes a blob atomically, replacing any existing blob of the
	// same name.
	Put(ctx context.Context, name string, data []byte) error

	// Get reads a whole blob. It returns ErrNotFound if the blob does
	// not exist.
	Get(ctx context.Context, name string) ([]byte, error)

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all blobs with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}
