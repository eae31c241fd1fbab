package vecdb

import (
	"errors"
	"fmt"

	"github.com/hupe1980/vecdb/blobstore"
	"github.com/hupe1980/vecdb/persistence"
)

var (
	// ErrEmptyStore is returned when a query is issued against a store
	// with no records.
	ErrEmptyStore = errors.New("empty store: no embeddings")

	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrNotFound is returned when an id is not present in the store.
	ErrNotFound = errors.New("not found")

	// ErrInvalidKey is returned when Get is called with a key that is
	// neither ByIndex nor ByID (usually the zero Key). This is a
	// programming error, not a data condition.
	ErrInvalidKey = errors.New("invalid key: use ByIndex or ByID")

	// ErrEmptyVector is returned when an empty embedding is added or
	// queried.
	ErrEmptyVector = errors.New("empty vector")
)

// ErrDimensionMismatch indicates a vector/query dimensionality mismatch.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrOutOfRange indicates a positional lookup outside [0, Len()).
type ErrOutOfRange struct {
	Index  int
	Length int
}

func (e *ErrOutOfRange) Error() string {
	return fmt.Sprintf("index %d out of range with length %d", e.Index, e.Length)
}

// ErrCorruptStore indicates that a persisted collection could not be
// restored: unreadable blob, checksum failure, or the embeddings and
// metadata blobs disagreeing about the collection.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrCorruptStore struct {
	Reason string
	cause  error
}

func (e *ErrCorruptStore) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("corrupt store: %s: %v", e.Reason, e.cause)
	}
	return fmt.Sprintf("corrupt store: %s", e.Reason)
}

func (e *ErrCorruptStore) Unwrap() error { return e.cause }

func corrupt(reason string, cause error) *ErrCorruptStore {
	return &ErrCorruptStore{Reason: reason, cause: cause}
}

// translateLoadError maps persistence and blobstore failures onto the
// public error taxonomy. Anything that means "the persisted pair cannot be
// trusted" becomes ErrCorruptStore.
func translateLoadError(name string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, blobstore.ErrNotFound) {
		return corrupt(fmt.Sprintf("blob %s missing (partial snapshot)", name), err)
	}

	var mismatch *persistence.ChecksumMismatchError
	if errors.As(err, &mismatch) {
		return corrupt(fmt.Sprintf("blob %s failed checksum verification", name), err)
	}
	if errors.Is(err, persistence.ErrInvalidMagic) ||
		errors.Is(err, persistence.ErrInvalidVersion) ||
		errors.Is(err, persistence.ErrTruncated) ||
		errors.Is(err, persistence.ErrUnknownCodec) {
		return corrupt(fmt.Sprintf("blob %s unreadable", name), err)
	}

	return err
}
