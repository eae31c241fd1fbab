// Package persistence implements the on-disk snapshot representation of a
// collection: an embeddings blob (dense row-major float32 matrix) and a
// metadata blob (codec-encoded record sequence), each carrying a versioned
// header with a CRC32 of its payload.
package persistence

import (
	"errors"
	"fmt"
)

const (
	// EmbeddingsMagic identifies embeddings blobs (ASCII: "VDB0").
	EmbeddingsMagic = 0x56444230
	// MetadataMagic identifies metadata blobs (ASCII: "VDBM").
	MetadataMagic = 0x5644424D
	// Version is the current blob format version.
	Version = 0x00010000

	// EmbeddingsBlobName is the blob name for the embeddings matrix.
	EmbeddingsBlobName = "embeddings.bin"
	// MetadataBlobName is the blob name for the record sequence.
	MetadataBlobName = "metadata.bin"
)

// embeddingsHeaderSize is the fixed header length of an embeddings blob.
//
// Layout (little-endian):
//
//	0  magic       uint32
//	4  version     uint32
//	8  count       uint64
//	16 dimension   uint32
//	20 compression uint8
//	21 padding     [3]byte
//	24 checksum    uint32 (CRC32 of the stored payload)
//	28 reserved    uint32
const embeddingsHeaderSize = 32

// metadataHeaderSize is the fixed part of a metadata blob header; the codec
// name follows it, then the payload.
//
// Layout (little-endian):
//
//	0  magic        uint32
//	4  version      uint32
//	8  count        uint64
//	16 compression  uint8
//	17 codecNameLen uint8
//	18 padding      [2]byte
//	20 checksum     uint32 (CRC32 of the stored payload)
const metadataHeaderSize = 24

var (
	// ErrInvalidMagic is returned when a blob does not start with the
	// expected magic number.
	ErrInvalidMagic = errors.New("invalid magic number")

	// ErrInvalidVersion is returned for blobs written by an unsupported
	// format version.
	ErrInvalidVersion = errors.New("unsupported format version")

	// ErrTruncated is returned when a blob is shorter than its header
	// declares.
	ErrTruncated = errors.New("truncated blob")

	// ErrUnknownCodec is returned when a metadata blob names a codec this
	// build does not provide.
	ErrUnknownCodec = errors.New("unknown metadata codec")
)

// ChecksumMismatchError is returned when payload verification fails.
type ChecksumMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: expected 0x%08x, got 0x%08x", e.Expected, e.Actual)
}
