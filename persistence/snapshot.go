package persistence

import (
	"encoding/binary"
	"fmt"
	"math"
)

// EncodeEmbeddings serializes the embeddings matrix into a blob. Every row
// must have length dim; rows are stored row-major as little-endian float32.
func EncodeEmbeddings(rows [][]float32, dim int, typ CompressionType) ([]byte, error) {
	if !typ.valid() {
		return nil, fmt.Errorf("unsupported compression type: %s", typ)
	}

	raw := make([]byte, 0, len(rows)*dim*4)
	var scratch [4]byte
	for i, row := range rows {
		if len(row) != dim {
			return nil, fmt.Errorf("row %d has dimension %d, want %d", i, len(row), dim)
		}
		for _, x := range row {
			binary.LittleEndian.PutUint32(scratch[:], math.Float32bits(x))
			raw = append(raw, scratch[:]...)
		}
	}

	payload, err := compressPayload(raw, typ)
	if err != nil {
		return nil, err
	}

	blob := make([]byte, embeddingsHeaderSize+len(payload))
	binary.LittleEndian.PutUint32(blob[0:], EmbeddingsMagic)
	binary.LittleEndian.PutUint32(blob[4:], Version)
	binary.LittleEndian.PutUint64(blob[8:], uint64(len(rows)))
	binary.LittleEndian.PutUint32(blob[16:], uint32(dim))
	blob[20] = byte(typ)
	binary.LittleEndian.PutUint32(blob[24:], Checksum(payload))
	copy(blob[embeddingsHeaderSize:], payload)
	return blob, nil
}

// DecodeEmbeddings parses an embeddings blob and returns the matrix and its
// dimension. The payload checksum is verified before decoding.
func DecodeEmbeddings(blob []byte) ([][]float32, int, error) {
	if len(blob) < embeddingsHeaderSize {
		return nil, 0, fmt.Errorf("%w: embeddings blob shorter than header", ErrTruncated)
	}
	if binary.LittleEndian.Uint32(blob[0:]) != EmbeddingsMagic {
		return nil, 0, fmt.Errorf("%w: not an embeddings blob", ErrInvalidMagic)
	}
	if v := binary.LittleEndian.Uint32(blob[4:]); v != Version {
		return nil, 0, fmt.Errorf("%w: 0x%08x", ErrInvalidVersion, v)
	}

	count := binary.LittleEndian.Uint64(blob[8:])
	dim := int(binary.LittleEndian.Uint32(blob[16:]))
	typ := CompressionType(blob[20])
	sum := binary.LittleEndian.Uint32(blob[24:])

	payload := blob[embeddingsHeaderSize:]
	if err := VerifyChecksum(payload, sum); err != nil {
		return nil, 0, err
	}

	raw, err := decompressPayload(payload, typ)
	if err != nil {
		return nil, 0, err
	}
	// The count and dim fields are outside the checksummed payload, so
	// they may hold garbage. Validate with overflow-safe division before
	// sizing any allocation on them.
	if count > 0 && dim == 0 {
		return nil, 0, fmt.Errorf("%w: embeddings header declares %d rows of dimension 0", ErrTruncated, count)
	}
	if count == 0 {
		if len(raw) != 0 {
			return nil, 0, fmt.Errorf("%w: embeddings payload holds %d bytes for 0 rows", ErrTruncated, len(raw))
		}
	} else if rowSize := uint64(dim) * 4; count != uint64(len(raw))/rowSize || uint64(len(raw))%rowSize != 0 {
		return nil, 0, fmt.Errorf("%w: embeddings payload holds %d bytes for %d rows of dimension %d", ErrTruncated, len(raw), count, dim)
	}

	rows := make([][]float32, count)
	off := 0
	for i := range rows {
		row := make([]float32, dim)
		for j := range row {
			row[j] = math.Float32frombits(binary.LittleEndian.Uint32(raw[off:]))
			off += 4
		}
		rows[i] = row
	}
	return rows, dim, nil
}

// EncodeMetadata wraps a codec-encoded record sequence into a metadata blob.
// The codec name is embedded so the blob is self-describing on load.
func EncodeMetadata(encoded []byte, count uint64, codecName string, typ CompressionType) ([]byte, error) {
	if !typ.valid() {
		return nil, fmt.Errorf("unsupported compression type: %s", typ)
	}
	if len(codecName) == 0 || len(codecName) > 255 {
		return nil, fmt.Errorf("invalid codec name %q", codecName)
	}

	payload, err := compressPayload(encoded, typ)
	if err != nil {
		return nil, err
	}

	blob := make([]byte, metadataHeaderSize+len(codecName)+len(payload))
	binary.LittleEndian.PutUint32(blob[0:], MetadataMagic)
	binary.LittleEndian.PutUint32(blob[4:], Version)
	binary.LittleEndian.PutUint64(blob[8:], count)
	blob[16] = byte(typ)
	blob[17] = byte(len(codecName))
	binary.LittleEndian.PutUint32(blob[20:], Checksum(payload))
	copy(blob[metadataHeaderSize:], codecName)
	copy(blob[metadataHeaderSize+len(codecName):], payload)
	return blob, nil
}

// DecodeMetadata parses a metadata blob and returns the codec-encoded record
// sequence, the declared record count and the codec name.
func DecodeMetadata(blob []byte) (encoded []byte, count uint64, codecName string, err error) {
	if len(blob) < metadataHeaderSize {
		return nil, 0, "", fmt.Errorf("%w: metadata blob shorter than header", ErrTruncated)
	}
	if binary.LittleEndian.Uint32(blob[0:]) != MetadataMagic {
		return nil, 0, "", fmt.Errorf("%w: not a metadata blob", ErrInvalidMagic)
	}
	if v := binary.LittleEndian.Uint32(blob[4:]); v != Version {
		return nil, 0, "", fmt.Errorf("%w: 0x%08x", ErrInvalidVersion, v)
	}

	count = binary.LittleEndian.Uint64(blob[8:])
	typ := CompressionType(blob[16])
	nameLen := int(blob[17])
	sum := binary.LittleEndian.Uint32(blob[20:])

	if len(blob) < metadataHeaderSize+nameLen {
		return nil, 0, "", fmt.Errorf("%w: metadata blob shorter than codec name", ErrTruncated)
	}
	codecName = string(blob[metadataHeaderSize : metadataHeaderSize+nameLen])

	payload := blob[metadataHeaderSize+nameLen:]
	if err := VerifyChecksum(payload, sum); err != nil {
		return nil, 0, "", err
	}

	encoded, err = decompressPayload(payload, typ)
	if err != nil {
		return nil, 0, "", err
	}
	return encoded, count, codecName, nil
}
