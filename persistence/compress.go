package persistence

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressionType defines the compression algorithm for blob payloads.
type CompressionType uint8

const (
	// CompressionNone stores payloads uncompressed.
	CompressionNone CompressionType = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 CompressionType = 1
	// CompressionZSTD uses ZSTD compression (better ratio).
	CompressionZSTD CompressionType = 2
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

func (c CompressionType) valid() bool {
	return c <= CompressionZSTD
}

// ZSTD encoder/decoder pools for efficiency.
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// payloadHeaderSize prefixes every stored payload:
// [UncompressedSize uint32][CompressedSize uint32][Data...]
// CompressedSize == 0 means the data is stored uncompressed.
const payloadHeaderSize = 8

// compressPayload compresses data with the given algorithm. Incompressible
// payloads (ratio > 0.9) are stored uncompressed behind the same header.
func compressPayload(data []byte, typ CompressionType) ([]byte, error) {
	var compressed []byte
	var err error

	switch typ {
	case CompressionNone:
		// stored as-is below
	case CompressionLZ4:
		compressed, err = compressLZ4(data)
	case CompressionZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, fmt.Errorf("unsupported compression type: %s", typ)
	}

	if err != nil {
		return nil, err
	}

	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		result := make([]byte, payloadHeaderSize+len(data))
		binary.LittleEndian.PutUint32(result[0:], uint32(len(data)))
		binary.LittleEndian.PutUint32(result[4:], 0)
		copy(result[payloadHeaderSize:], data)
		return result, nil
	}

	result := make([]byte, payloadHeaderSize+len(compressed))
	binary.LittleEndian.PutUint32(result[0:], uint32(len(data)))
	binary.LittleEndian.PutUint32(result[4:], uint32(len(compressed)))
	copy(result[payloadHeaderSize:], compressed)
	return result, nil
}

func compressLZ4(data []byte) ([]byte, error) {
	compressed := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // incompressible
	}
	return compressed[:n], nil
}

// decompressPayload reverses compressPayload.
func decompressPayload(data []byte, typ CompressionType) ([]byte, error) {
	if len(data) < payloadHeaderSize {
		return nil, fmt.Errorf("%w: payload shorter than header", ErrTruncated)
	}

	uncompressedSize := binary.LittleEndian.Uint32(data[0:])
	compressedSize := binary.LittleEndian.Uint32(data[4:])

	if compressedSize == 0 {
		if uint64(len(data)) < payloadHeaderSize+uint64(uncompressedSize) {
			return nil, fmt.Errorf("%w: stored payload shorter than declared", ErrTruncated)
		}
		return data[payloadHeaderSize : payloadHeaderSize+uncompressedSize], nil
	}

	if uint64(len(data)) < payloadHeaderSize+uint64(compressedSize) {
		return nil, fmt.Errorf("%w: compressed payload shorter than declared", ErrTruncated)
	}
	compressedData := data[payloadHeaderSize : payloadHeaderSize+compressedSize]

	switch typ {
	case CompressionLZ4:
		result := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(compressedData, result)
		if err != nil {
			return nil, err
		}
		if uint32(n) != uncompressedSize {
			return nil, fmt.Errorf("decompressed size mismatch: expected %d, got %d", uncompressedSize, n)
		}
		return result, nil

	case CompressionZSTD:
		dec := getZstdDecoder()
		decoded, err := dec.DecodeAll(compressedData, make([]byte, 0, uncompressedSize))
		zstdDecoderPool.Put(dec)
		if err != nil {
			return nil, err
		}
		if uint32(len(decoded)) != uncompressedSize {
			return nil, fmt.Errorf("decompressed size mismatch: expected %d, got %d", uncompressedSize, len(decoded))
		}
		return decoded, nil

	default:
		return nil, fmt.Errorf("unsupported compression type: %s", typ)
	}
}
