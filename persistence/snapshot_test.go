package persistence

import (
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddingsRoundTrip(t *testing.T) {
	rows := [][]float32{
		{1, 0, 0.5},
		{0, 1, -0.25},
		{0.7071, 0.7071, 0},
	}

	for _, typ := range []CompressionType{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(typ.String(), func(t *testing.T) {
			blob, err := EncodeEmbeddings(rows, 3, typ)
			require.NoError(t, err)

			got, dim, err := DecodeEmbeddings(blob)
			require.NoError(t, err)
			assert.Equal(t, 3, dim)
			assert.Equal(t, rows, got)
		})
	}
}

func TestEncodeEmbeddingsRaggedRow(t *testing.T) {
	_, err := EncodeEmbeddings([][]float32{{1, 2}, {3}}, 2, CompressionNone)
	require.Error(t, err)
}

func TestDecodeEmbeddingsCorruption(t *testing.T) {
	blob, err := EncodeEmbeddings([][]float32{{1, 2}, {3, 4}}, 2, CompressionNone)
	require.NoError(t, err)

	t.Run("FlippedPayloadByte", func(t *testing.T) {
		bad := append([]byte(nil), blob...)
		bad[len(bad)-1] ^= 0xFF

		_, _, err := DecodeEmbeddings(bad)
		var mismatch *ChecksumMismatchError
		require.ErrorAs(t, err, &mismatch)
	})

	t.Run("Truncated", func(t *testing.T) {
		_, _, err := DecodeEmbeddings(blob[:len(blob)-5])
		require.Error(t, err)
	})

	t.Run("ShorterThanHeader", func(t *testing.T) {
		_, _, err := DecodeEmbeddings(blob[:8])
		require.ErrorIs(t, err, ErrTruncated)
	})

	t.Run("BadMagic", func(t *testing.T) {
		bad := append([]byte(nil), blob...)
		bad[0] = 'X'

		_, _, err := DecodeEmbeddings(bad)
		require.ErrorIs(t, err, ErrInvalidMagic)
	})

	t.Run("BadVersion", func(t *testing.T) {
		bad := append([]byte(nil), blob...)
		bad[4] = 0xFF

		_, _, err := DecodeEmbeddings(bad)
		require.ErrorIs(t, err, ErrInvalidVersion)
	})

	// The count and dim header fields are not covered by the payload
	// checksum, so a valid-looking blob can still declare a garbage shape.
	// Decoding must fail before sizing any allocation on those fields.

	t.Run("HugeCount", func(t *testing.T) {
		bad := append([]byte(nil), blob...)
		binary.LittleEndian.PutUint64(bad[8:], 1<<62)
		binary.LittleEndian.PutUint32(bad[16:], 1)

		_, _, err := DecodeEmbeddings(bad)
		require.ErrorIs(t, err, ErrTruncated)
	})

	t.Run("ZeroDimNonzeroCount", func(t *testing.T) {
		bad := append([]byte(nil), blob...)
		binary.LittleEndian.PutUint32(bad[16:], 0)

		_, _, err := DecodeEmbeddings(bad)
		require.ErrorIs(t, err, ErrTruncated)
	})

	t.Run("CountDisagreesWithPayload", func(t *testing.T) {
		bad := append([]byte(nil), blob...)
		binary.LittleEndian.PutUint64(bad[8:], 3)

		_, _, err := DecodeEmbeddings(bad)
		require.ErrorIs(t, err, ErrTruncated)
	})

	t.Run("ZeroCountNonemptyPayload", func(t *testing.T) {
		bad := append([]byte(nil), blob...)
		binary.LittleEndian.PutUint64(bad[8:], 0)

		_, _, err := DecodeEmbeddings(bad)
		require.ErrorIs(t, err, ErrTruncated)
	})
}

func TestEmbeddingsEmpty(t *testing.T) {
	blob, err := EncodeEmbeddings(nil, 0, CompressionNone)
	require.NoError(t, err)

	rows, dim, err := DecodeEmbeddings(blob)
	require.NoError(t, err)
	assert.Equal(t, 0, dim)
	assert.Empty(t, rows)
}

func TestMetadataRoundTrip(t *testing.T) {
	encoded := []byte(`[{"id":"a","text":"hello","source":"s.csv","row":"1"}]`)

	for _, typ := range []CompressionType{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(typ.String(), func(t *testing.T) {
			blob, err := EncodeMetadata(encoded, 1, "json", typ)
			require.NoError(t, err)

			got, count, name, err := DecodeMetadata(blob)
			require.NoError(t, err)
			assert.Equal(t, uint64(1), count)
			assert.Equal(t, "json", name)
			assert.Equal(t, encoded, got)
		})
	}
}

func TestDecodeMetadataCorruption(t *testing.T) {
	blob, err := EncodeMetadata([]byte(`[]`), 0, "json", CompressionNone)
	require.NoError(t, err)

	t.Run("FlippedPayloadByte", func(t *testing.T) {
		bad := append([]byte(nil), blob...)
		bad[len(bad)-1] ^= 0xFF

		_, _, _, err := DecodeMetadata(bad)
		var mismatch *ChecksumMismatchError
		require.ErrorAs(t, err, &mismatch)
	})

	t.Run("BadMagic", func(t *testing.T) {
		bad := append([]byte(nil), blob...)
		bad[0] = 'X'

		_, _, _, err := DecodeMetadata(bad)
		require.ErrorIs(t, err, ErrInvalidMagic)
	})
}

func TestCompressionIncompressiblePayload(t *testing.T) {
	// High-entropy data exercises the stored-uncompressed fallback path.
	raw := make([]byte, 1024)
	r := rand.New(rand.NewSource(42))
	r.Read(raw)

	for _, typ := range []CompressionType{CompressionLZ4, CompressionZSTD} {
		payload, err := compressPayload(raw, typ)
		require.NoError(t, err)

		got, err := decompressPayload(payload, typ)
		require.NoError(t, err)
		assert.Equal(t, raw, got)
	}
}
