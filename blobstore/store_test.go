package blobstore

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeContract exercises the behavior every Store implementation shares.
func storeContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("GetMissing", func(t *testing.T) {
		_, err := s.Get(ctx, "missing")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("PutGet", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "a.bin", []byte("hello")))

		data, err := s.Get(ctx, "a.bin")
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), data)
	})

	t.Run("PutOverwrites", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "a.bin", []byte("v2")))

		data, err := s.Get(ctx, "a.bin")
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), data)
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "b.bin", []byte("x")))

		names, err := s.List(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"a.bin", "b.bin"}, names)

		names, err = s.List(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, []string{"b.bin"}, names)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "a.bin"))

		_, err := s.Get(ctx, "a.bin")
		require.ErrorIs(t, err, ErrNotFound)

		// Deleting a missing blob is not an error.
		require.NoError(t, s.Delete(ctx, "a.bin"))
	})
}

func TestLocalStore(t *testing.T) {
	storeContract(t, NewLocalStore(t.TempDir()))
}

func TestLocalStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir)

	require.NoError(t, s.Put(context.Background(), "a.bin", []byte("data")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.bin", entries[0].Name())
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, NewMemoryStore())
}

func TestMemoryStoreCopiesData(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	src := []byte("abc")
	require.NoError(t, s.Put(ctx, "a", src))
	src[0] = 'X'

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	got[1] = 'Y'
	again, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestThrottledStore(t *testing.T) {
	inner := NewMemoryStore()
	s := NewThrottledStore(inner, ThrottledConfig{
		MaxConcurrent: 2,
		BytesPerSec:   1 << 20,
	})
	storeContract(t, s)
}

func TestThrottledStoreUnlimitedBytes(t *testing.T) {
	s := NewThrottledStore(NewMemoryStore(), ThrottledConfig{})
	storeContract(t, s)
}

func TestThrottledStoreCanceledContext(t *testing.T) {
	s := NewThrottledStore(NewMemoryStore(), ThrottledConfig{MaxConcurrent: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, s.Put(ctx, "a", []byte("x")))
}
