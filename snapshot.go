package vecdb

import (
	"context"
	"fmt"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/vecdb/blobstore"
	"github.com/hupe1980/vecdb/codec"
	"github.com/hupe1980/vecdb/persistence"
)

// Save persists the collection to a directory as an embeddings blob and a
// metadata blob. Convenience wrapper around SaveTo with a local backend.
func (s *Store) Save(ctx context.Context, path string) error {
	return s.SaveTo(ctx, blobstore.NewLocalStore(path))
}

// Load replaces the in-memory collection with the one persisted at path.
// Convenience wrapper around LoadFrom with a local backend.
func (s *Store) Load(ctx context.Context, path string) error {
	return s.LoadFrom(ctx, blobstore.NewLocalStore(path))
}

// SaveTo persists the collection to the given blob store. The two blobs
// are written concurrently; each write is atomic, and on load the pair is
// cross-checked, so a failure here cannot produce a silently-corrupt
// snapshot.
func (s *Store) SaveTo(ctx context.Context, bs blobstore.Store) (err error) {
	start := time.Now()
	var count int
	defer func() {
		s.metrics.RecordSave(time.Since(start), err)
		s.logger.LogSnapshot(ctx, "save", count, err)
	}()

	if err = ctx.Err(); err != nil {
		return err
	}

	// Snapshot under the read lock, do I/O outside it. Rows are immutable
	// once stored, so cloning the outer slices is enough.
	s.mu.RLock()
	embeddings := slices.Clone(s.embeddings)
	records := slices.Clone(s.records)
	dim := s.storedDimension()
	s.mu.RUnlock()

	count = len(records)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		blob, err := persistence.EncodeEmbeddings(embeddings, dim, s.compression)
		if err != nil {
			return fmt.Errorf("encode embeddings: %w", err)
		}
		return bs.Put(ctx, persistence.EmbeddingsBlobName, blob)
	})

	g.Go(func() error {
		encoded, err := s.codec.Marshal(records)
		if err != nil {
			return fmt.Errorf("encode metadata: %w", err)
		}
		blob, err := persistence.EncodeMetadata(encoded, uint64(len(records)), s.codec.Name(), s.compression)
		if err != nil {
			return fmt.Errorf("encode metadata: %w", err)
		}
		return bs.Put(ctx, persistence.MetadataBlobName, blob)
	})

	err = g.Wait()
	return err
}

// LoadFrom replaces the in-memory collection with the one persisted in the
// given blob store. The embeddings and metadata blobs are verified against
// each other; any divergence fails with ErrCorruptStore and leaves the
// current collection untouched.
func (s *Store) LoadFrom(ctx context.Context, bs blobstore.Store) (err error) {
	start := time.Now()
	var count int
	defer func() {
		s.metrics.RecordLoad(time.Since(start), err)
		s.logger.LogSnapshot(ctx, "load", count, err)
	}()

	if err = ctx.Err(); err != nil {
		return err
	}

	var (
		embeddings [][]float32
		dim        int
		records    []Record
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		blob, err := bs.Get(gctx, persistence.EmbeddingsBlobName)
		if err == nil {
			embeddings, dim, err = persistence.DecodeEmbeddings(blob)
		}
		return translateLoadError(persistence.EmbeddingsBlobName, err)
	})

	g.Go(func() error {
		blob, err := bs.Get(gctx, persistence.MetadataBlobName)
		if err != nil {
			return translateLoadError(persistence.MetadataBlobName, err)
		}

		encoded, declared, codecName, err := persistence.DecodeMetadata(blob)
		if err != nil {
			return translateLoadError(persistence.MetadataBlobName, err)
		}

		c, ok := codec.ByName(codecName)
		if !ok {
			return translateLoadError(persistence.MetadataBlobName,
				fmt.Errorf("%w: %q", persistence.ErrUnknownCodec, codecName))
		}
		if err := c.Unmarshal(encoded, &records); err != nil {
			return corrupt("metadata blob undecodable", err)
		}
		if uint64(len(records)) != declared {
			return corrupt(fmt.Sprintf("metadata blob declares %d records but holds %d", declared, len(records)), nil)
		}
		return nil
	})

	if err = g.Wait(); err != nil {
		return err
	}

	if len(embeddings) != len(records) {
		err = corrupt(fmt.Sprintf("embeddings blob holds %d rows but metadata holds %d records", len(embeddings), len(records)), nil)
		return err
	}

	byID := make(map[string]int, len(records))
	for i, rec := range records {
		if _, dup := byID[rec.ID]; dup {
			err = corrupt(fmt.Sprintf("duplicate id %q", rec.ID), nil)
			return err
		}
		byID[rec.ID] = i
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fixedDim && len(records) > 0 && dim != s.dimension {
		err = &ErrDimensionMismatch{Expected: s.dimension, Actual: dim}
		return err
	}

	s.embeddings = embeddings
	s.records = records
	s.byID = byID
	s.sources.rebuild(records)
	if len(records) > 0 {
		s.dimension = dim
	} else if !s.fixedDim {
		s.dimension = 0
	}

	count = len(records)
	return nil
}
