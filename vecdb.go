package vecdb

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/vecdb/codec"
	"github.com/hupe1980/vecdb/distance"
	"github.com/hupe1980/vecdb/internal/queue"
	"github.com/hupe1980/vecdb/persistence"
)

// Record is the metadata stored alongside an embedding.
type Record struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Source string `json:"source"`
	Row    string `json:"row"`
}

// SearchResult is one ranked query match.
type SearchResult struct {
	Record     Record
	Similarity float32
	Embedding  []float32
}

// Store is an embedded vector store. It keeps two positionally aligned
// sequences (embeddings and records) plus an id index, all guarded by a
// single readers-writer lock.
type Store struct {
	mu         sync.RWMutex
	embeddings [][]float32
	records    []Record
	byID       map[string]int
	sources    *sourceIndex

	// dimension is 0 until fixed by WithDimension or the first Add.
	dimension int
	fixedDim  bool

	codec       codec.Codec
	compression persistence.CompressionType
	looseDim    bool
	logger      *Logger
	metrics     MetricsCollector
}

// New creates an empty Store.
func New(optFns ...Option) *Store {
	opts := applyOptions(optFns)

	return &Store{
		byID:        make(map[string]int),
		sources:     newSourceIndex(),
		dimension:   opts.dimension,
		fixedDim:    opts.dimension > 0,
		codec:       opts.codec,
		compression: opts.compression,
		looseDim:    opts.looseDimensions,
		logger:      opts.logger,
		metrics:     opts.metricsCollector,
	}
}

// Add appends an embedding with its metadata and returns the generated
// identifier. The embedding is copied; text, source and row are opaque to
// the store.
func (s *Store) Add(ctx context.Context, embedding []float32, text, source, row string) (id string, err error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordAdd(time.Since(start), err)
		s.logger.LogAdd(ctx, id, len(embedding), err)
	}()

	if err = ctx.Err(); err != nil {
		return "", err
	}
	if len(embedding) == 0 {
		return "", ErrEmptyVector
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.looseDim {
		if s.dimension == 0 {
			s.dimension = len(embedding)
		} else if len(embedding) != s.dimension {
			return "", &ErrDimensionMismatch{Expected: s.dimension, Actual: len(embedding)}
		}
	}

	id = uuid.NewString()
	position := len(s.records)

	s.embeddings = append(s.embeddings, slices.Clone(embedding))
	s.records = append(s.records, Record{ID: id, Text: text, Source: source, Row: row})
	s.byID[id] = position
	s.sources.add(source, position)

	return id, nil
}

// QueryOption narrows a query.
type QueryOption func(*queryOptions)

type queryOptions struct {
	sources []string
}

// WithSources restricts a query to records whose Source equals one of the
// given values.
func WithSources(sources ...string) QueryOption {
	return func(o *queryOptions) {
		o.sources = append(o.sources, sources...)
	}
}

// Query ranks every stored embedding by cosine similarity against the
// query vector and returns the best k matches: descending similarity, ties
// broken by insertion order (earlier record first). Fewer than k results
// are returned when the (possibly filtered) collection is smaller.
//
// Zero-norm vectors — stored or query — score similarity 0.
func (s *Store) Query(ctx context.Context, embedding []float32, k int, optFns ...QueryOption) (results []SearchResult, err error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordQuery(k, time.Since(start), err)
		s.logger.LogQuery(ctx, k, len(results), err)
	}()

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	var opts queryOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if k <= 0 {
		return nil, ErrInvalidK
	}
	if len(s.records) == 0 {
		return nil, ErrEmptyStore
	}
	if dim := s.storedDimension(); len(embedding) != dim {
		return nil, &ErrDimensionMismatch{Expected: dim, Actual: len(embedding)}
	}

	queryNorm := distance.Norm(embedding)
	top := queue.NewTopK(k)

	// With loose dimensions the collection can hold ragged rows; each row
	// is checked before the kernels touch it.
	score := func(position int) error {
		vec := s.embeddings[position]
		if len(vec) != len(embedding) {
			return &ErrDimensionMismatch{Expected: len(vec), Actual: len(embedding)}
		}
		sim := distance.CosineWithNorms(embedding, vec, queryNorm, distance.Norm(vec))
		top.Offer(queue.Item{Position: position, Similarity: sim})
		return nil
	}

	if len(opts.sources) > 0 {
		it := s.sources.positions(opts.sources).Iterator()
		for it.HasNext() {
			if err = score(int(it.Next())); err != nil {
				return nil, err
			}
		}
	} else {
		for position := range s.embeddings {
			if err = score(position); err != nil {
				return nil, err
			}
		}
	}

	ranked := top.Results()
	results = make([]SearchResult, len(ranked))
	for i, item := range ranked {
		results[i] = SearchResult{
			Record:     s.records[item.Position],
			Similarity: item.Similarity,
			Embedding:  slices.Clone(s.embeddings[item.Position]),
		}
	}
	return results, nil
}

// Delete removes the record with the given id. Every later record shifts
// down one position; identifiers remain valid handles.
func (s *Store) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordDelete(time.Since(start), err)
		s.logger.LogDelete(ctx, id, err)
	}()

	if err = ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	position, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("%w: id %q", ErrNotFound, id)
	}

	s.embeddings = slices.Delete(s.embeddings, position, position+1)
	s.records = slices.Delete(s.records, position, position+1)

	delete(s.byID, id)
	for i := position; i < len(s.records); i++ {
		s.byID[s.records[i].ID] = i
	}
	s.sources.rebuild(s.records)

	if len(s.records) == 0 && !s.fixedDim {
		s.dimension = 0
	}
	return nil
}

// Drop removes all records unconditionally.
func (s *Store) Drop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.embeddings = nil
	s.records = nil
	s.byID = make(map[string]int)
	s.sources.reset()
	if !s.fixedDim {
		s.dimension = 0
	}
}

// Get looks up a record by position or identifier and returns a copy of
// its embedding together with its metadata.
func (s *Store) Get(key Key) ([]float32, Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var position int
	switch key.kind {
	case keyIndex:
		if key.index < 0 || key.index >= len(s.records) {
			return nil, Record{}, &ErrOutOfRange{Index: key.index, Length: len(s.records)}
		}
		position = key.index
	case keyID:
		p, ok := s.byID[key.id]
		if !ok {
			return nil, Record{}, fmt.Errorf("%w: id %q", ErrNotFound, key.id)
		}
		position = p
	default:
		return nil, Record{}, ErrInvalidKey
	}

	return slices.Clone(s.embeddings[position]), s.records[position], nil
}

// Len returns the current record count.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

// Dimension returns the embedding dimensionality, or 0 if the store is
// empty and no dimension was configured.
func (s *Store) Dimension() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.storedDimension()
}

// storedDimension returns the effective dimension under the read lock.
// With loose dimensions the first stored row is authoritative.
func (s *Store) storedDimension() int {
	if s.dimension > 0 {
		return s.dimension
	}
	if len(s.embeddings) > 0 {
		return len(s.embeddings[0])
	}
	return 0
}
