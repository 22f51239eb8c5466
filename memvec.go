package memvec

import (
	"context"
	"time"
)

// SearchResult represents a single ranked match.
type SearchResult struct {
	// ID is the external key of the matched vector.
	ID string

	// Distance is the cosine distance between the query and the match.
	Distance float32

	// Similarity is 1 - Distance.
	Similarity float32
}

// Entry is a single item for AddBatch.
type Entry struct {
	ID     string
	Vector []float32
}

// Index is an ephemeral, in-process approximate nearest neighbor index backed
// by a Hierarchical Navigable Small World (HNSW) graph over cosine distance.
//
// An Index must be initialized with Init before any other call. It is not
// internally synchronized: concurrent Add/Remove with any other operation is
// undefined behavior. Wrap it in a Safe for lock-based serialization, or keep
// all mutation on a single goroutine.
type Index struct {
	opts    Options
	logger  *Logger
	metrics MetricsCollector
	graph   *graph // nil until Init
}

// New creates a new Index. The index is unusable until Init sets the vector
// dimension.
func New(optFns ...func(o *Options)) *Index {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.M < minimumM {
		opts.M = minimumM
	}
	if opts.EFConstruction <= 0 {
		opts.EFConstruction = DefaultEFConstruction
	}
	if opts.EFSearch <= 0 {
		opts.EFSearch = DefaultEFSearch
	}

	logger := opts.Logger
	if logger == nil {
		logger = NoopLogger()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}

	return &Index{
		opts:    opts,
		logger:  logger,
		metrics: metrics,
	}
}

// Init sets the immutable vector dimension and makes the index operational.
// It must precede all other calls and may only be called once.
func (idx *Index) Init(dimension int) error {
	if idx.graph != nil {
		return ErrAlreadyInitialized
	}
	if dimension <= 0 {
		return &ErrInvalidDimension{Dimension: dimension}
	}

	idx.graph = newGraph(dimension, idx.opts)
	idx.logger.LogInit(dimension)

	return nil
}

// Add inserts a vector under the given id. If the id already exists, only its
// vector is overwritten in place; level and edges are not recomputed.
//
// Fails with ErrDimensionMismatch if the vector length disagrees with the
// configured dimension; nothing is mutated on failure.
func (idx *Index) Add(ctx context.Context, id string, vector []float32) error {
	start := time.Now()
	err := idx.add(ctx, id, vector)
	idx.metrics.RecordAdd(time.Since(start), err)
	idx.logger.LogAdd(ctx, id, len(vector), err)
	return err
}

func (idx *Index) add(ctx context.Context, id string, vector []float32) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if idx.graph == nil {
		return ErrNotInitialized
	}
	return idx.graph.add(id, vector)
}

// AddBatch inserts multiple entries sequentially and returns one error slot
// per entry (nil on success).
func (idx *Index) AddBatch(ctx context.Context, entries []Entry) []error {
	start := time.Now()

	errs := make([]error, len(entries))
	failed := 0
	for i, e := range entries {
		if err := idx.add(ctx, e.ID, e.Vector); err != nil {
			errs[i] = err
			failed++
		}
	}

	idx.metrics.RecordAddBatch(len(entries), failed, time.Since(start))
	idx.logger.LogAddBatch(ctx, len(entries), failed)

	return errs
}

// Remove deletes the vector with the given id, stripping it from every
// neighbor's adjacency set. Removing an absent id is a no-op, not an error.
func (idx *Index) Remove(ctx context.Context, id string) error {
	start := time.Now()
	err := idx.remove(ctx, id)
	idx.metrics.RecordRemove(time.Since(start), err)
	idx.logger.LogRemove(ctx, id, err)
	return err
}

func (idx *Index) remove(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if idx.graph == nil {
		return ErrNotInitialized
	}
	idx.graph.remove(id)
	return nil
}

// Search returns at most k matches with similarity >= threshold (default
// 0.5), ordered by descending similarity. Searching an empty index returns an
// empty result, not an error.
func (idx *Index) Search(ctx context.Context, query []float32, k int, optFns ...func(o *SearchOptions)) ([]SearchResult, error) {
	start := time.Now()
	results, err := idx.search(ctx, query, k, optFns...)
	idx.metrics.RecordSearch(k, time.Since(start), err)
	idx.logger.LogSearch(ctx, k, len(results), err)
	return results, err
}

func (idx *Index) search(ctx context.Context, query []float32, k int, optFns ...func(o *SearchOptions)) ([]SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if idx.graph == nil {
		return nil, ErrNotInitialized
	}
	if k <= 0 {
		return nil, ErrInvalidK
	}

	g := idx.graph
	if len(query) != g.dimension {
		return nil, &ErrDimensionMismatch{Expected: g.dimension, Actual: len(query)}
	}

	opts := DefaultSearchOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if !g.hasEntry {
		return []SearchResult{}, nil
	}

	ef := opts.EF
	if ef <= 0 {
		ef = idx.opts.EFSearch
	}
	if ef < k {
		ef = k
	}

	return g.knnSearch(query, k, ef, opts.Threshold), nil
}

// Clear drops every vector and resets the index to its empty state. The
// configured dimension is kept. Clear is idempotent and a no-op before Init.
func (idx *Index) Clear() {
	if idx.graph == nil {
		return
	}
	idx.graph.clear()
	idx.logger.LogClear()
}

// Size returns the number of live vectors in the index.
func (idx *Index) Size() int {
	if idx.graph == nil {
		return 0
	}
	return idx.graph.size()
}

// Contains reports whether the given id is present.
func (idx *Index) Contains(id string) bool {
	if idx.graph == nil {
		return false
	}
	return idx.graph.contains(id)
}

// Dimension returns the configured vector dimension, or 0 before Init.
func (idx *Index) Dimension() int {
	if idx.graph == nil {
		return 0
	}
	return idx.graph.dimension
}
