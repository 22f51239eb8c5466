package memvec

import (
	"context"
	"sync"
)

// Safe wraps an Index with a read-write lock, allowing concurrent Search,
// Size and Contains calls alongside exclusive Add, Remove and Clear.
//
// Use this when the index is shared between goroutines; a single owning
// goroutine does not need it.
type Safe struct {
	mu  sync.RWMutex
	idx *Index
}

// NewSafe wraps idx. The wrapped index must not be used directly afterwards.
func NewSafe(idx *Index) *Safe {
	return &Safe{idx: idx}
}

// Init sets the vector dimension. See Index.Init.
func (s *Safe) Init(dimension int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.idx.Init(dimension)
}

// Add inserts or overwrites a vector. See Index.Add.
func (s *Safe) Add(ctx context.Context, id string, vector []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.idx.Add(ctx, id, vector)
}

// AddBatch inserts multiple entries. See Index.AddBatch.
func (s *Safe) AddBatch(ctx context.Context, entries []Entry) []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.idx.AddBatch(ctx, entries)
}

// Remove deletes a vector. See Index.Remove.
func (s *Safe) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.idx.Remove(ctx, id)
}

// Clear resets the index. See Index.Clear.
func (s *Safe) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idx.Clear()
}

// Search returns ranked matches. See Index.Search.
func (s *Safe) Search(ctx context.Context, query []float32, k int, optFns ...func(o *SearchOptions)) ([]SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idx.Search(ctx, query, k, optFns...)
}

// Size returns the number of live vectors.
func (s *Safe) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idx.Size()
}

// Contains reports whether the given id is present.
func (s *Safe) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idx.Contains(id)
}

// Dimension returns the configured vector dimension.
func (s *Safe) Dimension() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idx.Dimension()
}

// Stats returns a snapshot of graph statistics.
func (s *Safe) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idx.Stats()
}
