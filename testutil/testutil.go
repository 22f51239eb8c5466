// Package testutil provides deterministic vector generators and exact-search
// ground truth helpers for tests and benchmarks.
package testutil

import (
	"math"
	"math/rand"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/memvec/distance"
)

// SearchResult is an exact-search result: the index of a vector in the input
// set and its cosine distance to the query.
type SearchResult struct {
	Index    int
	Distance float32
}

// RNG encapsulates a seeded random number generator. It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// UniformVectors generates random vectors with values in range [0, 1).
// Uses a single backing array for efficiency.
func (r *RNG) UniformVectors(num, dimensions int) [][]float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float32, num*dimensions)
	vectors := make([][]float32, num)

	for i := 0; i < num; i++ {
		vec := data[i*dimensions : (i+1)*dimensions]
		for j := range vec {
			vec[j] = r.rand.Float32()
		}
		vectors[i] = vec
	}

	return vectors
}

// UnitVectors generates L2-normalized random vectors (on the hypersphere).
// Uses Gaussian coordinates for a uniform distribution on the sphere.
func (r *RNG) UnitVectors(num, dimensions int) [][]float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float32, num*dimensions)
	vectors := make([][]float32, num)

	for i := 0; i < num; i++ {
		vec := data[i*dimensions : (i+1)*dimensions]
		var norm float64
		for j := range vec {
			v := r.rand.NormFloat64()
			vec[j] = float32(v)
			norm += v * v
		}

		if norm == 0 {
			norm = 1
		}

		inv := float32(1.0 / math.Sqrt(norm))
		for j := range vec {
			vec[j] *= inv
		}
		vectors[i] = vec
	}

	return vectors
}

// UnitVector generates a single L2-normalized random vector.
func (r *RNG) UnitVector(dimensions int) []float32 {
	return r.UnitVectors(1, dimensions)[0]
}

// BruteForceSearch performs exact cosine search over vectors for ground truth.
func BruteForceSearch(vectors [][]float32, query []float32, k int) []SearchResult {
	results := make([]SearchResult, len(vectors))
	for i, v := range vectors {
		results[i] = SearchResult{Index: i, Distance: distance.Cosine(query, v)}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})

	if len(results) > k {
		results = results[:k]
	}
	return results
}

// GroundTruth computes exact top-k results for every query, fanning out
// across CPUs.
func GroundTruth(vectors, queries [][]float32, k int) [][]SearchResult {
	out := make([][]SearchResult, len(queries))

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			out[i] = BruteForceSearch(vectors, q, k)
			return nil
		})
	}
	_ = g.Wait() // workers never fail

	return out
}

// ComputeRecall computes recall@k: the fraction of ground-truth indexes that
// appear in the approximate result set.
func ComputeRecall(groundTruth, approximate []int) float64 {
	if len(groundTruth) == 0 {
		return 1.0
	}

	truthSet := make(map[int]struct{}, len(groundTruth))
	for _, idx := range groundTruth {
		truthSet[idx] = struct{}{}
	}

	hits := 0
	for _, idx := range approximate {
		if _, ok := truthSet[idx]; ok {
			hits++
		}
	}

	return float64(hits) / float64(len(groundTruth))
}
