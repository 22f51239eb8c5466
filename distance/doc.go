// Package distance provides vector distance and similarity calculations
// for float32 vectors.
//
// All kernels accumulate in float64 so that results stay stable for
// high-dimensional vectors, then truncate to float32.
package distance
