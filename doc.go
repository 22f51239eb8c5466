// Package memvec provides an ephemeral, in-process approximate nearest
// neighbor (ANN) index for Go, backed by a Hierarchical Navigable Small World
// (HNSW) graph over cosine distance.
//
// Vectors are keyed by string id, held entirely in memory and never
// persisted: the index is built for session-scoped similarity search where
// embeddings are cheap to recompute.
//
// # Quick Start
//
//	ctx := context.Background()
//
//	idx := memvec.New(func(o *memvec.Options) {
//	    o.M = 16
//	    o.EFConstruction = 200
//	})
//	if err := idx.Init(384); err != nil {
//	    panic(err)
//	}
//
//	_ = idx.Add(ctx, "doc-1", embedding)
//
//	results, err := idx.Search(ctx, query, 10, func(o *memvec.SearchOptions) {
//	    o.Threshold = 0.7
//	})
//
// Results are ordered by descending cosine similarity and filtered by the
// similarity threshold (default 0.5).
//
// # Concurrency
//
// An Index is not internally synchronized. Keep all mutation on a single
// goroutine, or wrap the index in a Safe, which allows concurrent searches
// alongside exclusive writes:
//
//	safe := memvec.NewSafe(idx)
//
// # Limitations
//
//   - Re-adding an existing id overwrites its vector in place without
//     recomputing level or edges; after a large vector change, Remove and
//     re-Add to rebuild connectivity.
//   - Remove strips edges without adding compensating links, so heavy
//     removal can degrade graph reachability.
//   - Search is approximate; exact results are not guaranteed.
package memvec
