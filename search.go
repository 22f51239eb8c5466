package memvec

import (
	"github.com/hupe1980/memvec/internal/queue"
)

// greedyDescend walks layers from..to (inclusive, downward) with a width-1
// greedy search, always moving to the nearest reachable neighbor. It returns
// the final cursor slot and its distance to the query.
func (g *graph) greedyDescend(query []float32, curr uint32, currDist float32, from, to int) (uint32, float32) {
	for layer := from; layer >= to; layer-- {
		for changed := true; changed; {
			changed = false
			for _, next := range g.nodes[curr].neighbors(layer) {
				if d := g.dist(query, next); d < currDist {
					curr = next
					currDist = d
					changed = true
				}
			}
		}
	}
	return curr, currDist
}

// searchLayer runs a best-first traversal within a single layer and returns
// up to ef candidates as a max-queue (worst on top), each reachable from the
// entry slot.
//
// A min-queue holds unexpanded candidates and a bounded max-queue holds the
// current best ef results. Traversal stops once the closest unexpanded
// candidate is farther than the worst kept result and the result set is full.
func (g *graph) searchLayer(query []float32, entry uint32, entryDist float32, layer, ef int) *queue.PriorityQueue {
	sc := g.scratch.Get().(*searchScratch)
	defer g.scratch.Put(sc)

	sc.visited.Reset()
	sc.visited.Visit(entry)

	candidates := sc.candidates
	candidates.Reset()
	candidates.Push(queue.Item{Slot: entry, Distance: entryDist})

	results := queue.NewMax(ef + 1)
	results.Push(queue.Item{Slot: entry, Distance: entryDist})

	for candidates.Len() > 0 {
		curr, _ := candidates.Pop()

		if worst, ok := results.Top(); ok && curr.Distance > worst.Distance && results.Len() >= ef {
			break
		}

		for _, next := range g.nodes[curr.Slot].neighbors(layer) {
			if sc.visited.Visited(next) {
				continue
			}
			sc.visited.Visit(next)

			d := g.dist(query, next)

			// Skip candidates that cannot improve a full result set. This
			// reduces heap churn without changing the inclusion semantics.
			if results.Len() >= ef {
				if worst, _ := results.Top(); d > worst.Distance {
					continue
				}
			}

			candidates.Push(queue.Item{Slot: next, Distance: d})
			results.Push(queue.Item{Slot: next, Distance: d})
			if results.Len() > ef {
				results.Pop()
			}
		}
	}

	return results
}

// selectNeighbors drains the candidate queue and keeps the m closest slots,
// ordered ascending by distance. Membership is deterministic for identical
// inputs: the purely-closest heuristic, no diversity re-ranking.
func (g *graph) selectNeighbors(cands *queue.PriorityQueue, m int) []uint32 {
	for cands.Len() > m {
		cands.Pop()
	}

	res := make([]uint32, cands.Len())
	for i := len(res) - 1; i >= 0; i-- {
		item, _ := cands.Pop()
		res[i] = item.Slot
	}
	return res
}

// knnSearch descends to layer 0 and collects the k nearest matches with
// similarity >= threshold, ordered by descending similarity.
func (g *graph) knnSearch(query []float32, k, ef int, threshold float32) []SearchResult {
	curr := g.entrySlot
	currDist := g.dist(query, curr)

	if g.maxLevel > 0 {
		curr, currDist = g.greedyDescend(query, curr, currDist, g.maxLevel, 1)
	}

	results := g.searchLayer(query, curr, currDist, 0, ef)

	// Max-queue pops worst first; filling backwards yields ascending distance,
	// i.e. descending similarity.
	ordered := make([]queue.Item, results.Len())
	for i := results.Len() - 1; i >= 0; i-- {
		ordered[i], _ = results.Pop()
	}

	out := make([]SearchResult, 0, min(k, len(ordered)))
	for _, item := range ordered {
		sim := 1 - item.Distance
		if sim < threshold {
			break // ascending distance: no later match can pass either
		}
		out = append(out, SearchResult{
			ID:         g.nodes[item.Slot].id,
			Distance:   item.Distance,
			Similarity: sim,
		})
		if len(out) == k {
			break
		}
	}

	return out
}
