package memvec

import (
	"math"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/memvec/distance"
	"github.com/hupe1980/memvec/internal/queue"
	"github.com/hupe1980/memvec/internal/visited"
)

// searchScratch bundles the per-traversal working state. Instances are pooled
// so that concurrent searches never share a visited set or candidate heap.
type searchScratch struct {
	visited    *visited.Set
	candidates *queue.PriorityQueue
}

// graph holds the mutable state of the HNSW index: the slot arena, the
// external-id lookup table, the entry point and the max layer.
//
// The graph is not internally synchronized. Callers must serialize mutation;
// see Safe for a lock-based wrapper.
type graph struct {
	dimension       int
	m               int
	efConstruction  int
	levelMultiplier float64
	rng             *rand.Rand

	nodes    []*node           // slot arena; removed slots are nil until reused
	lookup   map[string]uint32 // external id -> slot
	live     *roaring.Bitmap   // slots currently holding a live node
	freeList []uint32          // tombstoned slots available for reuse

	entrySlot uint32
	hasEntry  bool
	maxLevel  int

	// Pooled traversal scratch. Every searchLayer call checks out its own
	// visited set and candidate heap, so read-locked searches can overlap.
	scratch sync.Pool
}

func newGraph(dimension int, opts Options) *graph {
	var rng *rand.Rand
	if opts.RandomSeed != nil {
		rng = rand.New(rand.NewSource(*opts.RandomSeed))
	} else {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	g := &graph{
		dimension:       dimension,
		m:               opts.M,
		efConstruction:  opts.EFConstruction,
		levelMultiplier: 1.0 / math.Log(float64(opts.M)),
		rng:             rng,
		nodes:           make([]*node, 0, 1024),
		lookup:          make(map[string]uint32),
		live:            roaring.New(),
		freeList:        make([]uint32, 0),
	}
	g.scratch.New = func() any {
		return &searchScratch{
			visited:    visited.New(1024),
			candidates: queue.NewMin(opts.EFConstruction),
		}
	}
	return g
}

// randomLevel samples a layer for a new node from an exponentially decaying
// distribution: most nodes land on the bottom layers, exponentially fewer on
// each layer above. The cap at levelMax bounds worst-case fan-out.
func (g *graph) randomLevel() int {
	level := 0
	for g.rng.Float64() < math.Exp(-float64(level)*g.levelMultiplier) && level < levelMax {
		level++
	}
	return level
}

// dist computes the cosine distance between a query vector and a stored node.
func (g *graph) dist(v []float32, slot uint32) float32 {
	return distance.Cosine(v, g.nodes[slot].vector)
}

func (g *graph) size() int {
	return int(g.live.GetCardinality())
}

func (g *graph) contains(id string) bool {
	_, ok := g.lookup[id]
	return ok
}

// alloc places n into a free slot, reusing tombstoned slots first.
func (g *graph) alloc(n *node) uint32 {
	if k := len(g.freeList); k > 0 {
		slot := g.freeList[k-1]
		g.freeList = g.freeList[:k-1]
		g.nodes[slot] = n
		return slot
	}
	g.nodes = append(g.nodes, n)
	return uint32(len(g.nodes) - 1)
}

// add inserts a vector under the given id, or overwrites the vector in place
// if the id already exists.
//
// In-place overwrite keeps the node's level and edges untouched: after a large
// vector change the stale connectivity no longer reflects true neighborhood
// structure. Callers that need a full re-link should Remove and re-Add.
func (g *graph) add(id string, vec []float32) error {
	if len(vec) != g.dimension {
		return &ErrDimensionMismatch{Expected: g.dimension, Actual: len(vec)}
	}

	if slot, ok := g.lookup[id]; ok {
		copy(g.nodes[slot].vector, vec)
		return nil
	}

	level := g.randomLevel()
	n := &node{
		id:     id,
		vector: slices.Clone(vec),
		level:  level,
		links:  make([][]uint32, level+1),
	}
	slot := g.alloc(n)
	g.lookup[id] = slot
	g.live.Add(slot)

	// First node becomes the entry point with no edges.
	if !g.hasEntry {
		g.entrySlot = slot
		g.hasEntry = true
		g.maxLevel = level
		return nil
	}

	curr := g.entrySlot
	currDist := g.dist(vec, curr)

	// Greedy width-1 descent through the layers above the new node to locate
	// a good region of the graph without connecting anything yet.
	if g.maxLevel > level {
		curr, currDist = g.greedyDescend(vec, curr, currDist, g.maxLevel, level+1)
	}

	// Search and link from min(level, maxLevel) down to 0. The nearest
	// candidate found at each layer seeds the next layer's search.
	for layer := min(level, g.maxLevel); layer >= 0; layer-- {
		results := g.searchLayer(vec, curr, currDist, layer, g.efConstruction)

		if best, ok := results.Min(); ok {
			curr = best.Slot
			currDist = best.Distance
		}

		neighbors := g.selectNeighbors(results, g.m)
		n.links[layer] = neighbors

		for _, nb := range neighbors {
			g.connect(nb, slot, layer)
		}
	}

	if level > g.maxLevel {
		g.maxLevel = level
		g.entrySlot = slot
	}

	return nil
}

// connect adds target to slot's adjacency set at the given layer, pruning the
// set back to the m closest neighbors if the degree bound is exceeded.
func (g *graph) connect(slot, target uint32, layer int) {
	n := g.nodes[slot]
	if layer >= len(n.links) {
		return // should not happen: candidates always live on the searched layer
	}

	for _, c := range n.links[layer] {
		if c == target {
			return
		}
	}
	n.links[layer] = append(n.links[layer], target)

	if len(n.links[layer]) > g.m {
		g.prune(slot, layer)
	}
}

// prune re-selects the m closest neighbors over slot's full adjacency set at
// the given layer and drops the rest. Dropped edges are removed from both
// endpoints so that adjacency stays symmetric.
func (g *graph) prune(slot uint32, layer int) {
	n := g.nodes[slot]
	conns := n.links[layer]

	cands := queue.NewMax(len(conns))
	for _, c := range conns {
		cands.Push(queue.Item{Slot: c, Distance: g.dist(n.vector, c)})
	}

	kept := g.selectNeighbors(cands, g.m)

	for _, c := range conns {
		if !slices.Contains(kept, c) {
			g.nodes[c].dropNeighbor(slot, layer)
		}
	}
	n.links[layer] = kept
}

// remove deletes the node with the given id, stripping it from every
// neighbor's adjacency set. Reports whether a node was removed.
//
// No compensating edges are added: removing a heavily connected node can
// degrade reachability of its former neighborhood.
func (g *graph) remove(id string) bool {
	slot, ok := g.lookup[id]
	if !ok {
		return false
	}

	n := g.nodes[slot]
	for layer, conns := range n.links {
		for _, c := range conns {
			if nb := g.nodes[c]; nb != nil {
				nb.dropNeighbor(slot, layer)
			}
		}
	}

	delete(g.lookup, id)
	g.nodes[slot] = nil
	g.live.Remove(slot)
	g.freeList = append(g.freeList, slot)

	if g.hasEntry && g.entrySlot == slot {
		g.promoteEntry()
	}

	return true
}

// promoteEntry rescans the live set for the highest-level node and makes it
// the new entry point. Ties are broken by slot order.
func (g *graph) promoteEntry() {
	g.hasEntry = false
	g.entrySlot = 0
	g.maxLevel = 0

	it := g.live.Iterator()
	for it.HasNext() {
		slot := it.Next()
		n := g.nodes[slot]
		if n == nil {
			continue
		}
		if !g.hasEntry || n.level > g.maxLevel {
			g.entrySlot = slot
			g.maxLevel = n.level
			g.hasEntry = true
		}
	}
}

// clear drops every node and resets the graph to its empty state. The
// configured dimension and parameters are kept.
func (g *graph) clear() {
	g.nodes = g.nodes[:0]
	g.lookup = make(map[string]uint32)
	g.live.Clear()
	g.freeList = g.freeList[:0]
	g.entrySlot = 0
	g.hasEntry = false
	g.maxLevel = 0
}
