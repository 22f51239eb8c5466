package memvec

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/memvec/testutil"
)

func newTestGraph(t *testing.T, dimension int, optFns ...func(o *Options)) *graph {
	t.Helper()

	seed := int64(1234)
	opts := DefaultOptions
	opts.RandomSeed = &seed
	for _, fn := range optFns {
		fn(&opts)
	}
	return newGraph(dimension, opts)
}

func TestRandomLevelBounds(t *testing.T) {
	g := newTestGraph(t, 2)

	counts := make(map[int]int)
	for i := 0; i < 10000; i++ {
		level := g.randomLevel()
		require.GreaterOrEqual(t, level, 1)
		require.LessOrEqual(t, level, levelMax)
		counts[level]++
	}

	// The continuation probability decays with exp(-level*mL), so the tail
	// thins out fast: almost all nodes live on the bottom few layers.
	assert.Greater(t, counts[2], counts[4])
	assert.Greater(t, counts[3], counts[4])

	low := counts[1] + counts[2] + counts[3] + counts[4] + counts[5]
	assert.Greater(t, low, 9000)
}

func TestAdjacencySymmetry(t *testing.T) {
	g := newTestGraph(t, 16)

	rng := testutil.NewRNG(8)
	vecs := rng.UniformVectors(200, 16)
	for i, v := range vecs {
		require.NoError(t, g.add(fmt.Sprintf("v%d", i), v))
	}

	// Every edge (a, b) at layer l must have a matching (b, a).
	it := g.live.Iterator()
	for it.HasNext() {
		slot := it.Next()
		n := g.nodes[slot]
		for layer, conns := range n.links {
			for _, c := range conns {
				assert.Contains(t, g.nodes[c].neighbors(layer), slot,
					"edge %d->%d at layer %d has no back link", slot, c, layer)
			}
		}
	}
}

func TestDegreeBound(t *testing.T) {
	g := newTestGraph(t, 8, func(o *Options) {
		o.M = 4
	})

	rng := testutil.NewRNG(9)
	vecs := rng.UniformVectors(300, 8)
	for i, v := range vecs {
		require.NoError(t, g.add(fmt.Sprintf("v%d", i), v))
	}

	it := g.live.Iterator()
	for it.HasNext() {
		n := g.nodes[it.Next()]
		for layer, conns := range n.links {
			assert.LessOrEqual(t, len(conns), g.m,
				"node %q exceeds degree bound at layer %d", n.id, layer)
		}
	}
}

func TestRemoveStripsAdjacency(t *testing.T) {
	g := newTestGraph(t, 8)

	rng := testutil.NewRNG(10)
	vecs := rng.UniformVectors(100, 8)
	for i, v := range vecs {
		require.NoError(t, g.add(fmt.Sprintf("v%d", i), v))
	}

	removed, ok := g.lookup["v42"]
	require.True(t, ok)
	require.True(t, g.remove("v42"))

	it := g.live.Iterator()
	for it.HasNext() {
		n := g.nodes[it.Next()]
		for layer, conns := range n.links {
			assert.NotContains(t, conns, removed,
				"node %q still links to removed slot at layer %d", n.id, layer)
		}
	}
}

func TestEntryPointInvariant(t *testing.T) {
	g := newTestGraph(t, 4)

	rng := testutil.NewRNG(11)
	vecs := rng.UniformVectors(64, 4)
	for i, v := range vecs {
		require.NoError(t, g.add(fmt.Sprintf("v%d", i), v))
	}

	// The entry point always resides at the graph's maximum layer.
	require.True(t, g.hasEntry)
	assert.Equal(t, g.maxLevel, g.nodes[g.entrySlot].level)

	// Invariant survives removals of the entry point.
	for i := 0; i < 32 && g.hasEntry; i++ {
		g.remove(g.nodes[g.entrySlot].id)
		if g.hasEntry {
			assert.Equal(t, g.maxLevel, g.nodes[g.entrySlot].level)
			highest := 0
			it := g.live.Iterator()
			for it.HasNext() {
				if n := g.nodes[it.Next()]; n.level > highest {
					highest = n.level
				}
			}
			assert.Equal(t, highest, g.maxLevel)
		}
	}
}

func TestEmptyGraphState(t *testing.T) {
	g := newTestGraph(t, 4)

	require.NoError(t, g.add("only", []float32{1, 2, 3, 4}))
	require.True(t, g.hasEntry)

	g.remove("only")
	assert.False(t, g.hasEntry)
	assert.Equal(t, 0, g.maxLevel)
	assert.Equal(t, 0, g.size())
}

func TestSlotReuse(t *testing.T) {
	g := newTestGraph(t, 2)

	require.NoError(t, g.add("a", []float32{1, 0}))
	require.NoError(t, g.add("b", []float32{0, 1}))
	arenaLen := len(g.nodes)

	g.remove("a")
	require.NoError(t, g.add("c", []float32{1, 1}))

	// The tombstoned slot is reused, the arena does not grow.
	assert.Equal(t, arenaLen, len(g.nodes))
	assert.True(t, g.contains("c"))
}

func TestSearchLayerBounds(t *testing.T) {
	g := newTestGraph(t, 8)

	rng := testutil.NewRNG(12)
	vecs := rng.UniformVectors(100, 8)
	for i, v := range vecs {
		require.NoError(t, g.add(fmt.Sprintf("v%d", i), v))
	}

	query := rng.UniformVectors(1, 8)[0]
	entry := g.entrySlot

	for _, ef := range []int{1, 5, 50} {
		results := g.searchLayer(query, entry, g.dist(query, entry), 0, ef)
		assert.LessOrEqual(t, results.Len(), ef)
		assert.Greater(t, results.Len(), 0)
	}
}

func TestSelectNeighborsDeterministic(t *testing.T) {
	g := newTestGraph(t, 4)

	rng := testutil.NewRNG(13)
	vecs := rng.UniformVectors(50, 4)
	for i, v := range vecs {
		require.NoError(t, g.add(fmt.Sprintf("v%d", i), v))
	}

	query := vecs[0]
	entry := g.entrySlot

	first := g.selectNeighbors(g.searchLayer(query, entry, g.dist(query, entry), 0, 20), 8)
	second := g.selectNeighbors(g.searchLayer(query, entry, g.dist(query, entry), 0, 20), 8)

	assert.Equal(t, first, second)
	assert.LessOrEqual(t, len(first), 8)

	// Ascending by distance.
	for i := 1; i < len(first); i++ {
		assert.LessOrEqual(t, g.dist(query, first[i-1]), g.dist(query, first[i]))
	}
}
