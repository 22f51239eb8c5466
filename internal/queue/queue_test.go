package queue

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinQueueOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pq := NewMin(16)

	dists := make([]float32, 100)
	for i := range dists {
		dists[i] = rng.Float32()
		pq.Push(Item{Slot: uint32(i), Distance: dists[i]})
	}

	sort.Slice(dists, func(i, j int) bool { return dists[i] < dists[j] })

	for _, want := range dists {
		item, ok := pq.Pop()
		require.True(t, ok)
		assert.Equal(t, want, item.Distance)
	}

	_, ok := pq.Pop()
	assert.False(t, ok)
}

func TestMaxQueueOrder(t *testing.T) {
	pq := NewMax(8)
	for _, d := range []float32{0.3, 0.9, 0.1, 0.5} {
		pq.Push(Item{Distance: d})
	}

	top, ok := pq.Top()
	require.True(t, ok)
	assert.Equal(t, float32(0.9), top.Distance)

	var got []float32
	for pq.Len() > 0 {
		item, _ := pq.Pop()
		got = append(got, item.Distance)
	}
	assert.Equal(t, []float32{0.9, 0.5, 0.3, 0.1}, got)
}

func TestMaxQueueMin(t *testing.T) {
	pq := NewMax(8)

	_, ok := pq.Min()
	assert.False(t, ok)

	for i, d := range []float32{0.4, 0.2, 0.8, 0.6} {
		pq.Push(Item{Slot: uint32(i), Distance: d})
	}

	item, ok := pq.Min()
	require.True(t, ok)
	assert.Equal(t, float32(0.2), item.Distance)
	assert.Equal(t, uint32(1), item.Slot)
}

func TestReset(t *testing.T) {
	pq := NewMin(4)
	pq.Push(Item{Distance: 1})
	pq.Reset()

	assert.Equal(t, 0, pq.Len())
	_, ok := pq.Top()
	assert.False(t, ok)
}
