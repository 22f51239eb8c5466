// Package queue provides value-based binary heaps for search candidates.
package queue

// Item is a single entry in a priority queue: a graph slot and its
// distance to the query. Value-based to avoid pointer indirection.
type Item struct {
	Slot     uint32
	Distance float32
}

// PriorityQueue is a binary heap of Items ordered by Distance.
// A min-queue surfaces the closest item first (candidate pool); a max-queue
// surfaces the farthest item first (bounded result set).
type PriorityQueue struct {
	max   bool
	items []Item
}

// NewMin initializes a priority queue that pops the smallest distance first.
func NewMin(capacity int) *PriorityQueue {
	return &PriorityQueue{max: false, items: make([]Item, 0, capacity)}
}

// NewMax initializes a priority queue that pops the largest distance first.
func NewMax(capacity int) *PriorityQueue {
	return &PriorityQueue{max: true, items: make([]Item, 0, capacity)}
}

// Len returns the number of items in the queue.
func (pq *PriorityQueue) Len() int { return len(pq.items) }

// Reset truncates the queue for reuse, keeping the backing array.
func (pq *PriorityQueue) Reset() { pq.items = pq.items[:0] }

// Top returns the root of the heap without removing it.
func (pq *PriorityQueue) Top() (Item, bool) {
	if len(pq.items) == 0 {
		return Item{}, false
	}
	return pq.items[0], true
}

// Push inserts an item while maintaining the heap invariant.
func (pq *PriorityQueue) Push(item Item) {
	pq.items = append(pq.items, item)
	pq.up(len(pq.items) - 1)
}

// Pop removes and returns the root of the heap.
func (pq *PriorityQueue) Pop() (Item, bool) {
	n := len(pq.items)
	if n == 0 {
		return Item{}, false
	}
	root := pq.items[0]
	pq.items[0] = pq.items[n-1]
	pq.items = pq.items[:n-1]
	if len(pq.items) > 0 {
		pq.down(0)
	}
	return root, true
}

// Min returns the item with the smallest distance currently in the queue.
// For min-queues this is the root; for max-queues this scans the backing
// array (leaves hold the minima).
func (pq *PriorityQueue) Min() (Item, bool) {
	if len(pq.items) == 0 {
		return Item{}, false
	}
	if !pq.max {
		return pq.items[0], true
	}
	best := pq.items[0]
	for _, it := range pq.items[1:] {
		if it.Distance < best.Distance {
			best = it
		}
	}
	return best, true
}

func (pq *PriorityQueue) before(i, j int) bool {
	if pq.max {
		return pq.items[i].Distance > pq.items[j].Distance
	}
	return pq.items[i].Distance < pq.items[j].Distance
}

func (pq *PriorityQueue) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !pq.before(i, parent) {
			return
		}
		pq.items[i], pq.items[parent] = pq.items[parent], pq.items[i]
		i = parent
	}
}

func (pq *PriorityQueue) down(i int) {
	n := len(pq.items)
	for {
		left := 2*i + 1
		if left >= n {
			return
		}
		best := left
		if right := left + 1; right < n && pq.before(right, left) {
			best = right
		}
		if !pq.before(best, i) {
			return
		}
		pq.items[i], pq.items[best] = pq.items[best], pq.items[i]
		i = best
	}
}
