package memvec

// Stats is a snapshot of graph shape statistics.
type Stats struct {
	// Nodes is the number of live nodes.
	Nodes int

	// MaxLevel is the highest layer of any live node.
	MaxLevel int

	// EntryPoint is the id of the current entry point, or "" if empty.
	EntryPoint string

	// LevelCounts holds the number of live nodes per top level, index 0
	// being level 0.
	LevelCounts []int

	// AvgDegree is the average out-degree at layer 0.
	AvgDegree float64
}

// Stats returns a snapshot of graph statistics. Returns the zero value before
// Init.
func (idx *Index) Stats() Stats {
	if idx.graph == nil {
		return Stats{}
	}

	g := idx.graph
	stats := Stats{
		Nodes:       g.size(),
		LevelCounts: make([]int, g.maxLevel+1),
	}
	if g.hasEntry {
		stats.MaxLevel = g.maxLevel
		stats.EntryPoint = g.nodes[g.entrySlot].id
	}

	edges := 0
	it := g.live.Iterator()
	for it.HasNext() {
		n := g.nodes[it.Next()]
		if n == nil {
			continue
		}
		if n.level < len(stats.LevelCounts) {
			stats.LevelCounts[n.level]++
		}
		edges += len(n.neighbors(0))
	}
	if stats.Nodes > 0 {
		stats.AvgDegree = float64(edges) / float64(stats.Nodes)
	}

	return stats
}
