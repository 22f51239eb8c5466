package memvec

// node is a single graph node stored in the slot arena.
//
// Adjacency is kept as per-layer slices of slot indexes rather than owning
// references: edges are resolved through the central node table, which avoids
// pointer chasing and cyclic ownership.
type node struct {
	id     string    // external key
	vector []float32 // owned copy, len == graph dimension
	level  int       // assigned once at creation
	links  [][]uint32
}

// neighbors returns the adjacency set at the given layer.
func (n *node) neighbors(layer int) []uint32 {
	if layer < 0 || layer >= len(n.links) {
		return nil
	}
	return n.links[layer]
}

// dropNeighbor removes target from the adjacency set at the given layer.
func (n *node) dropNeighbor(target uint32, layer int) {
	conns := n.neighbors(layer)
	for i, c := range conns {
		if c == target {
			conns[i] = conns[len(conns)-1]
			n.links[layer] = conns[:len(conns)-1]
			return
		}
	}
}
