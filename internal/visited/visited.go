// Package visited provides a reusable visited-slot tracker for graph traversal.
package visited

// Set tracks visited slots using a bitset plus a dirty list for O(visited)
// reset between traversals.
type Set struct {
	bits  []uint64
	dirty []uint32
}

// New creates a visited set sized for the given number of slots.
func New(capacity int) *Set {
	return &Set{
		bits:  make([]uint64, (capacity+63)/64),
		dirty: make([]uint32, 0, 128),
	}
}

// Visit marks a slot as visited.
func (s *Set) Visit(slot uint32) {
	word := int(slot >> 6)
	mask := uint64(1) << (slot & 63)

	if word >= len(s.bits) {
		s.grow(word + 1)
	}

	if s.bits[word]&mask == 0 {
		s.bits[word] |= mask
		s.dirty = append(s.dirty, slot)
	}
}

// Visited reports whether a slot has been visited.
func (s *Set) Visited(slot uint32) bool {
	word := int(slot >> 6)
	if word >= len(s.bits) {
		return false
	}
	return s.bits[word]&(uint64(1)<<(slot&63)) != 0
}

// Reset clears the visited status of every slot touched since the last reset.
func (s *Set) Reset() {
	for _, slot := range s.dirty {
		s.bits[slot>>6] &^= uint64(1) << (slot & 63)
	}
	s.dirty = s.dirty[:0]
}

func (s *Set) grow(words int) {
	capacity := len(s.bits) * 2
	if capacity < words {
		capacity = words
	}
	bits := make([]uint64, capacity)
	copy(bits, s.bits)
	s.bits = bits
}
