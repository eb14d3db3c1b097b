// Package sparse provides a sparse set over small uint32 universes.
//
// The set supports O(1) insertion, membership testing, and clearing while
// keeping a dense slice of members in insertion order. It is used to track
// which alignment-graph states are live while simulating or relaxing the
// graph: insertion order doubles as the deterministic processing order.
package sparse

// Set is a set of uint32 values below a fixed capacity.
//
// The sparse slice maps a value to its position in the dense slice; a value
// is a member iff that position is in range and points back at it. Clearing
// is O(1) because stale sparse entries are harmless.
type Set struct {
	sparse []uint32
	dense  []uint32
}

// NewSet creates a set able to hold values in [0, capacity).
func NewSet(capacity uint32) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds value to the set. Inserting an existing member is a no-op.
func (s *Set) Insert(value uint32) {
	if s.Contains(value) {
		return
	}
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
}

// Contains reports whether value is a member.
func (s *Set) Contains(value uint32) bool {
	if value >= uint32(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return idx < uint32(len(s.dense)) && s.dense[idx] == value
}

// Clear removes every member in O(1).
func (s *Set) Clear() {
	s.dense = s.dense[:0]
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.dense)
}

// Values returns the members in insertion order. The slice is only valid
// until the next mutation.
func (s *Set) Values() []uint32 {
	return s.dense
}
