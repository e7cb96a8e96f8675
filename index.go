package yum

// NotFound is returned by [StateIndex.Index] when a state key is not
// present in the map.
const NotFound = -1

// StateIndex is a bidirectional mapping between a packed [State] key and
// a dense index 0..N-1, backed by an ordered slice (index to key) and an
// associative lookup (key to index). Immutable after construction.
type StateIndex struct {
	keys    []State
	indices map[State]int
}

// NewStateIndex builds a [StateIndex] from states, which must already be
// sorted ascending and deduplicated (as returned by [GenerateAllStates]).
func NewStateIndex(states []State) *StateIndex {
	idx := &StateIndex{
		keys:    states,
		indices: make(map[State]int, len(states)),
	}
	for i, s := range states {
		idx.indices[s] = i
	}
	return idx
}

// NumStates returns the total number of indexed states.
func (idx *StateIndex) NumStates() int {
	return len(idx.keys)
}

// Index returns the dense index for state key s, or [NotFound] if s is
// not present.
func (idx *StateIndex) Index(s State) int {
	if i, ok := idx.indices[s]; ok {
		return i
	}
	return NotFound
}

// State returns the state key for dense index i. Returns [ErrInvalidIndex]
// if i is out of bounds.
func (idx *StateIndex) State(i int) (State, error) {
	if i < 0 || len(idx.keys) <= i {
		return 0, ErrInvalidIndex
	}
	return idx.keys[i], nil
}

// StatesFilledCount returns every dense index whose state has exactly
// count categories filled.
func (idx *StateIndex) StatesFilledCount(count int) []int {
	var out []int
	for i, s := range idx.keys {
		if s.FilledCount() == count {
			out = append(out, i)
		}
	}
	return out
}
