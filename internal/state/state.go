package state

// State is the packed search-state vector carried alongside a label
// during search (spec.md §9: "a dense []float64 is appropriate"). It
// has no meaning on its own — every read and write goes through the
// StateModel that produced it via InitialState.
type State struct {
	values []float64
}

// Clone returns an independent copy, for forking state across sibling
// edge relaxations during search.
func (s State) Clone() State {
	values := make([]float64, len(s.values))
	copy(values, s.values)
	return State{values: values}
}

// Len reports the number of declared features.
func (s State) Len() int {
	return len(s.values)
}
