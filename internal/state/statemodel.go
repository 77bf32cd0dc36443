package state

import (
	"fmt"

	"github.com/routee-compass/compass-core/internal/units"
)

// StateModel declares the fixed layout of the search-state vector:
// an ordered list of named features, each with a storage kind, a
// canonical unit, and an accumulator. The layout is immutable once
// sealed by NewStateModel (spec.md §3's "layout is fixed for a given
// search instance" invariant) and is shared, read-only, by every
// TraversalModel in a composite.
type StateModel struct {
	features []FeatureDescriptor
	index    map[string]int
}

// NewStateModel validates descriptors and seals a StateModel. Duplicate
// names or an empty list fail fast, matching the teacher's fail-fast
// validation style in internal/graph/builder.go.
func NewStateModel(descriptors []FeatureDescriptor) (*StateModel, error) {
	if len(descriptors) == 0 {
		return nil, ErrEmptyLayout
	}
	index := make(map[string]int, len(descriptors))
	for i, d := range descriptors {
		if _, exists := index[d.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateFeature, d.Name)
		}
		index[d.Name] = i
	}
	features := make([]FeatureDescriptor, len(descriptors))
	copy(features, descriptors)
	return &StateModel{features: features, index: index}, nil
}

// Features returns the declared feature layout in order.
func (m *StateModel) Features() []FeatureDescriptor {
	out := make([]FeatureDescriptor, len(m.features))
	copy(out, m.features)
	return out
}

// HasFeature reports whether name is declared in this layout.
func (m *StateModel) HasFeature(name string) bool {
	_, ok := m.index[name]
	return ok
}

// InitialState returns a zeroed state vector matching this layout. "Zero"
// is unit-neutral for every accumulator here: Sum/DistanceCost start at
// 0, Min starts at +Inf (so the first write always wins), Max starts at
// -Inf, Replace/TimeOfDay start at 0.
func (m *StateModel) InitialState() State {
	values := make([]float64, len(m.features))
	for i, f := range m.features {
		switch f.Accumulator {
		case AccumulatorMin:
			values[i] = posInf
		case AccumulatorMax:
			values[i] = negInf
		default:
			values[i] = 0
		}
	}
	return State{values: values}
}

func (m *StateModel) indexOf(name string) (int, error) {
	i, ok := m.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownFeature, name)
	}
	return i, nil
}

// Get reads feature name from s, converting its stored value (in the
// feature's canonical unit) into outUnit.
func (m *StateModel) Get(s State, name string, outUnit units.Unit) (float64, error) {
	i, err := m.indexOf(name)
	if err != nil {
		return 0, err
	}
	f := m.features[i]
	out, err := units.Convert(s.values[i], f.Unit, outUnit)
	if err != nil {
		return 0, fmt.Errorf("state: get %q: %w", name, err)
	}
	return out, nil
}

// Set writes value (given in inUnit) into feature name of s, converting
// into the feature's canonical unit. Set always replaces the stored
// value outright regardless of the feature's accumulator — use Add to
// respect accumulator semantics.
func (m *StateModel) Set(s *State, name string, value float64, inUnit units.Unit) error {
	i, err := m.indexOf(name)
	if err != nil {
		return err
	}
	f := m.features[i]
	converted, err := units.Convert(value, inUnit, f.Unit)
	if err != nil {
		return fmt.Errorf("state: set %q: %w", name, err)
	}
	s.values[i] = converted
	return nil
}

// Add applies delta (given in inUnit) to feature name of s, respecting
// the feature's declared accumulator.
func (m *StateModel) Add(s *State, name string, delta float64, inUnit units.Unit) error {
	i, err := m.indexOf(name)
	if err != nil {
		return err
	}
	f := m.features[i]
	converted, err := units.Convert(delta, inUnit, f.Unit)
	if err != nil {
		return fmt.Errorf("state: add %q: %w", name, err)
	}

	switch f.Accumulator {
	case AccumulatorSum, AccumulatorDistanceCost:
		s.values[i] += converted
	case AccumulatorMin:
		if converted < s.values[i] {
			s.values[i] = converted
		}
	case AccumulatorMax:
		if converted > s.values[i] {
			s.values[i] = converted
		}
	case AccumulatorReplace:
		s.values[i] = converted
	case AccumulatorTimeOfDay:
		v := s.values[i] + converted
		hoursBase, _ := units.Convert(hoursPerDay, units.Hours, f.Unit)
		if hoursBase > 0 {
			v = mod(v, hoursBase)
		}
		s.values[i] = v
	default:
		s.values[i] += converted
	}
	return nil
}

func mod(v, m float64) float64 {
	r := v - m*float64(int64(v/m))
	if r < 0 {
		r += m
	}
	return r
}

const (
	posInf = float64(1) / 0
	negInf = -posInf
)
