// Package state declares and manipulates the packed search-state vector
// (spec.md §3/§4.2). A StateModel is the single source of truth for the
// vector's layout; every TraversalModel reads and writes features through
// it, and all unit conversion happens at this read/write boundary.
package state

import "github.com/routee-compass/compass-core/internal/units"

// Kind is the storage kind of a feature's value.
type Kind int

const (
	KindFloat Kind = iota
	KindInt
)

// Accumulator is how repeated writes to a feature combine.
//
// Sum and Replace cover the common cases (running totals like
// trip_distance/trip_time/trip_energy_*, and per-edge snapshots like
// edge_speed/edge_grade, respectively). Min/Max support model stacks that
// track extrema. DistanceCost and TimeOfDay are part of the feature set
// spec.md enumerates but are not exercised by any stock model here:
// DistanceCost behaves like Sum (a per-distance cost contribution
// accumulates by addition) and is kept distinct only so a CostModel can
// recognize "this feature's accumulated value already is a cost, don't
// re-rate it". TimeOfDay behaves like Sum but wraps at 24h, for a
// future dynamic-edge-weight model — spec.md's Non-goals exclude wall-
// clock-dependent edge weights, so no stock TraversalModel ever writes a
// TimeOfDay feature today.
type Accumulator int

const (
	AccumulatorSum Accumulator = iota
	AccumulatorMin
	AccumulatorMax
	AccumulatorReplace
	AccumulatorDistanceCost
	AccumulatorTimeOfDay
)

const hoursPerDay = 24.0

// FeatureDescriptor declares one named slot in the search-state vector.
type FeatureDescriptor struct {
	Name        string
	Kind        Kind
	Unit        units.Unit
	Accumulator Accumulator
}
