// Package traversal implements the per-query state-update object
// (spec.md §4.4): stock child models for distance, speed, time, grade,
// elevation, energy, and turn delay, composed by dependency order into
// a single Model the search kernel drives.
package traversal

import "github.com/routee-compass/compass-core/internal/state"

// Model is a per-query state-update object. Stock implementations are
// pure functions of (prior state, edge attributes); Composite is the
// only implementation that holds other Models.
type Model interface {
	// InputFeatures lists features this model reads, for dependency
	// ordering in a Composite.
	InputFeatures() []string

	// OutputFeatures lists features this model writes.
	OutputFeatures() []string

	// FeatureDescriptors declares the layout entries this model owns.
	// A Composite's StateModel is built from the union of every child's
	// descriptors.
	FeatureDescriptors() []state.FeatureDescriptor

	// TraverseEdge applies this model's state updates for crossing a
	// single edge.
	TraverseEdge(sm *state.StateModel, prev state.State, edge EdgeView) (state.State, error)

	// AccessEdge applies state updates that occur between two edges
	// sharing a vertex (turn delays, mode switches). Models with no
	// such behavior return s unchanged.
	AccessEdge(sm *state.StateModel, s state.State, srcEdge, dstEdge EdgeView) (state.State, error)

	// EstimateTraversal returns a state delta for a hypothetical
	// remaining distance, used by heuristic estimation. Models with no
	// meaningful estimate return s unchanged.
	EstimateTraversal(sm *state.StateModel, s state.State, remainingDistance float64) (state.State, error)
}
