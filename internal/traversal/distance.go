package traversal

import (
	"github.com/routee-compass/compass-core/internal/state"
	"github.com/routee-compass/compass-core/internal/units"
)

// DistanceModel writes the running trip_distance total from each edge's
// length.
type DistanceModel struct{}

func (DistanceModel) InputFeatures() []string  { return nil }
func (DistanceModel) OutputFeatures() []string { return []string{"trip_distance"} }

func (DistanceModel) FeatureDescriptors() []state.FeatureDescriptor {
	return []state.FeatureDescriptor{
		{Name: "trip_distance", Kind: state.KindFloat, Unit: units.Meters, Accumulator: state.AccumulatorSum},
	}
}

func (DistanceModel) TraverseEdge(sm *state.StateModel, prev state.State, edge EdgeView) (state.State, error) {
	next := prev.Clone()
	if err := sm.Add(&next, "trip_distance", edge.Distance, units.Meters); err != nil {
		return state.State{}, err
	}
	return next, nil
}

func (DistanceModel) AccessEdge(sm *state.StateModel, s state.State, srcEdge, dstEdge EdgeView) (state.State, error) {
	return s, nil
}

func (DistanceModel) EstimateTraversal(sm *state.StateModel, s state.State, remainingDistance float64) (state.State, error) {
	next := s.Clone()
	if err := sm.Add(&next, "trip_distance", remainingDistance, units.Meters); err != nil {
		return state.State{}, err
	}
	return next, nil
}
