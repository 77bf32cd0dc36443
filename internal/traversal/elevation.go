package traversal

import (
	"github.com/routee-compass/compass-core/internal/state"
	"github.com/routee-compass/compass-core/internal/units"
)

// ElevationModel writes trip_elevation_gain and trip_elevation_loss from
// edge_grade * edge_distance. Depends on edge_grade having already been
// written this step.
type ElevationModel struct{}

func (ElevationModel) InputFeatures() []string { return []string{"edge_grade"} }
func (ElevationModel) OutputFeatures() []string {
	return []string{"trip_elevation_gain", "trip_elevation_loss"}
}

func (ElevationModel) FeatureDescriptors() []state.FeatureDescriptor {
	return []state.FeatureDescriptor{
		{Name: "trip_elevation_gain", Kind: state.KindFloat, Unit: units.Meters, Accumulator: state.AccumulatorSum},
		{Name: "trip_elevation_loss", Kind: state.KindFloat, Unit: units.Meters, Accumulator: state.AccumulatorSum},
	}
}

func (ElevationModel) TraverseEdge(sm *state.StateModel, prev state.State, edge EdgeView) (state.State, error) {
	grade, err := sm.Get(prev, "edge_grade", units.Ratio)
	if err != nil {
		return state.State{}, err
	}
	delta := grade * edge.Distance
	next := prev.Clone()
	if delta >= 0 {
		if err := sm.Add(&next, "trip_elevation_gain", delta, units.Meters); err != nil {
			return state.State{}, err
		}
	} else {
		if err := sm.Add(&next, "trip_elevation_loss", -delta, units.Meters); err != nil {
			return state.State{}, err
		}
	}
	return next, nil
}

func (ElevationModel) AccessEdge(sm *state.StateModel, s state.State, srcEdge, dstEdge EdgeView) (state.State, error) {
	return s, nil
}

func (ElevationModel) EstimateTraversal(sm *state.StateModel, s state.State, remainingDistance float64) (state.State, error) {
	return s, nil
}
