package traversal

import (
	"github.com/routee-compass/compass-core/internal/state"
	"github.com/routee-compass/compass-core/internal/units"
)

// SpeedModel writes edge_speed from the per-edge speed lookup array.
type SpeedModel struct{}

func (SpeedModel) InputFeatures() []string  { return nil }
func (SpeedModel) OutputFeatures() []string { return []string{"edge_speed"} }

func (SpeedModel) FeatureDescriptors() []state.FeatureDescriptor {
	return []state.FeatureDescriptor{
		{Name: "edge_speed", Kind: state.KindFloat, Unit: units.MetersPerSecond, Accumulator: state.AccumulatorReplace},
	}
}

func (SpeedModel) TraverseEdge(sm *state.StateModel, prev state.State, edge EdgeView) (state.State, error) {
	next := prev.Clone()
	if err := sm.Set(&next, "edge_speed", edge.Speed, units.MetersPerSecond); err != nil {
		return state.State{}, err
	}
	return next, nil
}

func (SpeedModel) AccessEdge(sm *state.StateModel, s state.State, srcEdge, dstEdge EdgeView) (state.State, error) {
	return s, nil
}

func (SpeedModel) EstimateTraversal(sm *state.StateModel, s state.State, remainingDistance float64) (state.State, error) {
	return s, nil
}
