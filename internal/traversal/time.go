package traversal

import (
	"fmt"

	"github.com/routee-compass/compass-core/internal/state"
	"github.com/routee-compass/compass-core/internal/units"
)

// TimeModel writes the running trip_time total, with each edge's
// increment computed as trip_distance-for-this-edge / edge_speed.
// Depends on edge_speed having already been written this step, so a
// Composite must order SpeedModel before TimeModel.
type TimeModel struct{}

func (TimeModel) InputFeatures() []string  { return []string{"edge_speed"} }
func (TimeModel) OutputFeatures() []string { return []string{"trip_time"} }

func (TimeModel) FeatureDescriptors() []state.FeatureDescriptor {
	return []state.FeatureDescriptor{
		{Name: "trip_time", Kind: state.KindFloat, Unit: units.Seconds, Accumulator: state.AccumulatorSum},
	}
}

func (TimeModel) TraverseEdge(sm *state.StateModel, prev state.State, edge EdgeView) (state.State, error) {
	speed, err := sm.Get(prev, "edge_speed", units.MetersPerSecond)
	if err != nil {
		return state.State{}, err
	}
	if speed <= 0 {
		return state.State{}, fmt.Errorf("%w: %f", ErrZeroSpeed, speed)
	}
	next := prev.Clone()
	if err := sm.Add(&next, "trip_time", edge.Distance/speed, units.Seconds); err != nil {
		return state.State{}, err
	}
	return next, nil
}

func (TimeModel) AccessEdge(sm *state.StateModel, s state.State, srcEdge, dstEdge EdgeView) (state.State, error) {
	return s, nil
}

func (TimeModel) EstimateTraversal(sm *state.StateModel, s state.State, remainingDistance float64) (state.State, error) {
	speed, err := sm.Get(s, "edge_speed", units.MetersPerSecond)
	if err != nil || speed <= 0 {
		return s, nil
	}
	next := s.Clone()
	if err := sm.Add(&next, "trip_time", remainingDistance/speed, units.Seconds); err != nil {
		return state.State{}, err
	}
	return next, nil
}
