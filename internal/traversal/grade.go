package traversal

import (
	"github.com/routee-compass/compass-core/internal/state"
	"github.com/routee-compass/compass-core/internal/units"
)

// GradeModel writes edge_grade from the per-edge grade lookup array.
type GradeModel struct{}

func (GradeModel) InputFeatures() []string  { return nil }
func (GradeModel) OutputFeatures() []string { return []string{"edge_grade"} }

func (GradeModel) FeatureDescriptors() []state.FeatureDescriptor {
	return []state.FeatureDescriptor{
		{Name: "edge_grade", Kind: state.KindFloat, Unit: units.Ratio, Accumulator: state.AccumulatorReplace},
	}
}

func (GradeModel) TraverseEdge(sm *state.StateModel, prev state.State, edge EdgeView) (state.State, error) {
	next := prev.Clone()
	if err := sm.Set(&next, "edge_grade", edge.Grade, units.Ratio); err != nil {
		return state.State{}, err
	}
	return next, nil
}

func (GradeModel) AccessEdge(sm *state.StateModel, s state.State, srcEdge, dstEdge EdgeView) (state.State, error) {
	return s, nil
}

func (GradeModel) EstimateTraversal(sm *state.StateModel, s state.State, remainingDistance float64) (state.State, error) {
	return s, nil
}
