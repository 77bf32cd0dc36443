package traversal

import (
	"math"

	"github.com/routee-compass/compass-core/internal/state"
	"github.com/routee-compass/compass-core/internal/units"
)

// TurnClass is a discrete heading-change classification.
type TurnClass string

const (
	TurnNone        TurnClass = "no_turn"
	TurnSlightLeft  TurnClass = "slight_left"
	TurnSharpLeft   TurnClass = "sharp_left"
	TurnSlightRight TurnClass = "slight_right"
	TurnSharpRight  TurnClass = "sharp_right"
	TurnUTurn       TurnClass = "u_turn"
)

// ClassifyTurn buckets the signed heading change from headingIn to
// headingOut (both in degrees, 0-360) into a TurnClass.
func ClassifyTurn(headingIn, headingOut float64) TurnClass {
	diff := math.Mod(headingOut-headingIn+540, 360) - 180 // in [-180, 180)

	abs := math.Abs(diff)
	switch {
	case abs >= 150:
		return TurnUTurn
	case abs < 15:
		return TurnNone
	case diff < 0 && abs < 75:
		return TurnSlightLeft
	case diff < 0:
		return TurnSharpLeft
	case abs < 75:
		return TurnSlightRight
	default:
		return TurnSharpRight
	}
}

// TurnDelayModel writes trip_time increments, applied between two edges
// sharing a vertex, from a discrete table indexed by turn classification.
type TurnDelayModel struct {
	DelaySeconds map[TurnClass]float64
}

// DefaultTurnDelaySeconds is a reasonable default delay table.
func DefaultTurnDelaySeconds() map[TurnClass]float64 {
	return map[TurnClass]float64{
		TurnNone:        0,
		TurnSlightLeft:  2,
		TurnSlightRight: 2,
		TurnSharpLeft:   6,
		TurnSharpRight:  6,
		TurnUTurn:       20,
	}
}

func (TurnDelayModel) InputFeatures() []string  { return nil }
func (TurnDelayModel) OutputFeatures() []string { return []string{"trip_time"} }

func (TurnDelayModel) FeatureDescriptors() []state.FeatureDescriptor {
	return []state.FeatureDescriptor{
		{Name: "trip_time", Kind: state.KindFloat, Unit: units.Seconds, Accumulator: state.AccumulatorSum},
	}
}

func (TurnDelayModel) TraverseEdge(sm *state.StateModel, prev state.State, edge EdgeView) (state.State, error) {
	return prev, nil
}

func (m TurnDelayModel) AccessEdge(sm *state.StateModel, s state.State, srcEdge, dstEdge EdgeView) (state.State, error) {
	class := ClassifyTurn(srcEdge.Heading, dstEdge.Heading)
	delay := m.DelaySeconds[class]
	if delay == 0 {
		return s, nil
	}
	next := s.Clone()
	if err := sm.Add(&next, "trip_time", delay, units.Seconds); err != nil {
		return state.State{}, err
	}
	return next, nil
}

func (TurnDelayModel) EstimateTraversal(sm *state.StateModel, s state.State, remainingDistance float64) (state.State, error) {
	return s, nil
}
