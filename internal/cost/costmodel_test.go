package cost_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routee-compass/compass-core/internal/cost"
	"github.com/routee-compass/compass-core/internal/powertrain"
	"github.com/routee-compass/compass-core/internal/state"
	"github.com/routee-compass/compass-core/internal/units"
)

func buildModel(t *testing.T, agg cost.Aggregation) (*state.StateModel, *cost.DefaultCostModel) {
	t.Helper()
	sm, err := state.NewStateModel([]state.FeatureDescriptor{
		{Name: "trip_distance", Unit: units.Meters, Accumulator: state.AccumulatorSum},
		{Name: "trip_time", Unit: units.Seconds, Accumulator: state.AccumulatorSum},
	})
	require.NoError(t, err)

	cm, err := cost.NewDefaultCostModel(sm, []cost.FeatureConfig{
		{FeatureName: "trip_distance", Unit: units.Meters, Rate: cost.FactorRate{Factor: 0.01}, Weight: 1, IdealRatePerMeter: 1},
		// 30 m/s (~67 mph) stands in for the ideal free-flow speed: 1
		// second of travel buys 30 meters, so 1 meter of remaining
		// distance costs at least 1/30 second.
		{FeatureName: "trip_time", Unit: units.Seconds, Rate: cost.FactorRate{Factor: 1}, Weight: 1, IdealRatePerMeter: 1.0 / 30.0},
	}, agg)
	require.NoError(t, err)
	return sm, cm
}

func TestTraversalCostSumAggregation(t *testing.T) {
	sm, cm := buildModel(t, cost.AggregationSum)
	prev := sm.InitialState()
	next := prev.Clone()
	require.NoError(t, sm.Add(&next, "trip_distance", 100, units.Meters))
	require.NoError(t, sm.Add(&next, "trip_time", 20, units.Seconds))

	got, err := cm.TraversalCost(prev, next)
	require.NoError(t, err)
	assert.InDelta(t, 1.0+20.0, got, 1e-9)
}

func TestTraversalCostMaxAggregation(t *testing.T) {
	sm, cm := buildModel(t, cost.AggregationMax)
	prev := sm.InitialState()
	next := prev.Clone()
	require.NoError(t, sm.Add(&next, "trip_distance", 100, units.Meters))
	require.NoError(t, sm.Add(&next, "trip_time", 20, units.Seconds))

	got, err := cm.TraversalCost(prev, next)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, got, 1e-9)
}

func TestCostEstimateIsAdmissible(t *testing.T) {
	sm, cm := buildModel(t, cost.AggregationSum)
	from := sm.InitialState()

	remaining := 10000.0 // meters
	estimate, err := cm.CostEstimate(from, remaining)
	require.NoError(t, err)

	// True cost for this remaining distance at a realistic travel speed
	// (13 m/s, ~29 mph) must never be cheaper than the estimate. The old
	// heuristic priced remaining meters directly through the time
	// feature's per-second rate, which only stayed admissible at exactly
	// 1 m/s; 13 m/s exposes that bug because the true time cost
	// (remaining/13) is far below what the old code would have assumed.
	const realisticSpeed = 13.0
	trueTime := remaining / realisticSpeed
	trueCost := 0.01*remaining + trueTime
	assert.True(t, estimate <= trueCost, "estimate %f must be <= true cost %f", estimate, trueCost)
}

func TestCostEstimateIsAdmissibleForEnergyFeature(t *testing.T) {
	sm, err := state.NewStateModel([]state.FeatureDescriptor{
		{Name: "trip_energy_liquid", Unit: units.GallonsGasoline, Accumulator: state.AccumulatorSum},
	})
	require.NoError(t, err)

	speedAxis := powertrain.Axis{Name: "speed", LowerBound: 0, UpperBound: 30, NumBins: 4}
	gradeAxis := powertrain.Axis{Name: "grade", LowerBound: -0.1, UpperBound: 0.1, NumBins: 5}
	grid, err := powertrain.NewGrid(speedAxis, gradeAxis, func(speed, grade float64) float64 {
		return 0.2 + grade
	}, 1.0)
	require.NoError(t, err)
	idealRate := grid.IdealEnergyRate()

	cm, err := cost.NewDefaultCostModel(sm, []cost.FeatureConfig{
		{FeatureName: "trip_energy_liquid", Unit: units.GallonsGasoline, Rate: cost.FactorRate{Factor: 1}, Weight: 1, IdealRatePerMeter: idealRate},
	}, cost.AggregationSum)
	require.NoError(t, err)

	remaining := 5000.0
	estimate, err := cm.CostEstimate(sm.InitialState(), remaining)
	require.NoError(t, err)

	// No (speed, grade) pair on the grid can produce an energy rate
	// cheaper than idealRate, so pricing remaining distance at any
	// other rate on the grid must never be cheaper than the estimate.
	trueCost := grid.EnergyRate(20, 0) * remaining
	assert.True(t, estimate <= trueCost, "estimate %f must be <= true cost %f", estimate, trueCost)
}

func TestCostEstimateClampsNegativeRemaining(t *testing.T) {
	sm, cm := buildModel(t, cost.AggregationSum)
	from := sm.InitialState()
	got, err := cm.CostEstimate(from, -50)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestNewDefaultCostModelRejectsEmptyFeatures(t *testing.T) {
	sm, err := state.NewStateModel([]state.FeatureDescriptor{
		{Name: "trip_distance", Unit: units.Meters, Accumulator: state.AccumulatorSum},
	})
	require.NoError(t, err)
	_, err = cost.NewDefaultCostModel(sm, nil, cost.AggregationSum)
	assert.ErrorIs(t, err, cost.ErrNoFeatures)
}

func TestPiecewiseLinearRateInterpolates(t *testing.T) {
	r := cost.NewPiecewiseLinearRate([]cost.PiecewiseLinearPoint{
		{X: 0, Y: 2},
		{X: 10, Y: 4},
	})
	// at delta=5 the "rate" interpolates to 3, cost = 5*3 = 15
	assert.InDelta(t, 15.0, r.Apply(5), 1e-9)
	assert.Equal(t, 2.0, r.MinRatePerUnit())
}

func TestLookupRateAppliesByKey(t *testing.T) {
	r := cost.LookupRate{Table: map[string]float64{"sharp_left": 5, "no_turn": 0}}
	assert.Equal(t, 10.0, r.Apply("sharp_left", 2))
	assert.Equal(t, 0.0, r.Apply("no_turn", 2))
	assert.Equal(t, 0.0, r.MinRatePerUnit())
}
