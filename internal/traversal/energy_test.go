package traversal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routee-compass/compass-core/internal/powertrain"
	"github.com/routee-compass/compass-core/internal/traversal"
	"github.com/routee-compass/compass-core/internal/units"
	"github.com/routee-compass/compass-core/internal/vehicle"
)

func constantGrid(t *testing.T, rate float64) *powertrain.Grid {
	t.Helper()
	speedAxis := powertrain.Axis{Name: "speed", LowerBound: 0, UpperBound: 30, NumBins: 2}
	gradeAxis := powertrain.Axis{Name: "grade", LowerBound: -0.1, UpperBound: 0.1, NumBins: 2}
	g, err := powertrain.NewGrid(speedAxis, gradeAxis, func(speed, grade float64) float64 { return rate }, 1.0)
	require.NoError(t, err)
	return g
}

func TestEnergyModelPHEVSwitchesModeOnDepletion(t *testing.T) {
	electricGrid := constantGrid(t, 0.2) // kWh per meter
	liquidGrid := constantGrid(t, 0.01)  // gal per meter
	archetype := vehicle.NewPHEV("phev_test", liquidGrid, electricGrid, 1.0)

	c, err := traversal.NewComposite([]traversal.Model{
		traversal.SpeedModel{},
		traversal.GradeModel{},
		traversal.EnergyModel{Archetype: archetype},
	})
	require.NoError(t, err)
	sm, err := c.StateModel()
	require.NoError(t, err)

	s := sm.InitialState()
	edge := traversal.EdgeView{Distance: 1, Speed: 10, Grade: 0}

	// First edge: 0.2 kWh used, under the 1.0 kWh cap, stays depleting.
	s, err = c.TraverseEdge(sm, s, edge)
	require.NoError(t, err)
	mode, err := sm.Get(s, "phev_mode", units.Ratio)
	require.NoError(t, err)
	assert.Equal(t, 0.0, mode)

	// Repeat edges until cumulative electric draw would exceed capacity.
	for i := 0; i < 10; i++ {
		s, err = c.TraverseEdge(sm, s, edge)
		require.NoError(t, err)
	}

	mode, err = sm.Get(s, "phev_mode", units.Ratio)
	require.NoError(t, err)
	assert.Equal(t, 1.0, mode, "PHEV must have switched to charge_sustaining mode")

	electric, err := sm.Get(s, "trip_energy_electric", units.KilowattHours)
	require.NoError(t, err)
	assert.True(t, electric <= 1.0, "electric draw must never exceed battery capacity")

	liquid, err := sm.Get(s, "trip_energy_liquid", units.GallonsGasoline)
	require.NoError(t, err)
	assert.True(t, liquid > 0, "liquid energy must accrue after mode switch")
}

func TestEnergyModelICEUsesLiquidOnly(t *testing.T) {
	liquidGrid := constantGrid(t, 0.01)
	archetype := vehicle.NewICE("ice_test", liquidGrid)

	c, err := traversal.NewComposite([]traversal.Model{
		traversal.SpeedModel{},
		traversal.GradeModel{},
		traversal.EnergyModel{Archetype: archetype},
	})
	require.NoError(t, err)
	sm, err := c.StateModel()
	require.NoError(t, err)

	s := sm.InitialState()
	s, err = c.TraverseEdge(sm, s, traversal.EdgeView{Distance: 1000, Speed: 10, Grade: 0})
	require.NoError(t, err)

	liquid, err := sm.Get(s, "trip_energy_liquid", units.GallonsGasoline)
	require.NoError(t, err)
	assert.InDelta(t, 10, liquid, 1e-9)
}
