package traversal

import (
	"github.com/routee-compass/compass-core/internal/state"
	"github.com/routee-compass/compass-core/internal/units"
	"github.com/routee-compass/compass-core/internal/vehicle"
)

const (
	phevModeDepleting = 0.0
	phevModeSustaining = 1.0
)

// EnergyModel writes trip_energy_liquid and/or trip_energy_electric by
// evaluating the selected vehicle archetype's powertrain grid(s) at
// (edge_speed, edge_grade). A PHEV additionally tracks phev_mode, a
// one-way charge_depleting (0) -> charge_sustaining (1) switch triggered
// on the first edge whose electric draw would exceed the remaining
// battery capacity; once set, every subsequent edge is priced on the
// liquid grid regardless of battery math.
type EnergyModel struct {
	Archetype vehicle.Archetype
}

func (EnergyModel) InputFeatures() []string { return []string{"edge_speed", "edge_grade"} }

func (m EnergyModel) OutputFeatures() []string {
	switch m.Archetype.Kind {
	case vehicle.KindICE:
		return []string{"trip_energy_liquid"}
	case vehicle.KindBEV:
		return []string{"trip_energy_electric"}
	default:
		return []string{"trip_energy_liquid", "trip_energy_electric", "phev_mode"}
	}
}

func (m EnergyModel) FeatureDescriptors() []state.FeatureDescriptor {
	switch m.Archetype.Kind {
	case vehicle.KindICE:
		return []state.FeatureDescriptor{
			{Name: "trip_energy_liquid", Kind: state.KindFloat, Unit: units.GallonsGasoline, Accumulator: state.AccumulatorSum},
		}
	case vehicle.KindBEV:
		return []state.FeatureDescriptor{
			{Name: "trip_energy_electric", Kind: state.KindFloat, Unit: units.KilowattHours, Accumulator: state.AccumulatorSum},
		}
	default:
		return []state.FeatureDescriptor{
			{Name: "trip_energy_liquid", Kind: state.KindFloat, Unit: units.GallonsGasoline, Accumulator: state.AccumulatorSum},
			{Name: "trip_energy_electric", Kind: state.KindFloat, Unit: units.KilowattHours, Accumulator: state.AccumulatorSum},
			{Name: "phev_mode", Kind: state.KindFloat, Unit: units.Ratio, Accumulator: state.AccumulatorReplace},
		}
	}
}

func (m EnergyModel) TraverseEdge(sm *state.StateModel, prev state.State, edge EdgeView) (state.State, error) {
	speed, err := sm.Get(prev, "edge_speed", units.MetersPerSecond)
	if err != nil {
		return state.State{}, err
	}
	grade, err := sm.Get(prev, "edge_grade", units.Ratio)
	if err != nil {
		return state.State{}, err
	}

	next := prev.Clone()

	switch m.Archetype.Kind {
	case vehicle.KindICE:
		energy := m.Archetype.LiquidGrid.EdgeEnergy(speed, grade, edge.Distance)
		if err := sm.Add(&next, "trip_energy_liquid", energy, units.GallonsGasoline); err != nil {
			return state.State{}, err
		}
	case vehicle.KindBEV:
		energy := m.Archetype.ElectricGrid.EdgeEnergy(speed, grade, edge.Distance)
		if err := sm.Add(&next, "trip_energy_electric", energy, units.KilowattHours); err != nil {
			return state.State{}, err
		}
	case vehicle.KindPHEV:
		if err := m.traversePHEV(sm, prev, &next, speed, grade, edge); err != nil {
			return state.State{}, err
		}
	}
	return next, nil
}

func (m EnergyModel) traversePHEV(sm *state.StateModel, prev state.State, next *state.State, speed, grade float64, edge EdgeView) error {
	mode, err := sm.Get(prev, "phev_mode", units.Ratio)
	if err != nil {
		return err
	}

	if mode == phevModeSustaining {
		energy := m.Archetype.LiquidGrid.EdgeEnergy(speed, grade, edge.Distance)
		return sm.Add(next, "trip_energy_liquid", energy, units.GallonsGasoline)
	}

	electricEnergy := m.Archetype.ElectricGrid.EdgeEnergy(speed, grade, edge.Distance)
	usedSoFar, err := sm.Get(prev, "trip_energy_electric", units.KilowattHours)
	if err != nil {
		return err
	}

	if usedSoFar+electricEnergy <= m.Archetype.BatteryCapacityKWh {
		return sm.Add(next, "trip_energy_electric", electricEnergy, units.KilowattHours)
	}

	if err := sm.Set(next, "phev_mode", phevModeSustaining, units.Ratio); err != nil {
		return err
	}
	liquidEnergy := m.Archetype.LiquidGrid.EdgeEnergy(speed, grade, edge.Distance)
	return sm.Add(next, "trip_energy_liquid", liquidEnergy, units.GallonsGasoline)
}

func (EnergyModel) AccessEdge(sm *state.StateModel, s state.State, srcEdge, dstEdge EdgeView) (state.State, error) {
	return s, nil
}

func (EnergyModel) EstimateTraversal(sm *state.StateModel, s state.State, remainingDistance float64) (state.State, error) {
	return s, nil
}
