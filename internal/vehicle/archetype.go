// Package vehicle declares the archetypes the energy TraversalModel
// selects between by query-provided model_name (spec.md §4.4's "energy"
// child model). Each archetype pairs a powertrain grid per energy
// carrier with the bookkeeping a multi-fuel vehicle needs.
package vehicle

import "github.com/routee-compass/compass-core/internal/powertrain"

// Kind identifies a vehicle's fuel configuration.
type Kind int

const (
	KindICE Kind = iota
	KindBEV
	KindPHEV
)

// Archetype is one configured vehicle model. ICE uses only LiquidGrid,
// BEV uses only ElectricGrid, PHEV uses both plus BatteryCapacityKWh to
// drive the charge_depleting -> charge_sustaining transition.
type Archetype struct {
	Name                string
	Kind                Kind
	LiquidGrid          *powertrain.Grid
	ElectricGrid        *powertrain.Grid
	BatteryCapacityKWh  float64
}

// NewICE builds a single-fuel internal-combustion archetype.
func NewICE(name string, liquidGrid *powertrain.Grid) Archetype {
	return Archetype{Name: name, Kind: KindICE, LiquidGrid: liquidGrid}
}

// NewBEV builds a single-fuel battery-electric archetype.
func NewBEV(name string, electricGrid *powertrain.Grid) Archetype {
	return Archetype{Name: name, Kind: KindBEV, ElectricGrid: electricGrid}
}

// NewPHEV builds a two-fuel plug-in-hybrid archetype. batteryCapacityKWh
// bounds how much electric energy can be drawn before the vehicle
// permanently switches to charge_sustaining (liquid-only) mode for the
// remainder of the trip — spec.md §4.4's one-way mode transition.
func NewPHEV(name string, liquidGrid, electricGrid *powertrain.Grid, batteryCapacityKWh float64) Archetype {
	return Archetype{
		Name:               name,
		Kind:               KindPHEV,
		LiquidGrid:         liquidGrid,
		ElectricGrid:       electricGrid,
		BatteryCapacityKWh: batteryCapacityKWh,
	}
}

// Registry resolves a query's model_name to a configured Archetype, the
// vehicle-selection analog of the teacher's routing.GetStrategy/
// GetAllStrategies lookup-by-name pattern.
type Registry struct {
	byName map[string]Archetype
}

// NewRegistry builds an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Archetype)}
}

// Register adds or replaces an archetype under its own Name.
func (r *Registry) Register(a Archetype) {
	r.byName[a.Name] = a
}

// Get returns the archetype registered under name.
func (r *Registry) Get(name string) (Archetype, bool) {
	a, ok := r.byName[name]
	return a, ok
}

// Names lists every registered archetype name.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	return names
}
