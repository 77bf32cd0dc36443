package cost

import "github.com/routee-compass/compass-core/internal/units"

// Aggregation is how per-feature costs combine into a single scalar.
type Aggregation int

const (
	AggregationSum Aggregation = iota
	AggregationMax
)

// FeatureConfig declares how one state feature contributes to cost:
// read the feature's delta (in Unit), price it with Rate, scale by
// Weight. LookupRate is intentionally not usable here — its Apply needs
// a classification key a plain state delta can't supply; feed lookup-rate
// costs into the state (e.g. turn_delay writing trip_time) and let a
// FactorRate{1} feature price the resulting delta instead.
type FeatureConfig struct {
	FeatureName string
	Unit        units.Unit
	Rate        Rate
	Weight      float64

	// IdealRatePerMeter converts a remaining-distance budget (meters)
	// into this feature's best-case, lowest-cost quantity in Unit, for
	// use by CostEstimate's A* heuristic. It must be the true minimum
	// conceivable rate over the whole graph (free-flow speed's inverse
	// for a time feature, a grid's cheapest cell for an energy feature,
	// 1 for trip_distance itself) or the heuristic stops being
	// admissible (spec.md §4.3, §8 testable property 1/4). Zero is
	// always safe — it degrades the heuristic for that feature to
	// "unknown, assume free" rather than making it inadmissible.
	IdealRatePerMeter float64
}
