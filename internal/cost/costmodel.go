package cost

import (
	"fmt"

	"github.com/routee-compass/compass-core/internal/state"
)

// CostModel reduces search-state deltas to a non-negative scalar the
// search loop minimizes. Grounded on the teacher's routing.Strategy
// (EdgeCost/ShouldStop): this generalizes EdgeCost into a
// feature-weighted, admissible-heuristic-aware contract and moves
// ShouldStop's job to TerminationModel.
type CostModel interface {
	// TraversalCost prices the state change from traversing one edge.
	TraversalCost(prev, next state.State) (float64, error)

	// AccessCost prices the state change from moving between two edges
	// that share a vertex (turn delays, mode switches).
	AccessCost(before, after state.State) (float64, error)

	// CostEstimate is the A* heuristic: an admissible lower bound on the
	// true remaining cost to reach a vertex at least remainingDistance
	// away, given the current state from.
	CostEstimate(from state.State, remainingDistance float64) (float64, error)

	// TotalCost aggregates a sequence of already-computed costs the same
	// way this model aggregates per-feature costs (sum or max).
	TotalCost(costs []float64) float64
}

// DefaultCostModel is a feature-weighted CostModel configured with a
// rate and weight per feature, matching spec.md §4.3's configuration
// surface (per-feature rate, per-feature weight, sum|max aggregation).
type DefaultCostModel struct {
	stateModel  *state.StateModel
	features    []FeatureConfig
	aggregation Aggregation
}

// NewDefaultCostModel builds a DefaultCostModel. Per-query weight
// overrides that omit a feature are treated as weight 0 (do-not-consider),
// not "use default" — callers apply overrides before constructing the
// FeatureConfig list passed here.
func NewDefaultCostModel(stateModel *state.StateModel, features []FeatureConfig, aggregation Aggregation) (*DefaultCostModel, error) {
	if len(features) == 0 {
		return nil, ErrNoFeatures
	}
	if aggregation != AggregationSum && aggregation != AggregationMax {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAggregation, aggregation)
	}
	cloned := make([]FeatureConfig, len(features))
	copy(cloned, features)
	return &DefaultCostModel{stateModel: stateModel, features: cloned, aggregation: aggregation}, nil
}

func (m *DefaultCostModel) aggregate(values []float64) float64 {
	switch m.aggregation {
	case AggregationMax:
		max := 0.0
		for i, v := range values {
			if i == 0 || v > max {
				max = v
			}
		}
		return max
	default:
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		return sum
	}
}

func (m *DefaultCostModel) perFeatureDeltas(prev, next state.State) ([]float64, error) {
	values := make([]float64, len(m.features))
	for i, f := range m.features {
		before, err := m.stateModel.Get(prev, f.FeatureName, f.Unit)
		if err != nil {
			return nil, fmt.Errorf("cost: reading %q before: %w", f.FeatureName, err)
		}
		after, err := m.stateModel.Get(next, f.FeatureName, f.Unit)
		if err != nil {
			return nil, fmt.Errorf("cost: reading %q after: %w", f.FeatureName, err)
		}
		values[i] = f.Weight * f.Rate.Apply(after-before)
	}
	return values, nil
}

// FeatureBreakdown returns each configured feature's weighted cost
// contribution over the delta from prev to next, keyed by feature name,
// for reporting a Result's `cost.per_feature` (spec.md §6) without
// re-deriving TraversalCost's aggregation.
func (m *DefaultCostModel) FeatureBreakdown(prev, next state.State) (map[string]float64, error) {
	values, err := m.perFeatureDeltas(prev, next)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(m.features))
	for i, f := range m.features {
		out[f.FeatureName] = values[i]
	}
	return out, nil
}

// TraversalCost sums (or maxes) each configured feature's weighted cost
// contribution over the edge traversal's state delta.
func (m *DefaultCostModel) TraversalCost(prev, next state.State) (float64, error) {
	values, err := m.perFeatureDeltas(prev, next)
	if err != nil {
		return 0, err
	}
	total := m.aggregate(values)
	if total < 0 {
		return 0, fmt.Errorf("%w: traversal cost %f", ErrNegativeCost, total)
	}
	return total, nil
}

// AccessCost prices state changes applied between two edges sharing a
// vertex (turn delays, PHEV mode switches), using the same per-feature
// configuration as TraversalCost.
func (m *DefaultCostModel) AccessCost(before, after state.State) (float64, error) {
	values, err := m.perFeatureDeltas(before, after)
	if err != nil {
		return 0, err
	}
	total := m.aggregate(values)
	if total < 0 {
		return 0, fmt.Errorf("%w: access cost %f", ErrNegativeCost, total)
	}
	return total, nil
}

// CostEstimate computes an admissible lower bound by first converting
// remainingDistance (meters) into each feature's own unit at its
// IdealRatePerMeter, then pricing that quantity at the feature's
// cheapest conceivable rate. remainingDistance alone is only a feature's
// native quantity when the feature IS distance; for a time or energy
// feature, pricing raw meters through MinRatePerUnit (cost per second,
// cost per joule) silently assumes an average speed of one meter per
// second, which is false for anything but very slow travel and makes
// the heuristic inadmissible (spec.md §4.3, §8 testable property 1).
// IdealRatePerMeter is the caller-supplied fix: a free-flow speed's
// inverse for time, a grid's cheapest cell for energy, 1 for distance
// itself.
func (m *DefaultCostModel) CostEstimate(from state.State, remainingDistance float64) (float64, error) {
	if remainingDistance < 0 {
		remainingDistance = 0
	}
	values := make([]float64, len(m.features))
	for i, f := range m.features {
		idealQuantity := f.IdealRatePerMeter * remainingDistance
		values[i] = f.Weight * f.Rate.MinRatePerUnit() * idealQuantity
	}
	estimate := m.aggregate(values)
	if estimate < 0 {
		return 0, fmt.Errorf("%w: cost estimate %f", ErrNegativeCost, estimate)
	}
	return estimate, nil
}

// TotalCost aggregates a sequence of already-priced costs (e.g. per-edge
// traversal/access costs along a path) the same way this model
// aggregates per-feature costs.
func (m *DefaultCostModel) TotalCost(costs []float64) float64 {
	return m.aggregate(costs)
}
