package cost

import "errors"

// ErrNegativeCost is returned when an aggregated cost comes out negative,
// violating the "costs are non-negative" invariant. A well-formed Rate
// should never produce this; it exists as a last-resort guard, matching
// the teacher's defensive error returns at unexpected-state boundaries.
var ErrNegativeCost = errors.New("cost: negative cost")

// ErrUnknownAggregation is returned by NewDefaultCostModel for an
// unrecognized Aggregation value.
var ErrUnknownAggregation = errors.New("cost: unknown aggregation mode")

// ErrNoFeatures is returned by NewDefaultCostModel when given no
// per-feature configuration.
var ErrNoFeatures = errors.New("cost: model requires at least one feature")
