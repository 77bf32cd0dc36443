// Package frontier implements the predicate evaluated before an edge
// enters the search open set (spec.md §4.5). Grounded on the teacher's
// inline walk-edge-length filter in routing.astar ("skip walk edges
// longer than 200m"), generalized into a composable, named predicate.
package frontier

import (
	"github.com/routee-compass/compass-core/internal/state"
	"github.com/routee-compass/compass-core/internal/traversal"
)

// Model is a pure, stateless predicate: it must not mutate state and
// must depend only on its inputs (spec.md §4.5's invariant).
type Model interface {
	ValidFrontier(s state.State, edge traversal.EdgeView, srcEdge *traversal.EdgeView) bool
}

// Unrestricted accepts every edge; it is the default.
type Unrestricted struct{}

func (Unrestricted) ValidFrontier(s state.State, edge traversal.EdgeView, srcEdge *traversal.EdgeView) bool {
	return true
}

// RoadClassFilter allows or denies edges by RoadClass membership.
// If Allow is non-empty, only those classes pass; Deny always excludes,
// evaluated after Allow.
type RoadClassFilter struct {
	Allow map[string]bool
	Deny  map[string]bool
}

func (f RoadClassFilter) ValidFrontier(s state.State, edge traversal.EdgeView, srcEdge *traversal.EdgeView) bool {
	if len(f.Allow) > 0 && !f.Allow[edge.RoadClass] {
		return false
	}
	if f.Deny[edge.RoadClass] {
		return false
	}
	return true
}

// MaxEdgeDistance rejects edges longer than Meters, the generalized form
// of the teacher's hardcoded 200m walk-edge cutoff.
type MaxEdgeDistance struct {
	Meters float64
}

func (f MaxEdgeDistance) ValidFrontier(s state.State, edge traversal.EdgeView, srcEdge *traversal.EdgeView) bool {
	return edge.Distance <= f.Meters
}

// VehicleDimensionLimit rejects road classes a vehicle's height or
// weight cannot legally use. RestrictedClasses names road classes this
// vehicle must avoid (e.g. "restricted_low_clearance",
// "restricted_weight_limit"); real dimension/clearance lookups live
// outside the frontier predicate in the edge attribute tables the
// query-time RoadClass already encodes.
type VehicleDimensionLimit struct {
	RestrictedClasses map[string]bool
}

func (f VehicleDimensionLimit) ValidFrontier(s state.State, edge traversal.EdgeView, srcEdge *traversal.EdgeView) bool {
	return !f.RestrictedClasses[edge.RoadClass]
}

// All combines multiple Models; an edge must pass every one.
type All struct {
	Models []Model
}

func (a All) ValidFrontier(s state.State, edge traversal.EdgeView, srcEdge *traversal.EdgeView) bool {
	for _, m := range a.Models {
		if !m.ValidFrontier(s, edge, srcEdge) {
			return false
		}
	}
	return true
}
