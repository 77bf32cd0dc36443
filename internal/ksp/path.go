// Package ksp implements k-shortest-paths metaheuristics over a
// search.Instance: Yen's algorithm, Single-Via-Paths, and a similarity
// filter controlling how much two accepted paths may overlap (spec.md
// §4.8's KSP sections).
package ksp

import (
	"fmt"

	"github.com/routee-compass/compass-core/internal/graph"
	"github.com/routee-compass/compass-core/internal/search"
	"github.com/routee-compass/compass-core/internal/state"
	"github.com/routee-compass/compass-core/internal/traversal"
)

// Path is one candidate or accepted k-shortest-path result.
type Path struct {
	Edges []graph.EdgeID
	Cost  float64
}

// Simulate replays edges through inst's Traversal/Cost models, the way
// search.Run would have scored them, and returns the final state and
// accumulated cost. Used internally to price a path stitched together
// from a root prefix and a spur suffix found by two separate searches,
// and exported so a caller holding a plain edge-id route (from any of
// a*, dijkstras, yens, or svp) can compute its final state/cost
// uniformly without duplicating this replay loop.
func Simulate(inst *search.Instance, edges []graph.EdgeID) (state.State, float64, error) {
	s := inst.StateModel.InitialState()
	total := 0.0
	var prevEdgeView *traversal.EdgeView

	for _, e := range edges {
		edgeView, err := inst.Context.EdgeView(e)
		if err != nil {
			return state.State{}, 0, fmt.Errorf("ksp: %w", err)
		}

		stateForTraversal := s
		accessCost := 0.0
		if prevEdgeView != nil {
			accessed, err := inst.Traversal.AccessEdge(inst.StateModel, s, *prevEdgeView, edgeView)
			if err != nil {
				return state.State{}, 0, fmt.Errorf("ksp: %w", err)
			}
			accessCost, err = inst.Cost.AccessCost(s, accessed)
			if err != nil {
				return state.State{}, 0, fmt.Errorf("ksp: %w", err)
			}
			stateForTraversal = accessed
		}

		next, err := inst.Traversal.TraverseEdge(inst.StateModel, stateForTraversal, edgeView)
		if err != nil {
			return state.State{}, 0, fmt.Errorf("ksp: %w", err)
		}
		traversalCost, err := inst.Cost.TraversalCost(stateForTraversal, next)
		if err != nil {
			return state.State{}, 0, fmt.Errorf("ksp: %w", err)
		}

		total += traversalCost + accessCost
		s = next
		ev := edgeView
		prevEdgeView = &ev
	}

	return s, total, nil
}
