// Package search implements the A*/Dijkstra kernel (spec.md §4.8).
// Grounded on the teacher's routing.Router.astar: a container/heap open
// set, a best-cost map for lazy decrease-key with stale-entry skip, and
// a periodic cooperative-cancellation poll — generalized from the
// teacher's transit-specific PathState/Strategy pair to the composable
// Traversal/Frontier/Cost/Termination models.
package search

import (
	"container/heap"
	"context"
	"fmt"
	"time"

	"github.com/routee-compass/compass-core/internal/cost"
	"github.com/routee-compass/compass-core/internal/frontier"
	"github.com/routee-compass/compass-core/internal/graph"
	"github.com/routee-compass/compass-core/internal/label"
	"github.com/routee-compass/compass-core/internal/state"
	"github.com/routee-compass/compass-core/internal/termination"
	"github.com/routee-compass/compass-core/internal/traversal"
)

// LabelFunc derives a search Label for a vertex given the state reached
// there. The default (nil) uses a vertex-only label; a PHEV-aware
// configuration might fold phev_mode into the discriminator so the two
// modes are tracked as distinct frontier entries at the same vertex.
type LabelFunc func(v graph.VertexID, s state.State) label.Label

// Instance bundles everything one search run needs, matching spec.md
// §4.8's "SearchInstance (Graph + StateModel + TraversalModel +
// AccessModel + FrontierModel + CostModel + TerminationModel + label
// constructor)". AccessModel is folded into Traversal: Composite's
// AccessEdge method plays that role, the way every stock child model
// already distinguishes TraverseEdge from AccessEdge.
type Instance struct {
	Graph       *graph.Graph
	Context     *traversal.GraphContext
	StateModel  *state.StateModel
	Traversal   traversal.Model
	Frontier    frontier.Model
	Cost        cost.CostModel
	Termination termination.Model
	LabelFunc   LabelFunc

	// ExcludedEdges and ExcludedVertices let a caller run a search over
	// a temporarily pruned graph without rebuilding it, the way KSP's
	// Yen's algorithm needs a spur search that can't reuse a previous
	// path's prefix edges or revisit its prefix vertices. Nil means no
	// exclusion.
	ExcludedEdges    map[graph.EdgeID]bool
	ExcludedVertices map[graph.VertexID]bool
}

func (inst *Instance) labelFor(v graph.VertexID, s state.State) label.Label {
	if inst.LabelFunc != nil {
		return inst.LabelFunc(v, s)
	}
	return label.Simple(v)
}

// Result is the outcome of a Run.
type Result struct {
	Tree              Tree
	DestinationLabel  label.Label
	Found             bool
	TerminationReason termination.Reason
	TerminationCause  termination.Cause
	IterationCount    int
	Elapsed           time.Duration
}

// Run executes A* (or plain Dijkstra when destination is nil, forcing
// the heuristic to zero) from origin to an optional destination vertex.
func Run(ctx context.Context, inst *Instance, origin graph.VertexID, destination *graph.VertexID) (*Result, error) {
	start := time.Now()

	if destination != nil && origin == *destination {
		initial := inst.StateModel.InitialState()
		originLabel := inst.labelFor(origin, initial)
		tree := Tree{originLabel: {State: initial}}
		return &Result{Tree: tree, DestinationLabel: originLabel, Found: true}, nil
	}

	open := &priorityQueue{}
	heap.Init(open)

	tree := make(Tree)
	bestCost := make(map[label.Label]float64)

	initial := inst.StateModel.InitialState()
	originLabel := inst.labelFor(origin, initial)
	h := inst.heuristic(initial, origin, destination)

	seq := 0
	heap.Push(open, &queueItem{label: originLabel, gScore: 0, fScore: h, seq: seq})
	bestCost[originLabel] = 0
	tree[originLabel] = TreeEntry{State: initial}

	iterationCount := 0

	for open.Len() > 0 {
		if inst.Termination.ShouldCheck(iterationCount) {
			select {
			case <-ctx.Done():
				return inst.terminatedResult(tree, iterationCount, start, termination.ReasonAllowed, termination.CauseUserCancel), nil
			default:
			}
			reason, cause := inst.Termination.QueryTerminated(iterationCount, time.Since(start), tree.SizeBytes())
			if reason == termination.ReasonExhausted {
				return nil, &TerminatedExhaustedError{Cause: cause}
			}
			if reason == termination.ReasonAllowed {
				return inst.terminatedResult(tree, iterationCount, start, reason, cause), nil
			}
		}

		current := heap.Pop(open).(*queueItem)
		iterationCount++

		if currentBest, ok := bestCost[current.label]; ok && current.gScore > currentBest {
			continue
		}

		if destination != nil && current.label.Vertex == *destination {
			return &Result{
				Tree:             tree,
				DestinationLabel: current.label,
				Found:            true,
				IterationCount:   iterationCount,
				Elapsed:          time.Since(start),
			}, nil
		}

		entry := tree[current.label]
		currentState := entry.State

		outEdges, err := inst.Graph.OutEdges(current.label.Vertex)
		if err != nil {
			return nil, fmt.Errorf("search: %w", err)
		}

		var inboundView *traversal.EdgeView
		if entry.HasBack {
			v, err := inst.Context.EdgeView(entry.InboundEdge)
			if err == nil {
				inboundView = &v
			}
		}

		for _, e := range outEdges {
			if inst.ExcludedEdges[e] {
				continue
			}
			edgeView, err := inst.Context.EdgeView(e)
			if err != nil {
				continue
			}
			if inst.ExcludedVertices[edgeView.To] {
				continue
			}
			if !inst.Frontier.ValidFrontier(currentState, edgeView, inboundView) {
				continue
			}

			stateForTraversal := currentState
			var accessCost float64
			if inboundView != nil {
				accessedState, err := inst.Traversal.AccessEdge(inst.StateModel, currentState, *inboundView, edgeView)
				if err != nil {
					continue
				}
				accessCost, err = inst.Cost.AccessCost(currentState, accessedState)
				if err != nil {
					return nil, fmt.Errorf("search: %w", err)
				}
				stateForTraversal = accessedState
			}

			nextState, err := inst.Traversal.TraverseEdge(inst.StateModel, stateForTraversal, edgeView)
			if err != nil {
				continue
			}

			traversalCost, err := inst.Cost.TraversalCost(stateForTraversal, nextState)
			if err != nil {
				return nil, fmt.Errorf("search: %w", err)
			}

			delta := traversalCost + accessCost
			if delta < 0 {
				return nil, fmt.Errorf("%w: %f", ErrNegativeCost, delta)
			}

			nextLabel := inst.labelFor(edgeView.To, nextState)
			nextCost := current.gScore + delta

			if existing, ok := bestCost[nextLabel]; ok && nextCost >= existing {
				continue
			}

			bestCost[nextLabel] = nextCost
			tree[nextLabel] = TreeEntry{
				HasBack:        true,
				Back:           current.label,
				InboundEdge:    e,
				State:          nextState,
				CumulativeCost: nextCost,
			}

			nextH := inst.heuristic(nextState, edgeView.To, destination)
			seq++
			heap.Push(open, &queueItem{label: nextLabel, gScore: nextCost, fScore: nextCost + nextH, seq: seq})
		}
	}

	if destination == nil {
		return &Result{Tree: tree, IterationCount: iterationCount, Elapsed: time.Since(start)}, nil
	}
	return nil, ErrNoPath
}

func (inst *Instance) heuristic(s state.State, v graph.VertexID, destination *graph.VertexID) float64 {
	if destination == nil {
		return 0
	}
	from, err := inst.Graph.Vertex(v)
	if err != nil {
		return 0
	}
	to, err := inst.Graph.Vertex(*destination)
	if err != nil {
		return 0
	}
	remaining := graph.HaversineMeters(from.Lat, from.Lon, to.Lat, to.Lon)
	estimate, err := inst.Cost.CostEstimate(s, remaining)
	if err != nil {
		return 0
	}
	return estimate
}

func (inst *Instance) terminatedResult(tree Tree, iterationCount int, start time.Time, reason termination.Reason, cause termination.Cause) *Result {
	return &Result{
		Tree:              tree,
		Found:             false,
		TerminationReason: reason,
		TerminationCause:  cause,
		IterationCount:    iterationCount,
		Elapsed:           time.Since(start),
	}
}
