package traversal

import "github.com/routee-compass/compass-core/internal/graph"

// EdgeView is the per-edge attribute row a TraversalModel reads while
// traversing. graph.Edge carries only topology and distance; speed,
// grade, and heading live in separate parallel columns indexed by edge
// id (spec.md §6: "per-edge attribute tables... are separate parallel
// columns indexed by edge id").
type EdgeView struct {
	ID        graph.EdgeID
	From      graph.VertexID
	To        graph.VertexID
	Distance  float64 // meters
	Speed     float64 // meters per second, free-flow/posted speed
	Grade     float64 // ratio, rise/run
	Heading   float64 // degrees, 0-360, direction of travel entering To
	RoadClass string
}

// AttributeTable holds the parallel per-edge columns, indexed by
// graph.EdgeID, that aren't part of the core Graph.
type AttributeTable struct {
	Speed     []float64
	Grade     []float64
	Heading   []float64
	RoadClass []string
}

// GraphContext pairs a built Graph with its attribute columns and
// exposes the combined EdgeView a TraversalModel needs.
type GraphContext struct {
	Graph      *graph.Graph
	Attributes AttributeTable

	maxSpeed float64
}

// NewGraphContext builds a GraphContext; attribute slices must be sized
// to g.NumEdges() or EdgeView will report zero values for out-of-range
// reads. The graph-wide maximum speed is computed once here so MaxSpeed
// is O(1) on every later call.
func NewGraphContext(g *graph.Graph, attrs AttributeTable) *GraphContext {
	var max float64
	for _, s := range attrs.Speed {
		if s > max {
			max = s
		}
	}
	return &GraphContext{Graph: g, Attributes: attrs, maxSpeed: max}
}

// MaxSpeed returns the fastest speed found on any edge's attribute row,
// a graph-wide free-flow upper bound usable as the "ideal speed" a
// time-cost A* heuristic needs to stay admissible (spec.md §4.3). Zero
// when the attribute table carries no speed column.
func (c *GraphContext) MaxSpeed() float64 {
	return c.maxSpeed
}

// EdgeView assembles the combined view for edge id e.
func (c *GraphContext) EdgeView(e graph.EdgeID) (EdgeView, error) {
	edge, err := c.Graph.Edge(e)
	if err != nil {
		return EdgeView{}, err
	}
	view := EdgeView{ID: edge.ID, From: edge.From, To: edge.To, Distance: edge.Distance}
	if int(e) < len(c.Attributes.Speed) {
		view.Speed = c.Attributes.Speed[e]
	}
	if int(e) < len(c.Attributes.Grade) {
		view.Grade = c.Attributes.Grade[e]
	}
	if int(e) < len(c.Attributes.Heading) {
		view.Heading = c.Attributes.Heading[e]
	}
	if int(e) < len(c.Attributes.RoadClass) {
		view.RoadClass = c.Attributes.RoadClass[e]
	}
	return view, nil
}
