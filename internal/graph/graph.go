package graph

import "fmt"

// Graph is the immutable, vectorized road network. It is built once by a
// Builder and then shared read-only across every worker goroutine in a
// batch run — see spec.md §5 — so none of its accessor methods take a
// lock; there is nothing left to mutate after Build returns.
type Graph struct {
	vertices []Vertex
	edges    []Edge
	outAdj   [][]EdgeID // outAdj[v] = edge ids with From == v
	inAdj    [][]EdgeID // inAdj[v]  = edge ids with To == v
}

// NumVertices returns |V|.
func (g *Graph) NumVertices() int { return len(g.vertices) }

// NumEdges returns |E|.
func (g *Graph) NumEdges() int { return len(g.edges) }

// Vertex returns the vertex record for v in constant time.
func (g *Graph) Vertex(v VertexID) (Vertex, error) {
	if v < 0 || int(v) >= len(g.vertices) {
		return Vertex{}, fmt.Errorf("%w: %d", ErrInvalidVertexID, v)
	}
	return g.vertices[v], nil
}

// Edge returns the (src, dst, distance) triple for e in constant time.
func (g *Graph) Edge(e EdgeID) (Edge, error) {
	if e < 0 || int(e) >= len(g.edges) {
		return Edge{}, fmt.Errorf("%w: %d", ErrInvalidEdgeID, e)
	}
	return g.edges[e], nil
}

// OutEdges returns the outgoing edge ids of v in constant time; the
// returned slice aliases Graph's internal storage and must not be
// mutated by the caller.
func (g *Graph) OutEdges(v VertexID) ([]EdgeID, error) {
	if v < 0 || int(v) >= len(g.vertices) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVertexID, v)
	}
	return g.outAdj[v], nil
}

// InEdges returns the incoming edge ids of v in constant time; the
// returned slice aliases Graph's internal storage and must not be
// mutated by the caller.
func (g *Graph) InEdges(v VertexID) ([]EdgeID, error) {
	if v < 0 || int(v) >= len(g.vertices) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVertexID, v)
	}
	return g.inAdj[v], nil
}

// NearestVertex snaps a coordinate to the closest vertex by a linear
// haversine scan, for endpoints given as (x, y) rather than a known
// VertexID (spec.md §6's Query record accepts either form). Grounded on
// the teacher's Router.FindPath/InMemoryGraph.FindNearestNodes
// coordinate-snapping step, simplified to single-nearest since this
// graph carries no stop/mode grouping to disambiguate among ties.
func (g *Graph) NearestVertex(lat, lon float64) (VertexID, error) {
	if len(g.vertices) == 0 {
		return 0, fmt.Errorf("%w: empty graph", ErrInvalidVertexID)
	}
	best := VertexID(0)
	bestDist := HaversineMeters(lat, lon, g.vertices[0].Lat, g.vertices[0].Lon)
	for i := 1; i < len(g.vertices); i++ {
		d := HaversineMeters(lat, lon, g.vertices[i].Lat, g.vertices[i].Lon)
		if d < bestDist {
			bestDist = d
			best = VertexID(i)
		}
	}
	return best, nil
}
