// Package graph holds the vectorized, read-only road network the search
// kernel runs over: dense vertex and edge arrays plus adjacency lists
// indexed by vertex id. The graph is built once from a Source and is
// safe to share, unlocked, across every query goroutine afterward — see
// Graph's doc comment for the build/freeze lifecycle.
package graph

// VertexID is a dense, zero-based vertex identifier. Valid values lie in
// [0, NumVertices()).
type VertexID int32

// EdgeID is a dense, zero-based edge identifier. Valid values lie in
// [0, NumEdges()).
type EdgeID int32

// Vertex is a graph node: a WGS84 geographic point. Any attribute beyond
// location (road class, elevation, ...) lives in a per-edge or per-model
// external array, never here, per the spec's "no duplication on the edge
// record" rule for edges and its symmetric analog for vertices.
type Vertex struct {
	ID  VertexID
	Lon float64
	Lat float64
}

// Edge is a directed connection between two vertices with a positive
// distance in meters (the graph's base unit; callers wanting another
// distance unit convert via package units at the read boundary).
// Per-edge attributes consumed by TraversalModels (speed, grade, heading,
// road class, geometry) live in parallel external arrays indexed by
// EdgeID — see internal/traversal's per-edge lookup arrays — not here.
type Edge struct {
	ID       EdgeID
	From     VertexID
	To       VertexID
	Distance float64 // meters
}
