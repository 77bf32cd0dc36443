package graph

import "context"

// VertexRecord is one row of the vertex list input (spec.md §6): a dense,
// zero-based vertex id and its WGS84 coordinates.
type VertexRecord struct {
	ID  int
	Lon float64
	Lat float64
}

// EdgeRecord is one row of the edge list input: a dense, zero-based edge
// id, its endpoints (by vertex id) and distance in meters.
type EdgeRecord struct {
	ID             int
	SrcVertexID    int
	DstVertexID    int
	DistanceMeters float64
}

// Source produces the vertex and edge rows Builder assembles into a
// Graph. Two implementations live in internal/graphsource: an in-memory
// slice source for tests and embedders who already hold rows, and a
// Postgres-backed source mirroring the teacher's DB-loaded graph build.
// Per spec.md §1, on-disk formats (CSV/gzip) and OSM preparation are
// external collaborators — a Source never touches a file itself; a front
// end outside this core is expected to produce rows from whatever format
// it reads.
type Source interface {
	// LoadVertices returns every vertex row. Order is not required to
	// match ID order; Builder sorts by ID.
	LoadVertices(ctx context.Context) ([]VertexRecord, error)
	// LoadEdges returns every edge row. Order is not required to match
	// ID order; Builder sorts by ID.
	LoadEdges(ctx context.Context) ([]EdgeRecord, error)
}
