// Package graphsource provides graph.Source implementations: an
// in-memory slice source for tests and embedders that already hold rows,
// and a Postgres-backed source mirroring the teacher's database-loaded
// graph build.
package graphsource

import (
	"context"

	"github.com/routee-compass/compass-core/internal/graph"
)

// MemorySource is a graph.Source backed by row slices already resident in
// memory. It never touches a file or network; how those slices were
// produced (CSV, OSM extract, a test fixture) is the caller's concern.
type MemorySource struct {
	Vertices []graph.VertexRecord
	Edges    []graph.EdgeRecord
}

// NewMemorySource returns a Source over the given rows.
func NewMemorySource(vertices []graph.VertexRecord, edges []graph.EdgeRecord) *MemorySource {
	return &MemorySource{Vertices: vertices, Edges: edges}
}

// LoadVertices returns the configured vertex rows.
func (s *MemorySource) LoadVertices(ctx context.Context) ([]graph.VertexRecord, error) {
	return s.Vertices, nil
}

// LoadEdges returns the configured edge rows.
func (s *MemorySource) LoadEdges(ctx context.Context) ([]graph.EdgeRecord, error) {
	return s.Edges, nil
}
