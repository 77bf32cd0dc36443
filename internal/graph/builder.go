package graph

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"
)

// Builder constructs an immutable Graph from a Source. It is used once at
// application init — see spec.md §4.7's Builder/Service/Model lifecycle —
// and discarded once Build returns.
type Builder struct {
	source Source
}

// NewBuilder creates a Builder reading from source.
func NewBuilder(source Source) *Builder {
	return &Builder{source: source}
}

// Build loads vertices and edges from the Source, validates the
// invariants from spec.md §3 (dense zero-based ids, valid endpoints,
// strictly positive distances), and assembles the vectorized adjacency
// lists. It logs each phase with row counts and elapsed time, the way
// the teacher's graph.Builder.BuildGraph does.
func (b *Builder) Build(ctx context.Context) (*Graph, error) {
	start := time.Now()
	log.Println("graph: building vectorized graph...")

	vertexRows, err := b.source.LoadVertices(ctx)
	if err != nil {
		return nil, fmt.Errorf("graph: failed to load vertices: %w", err)
	}
	vertices, err := assembleVertices(vertexRows)
	if err != nil {
		return nil, err
	}
	log.Printf("graph: loaded %d vertices", len(vertices))

	edgeRows, err := b.source.LoadEdges(ctx)
	if err != nil {
		return nil, fmt.Errorf("graph: failed to load edges: %w", err)
	}
	edges, err := assembleEdges(edgeRows, len(vertices))
	if err != nil {
		return nil, err
	}
	log.Printf("graph: loaded %d edges", len(edges))

	outAdj, inAdj := buildAdjacency(vertices, edges)

	log.Printf("graph: build complete in %v (%d vertices, %d edges)",
		time.Since(start), len(vertices), len(edges))

	return &Graph{
		vertices: vertices,
		edges:    edges,
		outAdj:   outAdj,
		inAdj:    inAdj,
	}, nil
}

// assembleVertices sorts rows by id and validates they form a dense,
// zero-based, row-index-matching sequence.
func assembleVertices(rows []VertexRecord) ([]Vertex, error) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })

	vertices := make([]Vertex, len(rows))
	for i, row := range rows {
		if row.ID != i {
			return nil, fmt.Errorf("%w: vertex row %d has id %d", ErrNonDenseIDs, i, row.ID)
		}
		vertices[i] = Vertex{ID: VertexID(i), Lon: row.Lon, Lat: row.Lat}
	}
	return vertices, nil
}

// assembleEdges sorts rows by id, validates density and endpoint/distance
// invariants, and returns the compact Edge slice.
func assembleEdges(rows []EdgeRecord, numVertices int) ([]Edge, error) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })

	edges := make([]Edge, len(rows))
	for i, row := range rows {
		if row.ID != i {
			return nil, fmt.Errorf("%w: edge row %d has id %d", ErrNonDenseIDs, i, row.ID)
		}
		if row.SrcVertexID < 0 || row.SrcVertexID >= numVertices {
			return nil, fmt.Errorf("%w: edge %d source %d", ErrDanglingEdge, row.ID, row.SrcVertexID)
		}
		if row.DstVertexID < 0 || row.DstVertexID >= numVertices {
			return nil, fmt.Errorf("%w: edge %d target %d", ErrDanglingEdge, row.ID, row.DstVertexID)
		}
		if row.DistanceMeters <= 0 {
			return nil, fmt.Errorf("%w: edge %d distance %g", ErrNonPositiveDistance, row.ID, row.DistanceMeters)
		}
		edges[i] = Edge{
			ID:       EdgeID(i),
			From:     VertexID(row.SrcVertexID),
			To:       VertexID(row.DstVertexID),
			Distance: row.DistanceMeters,
		}
	}
	return edges, nil
}

// buildAdjacency groups edge ids by source and target vertex into
// contiguous slices, giving O(1) amortized OutEdges/InEdges lookups.
func buildAdjacency(vertices []Vertex, edges []Edge) (out, in [][]EdgeID) {
	out = make([][]EdgeID, len(vertices))
	in = make([][]EdgeID, len(vertices))
	for _, e := range edges {
		out[e.From] = append(out[e.From], e.ID)
		in[e.To] = append(in[e.To], e.ID)
	}
	return out, in
}
