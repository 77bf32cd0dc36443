package graphsource

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/routee-compass/compass-core/internal/graph"
)

// PostgresSource is a graph.Source that loads the vertex and edge lists
// from Postgres tables. Grounded on internal/graph/builder.go's
// buildNodesFromDB/buildEdgesFromDB: a single bulk SELECT per table,
// scanned directly into row slices, with phase logging matching
// internal/graph/memory.go's LoadFromDB.
//
// Expected schema (column names only — table/DDL ownership is the
// embedder's, matching the teacher's assumption that the schema already
// exists):
//
//	vertex(id bigint primary key, lon double precision, lat double precision)
//	edge(id bigint primary key, src_vertex_id bigint, dst_vertex_id bigint,
//	     distance_meters double precision)
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource wraps an existing pool. Use GetPool/LoadPoolConfigFromEnv
// to obtain one the way the teacher's graph.NewBuilder(db.GetDB()) does.
func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

// LoadVertices bulk-selects every vertex row.
func (s *PostgresSource) LoadVertices(ctx context.Context) ([]graph.VertexRecord, error) {
	start := time.Now()
	rows, err := s.pool.Query(ctx, `SELECT id, lon, lat FROM vertex ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("graphsource: failed to query vertices: %w", err)
	}
	defer rows.Close()

	var out []graph.VertexRecord
	for rows.Next() {
		var rec graph.VertexRecord
		if err := rows.Scan(&rec.ID, &rec.Lon, &rec.Lat); err != nil {
			return nil, fmt.Errorf("graphsource: failed to scan vertex row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("graphsource: vertex row iteration failed: %w", err)
	}

	log.Printf("graphsource: loaded %d vertex rows in %v", len(out), time.Since(start))
	return out, nil
}

// LoadEdges bulk-selects every edge row.
func (s *PostgresSource) LoadEdges(ctx context.Context) ([]graph.EdgeRecord, error) {
	start := time.Now()
	rows, err := s.pool.Query(ctx, `
		SELECT id, src_vertex_id, dst_vertex_id, distance_meters
		FROM edge ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("graphsource: failed to query edges: %w", err)
	}
	defer rows.Close()

	var out []graph.EdgeRecord
	for rows.Next() {
		var rec graph.EdgeRecord
		if err := rows.Scan(&rec.ID, &rec.SrcVertexID, &rec.DstVertexID, &rec.DistanceMeters); err != nil {
			return nil, fmt.Errorf("graphsource: failed to scan edge row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("graphsource: edge row iteration failed: %w", err)
	}

	log.Printf("graphsource: loaded %d edge rows in %v", len(out), time.Since(start))
	return out, nil
}
