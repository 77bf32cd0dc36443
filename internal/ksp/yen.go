package ksp

import (
	"context"
	"sort"

	"github.com/routee-compass/compass-core/internal/graph"
	"github.com/routee-compass/compass-core/internal/search"
)

// candidate is a not-yet-accepted path awaiting evaluation in the
// candidate pool.
type candidate struct {
	path Path
}

// Yen runs Yen's algorithm for up to config.K loopless shortest paths
// from origin to destination (spec.md §4.8 "KSP: Yen's algorithm").
func Yen(ctx context.Context, inst *search.Instance, origin, destination graph.VertexID, config Config) ([]Path, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	firstResult, err := search.Run(ctx, inst, origin, &destination)
	if err != nil {
		return nil, ErrNoPath
	}
	firstEdges := search.ExtractPath(firstResult.Tree, firstResult.DestinationLabel)
	_, firstCost, err := Simulate(inst, firstEdges)
	if err != nil {
		return nil, err
	}

	results := []Path{{Edges: firstEdges, Cost: firstCost}}
	resultEdgeSets := [][]graph.EdgeID{firstEdges}

	var pool []candidate
	seen := make(map[string]bool)
	seen[pathKey(firstEdges)] = true

	budget := config.iterationBudget()
	evaluated := 0

	for len(results) < config.K {
		prev := results[len(results)-1]

		for j := 0; j < len(prev.Edges); j++ {
			rootEdges := append([]graph.EdgeID(nil), prev.Edges[:j]...)
			spurVertex, err := spurVertexAt(inst, origin, prev.Edges, j)
			if err != nil {
				continue
			}

			excludedEdges := make(map[graph.EdgeID]bool)
			for _, r := range results {
				if len(r.Edges) > j && edgeSlicesEqual(r.Edges[:j], rootEdges) {
					excludedEdges[r.Edges[j]] = true
				}
			}

			excludedVertices := make(map[graph.VertexID]bool)
			v := origin
			for i := 0; i < j; i++ {
				excludedVertices[v] = true
				edge, err := inst.Graph.Edge(rootEdges[i])
				if err != nil {
					break
				}
				v = edge.To
			}

			spurInst := *inst
			spurInst.ExcludedEdges = excludedEdges
			spurInst.ExcludedVertices = excludedVertices

			spurResult, err := search.Run(ctx, &spurInst, spurVertex, &destination)
			if err != nil {
				continue
			}
			spurEdges := search.ExtractPath(spurResult.Tree, spurResult.DestinationLabel)

			fullEdges := append(append([]graph.EdgeID(nil), rootEdges...), spurEdges...)
			key := pathKey(fullEdges)
			if seen[key] {
				continue
			}
			seen[key] = true

			_, totalCost, err := Simulate(inst, fullEdges)
			if err != nil {
				continue
			}
			pool = append(pool, candidate{path: Path{Edges: fullEdges, Cost: totalCost}})
		}

		if len(pool) == 0 {
			break
		}
		sort.Slice(pool, func(i, j int) bool { return pool[i].path.Cost < pool[j].path.Cost })

		accepted := false
		for len(pool) > 0 {
			evaluated++
			next := pool[0]
			pool = pool[1:]

			if budget >= 0 && evaluated > budget {
				return results, nil
			}

			filter := SimilarityFilter{Threshold: config.SimilarityThreshold, Similarity: config.Similarity}
			if !filter.Admits(next.path.Edges, resultEdgeSets) {
				continue
			}
			results = append(results, next.path)
			resultEdgeSets = append(resultEdgeSets, next.path.Edges)
			accepted = true
			break
		}
		if !accepted {
			break
		}
	}

	return results, nil
}

func spurVertexAt(inst *search.Instance, origin graph.VertexID, edges []graph.EdgeID, j int) (graph.VertexID, error) {
	v := origin
	for i := 0; i < j; i++ {
		edge, err := inst.Graph.Edge(edges[i])
		if err != nil {
			return 0, err
		}
		v = edge.To
	}
	return v, nil
}

func edgeSlicesEqual(a, b []graph.EdgeID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func pathKey(edges []graph.EdgeID) string {
	key := make([]byte, 0, len(edges)*5)
	for _, e := range edges {
		key = append(key, byte(e), byte(e>>8), byte(e>>16), byte(e>>24), ',')
	}
	return string(key)
}
