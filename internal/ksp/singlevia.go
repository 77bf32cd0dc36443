package ksp

import (
	"context"
	"sort"

	"github.com/routee-compass/compass-core/internal/graph"
	"github.com/routee-compass/compass-core/internal/search"
)

// SingleViaPaths generates candidates as shortest(origin->via) +
// shortest(via->destination) for each via in vias, filters by
// similarity, and returns up to config.K accepted paths sorted by cost.
// Cheaper than Yen's, at the cost of less diversity (spec.md §4.8).
func SingleViaPaths(ctx context.Context, inst *search.Instance, origin, destination graph.VertexID, vias []graph.VertexID, config Config) ([]Path, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	directResult, err := search.Run(ctx, inst, origin, &destination)
	if err != nil {
		return nil, ErrNoPath
	}
	directEdges := search.ExtractPath(directResult.Tree, directResult.DestinationLabel)
	_, directCost, err := Simulate(inst, directEdges)
	if err != nil {
		return nil, err
	}

	results := []Path{{Edges: directEdges, Cost: directCost}}
	resultEdgeSets := [][]graph.EdgeID{directEdges}
	seen := map[string]bool{pathKey(directEdges): true}

	var candidates []candidate
	budget := config.iterationBudget()

	for _, via := range vias {
		if via == origin || via == destination {
			continue
		}
		toVia, err := search.Run(ctx, inst, origin, &via)
		if err != nil {
			continue
		}
		fromVia, err := search.Run(ctx, inst, via, &destination)
		if err != nil {
			continue
		}
		edges := append(
			search.ExtractPath(toVia.Tree, toVia.DestinationLabel),
			search.ExtractPath(fromVia.Tree, fromVia.DestinationLabel)...,
		)
		key := pathKey(edges)
		if seen[key] {
			continue
		}
		seen[key] = true

		_, cost, err := Simulate(inst, edges)
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{path: Path{Edges: edges, Cost: cost}})
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].path.Cost < candidates[j].path.Cost })

	filter := SimilarityFilter{Threshold: config.SimilarityThreshold, Similarity: config.Similarity}
	evaluated := 0
	for _, c := range candidates {
		if len(results) >= config.K {
			break
		}
		evaluated++
		if budget >= 0 && evaluated > budget {
			break
		}
		if !filter.Admits(c.path.Edges, resultEdgeSets) {
			continue
		}
		results = append(results, c.path)
		resultEdgeSets = append(resultEdgeSets, c.path.Edges)
	}

	return results, nil
}
