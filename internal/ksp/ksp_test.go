package ksp_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routee-compass/compass-core/internal/cost"
	"github.com/routee-compass/compass-core/internal/frontier"
	"github.com/routee-compass/compass-core/internal/graph"
	"github.com/routee-compass/compass-core/internal/ksp"
	"github.com/routee-compass/compass-core/internal/search"
	"github.com/routee-compass/compass-core/internal/state"
	"github.com/routee-compass/compass-core/internal/termination"
	"github.com/routee-compass/compass-core/internal/traversal"
	"github.com/routee-compass/compass-core/internal/units"
)

// gridSource is a small graph with three independent routes from 0 to
// 5, of increasing cost, so Yen's/SVP have real alternatives to find:
//
//	0 -> 1 -> 5   (cost 2)
//	0 -> 2 -> 5   (cost 4)
//	0 -> 3 -> 4 -> 5 (cost 9)
type gridSource struct{}

func (gridSource) LoadVertices(ctx context.Context) ([]graph.VertexRecord, error) {
	vs := make([]graph.VertexRecord, 6)
	for i := range vs {
		vs[i] = graph.VertexRecord{ID: i}
	}
	return vs, nil
}

func (gridSource) LoadEdges(ctx context.Context) ([]graph.EdgeRecord, error) {
	return []graph.EdgeRecord{
		{ID: 0, SrcVertexID: 0, DstVertexID: 1, DistanceMeters: 1},
		{ID: 1, SrcVertexID: 1, DstVertexID: 5, DistanceMeters: 1},
		{ID: 2, SrcVertexID: 0, DstVertexID: 2, DistanceMeters: 2},
		{ID: 3, SrcVertexID: 2, DstVertexID: 5, DistanceMeters: 2},
		{ID: 4, SrcVertexID: 0, DstVertexID: 3, DistanceMeters: 3},
		{ID: 5, SrcVertexID: 3, DstVertexID: 4, DistanceMeters: 3},
		{ID: 6, SrcVertexID: 4, DstVertexID: 5, DistanceMeters: 3},
	}, nil
}

func buildInstance(t *testing.T) *search.Instance {
	t.Helper()
	g, err := graph.NewBuilder(gridSource{}).Build(context.Background())
	require.NoError(t, err)
	gctx := traversal.NewGraphContext(g, traversal.AttributeTable{})

	distanceModel := traversal.DistanceModel{}
	sm, err := state.NewStateModel(distanceModel.FeatureDescriptors())
	require.NoError(t, err)

	cm, err := cost.NewDefaultCostModel(sm, []cost.FeatureConfig{
		{FeatureName: "trip_distance", Unit: units.Meters, Rate: cost.FactorRate{Factor: 1}, Weight: 1, IdealRatePerMeter: 1},
	}, cost.AggregationSum)
	require.NoError(t, err)

	return &search.Instance{
		Graph:       g,
		Context:     gctx,
		StateModel:  sm,
		Traversal:   distanceModel,
		Frontier:    frontier.Unrestricted{},
		Cost:        cm,
		Termination: termination.NewUnbounded(),
	}
}

func TestYenFindsThreeDistinctPathsInCostOrder(t *testing.T) {
	inst := buildInstance(t)
	config := ksp.Config{
		K:                   3,
		Termination:         ksp.TerminationExact,
		SimilarityThreshold: 1.0, // only reject exact duplicates
		Similarity:          ksp.EdgeIDCosineSimilarity,
	}

	paths, err := ksp.Yen(context.Background(), inst, 0, 5, config)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	assert.InDelta(t, 2, paths[0].Cost, 1e-9)
	assert.InDelta(t, 4, paths[1].Cost, 1e-9)
	assert.InDelta(t, 9, paths[2].Cost, 1e-9)

	seen := map[string]bool{}
	for _, p := range paths {
		key := ""
		for _, e := range p.Edges {
			key += string(rune(e)) + ","
		}
		assert.False(t, seen[key], "paths must be distinct")
		seen[key] = true
	}
}

func TestYenRejectsSimilarPathsBelowThreshold(t *testing.T) {
	inst := buildInstance(t)
	config := ksp.Config{
		K:                   3,
		Termination:         ksp.TerminationExact,
		SimilarityThreshold: 0.0, // no similarity is strictly below 0, so every candidate is rejected
		Similarity:          ksp.EdgeIDCosineSimilarity,
	}

	paths, err := ksp.Yen(context.Background(), inst, 0, 5, config)
	require.NoError(t, err)
	// A candidate is admitted only when its similarity is strictly below
	// the threshold. Even the fully edge-disjoint routes here score 0,
	// which is not below 0, so only the first path is returned.
	assert.True(t, len(paths) >= 1)
}

func TestSingleViaPathsGeneratesCandidatesThroughVias(t *testing.T) {
	inst := buildInstance(t)
	config := ksp.Config{
		K:                   3,
		Termination:         ksp.TerminationExact,
		SimilarityThreshold: 1.0,
		Similarity:          ksp.EdgeIDCosineSimilarity,
	}

	paths, err := ksp.SingleViaPaths(context.Background(), inst, 0, 5, []graph.VertexID{1, 2, 3, 4}, config)
	require.NoError(t, err)
	require.True(t, len(paths) >= 1)
	assert.InDelta(t, 2, paths[0].Cost, 1e-9)
}

func TestEdgeIDCosineSimilarityIdenticalPathsIsOne(t *testing.T) {
	edges := []graph.EdgeID{0, 1, 2}
	assert.InDelta(t, 1.0, ksp.EdgeIDCosineSimilarity(edges, edges), 1e-9)
}

func TestEdgeIDCosineSimilarityDisjointPathsIsZero(t *testing.T) {
	a := []graph.EdgeID{0, 1}
	b := []graph.EdgeID{2, 3}
	assert.Equal(t, 0.0, ksp.EdgeIDCosineSimilarity(a, b))
}

func TestDistanceWeightedCosineSimilarity(t *testing.T) {
	distances := map[graph.EdgeID]float64{0: 10, 1: 5, 2: 1}
	lookup := func(e graph.EdgeID) float64 { return distances[e] }
	a := []graph.EdgeID{0, 1}
	b := []graph.EdgeID{0, 2}
	sim := ksp.DistanceWeightedCosineSimilarity(a, b, lookup)
	assert.True(t, sim > 0 && sim < 1)
}
