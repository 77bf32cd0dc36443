package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routee-compass/compass-core/internal/app"
	"github.com/routee-compass/compass-core/internal/cost"
	"github.com/routee-compass/compass-core/internal/graph"
	"github.com/routee-compass/compass-core/internal/powertrain"
	"github.com/routee-compass/compass-core/internal/queryrecord"
	"github.com/routee-compass/compass-core/internal/termination"
	"github.com/routee-compass/compass-core/internal/traversal"
	"github.com/routee-compass/compass-core/internal/units"
	"github.com/routee-compass/compass-core/internal/vehicle"
)

type lineSource struct{}

func (lineSource) LoadVertices(ctx context.Context) ([]graph.VertexRecord, error) {
	return []graph.VertexRecord{
		{ID: 0, Lon: 0, Lat: 0},
		{ID: 1, Lon: 0, Lat: 0.01},
		{ID: 2, Lon: 0, Lat: 0.02},
	}, nil
}

func (lineSource) LoadEdges(ctx context.Context) ([]graph.EdgeRecord, error) {
	return []graph.EdgeRecord{
		{ID: 0, SrcVertexID: 0, DstVertexID: 1, DistanceMeters: 1000},
		{ID: 1, SrcVertexID: 1, DstVertexID: 2, DistanceMeters: 1000},
	}, nil
}

func buildApp(t *testing.T) *app.App {
	t.Helper()
	g, err := graph.NewBuilder(lineSource{}).Build(context.Background())
	require.NoError(t, err)

	gctx := traversal.NewGraphContext(g, traversal.AttributeTable{
		Speed: []float64{10, 10},
		Grade: []float64{0, 0},
	})

	flatGrid, err := powertrain.NewGrid(
		powertrain.Axis{Name: "speed", LowerBound: 0, UpperBound: 30, NumBins: 3},
		powertrain.Axis{Name: "grade", LowerBound: -0.1, UpperBound: 0.1, NumBins: 3},
		func(speed, grade float64) float64 { return 0.0003 },
		1.0,
	)
	require.NoError(t, err)

	vehicles := vehicle.NewRegistry()
	vehicles.Register(vehicle.NewICE("ice-default", flatGrid))

	a := app.New(g, gctx, vehicles)
	a.DefaultModelName = "ice-default"
	a.BaseModels = []traversal.Model{
		traversal.DistanceModel{},
		traversal.SpeedModel{},
		traversal.GradeModel{},
		traversal.TimeModel{},
	}
	a.DefaultFeatures = []cost.FeatureConfig{
		{FeatureName: "trip_distance", Unit: units.Meters, Rate: cost.FactorRate{Factor: 1}, Weight: 1},
	}
	return a
}

func TestQueryFindsPathAndReportsState(t *testing.T) {
	a := buildApp(t)
	origin := graph.VertexID(0)
	dest := graph.VertexID(2)

	result, err := a.Query(context.Background(), queryrecord.Query{
		OriginVertex:      &origin,
		DestinationVertex: &dest,
	})
	require.NoError(t, err)
	require.Empty(t, result.Error)
	assert.Equal(t, []graph.EdgeID{0, 1}, result.Route)
	assert.InDelta(t, 2000, result.State["trip_distance"], 1e-6)
	assert.InDelta(t, 2000, result.Cost.TotalCost, 1e-6)
}

func TestQueryUnknownModelNameErrors(t *testing.T) {
	a := buildApp(t)
	origin := graph.VertexID(0)
	dest := graph.VertexID(2)

	_, err := a.Query(context.Background(), queryrecord.Query{
		OriginVertex:      &origin,
		DestinationVertex: &dest,
		ModelName:         "nope",
	})
	assert.Error(t, err)
}

func TestQueryDisconnectedProducesNoPathError(t *testing.T) {
	a := buildApp(t)
	origin := graph.VertexID(2)
	dest := graph.VertexID(0)

	result, err := a.Query(context.Background(), queryrecord.Query{
		OriginVertex:      &origin,
		DestinationVertex: &dest,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Error)
	assert.Nil(t, result.Route)
}

func TestQueryTreeModeOmitsRoute(t *testing.T) {
	a := buildApp(t)
	origin := graph.VertexID(0)

	result, err := a.Query(context.Background(), queryrecord.Query{OriginVertex: &origin})
	require.NoError(t, err)
	require.Empty(t, result.Error)
	assert.Nil(t, result.Route)
	assert.NotEmpty(t, result.Tree)
}

func TestQueryBatchIsolatesFailures(t *testing.T) {
	a := buildApp(t)
	origin := graph.VertexID(0)
	dest := graph.VertexID(2)
	badDest := graph.VertexID(99)

	results, err := a.QueryBatch(context.Background(), []queryrecord.Query{
		{OriginVertex: &origin, DestinationVertex: &dest},
		{OriginVertex: &origin, DestinationVertex: &badDest},
	}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Empty(t, results[0].Error)
	assert.NotEmpty(t, results[1].Error)
}

// branchingSource gives K-shortest-paths something to find alternatives
// over: 0->1->3 costs 2, 0->2->3 costs 4.
type branchingSource struct{}

func (branchingSource) LoadVertices(ctx context.Context) ([]graph.VertexRecord, error) {
	vs := make([]graph.VertexRecord, 4)
	for i := range vs {
		vs[i] = graph.VertexRecord{ID: i}
	}
	return vs, nil
}

func (branchingSource) LoadEdges(ctx context.Context) ([]graph.EdgeRecord, error) {
	return []graph.EdgeRecord{
		{ID: 0, SrcVertexID: 0, DstVertexID: 1, DistanceMeters: 1},
		{ID: 1, SrcVertexID: 1, DstVertexID: 3, DistanceMeters: 1},
		{ID: 2, SrcVertexID: 0, DstVertexID: 2, DistanceMeters: 2},
		{ID: 3, SrcVertexID: 2, DstVertexID: 3, DistanceMeters: 2},
	}, nil
}

func buildBranchingApp(t *testing.T) *app.App {
	t.Helper()
	g, err := graph.NewBuilder(branchingSource{}).Build(context.Background())
	require.NoError(t, err)

	gctx := traversal.NewGraphContext(g, traversal.AttributeTable{})

	flatGrid, err := powertrain.NewGrid(
		powertrain.Axis{Name: "speed", LowerBound: 0, UpperBound: 30, NumBins: 3},
		powertrain.Axis{Name: "grade", LowerBound: -0.1, UpperBound: 0.1, NumBins: 3},
		func(speed, grade float64) float64 { return 0.0003 },
		1.0,
	)
	require.NoError(t, err)

	vehicles := vehicle.NewRegistry()
	vehicles.Register(vehicle.NewICE("ice-default", flatGrid))

	a := app.New(g, gctx, vehicles)
	a.DefaultModelName = "ice-default"
	a.BaseModels = []traversal.Model{traversal.DistanceModel{}, traversal.SpeedModel{}, traversal.GradeModel{}}
	a.DefaultFeatures = []cost.FeatureConfig{
		{FeatureName: "trip_distance", Unit: units.Meters, Rate: cost.FactorRate{Factor: 1}, Weight: 1},
	}
	return a
}

func TestQueryDijkstrasMatchesAStarOptimal(t *testing.T) {
	a := buildBranchingApp(t)
	origin := graph.VertexID(0)
	dest := graph.VertexID(3)

	astar, err := a.Query(context.Background(), queryrecord.Query{
		OriginVertex: &origin, DestinationVertex: &dest, Algorithm: "a*",
	})
	require.NoError(t, err)

	dijkstra, err := a.Query(context.Background(), queryrecord.Query{
		OriginVertex: &origin, DestinationVertex: &dest, Algorithm: "dijkstras",
	})
	require.NoError(t, err)

	assert.Equal(t, astar.Route, dijkstra.Route)
	assert.InDelta(t, astar.Cost.TotalCost, dijkstra.Cost.TotalCost, 1e-9)
	assert.Equal(t, []graph.EdgeID{0, 1}, astar.Route)
	assert.InDelta(t, 2, astar.Cost.TotalCost, 1e-9)
}

func TestQueryYensReturnsMultiplePathsInCostOrder(t *testing.T) {
	a := buildBranchingApp(t)
	origin := graph.VertexID(0)
	dest := graph.VertexID(3)

	result, err := a.Query(context.Background(), queryrecord.Query{
		OriginVertex: &origin, DestinationVertex: &dest, Algorithm: "yens", K: 2,
	})
	require.NoError(t, err)
	require.Empty(t, result.Error)
	require.Len(t, result.Paths, 2)
	assert.Equal(t, []graph.EdgeID{0, 1}, result.Route)
	assert.InDelta(t, 2, result.Paths[0].Cost, 1e-9)
	assert.InDelta(t, 4, result.Paths[1].Cost, 1e-9)
}

func TestQuerySingleViaPathsRoutesThroughVia(t *testing.T) {
	a := buildBranchingApp(t)
	origin := graph.VertexID(0)
	dest := graph.VertexID(3)
	via := graph.VertexID(2)

	result, err := a.Query(context.Background(), queryrecord.Query{
		OriginVertex: &origin, DestinationVertex: &dest,
		Algorithm: "svp", K: 2, Vias: []graph.VertexID{via},
	})
	require.NoError(t, err)
	require.Empty(t, result.Error)
	require.NotEmpty(t, result.Paths)
}

func TestQueryUnknownAlgorithmErrors(t *testing.T) {
	a := buildBranchingApp(t)
	origin := graph.VertexID(0)
	dest := graph.VertexID(3)

	_, err := a.Query(context.Background(), queryrecord.Query{
		OriginVertex: &origin, DestinationVertex: &dest, Algorithm: "not-a-real-algorithm",
	})
	assert.Error(t, err)
}

func TestQuerySurfacesIterationTerminationCause(t *testing.T) {
	a := buildBranchingApp(t)
	a.Termination = termination.Model{MaxIterations: 1, CheckFrequency: 1, Behavior: termination.AllowBestSoFar}
	origin := graph.VertexID(0)
	dest := graph.VertexID(3)

	result, err := a.Query(context.Background(), queryrecord.Query{
		OriginVertex: &origin, DestinationVertex: &dest,
	})
	require.NoError(t, err)
	assert.Equal(t, "iterations", result.TerminationReason)
}

func TestQueryByCoordinateSnapsToNearestVertex(t *testing.T) {
	a := buildApp(t)
	ox, oy := 0.0, 0.0001
	dx, dy := 0.0, 0.0199
	result, err := a.Query(context.Background(), queryrecord.Query{
		OriginX: &ox, OriginY: &oy,
		DestinationX: &dx, DestinationY: &dy,
	})
	require.NoError(t, err)
	require.Empty(t, result.Error)
	assert.Equal(t, []graph.EdgeID{0, 1}, result.Route)
}
