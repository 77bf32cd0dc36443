// Package app assembles the Builder -> Service -> Model lifecycle into
// one object a host program constructs once and queries many times
// (spec.md §4.7/§2). Grounded on the teacher's routing.Router, which
// holds the built *graph.InMemoryGraph and exposes FindPath as the
// single entry point callers use; generalized here from one fixed
// Strategy to the full composable service set (traversal, frontier,
// cost, termination) plus a vehicle.Registry for model_name selection,
// and from a single query to a batch driver. The startup-sequence
// logging style (log each phase, fail fast on a bad phase) follows
// cmd/api/main.go's initialization order, though that file's own
// binary — the CLI front end — stays out of scope.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/routee-compass/compass-core/internal/batch"
	"github.com/routee-compass/compass-core/internal/cost"
	"github.com/routee-compass/compass-core/internal/frontier"
	"github.com/routee-compass/compass-core/internal/graph"
	"github.com/routee-compass/compass-core/internal/ksp"
	"github.com/routee-compass/compass-core/internal/label"
	"github.com/routee-compass/compass-core/internal/plugin"
	"github.com/routee-compass/compass-core/internal/queryrecord"
	"github.com/routee-compass/compass-core/internal/resultcache"
	"github.com/routee-compass/compass-core/internal/search"
	"github.com/routee-compass/compass-core/internal/state"
	"github.com/routee-compass/compass-core/internal/termination"
	"github.com/routee-compass/compass-core/internal/traversal"
	"github.com/routee-compass/compass-core/internal/units"
	"github.com/routee-compass/compass-core/internal/vehicle"
)

// CacheConfig enables an optional resultcache.redis-backed cache in
// front of Query; the zero value disables caching entirely.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// App ties a built Graph to its registered services and exposes the
// query surface spec.md §6 describes.
type App struct {
	Graph   *graph.Graph
	Context *traversal.GraphContext

	// Vehicles resolves a query's model_name to an Archetype.
	Vehicles *vehicle.Registry

	// DefaultModelName selects the Archetype used when a query omits
	// model_name.
	DefaultModelName string

	// BaseModels are the non-energy child TraversalModels shared by
	// every query (distance, speed, grade, time, elevation, turn
	// delay, ...); the energy model is appended per query once the
	// Archetype is resolved, since it alone varies by vehicle.
	BaseModels []traversal.Model

	// DefaultFeatures and DefaultAggregation configure the CostModel
	// used when a query supplies no weight overrides.
	DefaultFeatures    []cost.FeatureConfig
	DefaultAggregation cost.Aggregation

	// Termination bounds every search's resource usage; a query has no
	// per-query override today (spec.md's configuration surface models
	// this at app/build time, not per-query).
	Termination termination.Model

	// LabelFunc customizes label discriminators (e.g. folding phev_mode
	// into the label so both PHEV modes at a vertex are tracked
	// separately). Nil uses the plain vertex label.
	LabelFunc search.LabelFunc

	// Algorithms resolves a query's algorithm.type (spec.md §6:
	// "a*|dijkstras|yens|svp") to the AlgorithmFunc that runs it. New
	// populates this with RegisterDefaultAlgorithms; a caller may
	// Register additional tags before the first Query.
	Algorithms *plugin.Registry[AlgorithmFunc]

	// DefaultAlgorithm selects the algorithm used when a query omits
	// Algorithm.
	DefaultAlgorithm string

	// DefaultK bounds Yen's/SVP output when a query omits K.
	DefaultK int

	Cache CacheConfig

	Logger *log.Logger
}

// New builds an App. Logger defaults to a discard logger, matching the
// teacher's silence-by-default/opt-in-via-SetLogger discipline
// (beadwork's AggregateLoader.SetLogger) so embedding this as a library
// never pollutes a caller's stdout uninvited.
func New(g *graph.Graph, gctx *traversal.GraphContext, vehicles *vehicle.Registry) *App {
	algorithms := plugin.NewRegistry[AlgorithmFunc]()
	RegisterDefaultAlgorithms(algorithms)
	return &App{
		Graph:              g,
		Context:            gctx,
		Vehicles:           vehicles,
		DefaultAggregation: cost.AggregationSum,
		Termination:        termination.NewUnbounded(),
		Algorithms:         algorithms,
		DefaultAlgorithm:   "a*",
		DefaultK:           3,
		Logger:             log.New(io.Discard, "", 0),
	}
}

// SetLogger installs a logger for startup and per-query diagnostics.
func (a *App) SetLogger(logger *log.Logger) {
	a.Logger = logger
}

func (a *App) resolveVertex(vertexPtr *graph.VertexID, x, y *float64) (graph.VertexID, error) {
	if vertexPtr != nil {
		return *vertexPtr, nil
	}
	if x != nil && y != nil {
		return a.Graph.NearestVertex(*y, *x)
	}
	return 0, fmt.Errorf("app: query endpoint needs either a vertex id or (x, y) coordinates")
}

func (a *App) resolveArchetype(modelName string) (vehicle.Archetype, error) {
	name := modelName
	if name == "" {
		name = a.DefaultModelName
	}
	archetype, ok := a.Vehicles.Get(name)
	if !ok {
		return vehicle.Archetype{}, fmt.Errorf("app: unknown model_name %q", name)
	}
	return archetype, nil
}

func (a *App) buildCostModel(sm *state.StateModel, weights map[string]float64, archetype vehicle.Archetype) (*cost.DefaultCostModel, error) {
	features := make([]cost.FeatureConfig, len(a.DefaultFeatures))
	for i, f := range a.DefaultFeatures {
		features[i] = f
		if len(weights) > 0 {
			features[i].Weight = weights[f.FeatureName] // omitted => 0, spec.md §9
		}
		rate := idealRatePerMeter(f.FeatureName, a.Context.MaxSpeed(), archetype)
		for _, d := range sm.Features() {
			if d.Name == f.FeatureName {
				converted, err := units.Convert(rate, d.Unit, f.Unit)
				if err != nil {
					converted = 0
				}
				rate = converted
			}
		}
		features[i].IdealRatePerMeter = rate
	}
	return cost.NewDefaultCostModel(sm, features, a.DefaultAggregation)
}

// idealRatePerMeter converts a remaining-distance budget (meters) into
// featureName's state-model unit (meters, seconds, gallons of gasoline or
// kWh; buildCostModel then converts it to the FeatureConfig's Unit) at
// the cheapest conceivable rate anywhere on
// the graph, the admissible-heuristic fix CostEstimate's doc comment
// describes (spec.md §4.3, §8 testable property 1). maxSpeed is the
// graph-wide free-flow speed ceiling; archetype supplies the powertrain
// grids an energy feature needs. Any feature name this app doesn't
// recognize gets 0 — a weaker but still admissible heuristic contribution.
func idealRatePerMeter(featureName string, maxSpeed float64, archetype vehicle.Archetype) float64 {
	switch featureName {
	case "trip_distance":
		return 1
	case "trip_time":
		if maxSpeed <= 0 {
			return 0
		}
		return 1 / maxSpeed
	case "trip_energy_liquid":
		if archetype.LiquidGrid == nil {
			return 0
		}
		return archetype.LiquidGrid.IdealEnergyRate()
	case "trip_energy_electric":
		if archetype.ElectricGrid == nil {
			return 0
		}
		return archetype.ElectricGrid.IdealEnergyRate()
	default:
		return 0
	}
}

func (a *App) buildFrontier(roadClasses []string) frontier.Model {
	if len(roadClasses) == 0 {
		return frontier.Unrestricted{}
	}
	allow := make(map[string]bool, len(roadClasses))
	for _, rc := range roadClasses {
		allow[rc] = true
	}
	return frontier.RoadClassFilter{Allow: allow}
}

// AlgorithmFunc runs one search strategy over inst from origin toward an
// optional destination and returns every accepted route, matching
// spec.md §6's algorithm.type dispatch ("a*|dijkstras|yens|svp"). destination
// is nil only for tree-mode a*/dijkstras queries; yens/svp require one.
// searchResult is non-nil only when the algorithm corresponds to a
// single coherent search.Run outcome (a*, dijkstras) whose tree/
// termination/runtime diagnostics are worth reporting — Yen's and SVP
// run many internal searches with no single result to report from, so
// they return nil there.
type AlgorithmFunc func(ctx context.Context, inst *search.Instance, origin graph.VertexID, destination *graph.VertexID, k int, vias []graph.VertexID) ([]queryrecord.Path, *search.Result, error)

// RegisterDefaultAlgorithms installs the four stock AlgorithmFuncs spec.md
// §6 names under their wire tags.
func RegisterDefaultAlgorithms(registry *plugin.Registry[AlgorithmFunc]) {
	registry.Register("a*", func(config map[string]any) (AlgorithmFunc, error) { return runAStar, nil })
	registry.Register("dijkstras", func(config map[string]any) (AlgorithmFunc, error) { return runDijkstra, nil })
	registry.Register("yens", func(config map[string]any) (AlgorithmFunc, error) { return runYens, nil })
	registry.Register("svp", func(config map[string]any) (AlgorithmFunc, error) { return runSingleViaPaths, nil })
}

// zeroHeuristicCost decorates a CostModel so CostEstimate always returns
// zero, turning A* into plain Dijkstra without duplicating the search
// loop (the A*/Dijkstra distinction is entirely in the heuristic used,
// per spec.md §4.8).
type zeroHeuristicCost struct {
	cost.CostModel
}

func (zeroHeuristicCost) CostEstimate(from state.State, remainingDistance float64) (float64, error) {
	return 0, nil
}

func runAStar(ctx context.Context, inst *search.Instance, origin graph.VertexID, destination *graph.VertexID, k int, vias []graph.VertexID) ([]queryrecord.Path, *search.Result, error) {
	searchResult, err := search.Run(ctx, inst, origin, destination)
	if err != nil {
		return nil, nil, err
	}
	if destination == nil || !searchResult.Found {
		return nil, searchResult, nil
	}
	entry := searchResult.Tree[searchResult.DestinationLabel]
	route := search.ExtractPath(searchResult.Tree, searchResult.DestinationLabel)
	return []queryrecord.Path{{Route: route, Cost: entry.CumulativeCost}}, searchResult, nil
}

func runDijkstra(ctx context.Context, inst *search.Instance, origin graph.VertexID, destination *graph.VertexID, k int, vias []graph.VertexID) ([]queryrecord.Path, *search.Result, error) {
	decorated := *inst
	decorated.Cost = zeroHeuristicCost{inst.Cost}
	return runAStar(ctx, &decorated, origin, destination, k, vias)
}

func runYens(ctx context.Context, inst *search.Instance, origin graph.VertexID, destination *graph.VertexID, k int, vias []graph.VertexID) ([]queryrecord.Path, *search.Result, error) {
	if destination == nil {
		return nil, nil, fmt.Errorf("app: algorithm \"yens\" requires a destination")
	}
	config := ksp.Config{
		K:                   kOrDefault(k),
		Termination:         ksp.TerminationFactorOfK,
		Factor:              3,
		SimilarityThreshold: 0.9,
		Similarity:          ksp.EdgeIDCosineSimilarity,
	}
	paths, err := ksp.Yen(ctx, inst, origin, *destination, config)
	if err != nil {
		return nil, nil, err
	}
	return toQueryPaths(paths), nil, nil
}

func runSingleViaPaths(ctx context.Context, inst *search.Instance, origin graph.VertexID, destination *graph.VertexID, k int, vias []graph.VertexID) ([]queryrecord.Path, *search.Result, error) {
	if destination == nil {
		return nil, nil, fmt.Errorf("app: algorithm \"svp\" requires a destination")
	}
	config := ksp.Config{
		K:                   kOrDefault(k),
		Termination:         ksp.TerminationExact,
		SimilarityThreshold: 0.9,
		Similarity:          ksp.EdgeIDCosineSimilarity,
	}
	paths, err := ksp.SingleViaPaths(ctx, inst, origin, *destination, vias, config)
	if err != nil {
		return nil, nil, err
	}
	return toQueryPaths(paths), nil, nil
}

func kOrDefault(k int) int {
	if k > 0 {
		return k
	}
	return 1
}

func toQueryPaths(paths []ksp.Path) []queryrecord.Path {
	out := make([]queryrecord.Path, len(paths))
	for i, p := range paths {
		out[i] = queryrecord.Path{Route: p.Edges, Cost: p.Cost}
	}
	return out
}

// Query runs one origin-destination search, or a tree-mode search when
// destination is omitted, and returns a fully populated Result. Query
// never returns a Go error for an ordinary search failure (no path,
// termination exhaustion) — those become Result.Error, matching spec.md
// §7's "each query's result carries an optional error string". A
// non-nil error return is reserved for malformed input the caller
// should fix before retrying (unknown model_name, missing origin,
// unknown algorithm tag). A "yens" or "svp" query without a destination
// is reported through Result.Error like any other algorithm failure.
func (a *App) Query(ctx context.Context, q queryrecord.Query) (queryrecord.Result, error) {
	if a.Cache.Enabled {
		key := resultcache.QueryKey(q)
		if cached, err := resultcache.Get(ctx, key); err == nil && cached != nil {
			return *cached, nil
		}
	}

	origin, err := a.resolveVertex(q.OriginVertex, q.OriginX, q.OriginY)
	if err != nil {
		return queryrecord.Result{}, err
	}
	archetype, err := a.resolveArchetype(q.ModelName)
	if err != nil {
		return queryrecord.Result{}, err
	}

	models := append(append([]traversal.Model(nil), a.BaseModels...), traversal.EnergyModel{Archetype: archetype})
	composite, err := traversal.NewComposite(models)
	if err != nil {
		return queryrecord.Result{}, fmt.Errorf("app: composing traversal models: %w", err)
	}
	sm, err := composite.StateModel()
	if err != nil {
		return queryrecord.Result{}, fmt.Errorf("app: building state model: %w", err)
	}
	cm, err := a.buildCostModel(sm, q.Weights, archetype)
	if err != nil {
		return queryrecord.Result{}, fmt.Errorf("app: building cost model: %w", err)
	}

	inst := &search.Instance{
		Graph:       a.Graph,
		Context:     a.Context,
		StateModel:  sm,
		Traversal:   composite,
		Frontier:    a.buildFrontier(q.RoadClasses),
		Cost:        cm,
		Termination: a.Termination,
		LabelFunc:   a.LabelFunc,
	}

	algoTag := q.Algorithm
	if algoTag == "" {
		algoTag = a.DefaultAlgorithm
	}
	runAlgorithm, err := a.Algorithms.Build(algoTag, nil)
	if err != nil {
		return queryrecord.Result{}, fmt.Errorf("app: %w", err)
	}
	k := q.K
	if k <= 0 {
		k = a.DefaultK
	}
	a.Logger.Printf("app: search instance built (model_name=%q, algorithm=%q, features=%d)", archetype.Name, algoTag, len(sm.Features()))

	result := queryrecord.Result{Request: q}

	var destination *graph.VertexID
	treeMode := q.DestinationVertex == nil && (q.DestinationX == nil || q.DestinationY == nil)
	if !treeMode {
		v, err := a.resolveVertex(q.DestinationVertex, q.DestinationX, q.DestinationY)
		if err != nil {
			return queryrecord.Result{}, err
		}
		destination = &v
	}

	paths, searchResult, err := runAlgorithm(ctx, inst, origin, destination, k, q.Vias)
	if err != nil {
		var exhausted *search.TerminatedExhaustedError
		if errors.As(err, &exhausted) {
			result.TerminationReason = exhausted.Cause.String()
		}
		result.Error = err.Error()
		return result, nil
	}

	if searchResult != nil {
		result.SearchTreeSizeBytes = searchResult.Tree.SizeBytes()
		result.SearchRuntimeMs = float64(searchResult.Elapsed) / float64(time.Millisecond)
		if searchResult.TerminationReason != termination.ReasonNone {
			result.TerminationReason = searchResult.TerminationCause.String()
		}
	}

	if treeMode {
		result.Tree = projectTree(searchResult.Tree)
		return result, nil
	}

	if len(paths) == 0 {
		if result.TerminationReason != "" {
			result.Error = fmt.Sprintf("search: terminated before reaching destination (%s)", result.TerminationReason)
		} else {
			result.Error = search.ErrNoPath.Error()
		}
		return result, nil
	}

	result.Route = paths[0].Route
	result.Cost = queryrecord.Cost{TotalCost: paths[0].Cost}
	if len(paths) > 1 {
		result.Paths = paths
	}

	finalState, _, err := ksp.Simulate(inst, paths[0].Route)
	if err != nil {
		result.Error = err.Error()
		return result, nil
	}
	result.State = projectState(sm, finalState)

	breakdown, err := cm.FeatureBreakdown(sm.InitialState(), finalState)
	if err != nil {
		result.Error = err.Error()
		return result, nil
	}
	result.Cost.PerFeature = breakdown

	if a.Cache.Enabled {
		a.cacheStore(ctx, q, result)
	}
	return result, nil
}

func (a *App) cacheStore(ctx context.Context, q queryrecord.Query, result queryrecord.Result) {
	key := resultcache.QueryKey(q)
	if err := resultcache.Set(ctx, key, &result, a.Cache.TTL); err != nil {
		a.Logger.Printf("resultcache: failed to store %q: %v", key, err)
	}
}

// QueryBatch runs every query concurrently through Query, bounded by
// parallelism, gathering one Result per query (spec.md §5). It logs
// start and completion with counts and elapsed time, the way
// graph.Builder.Build logs its own phases.
func (a *App) QueryBatch(ctx context.Context, queries []queryrecord.Query, parallelism int) ([]queryrecord.Result, error) {
	start := time.Now()
	a.Logger.Printf("app: batch started (%d queries, parallelism=%d)", len(queries), parallelism)

	driver := batch.Driver{
		Parallelism: parallelism,
		Query: func(ctx context.Context, q queryrecord.Query) queryrecord.Result {
			result, err := a.Query(ctx, q)
			if err != nil {
				return queryrecord.Result{Request: q, Error: err.Error()}
			}
			return result
		},
	}
	results, err := driver.Run(ctx, queries)
	if err != nil {
		a.Logger.Printf("app: batch aborted after %v: %v", time.Since(start), err)
		return results, err
	}

	summary := batch.Summarize(results)
	a.Logger.Printf("app: batch complete in %v (%d succeeded, %d failed)",
		time.Since(start), summary.Successful, summary.Failed)
	return results, nil
}

func projectState(sm *state.StateModel, s state.State) map[string]float64 {
	out := make(map[string]float64, len(sm.Features()))
	for _, f := range sm.Features() {
		v, err := sm.Get(s, f.Name, f.Unit)
		if err != nil {
			continue
		}
		out[f.Name] = v
	}
	return out
}

func projectTree(tree search.Tree) map[string]queryrecord.TreeEntry {
	out := make(map[string]queryrecord.TreeEntry, len(tree))
	for lbl, entry := range tree {
		key := labelKey(lbl)
		projected := queryrecord.TreeEntry{
			HasBack:        entry.HasBack,
			InboundEdge:    entry.InboundEdge,
			CumulativeCost: entry.CumulativeCost,
		}
		if entry.HasBack {
			projected.Back = labelKey(entry.Back)
		}
		out[key] = projected
	}
	return out
}

func labelKey(l label.Label) string {
	return fmt.Sprintf("%d:%d", l.Vertex, l.Discriminator)
}
