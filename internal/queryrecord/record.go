// Package queryrecord declares the JSON-facing request/response schema
// for a single origin-destination query (spec.md §6's "Query record" /
// "Result record"), replacing the teacher's transit-specific
// internal/models.Path/Step with a vehicle-routing shaped pair of
// structs. Nothing in this package touches the search kernel directly;
// internal/app translates between these wire structs and the
// graph.VertexID / state.State types the kernel speaks.
package queryrecord

import "github.com/routee-compass/compass-core/internal/graph"

// Query is one origin-destination search request, matching spec.md §6's
// Query record. Origin/destination are specified either by a known
// vertex id or by a coordinate pair to be snapped to the nearest vertex.
// When both forms are populated the vertex id is used. internal/app
// rejects an origin with neither form; a destination with neither form
// runs a tree-mode search.
type Query struct {
	OriginVertex *graph.VertexID `json:"origin_vertex,omitempty"`
	OriginX      *float64        `json:"origin_x,omitempty"`
	OriginY      *float64        `json:"origin_y,omitempty"`

	DestinationVertex *graph.VertexID `json:"destination_vertex,omitempty"`
	DestinationX      *float64        `json:"destination_x,omitempty"`
	DestinationY      *float64        `json:"destination_y,omitempty"`

	// ModelName selects a registered vehicle.Archetype; empty uses the
	// app's configured default.
	ModelName string `json:"model_name,omitempty"`

	// Weights overrides DefaultCostModel feature weights by name. A
	// feature present in the CostModel but absent here is weighted 0
	// for this query (spec.md §9's explicit Open Question decision),
	// not "use the app default".
	Weights map[string]float64 `json:"weights,omitempty"`

	// RoadClasses restricts traversal to these classes when non-empty;
	// interpreted by a frontier.RoadClassFilter the app builds per query.
	RoadClasses []string `json:"road_classes,omitempty"`

	// Algorithm selects the search strategy spec.md §6 names:
	// "a*" | "dijkstras" | "yens" | "svp". Empty uses the app's
	// configured default.
	Algorithm string `json:"algorithm,omitempty"`

	// K bounds the number of paths Yen's/SVP return; ignored by a*/
	// dijkstras. Zero uses the app's configured default.
	K int `json:"k,omitempty"`

	// Vias lists the intermediate vertices a "svp" query must route
	// through, one candidate per via (spec.md §4.8's Single-Via-Paths).
	// Ignored by every other Algorithm value.
	Vias []graph.VertexID `json:"vias,omitempty"`

	// PassThrough holds arbitrary caller keys that carry no meaning to
	// the core but are echoed back verbatim in Result.Request.
	PassThrough map[string]any `json:"-"`
}

// Cost is the priced outcome of a search, matching spec.md §6's
// `cost: { total_cost, per_feature }`.
type Cost struct {
	TotalCost  float64            `json:"total_cost"`
	PerFeature map[string]float64 `json:"per_feature"`
}

// Result is the outcome of one Query, matching spec.md §6's Result
// record exactly: the echoed request, the edge-id route (nil on
// failure), an optional tree (only populated when the caller asked for
// tree mode, i.e. no destination), the final state vector with units
// resolved to plain named values, cost, timing, and an optional error.
type Result struct {
	Request Query `json:"request"`

	// Route is the ordered edge-id path, or nil if no path was found.
	Route []graph.EdgeID `json:"route"`

	// Tree is populated only for tree-mode queries (destination omitted);
	// it maps a label's string form to its back-pointer entry. Left nil
	// for ordinary origin-destination queries to avoid inflating every
	// result with the full search tree.
	Tree map[string]TreeEntry `json:"tree,omitempty"`

	// State is the final state vector, one entry per declared feature,
	// in the feature's canonical unit.
	State map[string]float64 `json:"state"`

	Cost Cost `json:"cost"`

	// Paths holds every accepted route when the algorithm ("yens" or
	// "svp", spec.md §4.8) accepted more than one: one entry per path, in
	// the order the algorithm accepted them (cost-ascending for Yen's).
	// It is nil when only one route was accepted. Route/Cost above are
	// always populated on success, mirroring the first route, so a caller
	// only interested in the single best path never needs to branch on
	// Algorithm.
	Paths []Path `json:"paths,omitempty"`

	SearchRuntimeMs     float64 `json:"search_runtime_ms"`
	SearchTreeSizeBytes int64   `json:"search_tree_size_bytes"`

	// TerminationReason is set whenever the search ended for a reason
	// other than "found the destination" (spec.md §7's TerminationReason
	// taxonomy): "time", "iterations", "tree_size", "user_cancel", or
	// empty on ordinary completion.
	TerminationReason string `json:"termination_reason,omitempty"`

	// Error carries a query-level failure (SearchError::NoPath, a
	// TraversalModel failure, ...). Per spec.md §7, one query's Error
	// never aborts a batch; internal/batch collects these per-query.
	Error string `json:"error,omitempty"`
}

// Path is one route among several a "yens" or "svp" query returns,
// matching spec.md §4.8's KSP output shape.
type Path struct {
	Route []graph.EdgeID `json:"route"`
	Cost  float64        `json:"cost"`
}

// TreeEntry is a minimal, JSON-safe projection of search.TreeEntry for
// tree-mode results: enough to reconstruct any path in the returned tree
// without re-exposing internal/search's label/state types on the wire.
type TreeEntry struct {
	HasBack        bool         `json:"has_back"`
	Back           string       `json:"back,omitempty"`
	InboundEdge    graph.EdgeID `json:"inbound_edge"`
	CumulativeCost float64      `json:"cumulative_cost"`
}
