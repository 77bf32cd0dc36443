package graph

import "errors"

// ErrInvalidVertexID is returned when a VertexID falls outside
// [0, NumVertices()).
var ErrInvalidVertexID = errors.New("graph: invalid vertex id")

// ErrInvalidEdgeID is returned when an EdgeID falls outside
// [0, NumEdges()).
var ErrInvalidEdgeID = errors.New("graph: invalid edge id")

// ErrDanglingEdge is returned at build time when an edge references a
// vertex id that is not present in the vertex list.
var ErrDanglingEdge = errors.New("graph: edge references unknown vertex")

// ErrNonPositiveDistance is returned at build time when an edge's
// distance is not strictly positive.
var ErrNonPositiveDistance = errors.New("graph: edge distance must be strictly positive")

// ErrNonDenseIDs is returned at build time when vertex or edge ids in the
// source records are not a dense, zero-based, row-index-matching
// sequence.
var ErrNonDenseIDs = errors.New("graph: ids must be dense, zero-based, and match row order")
