// Package label defines the search frontier key (spec.md §3's "Label").
package label

import "github.com/routee-compass/compass-core/internal/graph"

// Label uniquely identifies a frontier entry: a vertex plus an optional
// packed discriminator distinguishing paths that reach the same vertex
// in different derived state categories (e.g. PHEV charge_depleting vs.
// charge_sustaining). Discriminator packs up to 8 single-byte
// sub-classifications into one machine word, per spec.md §3's "vertex +
// packed u8 discriminator vector (padded to... 8 bytes)". Label is a
// plain comparable struct, so it is hashable and ordered by vertex then
// discriminator out of the box; frontier extraction order is driven by
// cumulative cost, never by this ordering.
type Label struct {
	Vertex        graph.VertexID
	Discriminator uint64
}

// Simple builds a vertex-only label, the classic Dijkstra/A* key.
func Simple(v graph.VertexID) Label {
	return Label{Vertex: v}
}

// WithDiscriminator builds a label distinguishing v by one or more
// single-byte classification values, each packed into consecutive bytes
// of the discriminator word. Byte 0 is the least significant.
func WithDiscriminator(v graph.VertexID, classes ...uint8) Label {
	var d uint64
	for i, c := range classes {
		if i >= 8 {
			break
		}
		d |= uint64(c) << (8 * uint(i))
	}
	return Label{Vertex: v, Discriminator: d}
}

// Less provides a total order for deterministic tie-breaking in
// contexts that want one (e.g. a stable secondary sort key); frontier
// priority itself always comes from cumulative cost.
func (l Label) Less(other Label) bool {
	if l.Vertex != other.Vertex {
		return l.Vertex < other.Vertex
	}
	return l.Discriminator < other.Discriminator
}
