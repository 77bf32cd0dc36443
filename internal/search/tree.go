package search

import (
	"github.com/routee-compass/compass-core/internal/graph"
	"github.com/routee-compass/compass-core/internal/label"
	"github.com/routee-compass/compass-core/internal/state"
)

// TreeEntry is one node of the path tree (spec.md §3): a back-pointer to
// the label it was reached from, the edge that reached it, the state at
// arrival, and cumulative cost.
type TreeEntry struct {
	HasBack        bool
	Back           label.Label
	InboundEdge    graph.EdgeID
	State          state.State
	CumulativeCost float64
}

// Tree maps Label -> TreeEntry. It grows monotonically during a search
// and is owned by the caller after the search returns; nothing in this
// package retains a reference once Run returns.
type Tree map[label.Label]TreeEntry

// approxEntryBytes is a rough per-entry size used for the tree-size-bytes
// termination cap; exact introspection would require reflect.Type walks
// the teacher's codebase never does for its own in-memory structures, so
// this stays a conservative fixed estimate per entry. It does not scale
// with state.State's label width, which grows with the number of
// active features — spec.md §4.6 treats the cap as a profiling
// approximation, not an exact accounting, so a fixed estimate is
// acceptable here.
const approxEntryBytes = 96

// SizeBytes estimates the tree's memory footprint for TerminationModel's
// tree-size cap.
func (t Tree) SizeBytes() int64 {
	return int64(len(t)) * approxEntryBytes
}

// ExtractPath walks back-pointers from dest to the root, returning the
// edge ids traversed in forward order. Returns nil if dest is not in the
// tree. The root label itself has no inbound edge and contributes
// nothing to the returned slice.
func ExtractPath(tree Tree, dest label.Label) []graph.EdgeID {
	if _, ok := tree[dest]; !ok {
		return nil
	}
	var reversed []graph.EdgeID
	cur := dest
	for {
		entry, ok := tree[cur]
		if !ok || !entry.HasBack {
			break
		}
		reversed = append(reversed, entry.InboundEdge)
		cur = entry.Back
	}
	out := make([]graph.EdgeID, len(reversed))
	for i, e := range reversed {
		out[len(reversed)-1-i] = e
	}
	return out
}
