package ksp

import (
	"math"

	"github.com/routee-compass/compass-core/internal/graph"
)

// SimilarityFunc scores how alike two edge-id paths are, in [0, 1] where
// 1 means identical. spec.md §4.8 names two: edge-id cosine (cheap,
// set-based) and distance-weighted cosine (each edge weighted by its
// distance).
type SimilarityFunc func(a, b []graph.EdgeID) float64

// EdgeIDCosineSimilarity treats each path as a 0/1 indicator vector over
// the edge-id universe and computes cosine similarity, which reduces to
// |intersection| / sqrt(|a| * |b|) for 0/1 vectors.
func EdgeIDCosineSimilarity(a, b []graph.EdgeID) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	setA := toSet(a)
	intersection := 0
	for _, e := range b {
		if setA[e] {
			intersection++
		}
	}
	return float64(intersection) / math.Sqrt(float64(len(a)*len(b)))
}

// DistanceWeightedCosineSimilarity weights each edge's contribution by
// its distance, so overlap on long shared segments counts more than
// overlap on short ones.
func DistanceWeightedCosineSimilarity(a, b []graph.EdgeID, distance func(graph.EdgeID) float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	weightA := make(map[graph.EdgeID]float64, len(a))
	var normA, normB, dot float64
	for _, e := range a {
		w := distance(e)
		weightA[e] = w
		normA += w * w
	}
	for _, e := range b {
		w := distance(e)
		normB += w * w
		if wa, ok := weightA[e]; ok {
			dot += wa * w
		}
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / math.Sqrt(normA*normB)
}

func toSet(edges []graph.EdgeID) map[graph.EdgeID]bool {
	set := make(map[graph.EdgeID]bool, len(edges))
	for _, e := range edges {
		set[e] = true
	}
	return set
}

// SimilarityFilter admits a candidate only if it stays below Threshold
// against every already-accepted path (spec.md §4.8: "A candidate is
// admitted only if it is below a configured similarity threshold with
// every already-accepted path").
type SimilarityFilter struct {
	Threshold  float64
	Similarity SimilarityFunc
}

// Admits reports whether candidate may join accepted.
func (f SimilarityFilter) Admits(candidate []graph.EdgeID, accepted [][]graph.EdgeID) bool {
	for _, a := range accepted {
		if f.Similarity(candidate, a) >= f.Threshold {
			return false
		}
	}
	return true
}
