package traversal

import (
	"fmt"

	"github.com/routee-compass/compass-core/internal/state"
)

// Composite composes an ordered list of child Models into one Model,
// resolving the order with a topological sort over output_features ->
// input_features dependencies at build time (spec.md §4.4).
type Composite struct {
	ordered  []Model
	features []state.FeatureDescriptor
}

// NewComposite topologically sorts models by feature dependency and
// returns a Composite driving them in that order. Cyclic dependencies
// fail with ErrCyclicComposition.
func NewComposite(models []Model) (*Composite, error) {
	if len(models) == 0 {
		return nil, ErrNoModels
	}

	writerOf := make(map[string]int) // feature name -> producing model index
	for i, m := range models {
		for _, f := range m.OutputFeatures() {
			writerOf[f] = i
		}
	}

	n := len(models)
	adj := make([][]int, n)   // adj[i] = models that depend on model i's output
	indegree := make([]int, n)
	edgeSeen := make(map[[2]int]bool)

	for i, m := range models {
		for _, f := range m.InputFeatures() {
			producer, ok := writerOf[f]
			if !ok || producer == i {
				continue
			}
			key := [2]int{producer, i}
			if edgeSeen[key] {
				continue
			}
			edgeSeen[key] = true
			adj[producer] = append(adj[producer], i)
			indegree[i]++
		}
	}

	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if indegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	ordered := make([]Model, 0, n)
	visited := make([]bool, n)
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		if visited[idx] {
			continue
		}
		visited[idx] = true
		ordered = append(ordered, models[idx])
		for _, next := range adj[idx] {
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(ordered) != n {
		return nil, ErrCyclicComposition
	}

	features := mergeFeatureDescriptors(models)

	return &Composite{ordered: ordered, features: features}, nil
}

func mergeFeatureDescriptors(models []Model) []state.FeatureDescriptor {
	seen := make(map[string]bool)
	var merged []state.FeatureDescriptor
	for _, m := range models {
		for _, f := range m.FeatureDescriptors() {
			if seen[f.Name] {
				continue
			}
			seen[f.Name] = true
			merged = append(merged, f)
		}
	}
	return merged
}

func (c *Composite) InputFeatures() []string {
	var out []string
	for _, m := range c.ordered {
		out = append(out, m.InputFeatures()...)
	}
	return out
}

func (c *Composite) OutputFeatures() []string {
	var out []string
	for _, m := range c.ordered {
		out = append(out, m.OutputFeatures()...)
	}
	return out
}

func (c *Composite) FeatureDescriptors() []state.FeatureDescriptor {
	out := make([]state.FeatureDescriptor, len(c.features))
	copy(out, c.features)
	return out
}

// StateModel builds the StateModel for this composite's merged feature
// layout.
func (c *Composite) StateModel() (*state.StateModel, error) {
	return state.NewStateModel(c.features)
}

func (c *Composite) TraverseEdge(sm *state.StateModel, prev state.State, edge EdgeView) (state.State, error) {
	s := prev
	for _, m := range c.ordered {
		next, err := m.TraverseEdge(sm, s, edge)
		if err != nil {
			return state.State{}, fmt.Errorf("traversal: composite traverse_edge: %w", err)
		}
		s = next
	}
	return s, nil
}

func (c *Composite) AccessEdge(sm *state.StateModel, s state.State, srcEdge, dstEdge EdgeView) (state.State, error) {
	cur := s
	for _, m := range c.ordered {
		next, err := m.AccessEdge(sm, cur, srcEdge, dstEdge)
		if err != nil {
			return state.State{}, fmt.Errorf("traversal: composite access_edge: %w", err)
		}
		cur = next
	}
	return cur, nil
}

func (c *Composite) EstimateTraversal(sm *state.StateModel, s state.State, remainingDistance float64) (state.State, error) {
	cur := s
	for _, m := range c.ordered {
		next, err := m.EstimateTraversal(sm, cur, remainingDistance)
		if err != nil {
			return state.State{}, fmt.Errorf("traversal: composite estimate_traversal: %w", err)
		}
		cur = next
	}
	return cur, nil
}
