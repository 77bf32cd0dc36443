// Package plugin implements the Builder -> Service -> Model lifecycle's
// startup-time lookup (spec.md §4.7): "a plugin registry collects
// builder instances by string tag at startup... the config's
// type = '<tag>' selects the builder." Grounded on the teacher's
// routing.GetStrategy/GetAllStrategies name-to-implementation lookup,
// generalized with a type parameter so one registry shape serves every
// Service kind (cost models, traversal models, graph sources, ...)
// instead of one lookup function per kind.
package plugin

import (
	"fmt"
	"sort"
)

// Builder constructs a Service of type T from a config subtree. Builders
// are registered once at application init and hold no state of their
// own (spec.md §4.7: "XxxBuilder... empty").
type Builder[T any] func(config map[string]any) (T, error)

// Registry collects Builders by string tag.
type Registry[T any] struct {
	builders map[string]Builder[T]
}

// NewRegistry returns an empty Registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{builders: make(map[string]Builder[T])}
}

// Register adds or replaces the builder for tag.
func (r *Registry[T]) Register(tag string, builder Builder[T]) {
	r.builders[tag] = builder
}

// Build looks up tag and invokes its Builder with config.
func (r *Registry[T]) Build(tag string, config map[string]any) (T, error) {
	var zero T
	builder, ok := r.builders[tag]
	if !ok {
		return zero, fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	return builder(config)
}

// Tags lists every registered tag, sorted for deterministic output.
func (r *Registry[T]) Tags() []string {
	tags := make([]string, 0, len(r.builders))
	for tag := range r.builders {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
