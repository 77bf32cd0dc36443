package traversal

import "errors"

// ErrCyclicComposition is returned by NewComposite when child models'
// input/output feature dependencies cannot be topologically sorted.
var ErrCyclicComposition = errors.New("traversal: cyclic model composition")

// ErrNoModels is returned by NewComposite when given no child models.
var ErrNoModels = errors.New("traversal: composite requires at least one model")

// ErrZeroSpeed is returned by the time model when edge_speed is zero or
// negative, which would make a time-from-distance computation undefined.
var ErrZeroSpeed = errors.New("traversal: zero or negative edge speed")
