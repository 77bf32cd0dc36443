package ksp

import "errors"

// ErrNoPath is returned when even the first (shortest) path cannot be
// found.
var ErrNoPath = errors.New("ksp: no path found")

// ErrInvalidConfig is returned for a malformed Config (k <= 0, an
// unrecognized termination mode, etc).
var ErrInvalidConfig = errors.New("ksp: invalid configuration")
