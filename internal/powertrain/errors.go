package powertrain

import "errors"

// ErrInvalidAxis is returned when an Axis is malformed (too few bins,
// or upper_bound not exceeding lower_bound).
var ErrInvalidAxis = errors.New("powertrain: invalid axis")

// ErrInvalidModel is returned when a grid fails to build — spec.md
// §4.9's EnergyError::InvalidModel, covering a corrupt or non-finite
// evaluation result at build time.
var ErrInvalidModel = errors.New("powertrain: invalid model")
