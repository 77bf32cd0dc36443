package state

import "errors"

// ErrUnknownFeature is returned by Get/Set/Add when name is not declared
// in the StateModel's layout.
var ErrUnknownFeature = errors.New("state: unknown feature")

// ErrDuplicateFeature is returned by NewStateModel when two descriptors
// share a name.
var ErrDuplicateFeature = errors.New("state: duplicate feature name")

// ErrUnitMismatch is returned by Get/Set/Add when the requested unit's
// Quantity does not match the feature's declared unit.
var ErrUnitMismatch = errors.New("state: unit mismatch")

// ErrEmptyLayout is returned by NewStateModel when given no descriptors.
var ErrEmptyLayout = errors.New("state: layout must declare at least one feature")
