package search

import (
	"errors"
	"fmt"

	"github.com/routee-compass/compass-core/internal/termination"
)

// ErrNoPath is returned when the open set empties without reaching the
// destination.
var ErrNoPath = errors.New("search: no path found")

// ErrTerminatedExhausted is returned when a TerminationModel rule fires
// under termination.FailHard. Run never returns this sentinel directly;
// it returns a *TerminatedExhaustedError, which compares equal to this
// sentinel under errors.Is so existing callers need no changes, while
// errors.As can still recover which rule fired.
var ErrTerminatedExhausted = errors.New("search: terminated, all_terminations_fail")

// TerminatedExhaustedError reports a hard search failure along with the
// specific termination.Cause that fired (spec.md §7's taxonomy), so a
// caller can distinguish "ran out of time" from "ran out of iterations"
// without losing compatibility with the plain ErrTerminatedExhausted
// sentinel.
type TerminatedExhaustedError struct {
	Cause termination.Cause
}

func (e *TerminatedExhaustedError) Error() string {
	return fmt.Sprintf("%s (%s)", ErrTerminatedExhausted.Error(), e.Cause)
}

// Is lets errors.Is(err, ErrTerminatedExhausted) keep matching.
func (e *TerminatedExhaustedError) Is(target error) bool {
	return target == ErrTerminatedExhausted
}

// ErrNegativeCost mirrors cost.ErrNegativeCost at the search boundary,
// spec.md §4.8's CostModel::NegativeCost failure.
var ErrNegativeCost = errors.New("search: negative cost observed during traversal")
