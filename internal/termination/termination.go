// Package termination implements the per-query resource guard (spec.md
// §4.6). Grounded on the teacher's getMaxExploredNodes/getRoutingTimeout
// env-configured caps and its periodic ctx.Done() poll in routing.astar,
// generalized into a configurable set of rules plus an explicit
// allow-best-so-far vs. fail-hard policy.
package termination

import "time"

// Reason names why a search stopped before exhausting its open set.
type Reason int

const (
	// ReasonNone means the search has not terminated early.
	ReasonNone Reason = iota
	// ReasonAllowed means a cap was hit but the configured Behavior
	// permits returning the best result found so far.
	ReasonAllowed
	// ReasonExhausted means a cap was hit and Behavior requires failure.
	ReasonExhausted
)

// Cause identifies which rule fired, matching spec.md §7's
// TerminationReason taxonomy ("time, iterations, tree-size, user-cancel").
// Reason alone only says whether the outcome is a soft best-so-far or a
// hard failure; Cause says which cap caused it.
type Cause int

const (
	// CauseNone means no rule fired.
	CauseNone Cause = iota
	// CauseTime means the query's wall-clock deadline passed.
	CauseTime
	// CauseIterations means the iteration cap was reached.
	CauseIterations
	// CauseTreeSize means the tree byte-size cap was reached.
	CauseTreeSize
	// CauseUserCancel means the caller's context was cancelled. Only
	// search.Run sets this; QueryTerminated never returns it, since it
	// has no visibility into ctx.
	CauseUserCancel
)

// String renders Cause the way spec.md §6's termination_reason field
// spells it on the wire.
func (c Cause) String() string {
	switch c {
	case CauseTime:
		return "time"
	case CauseIterations:
		return "iterations"
	case CauseTreeSize:
		return "tree_size"
	case CauseUserCancel:
		return "user_cancel"
	default:
		return ""
	}
}

// Behavior controls what happens when a rule fires.
type Behavior int

const (
	// AllowBestSoFar returns the best path/tree found so far as a
	// successful (if suboptimal) result.
	AllowBestSoFar Behavior = iota
	// FailHard treats any fired rule as a search failure.
	FailHard
)

// Model is a per-query resource guard, checked by the search kernel at
// CheckFrequency-iteration intervals (spec.md §5's cooperative
// cancellation: "polls (iteration_count % check_frequency == 0)").
type Model struct {
	Deadline        time.Time // zero value means no deadline
	MaxIterations   int       // 0 means unbounded
	MaxTreeBytes    int64     // 0 means unbounded
	CheckFrequency  int       // how often QueryTerminated is consulted; caller's responsibility
	Behavior        Behavior
}

// NewUnbounded returns a Model with no caps — the search always runs to
// exhaustion.
func NewUnbounded() Model {
	return Model{CheckFrequency: 100000, Behavior: AllowBestSoFar}
}

// QueryTerminated evaluates every configured rule in priority order (time,
// then iterations, then tree size) and returns the first cause to fire
// alongside whether Behavior allows a best-so-far result or demands
// failure. It returns (ReasonNone, CauseNone) if nothing fired.
func (m Model) QueryTerminated(iterationCount int, elapsed time.Duration, treeSizeBytes int64) (Reason, Cause) {
	cause := CauseNone

	switch {
	case !m.Deadline.IsZero() && !time.Now().Before(m.Deadline):
		cause = CauseTime
	case m.MaxIterations > 0 && iterationCount >= m.MaxIterations:
		cause = CauseIterations
	case m.MaxTreeBytes > 0 && treeSizeBytes >= m.MaxTreeBytes:
		cause = CauseTreeSize
	}

	if cause == CauseNone {
		return ReasonNone, CauseNone
	}
	if m.Behavior == FailHard {
		return ReasonExhausted, cause
	}
	return ReasonAllowed, cause
}

// ShouldCheck reports whether iterationCount lands on a check boundary,
// matching the cooperative-cancellation poll cadence spec.md §5
// describes ("every 100,000 iterations or every configured time
// granularity").
func (m Model) ShouldCheck(iterationCount int) bool {
	freq := m.CheckFrequency
	if freq <= 0 {
		freq = 1
	}
	return iterationCount%freq == 0
}
