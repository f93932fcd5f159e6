package core

import (
	"fmt"

	"go.uber.org/multierr"
)

// Kind classifies a pipeline failure. All three kinds are fatal: the
// pipeline reports the first and terminates, no stage retries, and no
// partial graph is ever returned.
type Kind int

const (
	// InvalidInput covers negative minLen, NaN dimensions, an
	// unrecognized rankDir, and similar malformed-input problems.
	InvalidInput Kind = iota
	// InvariantViolation covers NotAcyclic after cycle-breaking, a
	// missing enter edge, and network simplex failing to converge
	// within its |V|*|E| pivot safety cap.
	InvariantViolation
	// ConstraintInfeasible covers prefRank "min"/"max" classes that
	// induce an unresolvable ordering (e.g. a cycle through them).
	ConstraintInfeasible
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "InvalidInput"
	case InvariantViolation:
		return "InvariantViolation"
	case ConstraintInfeasible:
		return "ConstraintInfeasible"
	default:
		return "Unknown"
	}
}

// Error is the error type every stage returns on failure.
type Error struct {
	Kind  Kind
	Stage string
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s [%s]: %v", e.Stage, e.Msg, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s [%s]", e.Stage, e.Msg, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, stage, msg string, cause error) *Error {
	return &Error{Kind: kind, Stage: stage, Msg: msg, Err: cause}
}

// NotAcyclic is returned by Rank's initial feasible-ranking phase when
// the priority-queue scan finds no zero-in-degree node left but
// unranked nodes remain.
func NotAcyclic(stage string) error {
	return newError(InvariantViolation, stage, "graph is not acyclic after cycle-breaking", nil)
}

// NoEnterEdge is returned when network simplex's enterEdge cannot find
// any non-tree edge crossing the cut.
func NoEnterEdge(stage string) error {
	return newError(InvariantViolation, stage, "no entering edge found for leaving tree edge", nil)
}

// RankConstraintInfeasible is returned when prefRank classes cannot be
// jointly satisfied.
func RankConstraintInfeasible(detail string) error {
	return newError(ConstraintInfeasible, "rank", "rank constraints are infeasible: "+detail, nil)
}

// joinErrors combines several independent failures found while
// validating a single stage (e.g. several malformed nodes or edges in
// one input graph) into one reported error, using multierr rather than a hand-rolled
// slice.
func joinErrors(errs ...error) error {
	return multierr.Combine(errs...)
}
