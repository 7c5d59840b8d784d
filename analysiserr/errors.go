package analysiserr

import (
	"fmt"

	"github.com/reliagraph/reliagraph/core"
)

// Code classifies the failure modes of an analysis run (spec §6).
type Code string

const (
	// InvalidInput covers malformed parameters: missing priors, probability
	// values outside [0,1] before tolerance is applied, mismatched scalar
	// algebras.
	InvalidInput Code = "INVALID_INPUT"

	// NotADAG is returned when topology.Compute finds a cycle.
	NotADAG Code = "NOT_A_DAG"

	// ConditioningTooLarge is returned when a diamond group's conditioning
	// set exceeds the cap set with WithMaxConditioningNodes.
	ConditioningTooLarge Code = "CONDITIONING_TOO_LARGE"

	// TimestepTooLarge is returned when dt·max(λ,μ) ≥ 1 for the reliability
	// engine (spec §4.6).
	TimestepTooLarge Code = "TIMESTEP_TOO_LARGE"

	// InvariantViolation is returned when an internal combinator invariant
	// fails — a scalar leaves its algebra's tolerance band, a state triple
	// stops summing to 1, or a computed topology is inconsistent with its
	// graph. Never a caller input error.
	InvariantViolation Code = "INVARIANT_VIOLATION"

	// OutOfBudget is returned when memory.Estimate predicts the run would
	// exceed the limit set with analysis.WithMemoryLimit before any
	// allocation happens.
	OutOfBudget Code = "OUT_OF_BUDGET"

	// Cancelled is returned when the caller's context is done.
	Cancelled Code = "CANCELLED"

	// Internal covers anything that should be structurally impossible.
	Internal Code = "INTERNAL"
)

// Error is the concrete error type every typed failure is reported as.
// Node, Edge and Sigma are filled in only when meaningful for Code; zero
// values mean "not applicable."
type Error struct {
	Code Code
	// Msg is a human-readable detail, never used for control flow.
	Msg string
	// Node is the offending node, when Code concerns one node.
	Node core.NodeID
	// Edge is the offending edge, when Code concerns one edge.
	Edge core.Edge
	// ConditioningSize is the size of the conditioning set that triggered
	// ConditioningTooLarge.
	ConditioningSize int
	// Suggested is an engine-computed remediation value, e.g. the largest
	// dt that would satisfy dt·max(λ,μ)<1 for TimestepTooLarge.
	Suggested float64
	// Err wraps the underlying cause, if any (e.g. context.Canceled).
	Err error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("analysis: %s: %s", e.Code, e.Msg)
	}
	return fmt.Sprintf("analysis: %s", e.Code)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a bare *Error carrying just a code and message.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

// Wrap builds an *Error that wraps an underlying cause.
func Wrap(code Code, err error) *Error {
	return &Error{Code: code, Msg: err.Error(), Err: err}
}

// ConditioningTooLargeAt builds the CONDITIONING_TOO_LARGE error for a
// specific join node and conditioning-set size.
func ConditioningTooLargeAt(join core.NodeID, size, max int) *Error {
	return &Error{
		Code:             ConditioningTooLarge,
		Msg:              fmt.Sprintf("conditioning set at node %d has size %d, exceeds limit %d", join, size, max),
		Node:             join,
		ConditioningSize: size,
	}
}

// InvariantViolationAt builds the INVARIANT_VIOLATION error for a node
// whose combined scalar left the algebra's tolerance band.
func InvariantViolationAt(v core.NodeID, msg string) *Error {
	return &Error{Code: InvariantViolation, Msg: msg, Node: v}
}

// TimestepTooLargeWith builds the TIMESTEP_TOO_LARGE error, suggesting the
// largest safe timestep.
func TimestepTooLargeWith(dtMax float64) *Error {
	return &Error{
		Code:      TimestepTooLarge,
		Msg:       fmt.Sprintf("dt too large for max(lambda,mu); suggested dt_max=%g", dtMax),
		Suggested: dtMax,
	}
}

// Is reports whether err carries the given Code, unwrapping as needed.
func Is(err error, code Code) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Code == code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
