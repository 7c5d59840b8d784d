package validate

import "errors"

var (
	// ErrMissingPrior is wrapped when a node has no node_prior entry.
	ErrMissingPrior = errors.New("validate: node has no prior")

	// ErrMissingEdgeProb is wrapped when an edge has no edge_prob entry.
	ErrMissingEdgeProb = errors.New("validate: edge has no probability")

	// ErrOutOfDomain is wrapped when a scalar falls outside the algebra's
	// valid range by more than tolerance.
	ErrOutOfDomain = errors.New("validate: scalar out of algebra domain")

	// ErrPartitionMismatch is wrapped when the iteration sets don't
	// partition V exactly.
	ErrPartitionMismatch = errors.New("validate: iteration sets do not partition all nodes exactly")

	// ErrInconsistentClosure is wrapped when an ancestor/descendant
	// index disagrees with the edge list.
	ErrInconsistentClosure = errors.New("validate: ancestor/descendant index inconsistent with edges")

	// ErrNegativeRate is wrapped when a reliability rate is negative.
	ErrNegativeRate = errors.New("validate: negative rate")

	// ErrInvalidInitialState is wrapped when an initial state label is
	// not one of Working/Failed/Under-Repair.
	ErrInvalidInitialState = errors.New("validate: invalid initial state label")

	// ErrTimestepTooLarge is wrapped when dt does not satisfy the hard
	// dt*max(lambda,mu)<1 bound.
	ErrTimestepTooLarge = errors.New("validate: dt too large for given rates")

	// ErrOverBudget is wrapped when a memory estimate exceeds the
	// configured limit.
	ErrOverBudget = errors.New("validate: estimated memory exceeds configured limit")
)

func tag(name string, err error) error {
	if err == nil {
		return nil
	}
	return &taggedError{name: name, err: err}
}

type taggedError struct {
	name string
	err  error
}

func (e *taggedError) Error() string { return e.name + ": " + e.err.Error() }
func (e *taggedError) Unwrap() error { return e.err }
