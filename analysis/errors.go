package analysis

import (
	"errors"

	"github.com/reliagraph/reliagraph/analysiserr"
	"github.com/reliagraph/reliagraph/topology"
)

// wrapNotADAG lifts topology.ErrCycle into the typed NOT_A_DAG surface
// spec §6 promises; any other topology.Compute error (none exist today,
// but the mapping stays exhaustive) passes through as INTERNAL.
func wrapNotADAG(err error) error {
	if errors.Is(err, topology.ErrCycle) {
		return analysiserr.Wrap(analysiserr.NotADAG, err)
	}
	return analysiserr.Wrap(analysiserr.Internal, err)
}
