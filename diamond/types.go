package diamond

import (
	"errors"

	"github.com/reliagraph/reliagraph/core"
)

// ErrNotADAG names a non-DAG input to this package. Detect does not check
// acyclicity itself and never returns it; cycles are rejected earlier by
// topology.Compute.
var ErrNotADAG = errors.New("diamond: graph is not a DAG")

// ErrPartitionInvariant indicates the union of a join's diamond-group
// participating parents plus its non-diamond parents did not reconstitute
// In(j) exactly — an internal bug, never a caller input error (spec §4.4
// "INTERNAL if invariants on parent union are violated").
var ErrPartitionInvariant = errors.New("diamond: parent-set partition invariant violated")

// DiamondGroup is one maximal shared-ancestry substructure feeding a join
// node (spec §3 "Diamond records (C4)").
type DiamondGroup struct {
	// ConditioningAncestors are the shared fork ancestors to enumerate over,
	// ordered nearest-to-the-join first.
	ConditioningAncestors []core.NodeID

	// ParticipatingParents are the parents of the join whose belief must be
	// recomputed under conditioning on ConditioningAncestors.
	ParticipatingParents []core.NodeID

	// InducedSubgraphEdges are the edges among RelevantNodes: the paths from
	// ConditioningAncestors up to the ParticipatingParents. Edges into the
	// join are not included.
	InducedSubgraphEdges []core.Edge

	// RelevantNodes is the node set of the induced subgraph: the
	// conditioning ancestors and every node on a path from them to the
	// participating parents. The join itself is excluded — the recursive
	// conditional sub-pass only ever needs the parents' conditional belief.
	RelevantNodes map[core.NodeID]bool

	// HighestNodes are the local sources of the induced subgraph: nodes
	// with no predecessor inside RelevantNodes. Normally exactly
	// ConditioningAncestors, but kept as a separately computed field per
	// spec §3, since a richer diamond can surface additional local sources.
	HighestNodes []core.NodeID
}

// DiamondsAtNode is the diamond record for one join node (spec §3).
type DiamondsAtNode struct {
	Join core.NodeID

	// Groups are the maximal shared-ancestry substructures feeding Join.
	// After the merge resolution this module applies (see package doc and
	// SPEC_FULL.md §5), no two groups share a participating parent.
	Groups []*DiamondGroup

	// NonDiamondParents = In(Join) \ union(participating parents across Groups).
	NonDiamondParents []core.NodeID
}
