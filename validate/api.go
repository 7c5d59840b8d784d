// File: api.go
// Role: the staged validator functions themselves.
//
// Each function below does exactly one structural check and returns an
// *analysiserr.Error tagged with the check that failed, mirroring the
// teacher's matrix.Validate* convention of one assertion per function,
// composed by the caller rather than bundled into a single monolithic
// check.
package validate

import (
	"github.com/reliagraph/reliagraph/analysiserr"
	"github.com/reliagraph/reliagraph/core"
	"github.com/reliagraph/reliagraph/probalg"
	"github.com/reliagraph/reliagraph/reliability"
	"github.com/reliagraph/reliagraph/topology"
)

// Graph checks that g's node set is non-empty and that Edges(), Out() and
// In() agree with each other — every edge (u,v) in Edges() must appear in
// Out(u) and In(v), and vice versa. Package core's own constructor already
// guarantees this for a *core.Graph built via NewGraph, but Graph also
// accepts a core.Reader built by hand (e.g. a test double), so this check
// is not redundant for every caller.
func Graph(g core.Reader) error {
	if g == nil {
		return analysiserr.New(analysiserr.InvalidInput, "validate.Graph: nil graph")
	}
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return analysiserr.New(analysiserr.InvalidInput, "validate.Graph: empty node set")
	}

	nodeSet := make(map[core.NodeID]bool, len(nodes))
	for _, v := range nodes {
		nodeSet[v] = true
	}

	seen := make(map[core.Edge]bool, len(g.Edges()))
	for _, e := range g.Edges() {
		if !nodeSet[e.From] || !nodeSet[e.To] {
			return analysiserr.New(analysiserr.InvalidInput,
				tag("validate.Graph", ErrInconsistentClosure).Error())
		}
		if seen[e] {
			return analysiserr.New(analysiserr.InvalidInput, "validate.Graph: duplicate edge in Edges()")
		}
		seen[e] = true
		inOut, inIn := false, false
		for _, w := range g.Out(e.From) {
			inOut = inOut || w == e.To
		}
		for _, u := range g.In(e.To) {
			inIn = inIn || u == e.From
		}
		if !inOut || !inIn {
			return analysiserr.New(analysiserr.InvalidInput,
				tag("validate.Graph", ErrInconsistentClosure).Error())
		}
	}

	for _, v := range nodes {
		for _, w := range g.Out(v) {
			if !seen[core.Edge{From: v, To: w}] {
				return analysiserr.New(analysiserr.InvalidInput,
					tag("validate.Graph", ErrInconsistentClosure).Error())
			}
		}
		for _, u := range g.In(v) {
			if !seen[core.Edge{From: u, To: v}] {
				return analysiserr.New(analysiserr.InvalidInput,
					tag("validate.Graph", ErrInconsistentClosure).Error())
			}
		}
	}
	return nil
}

// Topology checks that topo's IterationSets partition every node in
// topo.Graph() exactly once, and that Ancestors/Descendants agree with the
// edge list by spot-checking direct predecessors and successors (spec §4.2
// "every node appears in exactly one iteration set").
func Topology(topo *topology.Topology) error {
	if topo == nil {
		return analysiserr.New(analysiserr.InvalidInput, "validate.Topology: nil topology")
	}
	g := topo.Graph()
	nodes := g.Nodes()

	count := make(map[core.NodeID]int, len(nodes))
	for _, layer := range topo.IterationSets {
		for _, v := range layer {
			count[v]++
		}
	}
	if len(count) != len(nodes) {
		return analysiserr.New(analysiserr.InvalidInput,
			tag("validate.Topology", ErrPartitionMismatch).Error())
	}
	for _, v := range nodes {
		if count[v] != 1 {
			return analysiserr.New(analysiserr.InvalidInput,
				tag("validate.Topology", ErrPartitionMismatch).Error())
		}
	}

	for _, v := range nodes {
		ancestors := topo.Ancestors[v]
		if !ancestors[v] {
			return analysiserr.InvariantViolationAt(v, "node is not its own ancestor")
		}
		for _, u := range g.In(v) {
			if !ancestors[u] {
				return analysiserr.InvariantViolationAt(v,
					tag("validate.Topology", ErrInconsistentClosure).Error())
			}
		}
		descendants := topo.Descendants[v]
		if descendants[v] {
			return analysiserr.InvariantViolationAt(v, "node is its own descendant")
		}
		for _, w := range g.Out(v) {
			if !topo.Descendants[v][w] {
				return analysiserr.InvariantViolationAt(v,
					tag("validate.Topology", ErrInconsistentClosure).Error())
			}
		}
	}
	return nil
}

// Parameters checks that every node has a prior, every edge has a
// probability, and every supplied scalar is within alg's domain to within
// tol (spec §4.1 "Parameters per node/edge").
func Parameters(g core.Reader, alg probalg.Algebra, nodePrior map[core.NodeID]probalg.Scalar,
	edgeProb map[core.Edge]probalg.Scalar, tol float64) error {
	for _, v := range g.Nodes() {
		p, ok := nodePrior[v]
		if !ok {
			return &analysiserr.Error{Code: analysiserr.InvalidInput, Msg: tag("validate.Parameters", ErrMissingPrior).Error(), Node: v}
		}
		if !alg.InTolerance(p, tol) {
			return &analysiserr.Error{Code: analysiserr.InvalidInput, Msg: tag("validate.Parameters", ErrOutOfDomain).Error(), Node: v}
		}
	}
	for _, e := range g.Edges() {
		p, ok := edgeProb[e]
		if !ok {
			return &analysiserr.Error{
				Code: analysiserr.InvalidInput,
				Msg:  tag("validate.Parameters", ErrMissingEdgeProb).Error(),
				Edge: e,
			}
		}
		if !alg.InTolerance(p, tol) {
			return &analysiserr.Error{
				Code: analysiserr.InvalidInput,
				Msg:  tag("validate.Parameters", ErrOutOfDomain).Error(),
				Edge: e,
			}
		}
	}
	return nil
}

// ReliabilityParameters checks non-negative rates, valid initial state
// labels for every node, and that dt satisfies the hard dt·max(λ,μ)<1
// bound at every node (spec §4.6 "Hard requirement", §4.7).
func ReliabilityParameters(g core.Reader, rates map[core.NodeID]reliability.RateParams,
	initial map[core.NodeID]reliability.State, dt float64) error {
	maxRate := 0.0
	for _, v := range g.Nodes() {
		rp, ok := rates[v]
		if !ok {
			return &analysiserr.Error{Code: analysiserr.InvalidInput, Msg: "validate.ReliabilityParameters: missing rates", Node: v}
		}
		if rp.Lambda < 0 || rp.Mu < 0 {
			return &analysiserr.Error{Code: analysiserr.InvalidInput,
				Msg: tag("validate.ReliabilityParameters", ErrNegativeRate).Error(), Node: v}
		}
		if rp.Lambda > maxRate {
			maxRate = rp.Lambda
		}
		if rp.Mu > maxRate {
			maxRate = rp.Mu
		}

		s, ok := initial[v]
		if !ok {
			return &analysiserr.Error{Code: analysiserr.InvalidInput, Msg: "validate.ReliabilityParameters: missing initial state", Node: v}
		}
		if s != reliability.Working && s != reliability.Failed && s != reliability.UnderRepair {
			return &analysiserr.Error{Code: analysiserr.InvalidInput,
				Msg: tag("validate.ReliabilityParameters", ErrInvalidInitialState).Error(), Node: v}
		}
	}

	if maxRate > 0 && dt*maxRate >= 1.0 {
		suggested := 0.99 / maxRate
		e := analysiserr.TimestepTooLargeWith(suggested)
		e.Err = tag("validate.ReliabilityParameters", ErrTimestepTooLarge)
		return e
	}
	return nil
}

// MemoryBudget checks a pre-computed byte estimate against a configured
// limit (spec §5 "Memory bound check before allocation"). limitBytes<=0
// disables the check.
func MemoryBudget(estimatedBytes int64, limitBytes int64) error {
	if limitBytes <= 0 {
		return nil
	}
	if estimatedBytes > limitBytes {
		return analysiserr.New(analysiserr.OutOfBudget,
			tag("validate.MemoryBudget", ErrOverBudget).Error())
	}
	return nil
}
