// File: propagate.go — exact belief propagation over a DAG's iteration
// sets, with diamond conditioning resolved by recursion into the induced
// subgraph (spec §4.5, §9).
package belief

import (
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/reliagraph/reliagraph/analysiserr"
	"github.com/reliagraph/reliagraph/core"
	"github.com/reliagraph/reliagraph/diamond"
	"github.com/reliagraph/reliagraph/probalg"
	"github.com/reliagraph/reliagraph/topology"
)

// Run computes belief[v] for every node of g: the probability v is
// intrinsically active and reachable from some active source, given
// node_prior and edge_prob (spec §4.5).
//
// Complexity: O(|V| + |E|) outside diamonds, O(2^|A_i|) per diamond group
// (spec §4.4); callers bound this with WithMaxConditioningNodes.
func Run(
	g core.Reader,
	topo *topology.Topology,
	diamonds map[core.NodeID]*diamond.DiamondsAtNode,
	alg probalg.Algebra,
	nodePrior map[core.NodeID]probalg.Scalar,
	edgeProb map[core.Edge]probalg.Scalar,
	cfg Config,
) (map[core.NodeID]probalg.Scalar, *Diagnostics, error) {
	diag := &Diagnostics{}
	result, err := propagate(g, topo, diamonds, nodePrior, edgeProb, alg, cfg, 0, diag)
	if err != nil {
		return nil, diag, err
	}
	diag.LayersProcessed = len(topo.IterationSets)
	diag.NodesProcessed = len(g.Nodes()) - len(topo.Sources)
	return result, diag, nil
}

// propagate is Run's recursive core: priors may be an override of the
// caller's node_prior map (conditioning ancestors clamped to One/Zero,
// other local sources pinned to their already-known global belief),
// and g/topo/diamonds may describe a diamond group's induced subgraph
// rather than the whole analysis graph (depth > 0).
func propagate(
	g core.Reader,
	topo *topology.Topology,
	diamonds map[core.NodeID]*diamond.DiamondsAtNode,
	priors map[core.NodeID]probalg.Scalar,
	edgeProb map[core.Edge]probalg.Scalar,
	alg probalg.Algebra,
	cfg Config,
	depth int,
	diag *Diagnostics,
) (map[core.NodeID]probalg.Scalar, error) {
	if depth > cfg.maxRecursionDepth {
		return nil, analysiserr.New(analysiserr.ConditioningTooLarge, "nested diamond conditioning exceeded max recursion depth")
	}

	belief := make(map[core.NodeID]probalg.Scalar, len(g.Nodes()))
	if len(topo.IterationSets) == 0 {
		return belief, nil
	}
	for _, s := range topo.IterationSets[0] {
		belief[s] = priors[s]
	}

	for li := 1; li < len(topo.IterationSets); li++ {
		if err := cfg.ctx.Err(); err != nil {
			return nil, analysiserr.Wrap(analysiserr.Cancelled, err)
		}
		if err := processLayer(g, topo, diamonds, priors, edgeProb, alg, cfg, depth, diag, belief, topo.IterationSets[li]); err != nil {
			return nil, err
		}
	}
	return belief, nil
}

// processLayer computes belief[v] for every v in layer. Layer members
// depend only on strictly earlier layers, already fully populated in
// belief. Parallel workers collect this layer's results in a separate
// mutex-protected map that is copied into belief only after every worker
// has finished, so belief is never written while workers read it (spec §5,
// grounded on perf-analysis's task/errgroup/mutex pattern).
func processLayer(
	g core.Reader,
	topo *topology.Topology,
	diamonds map[core.NodeID]*diamond.DiamondsAtNode,
	priors map[core.NodeID]probalg.Scalar,
	edgeProb map[core.Edge]probalg.Scalar,
	alg probalg.Algebra,
	cfg Config,
	depth int,
	diag *Diagnostics,
	belief map[core.NodeID]probalg.Scalar,
	layer []core.NodeID,
) error {
	compute := func(v core.NodeID) (probalg.Scalar, error) {
		Q, err := combineAtNode(g, topo, diamonds, v, alg, belief, edgeProb, priors, cfg, depth, diag)
		if err != nil {
			return nil, err
		}
		val := alg.Mul(priors[v], Q)
		if !alg.InTolerance(val, cfg.tolerance) {
			return nil, analysiserr.InvariantViolationAt(v, "combined belief left the algebra's valid domain beyond tolerance")
		}
		return val, nil
	}

	if !cfg.parallel || len(layer) <= 1 {
		for _, v := range layer {
			val, err := compute(v)
			if err != nil {
				return err
			}
			belief[v] = val
		}
		return nil
	}

	grp, ctx := errgroup.WithContext(cfg.ctx)
	grp.SetLimit(cfg.maxWorkers)
	var mu sync.Mutex
	results := make(map[core.NodeID]probalg.Scalar, len(layer))
	for _, v := range layer {
		v := v
		grp.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			val, err := compute(v)
			if err != nil {
				return err
			}
			mu.Lock()
			results[v] = val
			mu.Unlock()
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return err
	}
	for v, val := range results {
		belief[v] = val
	}
	return nil
}

// combineAtNode computes Q(v), the probability v is reached through at
// least one of its parents, combining non-diamond parents directly and
// each diamond group via combineGroup (spec §4.5 step 2).
func combineAtNode(
	g core.Reader,
	topo *topology.Topology,
	diamonds map[core.NodeID]*diamond.DiamondsAtNode,
	v core.NodeID,
	alg probalg.Algebra,
	belief map[core.NodeID]probalg.Scalar,
	edgeProb map[core.Edge]probalg.Scalar,
	priors map[core.NodeID]probalg.Scalar,
	cfg Config,
	depth int,
	diag *Diagnostics,
) (probalg.Scalar, error) {
	rec, hasDiamond := diamonds[v]

	var contributions []probalg.Scalar
	if hasDiamond {
		for _, grp := range rec.Groups {
			qi, err := combineGroup(g, topo, grp, v, alg, belief, priors, edgeProb, cfg, depth, diag)
			if err != nil {
				return nil, err
			}
			contributions = append(contributions, qi)
		}
		for _, r := range rec.NonDiamondParents {
			contributions = append(contributions, alg.Mul(belief[r], edgeProb[core.Edge{From: r, To: v}]))
		}
	} else {
		for _, r := range g.In(v) {
			contributions = append(contributions, alg.Mul(belief[r], edgeProb[core.Edge{From: r, To: v}]))
		}
	}
	return probalg.InclusionExclusion(alg, contributions), nil
}

// combineGroup resolves one diamond group feeding v: it enumerates every
// joint activation state σ of the conditioning ancestors, recomputes the
// participating parents' belief under that clamped state by recursing
// into the group's induced subgraph, combines those conditional parent
// contributions by inclusion-exclusion into q_i(σ), and weights q_i(σ) by
// the joint marginal π(σ) (spec §4.5 step 2.b-2.e).
func combineGroup(
	g core.Reader,
	topo *topology.Topology,
	grp *diamond.DiamondGroup,
	v core.NodeID,
	alg probalg.Algebra,
	globalBelief map[core.NodeID]probalg.Scalar,
	priors map[core.NodeID]probalg.Scalar,
	edgeProb map[core.Edge]probalg.Scalar,
	cfg Config,
	depth int,
	diag *Diagnostics,
) (probalg.Scalar, error) {
	k := len(grp.ConditioningAncestors)
	if k > cfg.maxConditioningNodes {
		return nil, analysiserr.ConditioningTooLargeAt(v, k, cfg.maxConditioningNodes)
	}
	diag.observeConditioningSize(k)

	isAncestor := make(map[core.NodeID]bool, k)
	for _, a := range grp.ConditioningAncestors {
		isAncestor[a] = true
	}

	// Edges into a conditioning ancestor are left out of the sub-pass, so
	// every ancestor is a local source there and keeps its clamped value.
	subEdges := make([]core.Edge, 0, len(grp.InducedSubgraphEdges))
	for _, e := range grp.InducedSubgraphEdges {
		if !isAncestor[e.To] {
			subEdges = append(subEdges, e)
		}
	}
	subG := core.NewView(grp.RelevantNodes, subEdges)
	subTopo, err := topology.Compute(subG)
	if err != nil {
		return nil, analysiserr.Wrap(analysiserr.Internal, err)
	}
	subDiamonds, err := diamond.Detect(subG, subTopo)
	if err != nil {
		return nil, analysiserr.Wrap(analysiserr.Internal, err)
	}

	overridden := make(map[core.NodeID]probalg.Scalar, len(priors))
	for n, p := range priors {
		overridden[n] = p
	}
	for _, h := range grp.HighestNodes {
		if !isAncestor[h] {
			overridden[h] = globalBelief[h]
		}
	}

	total := alg.Zero()
	for mask := 0; mask < (1 << uint(k)); mask++ {
		pi := alg.One()
		for i, a := range grp.ConditioningAncestors {
			if mask&(1<<uint(i)) != 0 {
				pi = alg.Mul(pi, globalBelief[a])
				overridden[a] = alg.One()
			} else {
				pi = alg.Mul(pi, alg.Complement(globalBelief[a]))
				overridden[a] = alg.Zero()
			}
		}

		localBelief, err := propagate(subG, subTopo, subDiamonds, overridden, edgeProb, alg, cfg, depth+1, diag)
		if err != nil {
			return nil, err
		}
		diag.observeDepth(depth + 1)

		var contributions []probalg.Scalar
		for _, p := range grp.ParticipatingParents {
			contributions = append(contributions, alg.Mul(localBelief[p], edgeProb[core.Edge{From: p, To: v}]))
		}
		qSigma := probalg.InclusionExclusion(alg, contributions)
		total = alg.Add(total, alg.Mul(pi, qSigma))
	}
	return total, nil
}
