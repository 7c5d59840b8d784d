// File: api.go — the two entry points spec §6 describes as "a single
// 'run analysis' entry point per mode (reachability or reliability)".
package analysis

import (
	"time"

	"github.com/reliagraph/reliagraph/analysiserr"
	"github.com/reliagraph/reliagraph/belief"
	"github.com/reliagraph/reliagraph/core"
	"github.com/reliagraph/reliagraph/diamond"
	"github.com/reliagraph/reliagraph/memory"
	"github.com/reliagraph/reliagraph/probalg"
	"github.com/reliagraph/reliagraph/reliability"
	"github.com/reliagraph/reliagraph/topology"
	"github.com/reliagraph/reliagraph/validate"
)

// RunReachability validates g, node_prior and edge_prob, then runs C2→C4→C5
// and returns the exact belief table (spec §4.5, §6).
//
// Validation failures short-circuit before topology, diamond detection or
// propagation run at all (spec §7 "Validation failures short-circuit
// before any mutable work begins").
func RunReachability(
	g core.Reader,
	nodePrior map[core.NodeID]probalg.Scalar,
	edgeProb map[core.Edge]probalg.Scalar,
	cfg Config,
) (map[core.NodeID]probalg.Scalar, *Diagnostics, error) {
	start := time.Now()
	diag := &Diagnostics{}

	if err := validate.Graph(g); err != nil {
		return nil, diag, err
	}

	topo, err := topology.Compute(g)
	if err != nil {
		return nil, diag, wrapNotADAG(err)
	}
	if err := validate.Topology(topo); err != nil {
		return nil, diag, err
	}
	if err := validate.Parameters(g, cfg.algebra, nodePrior, edgeProb, cfg.tolerance); err != nil {
		return nil, diag, err
	}

	est := memory.ForBelief(len(g.Nodes()), 1)
	diag.PeakMemoryEstimateBytes = est.TotalBytes
	if err := validate.MemoryBudget(est.TotalBytes, cfg.memoryLimitBytes); err != nil {
		return nil, diag, err
	}

	diamonds, err := diamond.Detect(g, topo)
	if err != nil {
		return nil, diag, analysiserr.Wrap(analysiserr.Internal, err)
	}

	beliefCfg := belief.NewConfig(
		belief.WithMaxConditioningNodes(cfg.maxConditioningNodes),
		belief.WithMaxRecursionDepth(cfg.maxRecursionDepth),
		belief.WithTolerance(cfg.tolerance),
		belief.WithParallel(cfg.parallel),
		belief.WithMaxWorkers(cfg.maxWorkers),
		belief.WithContext(cfg.ctx),
	)

	result, beliefDiag, err := belief.Run(g, topo, diamonds, cfg.algebra, nodePrior, edgeProb, beliefCfg)
	diag.ComputationTime = time.Since(start)
	if beliefDiag != nil {
		diag.MaxConditioningSizeEncountered = beliefDiag.MaxConditioningSizeEncountered
		diag.RecursionDepthReached = beliefDiag.RecursionDepthReached
	}
	if err != nil {
		return nil, diag, err
	}
	return result, diag, nil
}

// RunReliability validates g, rates and initial states, then runs
// C2→C4→C6 and returns the multi-state trajectories (spec §4.6, §6).
func RunReliability(
	g core.Reader,
	rates map[core.NodeID]reliability.RateParams,
	cascade map[core.Edge]probalg.Scalar,
	groupOf map[core.NodeID]string,
	groups map[string]*reliability.RedundancyGroup,
	initial map[core.NodeID]reliability.State,
	timeHorizon int,
	dt float64,
	cfg Config,
) (map[core.NodeID][]reliability.StateVector, *Diagnostics, error) {
	start := time.Now()
	diag := &Diagnostics{}

	if err := validate.Graph(g); err != nil {
		return nil, diag, err
	}

	topo, err := topology.Compute(g)
	if err != nil {
		return nil, diag, wrapNotADAG(err)
	}
	if err := validate.Topology(topo); err != nil {
		return nil, diag, err
	}
	if err := validate.ReliabilityParameters(g, rates, initial, dt); err != nil {
		return nil, diag, err
	}

	est := memory.ForReliability(len(g.Nodes()), timeHorizon)
	diag.PeakMemoryEstimateBytes = est.TotalBytes
	if err := validate.MemoryBudget(est.TotalBytes, cfg.memoryLimitBytes); err != nil {
		return nil, diag, err
	}

	diamonds, err := diamond.Detect(g, topo)
	if err != nil {
		return nil, diag, analysiserr.Wrap(analysiserr.Internal, err)
	}

	relCfg := reliability.NewConfig(
		reliability.WithTimeHorizon(timeHorizon),
		reliability.WithTimestep(dt),
		reliability.WithMaxConditioningNodes(cfg.maxConditioningNodes),
		reliability.WithMaxRecursionDepth(cfg.maxRecursionDepth),
		reliability.WithTolerance(cfg.tolerance),
		reliability.WithParallel(cfg.parallel),
		reliability.WithMaxWorkers(cfg.maxWorkers),
		reliability.WithContext(cfg.ctx),
	)

	result, relDiag, err := reliability.Run(g, topo, diamonds, cfg.algebra, rates, cascade, groupOf, groups, initial, relCfg)
	diag.ComputationTime = time.Since(start)
	if relDiag != nil {
		diag.MaxConditioningSizeEncountered = relDiag.MaxConditioningSizeEncountered
		diag.RecursionDepthReached = relDiag.RecursionDepthReached
	}
	if err != nil {
		return nil, diag, err
	}
	return result, diag, nil
}
