// File: engine.go — discrete-time multi-state Markov evolution with
// cascade failure resolved by the same diamond-conditioning combinator
// package belief uses for reachability (spec §4.6).
package reliability

import (
	"math"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/reliagraph/reliagraph/analysiserr"
	"github.com/reliagraph/reliagraph/core"
	"github.com/reliagraph/reliagraph/diamond"
	"github.com/reliagraph/reliagraph/probalg"
	"github.com/reliagraph/reliagraph/topology"
)

// Run evolves every node's (w,f,r) state from t=0 (the labeled initial
// state) through t=Config.timeHorizon, reusing the belief combinator for
// cascade failure at each timestep (spec §4.6 "Evolution").
//
// Complexity: O(T·(|V|+|E|)) outside diamonds, O(T·2^|A_i|) per diamond
// group per timestep.
func Run(
	g core.Reader,
	topo *topology.Topology,
	diamonds map[core.NodeID]*diamond.DiamondsAtNode,
	alg probalg.Algebra,
	rates map[core.NodeID]RateParams,
	cascade map[core.Edge]probalg.Scalar,
	groupOf map[core.NodeID]string,
	groups map[string]*RedundancyGroup,
	initial map[core.NodeID]State,
	cfg Config,
) (map[core.NodeID][]StateVector, *Diagnostics, error) {
	if cfg.timeHorizon <= 0 {
		return nil, nil, analysiserr.New(analysiserr.InvalidInput, "time_horizon must be positive")
	}
	if cfg.dt <= 0 {
		return nil, nil, analysiserr.New(analysiserr.InvalidInput, "dt must be positive")
	}

	if dtMax, ok := checkTimestepBound(g, rates, cfg.dt); !ok {
		return nil, nil, analysiserr.TimestepTooLargeWith(dtMax)
	}

	trajectories := make(map[core.NodeID][]StateVector, len(g.Nodes()))
	for _, v := range g.Nodes() {
		traj := make([]StateVector, cfg.timeHorizon+1)
		traj[0] = initialVector(initial[v])
		trajectories[v] = traj
	}

	diag := &Diagnostics{}
	cc := &cascadeCtx{alg: alg, cascade: cascade, rates: rates, trajectories: trajectories, cfg: cfg, diag: diag}

	for t := 1; t <= cfg.timeHorizon; t++ {
		if err := cfg.ctx.Err(); err != nil {
			return nil, diag, analysiserr.Wrap(analysiserr.Cancelled, err)
		}
		cc.t = t
		cc.loadFactors = computeLoadFactors(g, t-1, groupOf, groups, trajectories)
		currentF := make(map[core.NodeID]probalg.Scalar, len(g.Nodes()))

		for _, layer := range topo.IterationSets {
			if err := cfg.ctx.Err(); err != nil {
				return nil, diag, analysiserr.Wrap(analysiserr.Cancelled, err)
			}
			if err := processTimestepLayer(cc, g, topo, diamonds, layer, currentF); err != nil {
				return nil, diag, err
			}
		}
		diag.TimestepsProcessed = t
	}

	return trajectories, diag, nil
}

// checkTimestepBound verifies dt·max(λ,μ) < 1 for every node before any
// state evolves (spec §4.6 "Hard requirement"). λ here is the base rate;
// cascade-inflated λ_eff is re-checked per node per timestep during
// Run, since cascade pressure is only known once the run is underway.
func checkTimestepBound(g core.Reader, rates map[core.NodeID]RateParams, dt float64) (float64, bool) {
	maxRate := 0.0
	for _, v := range g.Nodes() {
		r := rates[v]
		if r.Lambda > maxRate {
			maxRate = r.Lambda
		}
		if r.Mu > maxRate {
			maxRate = r.Mu
		}
	}
	if maxRate == 0 {
		return 0, true
	}
	if dt*maxRate >= 1 {
		return 0.99 / maxRate, false
	}
	return 0, true
}

// computeLoadFactors derives load_factor(v,t) for every node from its
// redundancy group's previous-timestep working mass (spec §4.6). Nodes
// outside any group get load_factor 1.
func computeLoadFactors(g core.Reader, prevT int, groupOf map[core.NodeID]string, groups map[string]*RedundancyGroup, trajectories map[core.NodeID][]StateVector) map[core.NodeID]float64 {
	out := make(map[core.NodeID]float64, len(g.Nodes()))
	for _, v := range g.Nodes() {
		out[v] = 1.0
	}
	for id, grp := range groups {
		ew := 0.0
		for _, m := range grp.Members {
			ew += trajectories[m][prevT].W
		}
		size := float64(len(grp.Members))
		var lf float64
		if ew == 0 {
			lf = size
		} else {
			lf = math.Max(1, 1+grp.SharingStrength*(size-ew)/ew)
		}
		for _, m := range grp.Members {
			if groupOf[m] == id {
				out[m] = lf
			}
		}
	}
	return out
}

// applyMarkov advances one (w,f,r) triple by one timestep under the
// transition model of spec §4.6: Working→Failed w.p. λdt,
// Failed→Under-Repair w.p. 1 (instantaneous), Under-Repair→Working w.p.
// μdt.
//
// The instantaneous Failed→Under-Repair move happens within the same
// step in which a node newly failed, so that step's repair check
// (Under-Repair→Working w.p. μdt) applies to the combined
// not-yet-working population (prev.F+prev.R), not to prev.R alone — this
// is the reading that keeps w+f+r=1 exact every step (spec §8 invariant
// 2); treating Failed as surviving a full untested step before its
// repair chance begins would leave the triple's components summing to
// less than 1.
func applyMarkov(prev StateVector, lambdaEff, mu, dt float64) StateVector {
	pFail := lambdaEff * dt
	pRepair := mu * dt
	notWorking := prev.F + prev.R
	return StateVector{
		W: prev.W*(1-pFail) + notWorking*pRepair,
		F: prev.W * pFail,
		R: notWorking * (1 - pRepair),
	}
}

func conserves(s StateVector, tol float64) bool {
	return math.Abs(s.W+s.F+s.R-1) <= tol
}

// cascadeCtx bundles the parameters threaded through every cascade
// combination call within one Run, avoiding an ever-growing parameter
// list across combineCascadeAtNode/combineCascadeGroup/
// localCascadeTimestep.
type cascadeCtx struct {
	alg          probalg.Algebra
	cascade      map[core.Edge]probalg.Scalar
	rates        map[core.NodeID]RateParams
	loadFactors  map[core.NodeID]float64
	trajectories map[core.NodeID][]StateVector
	t            int
	cfg          Config
	diag         *Diagnostics
}

// processTimestepLayer computes trajectories[v][cc.t] for every v in
// layer. Parents of layer members lie in strictly earlier layers of this
// same timestep sweep, already written. Parallel workers collect this
// layer's failed marginals in a separate mutex-protected map that is copied
// into currentF only after every worker has finished, so currentF is never
// written while workers read it (spec §5, grounded on perf-analysis's
// task/errgroup/mutex pattern, same as package belief).
func processTimestepLayer(
	cc *cascadeCtx,
	g core.Reader,
	topo *topology.Topology,
	diamonds map[core.NodeID]*diamond.DiamondsAtNode,
	layer []core.NodeID,
	currentF map[core.NodeID]probalg.Scalar,
) error {
	compute := func(v core.NodeID) (StateVector, probalg.Scalar, error) {
		cascadeScalar, err := combineCascadeAtNode(cc, g, topo, diamonds, v, currentF, 0)
		if err != nil {
			return StateVector{}, nil, err
		}
		lambdaEff := cc.rates[v].Lambda*cc.loadFactors[v] + cc.alg.ToFloat64(cascadeScalar)
		mu := cc.rates[v].Mu
		maxRate := math.Max(lambdaEff, mu)
		if cc.cfg.dt*maxRate >= 1 {
			return StateVector{}, nil, analysiserr.TimestepTooLargeWith(0.99 / maxRate)
		}
		next := applyMarkov(cc.trajectories[v][cc.t-1], lambdaEff, mu, cc.cfg.dt)
		if !conserves(next, cc.cfg.tolerance) {
			return StateVector{}, nil, analysiserr.InvariantViolationAt(v, "state triple left w+f+r=1 beyond tolerance")
		}
		return next, cc.alg.FromFloat64(next.F), nil
	}

	if !cc.cfg.parallel || len(layer) <= 1 {
		for _, v := range layer {
			next, f, err := compute(v)
			if err != nil {
				return err
			}
			cc.trajectories[v][cc.t] = next
			currentF[v] = f
		}
		return nil
	}

	grp, ctx := errgroup.WithContext(cc.cfg.ctx)
	grp.SetLimit(cc.cfg.maxWorkers)
	var mu sync.Mutex
	layerF := make(map[core.NodeID]probalg.Scalar, len(layer))
	for _, v := range layer {
		v := v
		grp.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			next, f, err := compute(v)
			if err != nil {
				return err
			}
			mu.Lock()
			cc.trajectories[v][cc.t] = next
			layerF[v] = f
			mu.Unlock()
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return err
	}
	for v, f := range layerF {
		currentF[v] = f
	}
	return nil
}

// combineCascadeAtNode computes λ_cascade(v,t): the combined cascade
// pressure from v's parents' failed-state marginals, reusing
// inclusion-exclusion directly for non-diamond parents and conditioning
// enumeration for diamond groups (spec §4.6).
func combineCascadeAtNode(
	cc *cascadeCtx,
	g core.Reader,
	topo *topology.Topology,
	diamonds map[core.NodeID]*diamond.DiamondsAtNode,
	v core.NodeID,
	values map[core.NodeID]probalg.Scalar,
	depth int,
) (probalg.Scalar, error) {
	rec, hasDiamond := diamonds[v]

	var contributions []probalg.Scalar
	if hasDiamond {
		for _, grp := range rec.Groups {
			qi, err := combineCascadeGroup(cc, g, topo, grp, v, values, depth)
			if err != nil {
				return nil, err
			}
			contributions = append(contributions, qi)
		}
		for _, r := range rec.NonDiamondParents {
			contributions = append(contributions, cc.alg.Mul(values[r], cc.cascade[core.Edge{From: r, To: v}]))
		}
	} else {
		for _, r := range g.In(v) {
			contributions = append(contributions, cc.alg.Mul(values[r], cc.cascade[core.Edge{From: r, To: v}]))
		}
	}
	return probalg.InclusionExclusion(cc.alg, contributions), nil
}

// combineCascadeGroup resolves one cascade diamond group: it enumerates
// every joint failed/not-failed state σ of the conditioning ancestors,
// recomputes the participating parents' conditional failed marginal by
// recursing a local one-timestep evolution over the group's induced
// subgraph, combines those by inclusion-exclusion into q_i(σ), and
// weights by the joint marginal π(σ) — structurally identical to
// belief.combineGroup with belief replaced by f (spec §4.6).
func combineCascadeGroup(
	cc *cascadeCtx,
	g core.Reader,
	topo *topology.Topology,
	grp *diamond.DiamondGroup,
	v core.NodeID,
	globalValues map[core.NodeID]probalg.Scalar,
	depth int,
) (probalg.Scalar, error) {
	k := len(grp.ConditioningAncestors)
	if k > cc.cfg.maxConditioningNodes {
		return nil, analysiserr.ConditioningTooLargeAt(v, k, cc.cfg.maxConditioningNodes)
	}
	cc.diag.observeConditioningSize(k)

	subG := core.NewView(grp.RelevantNodes, grp.InducedSubgraphEdges)
	subTopo, err := topology.Compute(subG)
	if err != nil {
		return nil, analysiserr.Wrap(analysiserr.Internal, err)
	}
	subDiamonds, err := diamond.Detect(subG, subTopo)
	if err != nil {
		return nil, analysiserr.Wrap(analysiserr.Internal, err)
	}

	isAncestor := make(map[core.NodeID]bool, k)
	for _, a := range grp.ConditioningAncestors {
		isAncestor[a] = true
	}

	total := cc.alg.Zero()
	for mask := 0; mask < (1 << uint(k)); mask++ {
		pi := cc.alg.One()
		clamped := make(map[core.NodeID]probalg.Scalar, k)
		for i, a := range grp.ConditioningAncestors {
			if mask&(1<<uint(i)) != 0 {
				pi = cc.alg.Mul(pi, globalValues[a])
				clamped[a] = cc.alg.One()
			} else {
				pi = cc.alg.Mul(pi, cc.alg.Complement(globalValues[a]))
				clamped[a] = cc.alg.Zero()
			}
		}

		localF, err := localCascadeTimestep(cc, subG, subTopo, subDiamonds, clamped, isAncestor, grp.HighestNodes, globalValues, depth+1)
		if err != nil {
			return nil, err
		}
		cc.diag.observeDepth(depth + 1)

		var contributions []probalg.Scalar
		for _, p := range grp.ParticipatingParents {
			contributions = append(contributions, cc.alg.Mul(localF[p], cc.cascade[core.Edge{From: p, To: v}]))
		}
		qSigma := probalg.InclusionExclusion(cc.alg, contributions)
		total = cc.alg.Add(total, cc.alg.Mul(pi, qSigma))
	}
	return total, nil
}

// localCascadeTimestep re-runs one timestep's Markov update restricted to
// a diamond group's induced subgraph, with the conditioning ancestors
// clamped to a fixed failed/not-failed state and every other local source
// pinned to its already-known global f(t). Ordinary interior nodes are
// recomputed: same load factor as the global pass (redundancy-group
// membership is not itself subject to conditioning), cascade pressure
// recursed through the subgraph, then one Markov step from that node's
// own, unconditioned, previous-timestep state (spec §9 "recursing on the
// induced subgraph", applied to C6 as the spec directs for C5).
func localCascadeTimestep(
	cc *cascadeCtx,
	g core.Reader,
	topo *topology.Topology,
	diamonds map[core.NodeID]*diamond.DiamondsAtNode,
	clamped map[core.NodeID]probalg.Scalar,
	isAncestor map[core.NodeID]bool,
	highestNodes []core.NodeID,
	globalValues map[core.NodeID]probalg.Scalar,
	depth int,
) (map[core.NodeID]probalg.Scalar, error) {
	if depth > cc.cfg.maxRecursionDepth {
		return nil, analysiserr.New(analysiserr.ConditioningTooLarge, "nested cascade conditioning exceeded max recursion depth")
	}

	highestSet := make(map[core.NodeID]bool, len(highestNodes))
	for _, h := range highestNodes {
		highestSet[h] = true
	}

	localF := make(map[core.NodeID]probalg.Scalar, len(g.Nodes()))
	for _, s := range topo.IterationSets[0] {
		if val, ok := clamped[s]; ok {
			localF[s] = val
		} else {
			localF[s] = globalValues[s]
		}
	}

	for li := 1; li < len(topo.IterationSets); li++ {
		for _, w := range topo.IterationSets[li] {
			if val, ok := clamped[w]; ok {
				localF[w] = val
				continue
			}
			if highestSet[w] && !isAncestor[w] {
				localF[w] = globalValues[w]
				continue
			}
			cascadeScalar, err := combineCascadeAtNode(cc, g, topo, diamonds, w, localF, depth)
			if err != nil {
				return nil, err
			}
			lambdaEff := cc.rates[w].Lambda*cc.loadFactors[w] + cc.alg.ToFloat64(cascadeScalar)
			next := applyMarkov(cc.trajectories[w][cc.t-1], lambdaEff, cc.rates[w].Mu, cc.cfg.dt)
			localF[w] = cc.alg.FromFloat64(next.F)
		}
	}
	return localF, nil
}
