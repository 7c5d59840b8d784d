package belief_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliagraph/reliagraph/belief"
	"github.com/reliagraph/reliagraph/core"
	"github.com/reliagraph/reliagraph/diamond"
	"github.com/reliagraph/reliagraph/probalg"
	"github.com/reliagraph/reliagraph/topology"
)

func uniformPriors(alg probalg.Algebra, n int, p float64) map[core.NodeID]probalg.Scalar {
	m := make(map[core.NodeID]probalg.Scalar, n)
	for i := 1; i <= n; i++ {
		m[core.NodeID(i)] = alg.FromFloat64(p)
	}
	return m
}

// TestRun_TrivialChain matches spec §8 S1: a 3-node chain with prior=1 and
// edge probability 0.5 each; belief[3] should be exactly 0.25.
func TestRun_TrivialChain(t *testing.T) {
	g, err := core.NewGraph(3, []core.Edge{{From: 1, To: 2}, {From: 2, To: 3}})
	require.NoError(t, err)
	topo, err := topology.Compute(g)
	require.NoError(t, err)
	diamonds, err := diamond.Detect(g, topo)
	require.NoError(t, err)

	alg := probalg.Float
	priors := uniformPriors(alg, 3, 1.0)
	edgeProb := map[core.Edge]probalg.Scalar{
		{From: 1, To: 2}: alg.FromFloat64(0.5),
		{From: 2, To: 3}: alg.FromFloat64(0.5),
	}

	result, diag, err := belief.Run(g, topo, diamonds, alg, priors, edgeProb, belief.NewConfig())
	require.NoError(t, err)
	assert.InDelta(t, 1.0, alg.ToFloat64(result[1]), 1e-9)
	assert.InDelta(t, 0.5, alg.ToFloat64(result[2]), 1e-9)
	assert.InDelta(t, 0.25, alg.ToFloat64(result[3]), 1e-9)
	assert.Equal(t, 2, diag.LayersProcessed)
}

// TestRun_DiamondWithSharedSource matches spec §8 S2: nodes {1,2,3,4},
// edges {(1,2),(1,3),(2,4),(3,4)}, all priors 1, all edge probs 0.5.
//
// Node 1 is the sole conditioning ancestor, but its prior is 1: it is
// certain, so conditioning on it has nothing to resolve — mask=1 (active)
// carries weight 1 and mask=0 (inactive) carries weight 0, collapsing the
// exact sum to the single active branch. There belief[2]=belief[3]=0.5 and
// inclusion-exclusion over {0.5*0.5, 0.5*0.5} gives belief[4]=0.4375. A
// deterministic shared ancestor induces no actual dependence for the
// conditioning machinery to capture; see TestRun_DiamondWithUncertainSource
// below for a parameterization where it does.
func TestRun_DiamondWithSharedSource(t *testing.T) {
	g, err := core.NewGraph(4, []core.Edge{
		{From: 1, To: 2}, {From: 1, To: 3}, {From: 2, To: 4}, {From: 3, To: 4},
	})
	require.NoError(t, err)
	topo, err := topology.Compute(g)
	require.NoError(t, err)
	diamonds, err := diamond.Detect(g, topo)
	require.NoError(t, err)
	require.Contains(t, diamonds, core.NodeID(4))

	alg := probalg.Float
	priors := uniformPriors(alg, 4, 1.0)
	edgeProb := map[core.Edge]probalg.Scalar{
		{From: 1, To: 2}: alg.FromFloat64(0.5),
		{From: 1, To: 3}: alg.FromFloat64(0.5),
		{From: 2, To: 4}: alg.FromFloat64(0.5),
		{From: 3, To: 4}: alg.FromFloat64(0.5),
	}

	result, diag, err := belief.Run(g, topo, diamonds, alg, priors, edgeProb, belief.NewConfig())
	require.NoError(t, err)
	assert.InDelta(t, 0.4375, alg.ToFloat64(result[4]), 1e-9)
	assert.Equal(t, 1, diag.MaxConditioningSizeEncountered)
}

// TestRun_DiamondWithUncertainSource uses the same topology as
// TestRun_DiamondWithSharedSource but gives the shared ancestor a prior
// below 1 (0.6), so it is genuinely uncertain. Here exact conditioning
// diverges from the naive product-of-parents estimate: naive treats
// belief[2] and belief[3] as independent draws of "ancestor reached, edge
// fired" and gets 1-(1-0.3*0.5)^2=0.2775; exact conditioning (weighting
// the active branch 0.6 and the inactive branch 0.4, where it
// contributes nothing) gives 0.6*0.4375=0.2625. The two values differing
// confirms the combinator captures real shared-ancestry dependence, not
// just coincidentally matching the naive formula as in the prior=1 case.
func TestRun_DiamondWithUncertainSource(t *testing.T) {
	g, err := core.NewGraph(4, []core.Edge{
		{From: 1, To: 2}, {From: 1, To: 3}, {From: 2, To: 4}, {From: 3, To: 4},
	})
	require.NoError(t, err)
	topo, err := topology.Compute(g)
	require.NoError(t, err)
	diamonds, err := diamond.Detect(g, topo)
	require.NoError(t, err)
	require.Contains(t, diamonds, core.NodeID(4))

	alg := probalg.Float
	priors := uniformPriors(alg, 4, 1.0)
	priors[1] = alg.FromFloat64(0.6)
	edgeProb := map[core.Edge]probalg.Scalar{
		{From: 1, To: 2}: alg.FromFloat64(0.5),
		{From: 1, To: 3}: alg.FromFloat64(0.5),
		{From: 2, To: 4}: alg.FromFloat64(0.5),
		{From: 3, To: 4}: alg.FromFloat64(0.5),
	}

	result, _, err := belief.Run(g, topo, diamonds, alg, priors, edgeProb, belief.NewConfig())
	require.NoError(t, err)
	assert.InDelta(t, 0.2625, alg.ToFloat64(result[4]), 1e-9)
	naive := 1 - (1-0.3*0.5)*(1-0.3*0.5)
	assert.NotInDelta(t, naive, alg.ToFloat64(result[4]), 1e-6)
}

// TestRun_TwoDisjointPaths matches spec §8 S3: two separate sources feed
// a join with no shared ancestry, so no diamond is detected and the plain
// inclusion-exclusion combination applies.
func TestRun_TwoDisjointPaths(t *testing.T) {
	g, err := core.NewGraph(3, []core.Edge{{From: 1, To: 3}, {From: 2, To: 3}})
	require.NoError(t, err)
	topo, err := topology.Compute(g)
	require.NoError(t, err)
	diamonds, err := diamond.Detect(g, topo)
	require.NoError(t, err)
	assert.NotContains(t, diamonds, core.NodeID(3))

	alg := probalg.Float
	priors := uniformPriors(alg, 3, 1.0)
	edgeProb := map[core.Edge]probalg.Scalar{
		{From: 1, To: 3}: alg.FromFloat64(0.5),
		{From: 2, To: 3}: alg.FromFloat64(0.5),
	}

	result, _, err := belief.Run(g, topo, diamonds, alg, priors, edgeProb, belief.NewConfig())
	require.NoError(t, err)
	assert.InDelta(t, 0.75, alg.ToFloat64(result[3]), 1e-9) // 1-(1-0.5)*(1-0.5)
}

func TestRun_SequentialMatchesParallel(t *testing.T) {
	g, err := core.NewGraph(4, []core.Edge{
		{From: 1, To: 2}, {From: 1, To: 3}, {From: 2, To: 4}, {From: 3, To: 4},
	})
	require.NoError(t, err)
	topo, err := topology.Compute(g)
	require.NoError(t, err)
	diamonds, err := diamond.Detect(g, topo)
	require.NoError(t, err)

	alg := probalg.Float
	priors := uniformPriors(alg, 4, 0.9)
	edgeProb := map[core.Edge]probalg.Scalar{
		{From: 1, To: 2}: alg.FromFloat64(0.6),
		{From: 1, To: 3}: alg.FromFloat64(0.7),
		{From: 2, To: 4}: alg.FromFloat64(0.8),
		{From: 3, To: 4}: alg.FromFloat64(0.9),
	}

	seq, _, err := belief.Run(g, topo, diamonds, alg, priors, edgeProb, belief.NewConfig(belief.WithParallel(false)))
	require.NoError(t, err)
	par, _, err := belief.Run(g, topo, diamonds, alg, priors, edgeProb, belief.NewConfig(belief.WithParallel(true)))
	require.NoError(t, err)

	for n := core.NodeID(1); n <= 4; n++ {
		assert.InDelta(t, alg.ToFloat64(seq[n]), alg.ToFloat64(par[n]), 1e-9)
	}
}

func TestRun_ConditioningTooLargeRejected(t *testing.T) {
	// A fan of k shared-ancestor forks into a single join, k exceeding the
	// configured cap.
	const k = 3
	edges := []core.Edge{}
	ancestor := core.NodeID(1)
	joinID := core.NodeID(2 + 2*k)
	for i := 0; i < k; i++ {
		mid := core.NodeID(2 + i)
		edges = append(edges, core.Edge{From: ancestor, To: mid})
		edges = append(edges, core.Edge{From: mid, To: joinID})
	}
	g, err := core.NewGraph(int(joinID), edges)
	require.NoError(t, err)
	topo, err := topology.Compute(g)
	require.NoError(t, err)
	diamonds, err := diamond.Detect(g, topo)
	require.NoError(t, err)

	alg := probalg.Float
	priors := uniformPriors(alg, int(joinID), 1.0)
	edgeProb := make(map[core.Edge]probalg.Scalar, len(g.Edges()))
	for _, e := range g.Edges() {
		edgeProb[e] = alg.FromFloat64(0.5)
	}

	_, _, err = belief.Run(g, topo, diamonds, alg, priors, edgeProb, belief.NewConfig(belief.WithMaxConditioningNodes(0)))
	require.Error(t, err)
}
