package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliagraph/reliagraph/analysiserr"
	"github.com/reliagraph/reliagraph/core"
	"github.com/reliagraph/reliagraph/probalg"
	"github.com/reliagraph/reliagraph/reliability"
	"github.com/reliagraph/reliagraph/topology"
	"github.com/reliagraph/reliagraph/validate"
)

func chainGraph(t *testing.T) *core.Graph {
	t.Helper()
	g, err := core.NewGraph(3, []core.Edge{{From: 1, To: 2}, {From: 2, To: 3}})
	require.NoError(t, err)
	return g
}

func TestGraph_Valid(t *testing.T) {
	g := chainGraph(t)
	assert.NoError(t, validate.Graph(g))
}

func TestGraph_Nil(t *testing.T) {
	assert.Error(t, validate.Graph(nil))
}

func TestTopology_Valid(t *testing.T) {
	g := chainGraph(t)
	topo, err := topology.Compute(g)
	require.NoError(t, err)
	assert.NoError(t, validate.Topology(topo))
}

func TestParameters_MissingPrior(t *testing.T) {
	g := chainGraph(t)
	alg := probalg.Float
	priors := map[core.NodeID]probalg.Scalar{1: alg.FromFloat64(0.9), 2: alg.FromFloat64(0.9)}
	edges := map[core.Edge]probalg.Scalar{
		{From: 1, To: 2}: alg.FromFloat64(0.5),
		{From: 2, To: 3}: alg.FromFloat64(0.5),
	}
	err := validate.Parameters(g, alg, priors, edges, 1e-9)
	require.Error(t, err)
	assert.True(t, analysiserr.Is(err, analysiserr.InvalidInput))
}

func TestParameters_OutOfDomain(t *testing.T) {
	g := chainGraph(t)
	alg := probalg.Float
	priors := map[core.NodeID]probalg.Scalar{
		1: alg.FromFloat64(0.9), 2: alg.FromFloat64(0.9), 3: alg.FromFloat64(1.5),
	}
	edges := map[core.Edge]probalg.Scalar{
		{From: 1, To: 2}: alg.FromFloat64(0.5),
		{From: 2, To: 3}: alg.FromFloat64(0.5),
	}
	err := validate.Parameters(g, alg, priors, edges, 1e-9)
	require.Error(t, err)
	assert.True(t, analysiserr.Is(err, analysiserr.InvalidInput))
}

func TestParameters_MissingEdgeProb(t *testing.T) {
	g := chainGraph(t)
	alg := probalg.Float
	priors := map[core.NodeID]probalg.Scalar{
		1: alg.FromFloat64(0.9), 2: alg.FromFloat64(0.9), 3: alg.FromFloat64(0.9),
	}
	edges := map[core.Edge]probalg.Scalar{
		{From: 1, To: 2}: alg.FromFloat64(0.5),
	}
	err := validate.Parameters(g, alg, priors, edges, 1e-9)
	require.Error(t, err)
	assert.True(t, analysiserr.Is(err, analysiserr.InvalidInput))
}

func TestReliabilityParameters_NegativeRate(t *testing.T) {
	g := chainGraph(t)
	rates := map[core.NodeID]reliability.RateParams{
		1: {Lambda: -0.1, Mu: 0.1},
		2: {Lambda: 0.01, Mu: 0.1},
		3: {Lambda: 0.01, Mu: 0.1},
	}
	initial := map[core.NodeID]reliability.State{1: reliability.Working, 2: reliability.Working, 3: reliability.Working}
	err := validate.ReliabilityParameters(g, rates, initial, 0.1)
	require.Error(t, err)
	assert.True(t, analysiserr.Is(err, analysiserr.InvalidInput))
}

func TestReliabilityParameters_TimestepTooLarge(t *testing.T) {
	g := chainGraph(t)
	rates := map[core.NodeID]reliability.RateParams{
		1: {Lambda: 2.0, Mu: 0.1},
		2: {Lambda: 0.01, Mu: 0.1},
		3: {Lambda: 0.01, Mu: 0.1},
	}
	initial := map[core.NodeID]reliability.State{1: reliability.Working, 2: reliability.Working, 3: reliability.Working}
	err := validate.ReliabilityParameters(g, rates, initial, 1.0)
	require.Error(t, err)
	assert.True(t, analysiserr.Is(err, analysiserr.TimestepTooLarge))

	var typed *analysiserr.Error
	require.ErrorAs(t, err, &typed)
	assert.InDelta(t, 0.495, typed.Suggested, 1e-9)
}

func TestMemoryBudget_OverLimit(t *testing.T) {
	err := validate.MemoryBudget(1000, 100)
	require.Error(t, err)
	assert.True(t, analysiserr.Is(err, analysiserr.OutOfBudget))
}

func TestMemoryBudget_NoLimit(t *testing.T) {
	assert.NoError(t, validate.MemoryBudget(1000, 0))
}
