package topology_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliagraph/reliagraph/core"
	"github.com/reliagraph/reliagraph/topology"
)

func TestCompute_Diamond(t *testing.T) {
	g, err := core.NewGraph(4, []core.Edge{
		{From: 1, To: 2}, {From: 1, To: 3}, {From: 2, To: 4}, {From: 3, To: 4},
	})
	require.NoError(t, err)

	topo, err := topology.Compute(g)
	require.NoError(t, err)

	assert.Equal(t, []core.NodeID{1}, topo.Sources)
	assert.Equal(t, []core.NodeID{4}, topo.Sinks)
	assert.True(t, topo.IsFork(1))
	assert.True(t, topo.IsJoin(4))
	assert.False(t, topo.IsFork(2))

	require.Len(t, topo.IterationSets, 3)
	assert.Equal(t, []core.NodeID{1}, topo.IterationSets[0])
	assert.ElementsMatch(t, []core.NodeID{2, 3}, topo.IterationSets[1])
	assert.Equal(t, []core.NodeID{4}, topo.IterationSets[2])

	assert.True(t, topo.Ancestors[4][1])
	assert.True(t, topo.Ancestors[4][2])
	assert.True(t, topo.Ancestors[4][4])
	assert.True(t, topo.Descendants[1][4])
	assert.False(t, topo.Descendants[1][1])
}

func TestCompute_CycleRejected(t *testing.T) {
	g, err := core.NewGraph(2, []core.Edge{{From: 1, To: 2}, {From: 2, To: 1}})
	require.NoError(t, err)

	_, err = topology.Compute(g)
	require.Error(t, err)
	assert.True(t, errors.Is(err, topology.ErrCycle))
}

func TestCompute_Chain(t *testing.T) {
	g, err := core.NewGraph(3, []core.Edge{{From: 1, To: 2}, {From: 2, To: 3}})
	require.NoError(t, err)

	topo, err := topology.Compute(g)
	require.NoError(t, err)
	require.Len(t, topo.IterationSets, 3)
	for i, set := range topo.IterationSets {
		require.Len(t, set, 1)
		assert.Equal(t, core.NodeID(i+1), set[0])
	}
}
