package diamond_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliagraph/reliagraph/core"
	"github.com/reliagraph/reliagraph/diamond"
	"github.com/reliagraph/reliagraph/topology"
)

func buildDiamondGraph(t *testing.T) (*core.Graph, *topology.Topology) {
	t.Helper()
	g, err := core.NewGraph(4, []core.Edge{
		{From: 1, To: 2}, {From: 1, To: 3}, {From: 2, To: 4}, {From: 3, To: 4},
	})
	require.NoError(t, err)
	topo, err := topology.Compute(g)
	require.NoError(t, err)
	return g, topo
}

func TestDetect_SimpleDiamond(t *testing.T) {
	g, topo := buildDiamondGraph(t)

	diamonds, err := diamond.Detect(g, topo)
	require.NoError(t, err)

	rec, ok := diamonds[4]
	require.True(t, ok, "node 4 should have a diamond record")
	require.Len(t, rec.Groups, 1)

	grp := rec.Groups[0]
	assert.Equal(t, []core.NodeID{1}, grp.ConditioningAncestors)
	assert.ElementsMatch(t, []core.NodeID{2, 3}, grp.ParticipatingParents)
	assert.Empty(t, rec.NonDiamondParents)
	assert.True(t, grp.RelevantNodes[1])
	assert.True(t, grp.RelevantNodes[2])
	assert.True(t, grp.RelevantNodes[3])
	assert.False(t, grp.RelevantNodes[4])
	assert.Equal(t, []core.NodeID{1}, grp.HighestNodes)
}

func TestDetect_NoSharedAncestor(t *testing.T) {
	// sources {1,2}; edges {(1,3),(2,3)} -- no shared fork ancestor at all.
	g, err := core.NewGraph(3, []core.Edge{{From: 1, To: 3}, {From: 2, To: 3}})
	require.NoError(t, err)
	topo, err := topology.Compute(g)
	require.NoError(t, err)

	diamonds, err := diamond.Detect(g, topo)
	require.NoError(t, err)
	_, ok := diamonds[3]
	assert.False(t, ok, "no diamond should be detected when parents share no fork ancestor")
}

func TestDetect_MixedDiamondAndNonDiamondParent(t *testing.T) {
	// 1->2, 1->3, 2->4, 3->4, 5->4 : node 5 is an independent extra parent of 4.
	g, err := core.NewGraph(5, []core.Edge{
		{From: 1, To: 2}, {From: 1, To: 3}, {From: 2, To: 4}, {From: 3, To: 4}, {From: 5, To: 4},
	})
	require.NoError(t, err)
	topo, err := topology.Compute(g)
	require.NoError(t, err)

	diamonds, err := diamond.Detect(g, topo)
	require.NoError(t, err)
	rec := diamonds[4]
	require.NotNil(t, rec)
	require.Len(t, rec.Groups, 1)
	assert.ElementsMatch(t, []core.NodeID{2, 3}, rec.Groups[0].ParticipatingParents)
	assert.Equal(t, []core.NodeID{5}, rec.NonDiamondParents)
}
