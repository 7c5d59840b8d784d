package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliagraph/reliagraph/core"
)

func TestNewGraph_Chain(t *testing.T) {
	g, err := core.NewGraph(3, []core.Edge{{From: 1, To: 2}, {From: 2, To: 3}})
	require.NoError(t, err)
	assert.Equal(t, 3, g.N())
	assert.Equal(t, []core.NodeID{2}, g.Out(1))
	assert.Equal(t, []core.NodeID{3}, g.Out(2))
	assert.Nil(t, g.Out(3))
	assert.Equal(t, []core.NodeID{1}, g.In(2))
	assert.Equal(t, []core.NodeID{1, 2, 3}, g.Nodes())
}

func TestNewGraph_SelfLoopRejected(t *testing.T) {
	_, err := core.NewGraph(2, []core.Edge{{From: 1, To: 1}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrSelfLoop))
}

func TestNewGraph_OutOfRangeRejected(t *testing.T) {
	_, err := core.NewGraph(2, []core.Edge{{From: 1, To: 5}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNodeOutOfRange))
}

func TestNewGraph_DuplicateRejected(t *testing.T) {
	_, err := core.NewGraph(2, []core.Edge{{From: 1, To: 2}, {From: 1, To: 2}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrDuplicateEdge))
}

func TestNewGraph_Diamond(t *testing.T) {
	// 1->2, 1->3, 2->4, 3->4
	g, err := core.NewGraph(4, []core.Edge{
		{From: 1, To: 2}, {From: 1, To: 3}, {From: 2, To: 4}, {From: 3, To: 4},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []core.NodeID{2, 3}, g.Out(1))
	assert.ElementsMatch(t, []core.NodeID{2, 3}, g.In(4))
	assert.Equal(t, 2, g.OutDegree(1))
}
