package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reliagraph/reliagraph/memory"
)

func TestForBelief_ScalesWithN(t *testing.T) {
	small := memory.ForBelief(10, 1)
	large := memory.ForBelief(100, 1)
	assert.Less(t, small.TotalBytes, large.TotalBytes)
	assert.Equal(t, small.AncestorIndexBytes+small.ResultBufferBytes, small.TotalBytes)
}

func TestForBelief_ScalarFactorClampedToOne(t *testing.T) {
	e := memory.ForBelief(10, 0)
	assert.Equal(t, int64(10)*memory.ScalarBytes, e.ResultBufferBytes)
}

func TestForReliability_ScalesWithTimeHorizon(t *testing.T) {
	short := memory.ForReliability(10, 5)
	long := memory.ForReliability(10, 50)
	assert.Less(t, short.TotalBytes, long.TotalBytes)
	assert.Equal(t, int64(10)*6*memory.StateVectorBytes, short.ResultBufferBytes)
}
