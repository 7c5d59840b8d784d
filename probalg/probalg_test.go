package probalg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reliagraph/reliagraph/probalg"
)

func TestInclusionExclusion_Float_TwoEvents(t *testing.T) {
	alg := probalg.Float
	ps := []probalg.Scalar{probalg.FloatScalar(0.5), probalg.FloatScalar(0.5)}
	got := alg.ToFloat64(probalg.InclusionExclusion(alg, ps))
	// P(A u B) = 0.5+0.5-0.25 = 0.75
	assert.InDelta(t, 0.75, got, 1e-9)
}

func TestInclusionExclusion_Float_ThreeEvents(t *testing.T) {
	alg := probalg.Float
	ps := []probalg.Scalar{probalg.FloatScalar(0.5), probalg.FloatScalar(0.5), probalg.FloatScalar(0.5)}
	got := alg.ToFloat64(probalg.InclusionExclusion(alg, ps))
	// 1-(1-0.5)^3 = 0.875 for genuinely independent events
	assert.InDelta(t, 0.875, got, 1e-9)
}

func TestInclusionExclusion_Empty(t *testing.T) {
	alg := probalg.Float
	got := alg.ToFloat64(probalg.InclusionExclusion(alg, nil))
	assert.Equal(t, 0.0, got)
}

func TestFloatAlgebra_Complement(t *testing.T) {
	alg := probalg.Float
	got := alg.ToFloat64(alg.Complement(probalg.FloatScalar(0.3)))
	assert.InDelta(t, 0.7, got, 1e-9)
}

func TestIntervalAlgebra_Mul(t *testing.T) {
	alg := probalg.IntervalAlg
	a := probalg.Interval{Lo: 0.2, Hi: 0.4}
	b := probalg.Interval{Lo: 0.5, Hi: 0.5}
	got := alg.Mul(a, b).(probalg.Interval)
	assert.InDelta(t, 0.1, got.Lo, 1e-9)
	assert.InDelta(t, 0.2, got.Hi, 1e-9)
}

func TestIntervalAlgebra_InTolerance(t *testing.T) {
	alg := probalg.IntervalAlg
	assert.True(t, alg.InTolerance(probalg.Interval{Lo: 0, Hi: 1}, 1e-6))
	assert.False(t, alg.InTolerance(probalg.Interval{Lo: 0.6, Hi: 0.4}, 1e-6))
}

func TestPBoxAlgebra_RoundTrip(t *testing.T) {
	alg := probalg.PBoxAlg
	p := alg.FromFloat64(0.6)
	assert.InDelta(t, 0.6, alg.ToFloat64(p), 1e-9)
	assert.True(t, alg.InTolerance(p, 1e-9))

	comp := alg.Complement(p)
	assert.InDelta(t, 0.4, alg.ToFloat64(comp), 1e-9)
}

func TestPBoxAlgebra_MulOne(t *testing.T) {
	alg := probalg.PBoxAlg
	one := alg.One()
	p := alg.FromFloat64(0.37)
	got := alg.Mul(one, p)
	assert.InDelta(t, 0.37, alg.ToFloat64(got), 1e-9)
}
