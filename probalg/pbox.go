package probalg

import "sort"

// PBox is a probability box: a pair of non-decreasing step functions
// (Lower, Upper) sampled on a fixed breakpoint grid in [0,1], bounding an
// unknown exact CDF (spec §3, algebra 3). Lower[i] <= Upper[i] for every
// grid point i, and both are non-decreasing in i.
//
// Arithmetic on PBox is implemented as pointwise interval arithmetic over
// the shared grid — a conservative envelope rather than a full
// copula-aware Fréchet convolution (see DESIGN.md). This keeps the
// contract total and closed, which is all belief propagation and the
// reliability engine require of an Algebra.
type PBox struct {
	Grid  []float64 // breakpoints in [0,1], strictly increasing
	Lower []float64 // Lower[i] is the lower-bound CDF mass at Grid[i]
	Upper []float64 // Upper[i] is the upper-bound CDF mass at Grid[i]
}

func (PBox) isScalar() {}

// DefaultGrid is the breakpoint grid used when callers don't supply one:
// eleven evenly spaced points covering [0,1].
func DefaultGrid() []float64 {
	grid := make([]float64, 11)
	for i := range grid {
		grid[i] = float64(i) / 10
	}
	return grid
}

type pboxAlgebra struct {
	grid []float64
}

// NewPBoxAlgebra returns a PBox algebra over the given breakpoint grid
// (must be strictly increasing, first element 0, last element 1). All
// PBox scalars combined by this algebra must share the same grid length;
// an operand with fewer grid points than the algebra panics on indexing,
// and an operand with more is read only up to the algebra's grid length —
// a caller bug, not a runtime input error.
func NewPBoxAlgebra(grid []float64) Algebra {
	g := make([]float64, len(grid))
	copy(g, grid)
	sort.Float64s(g)
	return pboxAlgebra{grid: g}
}

// PBoxAlg is the default p-box algebra over DefaultGrid().
var PBoxAlg Algebra = NewPBoxAlgebra(DefaultGrid())

func (pboxAlgebra) Name() string { return "pbox" }

func (a pboxAlgebra) Zero() Scalar {
	lower := make([]float64, len(a.grid))
	upper := make([]float64, len(a.grid))
	return PBox{Grid: a.grid, Lower: lower, Upper: upper}
}

func (a pboxAlgebra) One() Scalar {
	lower := make([]float64, len(a.grid))
	upper := make([]float64, len(a.grid))
	for i := range a.grid {
		lower[i] = 1
		upper[i] = 1
	}
	return PBox{Grid: a.grid, Lower: lower, Upper: upper}
}

func (a pboxAlgebra) pointwise(x, y PBox, op func(lx, hx, ly, hy float64) (float64, float64)) PBox {
	n := len(a.grid)
	lower := make([]float64, n)
	upper := make([]float64, n)
	for i := 0; i < n; i++ {
		lower[i], upper[i] = op(x.Lower[i], x.Upper[i], y.Lower[i], y.Upper[i])
	}
	return PBox{Grid: a.grid, Lower: lower, Upper: upper}
}

func (a pboxAlgebra) Mul(s1, s2 Scalar) Scalar {
	x, y := s1.(PBox), s2.(PBox)
	return a.pointwise(x, y, func(lx, hx, ly, hy float64) (float64, float64) {
		return lx * ly, hx * hy
	})
}

func (a pboxAlgebra) Complement(s Scalar) Scalar {
	x := s.(PBox)
	n := len(a.grid)
	lower := make([]float64, n)
	upper := make([]float64, n)
	for i := 0; i < n; i++ {
		lower[i] = 1 - x.Upper[i]
		upper[i] = 1 - x.Lower[i]
	}
	return PBox{Grid: a.grid, Lower: lower, Upper: upper}
}

func (a pboxAlgebra) Add(s1, s2 Scalar) Scalar {
	x, y := s1.(PBox), s2.(PBox)
	return a.pointwise(x, y, func(lx, hx, ly, hy float64) (float64, float64) {
		return lx + ly, hx + hy
	})
}

func (a pboxAlgebra) Sub(s1, s2 Scalar) Scalar {
	x, y := s1.(PBox), s2.(PBox)
	return a.pointwise(x, y, func(lx, hx, ly, hy float64) (float64, float64) {
		return lx - hy, hx - ly
	})
}

func (a pboxAlgebra) InTolerance(s Scalar, tol float64) bool {
	x := s.(PBox)
	for i := range x.Lower {
		if x.Lower[i] < -tol || x.Upper[i] > 1+tol || x.Lower[i] > x.Upper[i]+tol {
			return false
		}
	}
	return true
}

// ToFloat64 returns the mean of the final grid point's lower and upper
// mass, a best-estimate collapse used only for diagnostics.
func (a pboxAlgebra) ToFloat64(s Scalar) float64 {
	x := s.(PBox)
	n := len(x.Lower)
	if n == 0 {
		return 0
	}
	return (x.Lower[n-1] + x.Upper[n-1]) / 2
}

// FromFloat64 lifts a precise probability p into a degenerate PBox where
// Lower == Upper == p at every grid point.
func (a pboxAlgebra) FromFloat64(p float64) Scalar {
	n := len(a.grid)
	lower := make([]float64, n)
	upper := make([]float64, n)
	for i := range lower {
		lower[i] = p
		upper[i] = p
	}
	return PBox{Grid: a.grid, Lower: lower, Upper: upper}
}
