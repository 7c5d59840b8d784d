package probalg

// Interval is a closed interval [Lo,Hi] subseteq [0,1] bounding an unknown
// exact probability (spec §3, algebra 2).
type Interval struct {
	Lo, Hi float64
}

func (Interval) isScalar() {}

type intervalAlgebra struct{}

// IntervalAlg is the interval-bounded probability algebra.
var IntervalAlg Algebra = intervalAlgebra{}

func (intervalAlgebra) Name() string { return "interval" }

func (intervalAlgebra) Zero() Scalar { return Interval{0, 0} }
func (intervalAlgebra) One() Scalar  { return Interval{1, 1} }

// Mul assumes independence: [lo1*lo2, hi1*hi2], valid because both operands
// lie in [0,1] so the product of lower (resp. upper) bounds is itself a
// valid lower (resp. upper) bound.
func (intervalAlgebra) Mul(a, b Scalar) Scalar {
	x, y := a.(Interval), b.(Interval)
	return Interval{x.Lo * y.Lo, x.Hi * y.Hi}
}

func (intervalAlgebra) Complement(a Scalar) Scalar {
	x := a.(Interval)
	return Interval{1 - x.Hi, 1 - x.Lo}
}

func (intervalAlgebra) Add(a, b Scalar) Scalar {
	x, y := a.(Interval), b.(Interval)
	return Interval{x.Lo + y.Lo, x.Hi + y.Hi}
}

func (intervalAlgebra) Sub(a, b Scalar) Scalar {
	x, y := a.(Interval), b.(Interval)
	return Interval{x.Lo - y.Hi, x.Hi - y.Lo}
}

func (intervalAlgebra) InTolerance(a Scalar, tol float64) bool {
	x := a.(Interval)
	return x.Lo >= -tol && x.Hi <= 1+tol && x.Lo <= x.Hi+tol
}

// ToFloat64 returns the interval midpoint, for diagnostics only.
func (intervalAlgebra) ToFloat64(a Scalar) float64 {
	x := a.(Interval)
	return (x.Lo + x.Hi) / 2
}

func (intervalAlgebra) FromFloat64(p float64) Scalar { return Interval{p, p} }
