package probalg

import "math"

// FloatScalar is a plain real-valued probability in (approximately) [0,1].
type FloatScalar float64

func (FloatScalar) isScalar() {}

// floatAlgebra implements Algebra over FloatScalar.
type floatAlgebra struct{}

// Float is the default real-valued probability algebra.
var Float Algebra = floatAlgebra{}

func (floatAlgebra) Name() string { return "float" }

func (floatAlgebra) Zero() Scalar { return FloatScalar(0) }
func (floatAlgebra) One() Scalar  { return FloatScalar(1) }

func (floatAlgebra) Mul(a, b Scalar) Scalar {
	return FloatScalar(a.(FloatScalar) * b.(FloatScalar))
}

func (floatAlgebra) Complement(a Scalar) Scalar {
	return FloatScalar(1 - float64(a.(FloatScalar)))
}

func (floatAlgebra) Add(a, b Scalar) Scalar {
	return FloatScalar(a.(FloatScalar) + b.(FloatScalar))
}

func (floatAlgebra) Sub(a, b Scalar) Scalar {
	return FloatScalar(a.(FloatScalar) - b.(FloatScalar))
}

func (floatAlgebra) InTolerance(a Scalar, tol float64) bool {
	v := float64(a.(FloatScalar))
	return v >= -tol && v <= 1+tol
}

func (floatAlgebra) ToFloat64(a Scalar) float64 { return float64(a.(FloatScalar)) }

func (floatAlgebra) FromFloat64(p float64) Scalar { return FloatScalar(p) }

// ApproxEqual reports whether two plain float64 probabilities agree within
// tol.
func ApproxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
