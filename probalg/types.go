// Package probalg abstracts the "probability" scalar used throughout the
// inference engine. Three interchangeable algebras are provided — float,
// interval, and p-box — selected once per analysis (spec §3 "Probability
// scalar (C3)"). Belief propagation (package belief) and the reliability
// engine (package reliability) are written once against the Algebra
// interface and are polymorphic over all three.
package probalg

import "errors"

// ErrMismatchedAlgebra indicates two Scalar values were produced by
// different algebra implementations and cannot be combined.
var ErrMismatchedAlgebra = errors.New("probalg: mismatched scalar algebras")

// ErrOutOfTolerance indicates a scalar drifted outside its algebra's valid
// domain by more than the configured tolerance (spec §3 "domain overflow…
// is tolerated within a configurable tolerance, not silently clamped").
var ErrOutOfTolerance = errors.New("probalg: value out of domain tolerance")

// Scalar is an opaque value produced and consumed only by the Algebra that
// created it. Concrete algebras box their own representation (float64,
// Interval, PBox) behind this interface.
type Scalar interface {
	isScalar()
}

// Algebra is the total, closed arithmetic every inference component is
// written against (spec §3, §4.3).
type Algebra interface {
	// Name identifies the algebra for diagnostics ("float", "interval", "pbox").
	Name() string

	// Zero returns the additive/neutral-false identity.
	Zero() Scalar

	// One returns the certain-true identity.
	One() Scalar

	// Mul returns a*b, the product under the independence assumption.
	Mul(a, b Scalar) Scalar

	// Complement returns 1-a.
	Complement(a Scalar) Scalar

	// Add returns a+b. Only valid where the caller's sub-expression
	// semantics make a sum meaningful (spec §3); in this module Add is used
	// by inclusion-exclusion and by the weighted conditioning sums in
	// packages belief and reliability, and Sub only by inclusion-exclusion.
	Add(a, b Scalar) Scalar

	// Sub returns a-b.
	Sub(a, b Scalar) Scalar

	// InTolerance reports whether a lies within [0,1] (or the algebra's
	// analogous containment) to within tol, without silently clamping it.
	InTolerance(a Scalar, tol float64) bool

	// ToFloat64 collapses a Scalar to its best-estimate point value, used
	// only for diagnostics and test assertions, never for further algebra.
	ToFloat64(a Scalar) float64

	// FromFloat64 lifts a plain probability (e.g. a parsed node_prior) into
	// this algebra's representation.
	FromFloat64(p float64) Scalar
}

// InclusionExclusion computes P(union of n independent events) from their
// marginals using the full 2^n-1 expansion:
//
//	P(⋃ Aᵢ) = Σ_{∅≠S⊆{1..n}} (−1)^{|S|+1} · ∏_{i∈S} pᵢ
//
// The algorithm never shortcuts to 1-∏(1-pᵢ); that identity only holds for
// independent events, and this function is the one place callers reach for
// when independence is exactly the assumption being made (spec §4.3). When
// ps is empty, InclusionExclusion returns alg.Zero().
//
// Complexity: O(2^n) scalar operations; n is not capped by this function.
func InclusionExclusion(alg Algebra, ps []Scalar) Scalar {
	n := len(ps)
	if n == 0 {
		return alg.Zero()
	}
	result := alg.Zero()
	for mask := 1; mask < (1 << uint(n)); mask++ {
		term := alg.One()
		bits := 0
		for i := 0; i < n; i++ {
			if mask&(1<<uint(i)) != 0 {
				term = alg.Mul(term, ps[i])
				bits++
			}
		}
		if bits%2 == 1 {
			result = alg.Add(result, term)
		} else {
			result = alg.Sub(result, term)
		}
	}
	return result
}
