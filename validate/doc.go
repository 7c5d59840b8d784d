// Package validate is the standalone pre-flight check suite (spec §2 C7,
// §4.7): every entry point in package analysis runs these checks before
// any mutable work begins, and callers that build their own pipeline
// over core/topology/diamond/belief/reliability directly can call them
// the same way.
//
// Grounded on the teacher's matrix.Validate* staged style: each
// validator does one structural check and wraps a sentinel error with a
// validatorErrorf-style tag identifying which check failed.
package validate
