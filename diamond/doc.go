// Package diamond locates, for each join node, the shared-ancestor
// structure that makes its parents' marginals probabilistically dependent,
// and summarizes it as a conditioning problem for the belief propagator
// (spec §2 C4, §4.4).
//
// A "diamond" is a substructure where two or more parents of a join node
// share at least one fork ancestor, including a fork that is a source of the
// graph. Naive "1 - product(1-p)"
// combination of such parents is wrong because it assumes independence;
// the conditioning sets this package produces are exactly what package
// belief enumerates over to restore conditional independence (spec §9).
package diamond
