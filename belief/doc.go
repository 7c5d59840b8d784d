// Package belief is the exact reachability propagator (spec §2 C5, §4.5):
// given a DAG, per-node priors, per-edge probabilities and the diamond
// records from package diamond, it computes belief[v] = P(v is reached
// and active) for every node, processing one iteration set at a time and
// resolving each diamond by explicit enumeration over its conditioning
// ancestors rather than the naive (and wrong) 1-∏(1-p) combination.
//
// The conditioning sub-pass recurses into package diamond's induced
// subgraphs through the same propagation routine this package exposes at
// the top level (spec §9 "nested diamonds ... recursing on the induced
// subgraph"), bounded by WithMaxRecursionDepth. Package reliability
// reuses the identical combinator for cascade-failure contributions
// (spec §4.6), substituting failed-state marginals for belief values.
package belief
