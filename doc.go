// Package reliagraph computes exact reachability and state-reliability
// probabilities on directed acyclic graphs whose nodes and edges each
// carry an independent activation probability.
//
// A naive "combine parents by 1-∏(1-p)" update is wrong whenever two
// paths share an ancestor: the shared fork ancestor induces probabilistic
// dependence that a product-of-parents pass silently ignores. This module
// instead performs exact inference: inclusion-exclusion over independent
// contributors, plus explicit enumeration over the joint states of each
// diamond's shared conditioning ancestors.
//
// Seven packages implement the pipeline, leaves first:
//
//	core/        — immutable directed-graph representation (nodes, edges, adjacency)
//	topology/    — iteration sets, ancestor/descendant closures, source/sink/fork/join sets
//	probalg/     — the probability scalar algebra (float, interval, p-box)
//	diamond/     — shared-ancestry detection feeding each join node
//	belief/      — exact reachability propagation (the reachability core)
//	reliability/ — discrete-time multi-state Markov evolution with cascade failure
//	validate/    — standalone pre-flight invariant checks
//
// Package analysis assembles the full pipeline behind two entry points,
// RunReachability and RunReliability; package memory estimates allocation
// footprints before either runs; package analysiserr is the typed error
// surface both return.
//
//	go get github.com/reliagraph/reliagraph
package reliagraph
