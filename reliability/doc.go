// Package reliability is the discrete-time multi-state Markov extension
// (spec §2 C6, §4.6): per node, per timestep, a (Working, Failed,
// Under-Repair) probability triple evolves under a base failure rate,
// redundancy-group load factor, and cascade failure pressure from failed
// ancestors.
//
// The cascade aggregator reuses the exact same combinator package belief
// uses for reachability — non-diamond parents combine by
// inclusion-exclusion, diamond groups combine by conditioning enumeration
// over the conditioning set's failed marginals — with belief replaced by
// the failed-state probability f (spec §4.6 "the key reuse").
package reliability
