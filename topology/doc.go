// Package topology computes the structural artefacts every later analysis
// stage depends on: iteration sets (Kahn layering), ancestor/descendant
// closures, and the source/sink/fork/join classification (spec §3, §4.2).
//
// Everything here is derived, deterministic, and computed once per Graph;
// nothing in this package mutates the core.Graph it was given.
package topology
