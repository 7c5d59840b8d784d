// Package analysis is the single "run analysis" entry point (spec §6):
// it wires C1 (core) → C2 (topology) → C7 (validate) → C4 (diamond) →
// C5 (belief) / C6 (reliability) into the two calls a caller actually
// makes, RunReachability and RunReliability, each a value-in/value-out
// function with no process-wide state (spec §9 "Shared mutable session
// ... → explicit analysis objects").
//
// Validation runs first and short-circuits before any mutable work
// begins (spec §7): a caller never pays for partial computation on bad
// input.
package analysis
