// Package analysiserr is the single typed error surface returned by
// packages belief, reliability, validate and analysis. Every failure mode
// an analysis run can produce is one of the Code values below, wrapped in
// an *Error carrying the offending node/edge/conditioning-state so a
// caller can report it without string-matching (spec §6).
package analysiserr
