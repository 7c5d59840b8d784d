// Package memory estimates allocation footprints before a run begins
// (spec §5, §7 "resource errors... reported cleanly at the next safe
// point"), so a limit set with analysis.WithMemoryLimit can reject an oversized
// request up front instead of letting the run OOM partway through.
//
// Grounded on the teacher's sizing helpers in matrix (pre-computing a
// result matrix's byte footprint before allocating it); here the same
// idea is applied to the reliability trajectory buffer and the
// topology ancestor/descendant index.
package memory
