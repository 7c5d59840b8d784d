package analysis

import "time"

// Diagnostics is the concrete record spec §6 asks for in prose
// ("computation time, peak memory estimate, validation warnings, max
// conditioning size encountered").
type Diagnostics struct {
	ComputationTime                time.Duration
	PeakMemoryEstimateBytes        int64
	ValidationWarnings             []string
	MaxConditioningSizeEncountered int
	RecursionDepthReached          int
}
