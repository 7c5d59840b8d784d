package belief

// Diagnostics reports facts about one propagation run, surfaced by
// package analysis alongside the computed marginals (spec §5).
type Diagnostics struct {
	// NodesProcessed is the number of nodes whose belief was computed
	// (excludes sources, which are copied straight from node_prior).
	NodesProcessed int

	// LayersProcessed is len(topology.IterationSets) actually walked.
	LayersProcessed int

	// MaxConditioningSizeEncountered is the largest |A_i| seen across all
	// diamond groups resolved during the run.
	MaxConditioningSizeEncountered int

	// RecursionDepthReached is the deepest nested-diamond recursion level
	// entered during the run.
	RecursionDepthReached int
}

func (d *Diagnostics) observeConditioningSize(n int) {
	if n > d.MaxConditioningSizeEncountered {
		d.MaxConditioningSizeEncountered = n
	}
}

func (d *Diagnostics) observeDepth(depth int) {
	if depth > d.RecursionDepthReached {
		d.RecursionDepthReached = depth
	}
}
