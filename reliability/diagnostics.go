package reliability

// Diagnostics reports facts about one reliability run (spec §5, §6).
type Diagnostics struct {
	TimestepsProcessed             int
	MaxConditioningSizeEncountered int
	RecursionDepthReached          int
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
