package reliability

import "github.com/reliagraph/reliagraph/core"

// State names an initial node state (spec §4.6 "State").
type State int

const (
	Working State = iota
	Failed
	UnderRepair
)

// StateVector is the (w,f,r) probability triple at one timestep. w+f+r
// sums to 1 up to Config's tolerance (spec §8 invariant 2).
type StateVector struct {
	W, F, R float64
}

// initialVector returns the one-hot StateVector for a labeled initial
// state (spec §4.7 "valid initial state labels").
func initialVector(s State) StateVector {
	switch s {
	case Working:
		return StateVector{W: 1}
	case Failed:
		return StateVector{F: 1}
	case UnderRepair:
		return StateVector{R: 1}
	default:
		return StateVector{W: 1}
	}
}

// RateParams are the per-node base failure and repair rates (spec §3
// "Parameters per node: base failure rate λ, repair rate μ").
type RateParams struct {
	Lambda float64
	Mu     float64
}

// RedundancyGroup is a set of nodes sharing load under degradation (spec
// §4.6 "load_factor reflects redundancy-group degradation").
type RedundancyGroup struct {
	Members         []core.NodeID
	SharingStrength float64
}
