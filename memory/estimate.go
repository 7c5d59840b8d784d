package memory

// StateVectorBytes is the in-memory footprint of one reliability.StateVector
// (three float64 fields).
const StateVectorBytes = 3 * 8

// ScalarBytes approximates the footprint of one probalg.Scalar under the
// float algebra (a boxed float64). Interval and p-box scalars are larger;
// callers computing a tighter bound for those algebras should scale this
// up (see ForBelief's scalarFactor parameter).
const ScalarBytes = 8

// NodeIDBytes is the footprint of one core.NodeID (an int-sized value).
const NodeIDBytes = 8

// Estimate bundles the two dominant allocation sources this module makes
// before any work begins: the topology ancestor/descendant index (§3, built
// once per run) and the per-node result buffer (belief's single scalar per
// node, or reliability's (T+1)-long StateVector trajectory per node).
type Estimate struct {
	// AncestorIndexBytes is the worst-case O(|V|^2) footprint of
	// topology.Ancestors plus topology.Descendants: every node could in
	// principle be reachable from every other.
	AncestorIndexBytes int64

	// ResultBufferBytes is the footprint of the run's own output buffer.
	ResultBufferBytes int64

	// TotalBytes is the sum the caller should compare against a configured
	// limit.
	TotalBytes int64
}

// ForBelief estimates the memory a belief.Run over n nodes will need: one
// scalar per node plus the ancestor/descendant index, scaled by
// scalarFactor to account for algebras heavier than a boxed float64 (pass 1
// for probalg.Float, larger for interval/p-box scalars).
func ForBelief(n int, scalarFactor int64) Estimate {
	if scalarFactor < 1 {
		scalarFactor = 1
	}
	ancestorBytes := int64(n) * int64(n) * 2 * NodeIDBytes
	resultBytes := int64(n) * ScalarBytes * scalarFactor
	return Estimate{
		AncestorIndexBytes: ancestorBytes,
		ResultBufferBytes:  resultBytes,
		TotalBytes:         ancestorBytes + resultBytes,
	}
}

// ForReliability estimates the memory a reliability.Run over n nodes and a
// T-step time horizon will need: a (T+1)-long StateVector trajectory per
// node (spec §5 "O(|V|*T*3)") plus the ancestor/descendant index.
func ForReliability(n, timeHorizon int) Estimate {
	ancestorBytes := int64(n) * int64(n) * 2 * NodeIDBytes
	resultBytes := int64(n) * int64(timeHorizon+1) * StateVectorBytes
	return Estimate{
		AncestorIndexBytes: ancestorBytes,
		ResultBufferBytes:  resultBytes,
		TotalBytes:         ancestorBytes + resultBytes,
	}
}
