package core

// Reader is the read-only view every downstream package (topology, diamond,
// belief, reliability) is written against. *Graph satisfies it directly;
// packages belief and reliability also build lightweight, non-dense-id
// Readers through NewView for the induced subgraphs diamond conditioning recurses
// into (spec §9 "recursing on the induced subgraph"), which is why Reader
// does not assume a dense [1..N] id range the way Graph's own constructor
// validates against.
type Reader interface {
	// Nodes returns every node id this view contains, in a stable order.
	Nodes() []NodeID

	// Out returns the successors of v, in a stable order. Nil if none.
	Out(v NodeID) []NodeID

	// In returns the predecessors of v, in a stable order. Nil if none.
	In(v NodeID) []NodeID

	// OutDegree returns len(Out(v)).
	OutDegree(v NodeID) int

	// InDegree returns len(In(v)).
	InDegree(v NodeID) int

	// Edges returns every edge in this view, in a stable order.
	Edges() []Edge
}

var _ Reader = (*Graph)(nil)
