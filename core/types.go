// Package core defines the canonical directed-graph representation used by
// every downstream analysis stage: node identifiers, edges, and the
// out/in adjacency built from them.
//
// A Graph is validated once at construction and immutable afterward. There
// is no AddEdge, no RemoveVertex, no mutation API of any kind: the analysis
// components (topology, diamond detection, belief propagation, reliability)
// all assume the structure is frozen for the lifetime of a run (see package
// analysis), so no internal locking is needed — reads from multiple
// goroutines during a parallel belief or reliability pass are safe because
// nothing ever writes.
package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph construction. Callers should branch with
// errors.Is, never by comparing strings.
var (
	// ErrSelfLoop indicates an edge (u,u) was supplied; self-loops are not
	// part of this data model (see spec §4.1).
	ErrSelfLoop = errors.New("core: self-loop edge")

	// ErrNodeOutOfRange indicates a node id outside the dense [1..N] range.
	ErrNodeOutOfRange = errors.New("core: node id out of range")

	// ErrDuplicateEdge indicates the same ordered pair (u,v) appeared twice
	// in the input edge list.
	ErrDuplicateEdge = errors.New("core: duplicate edge")

	// ErrCycle indicates the edge set, taken as a relation, is not acyclic.
	// Graph construction itself does not run cycle detection (that is
	// topology.Compute's job, per spec §4.2); this sentinel is
	// exposed here so both packages can report the same error identity.
	ErrCycle = errors.New("core: graph is not a DAG")
)

// NodeID is an opaque integer identifier in the dense range [1..N].
type NodeID int

// Edge is an ordered pair (From, To) with From != To.
type Edge struct {
	From NodeID
	To   NodeID
}

// Graph is the immutable canonical directed-graph representation (C1).
//
// edges preserves the deterministic construction order (spec §3: "ordered
// sequence of edges (deterministic iteration)"). out/in are derived
// adjacency sets, also kept in deterministic (sorted) order so that any
// downstream iteration — belief propagation in particular — produces
// bit-identical results regardless of map iteration order.
type Graph struct {
	n     int
	edges []Edge
	out   map[NodeID][]NodeID
	in    map[NodeID][]NodeID
}

// N returns the number of nodes, i.e. the dense id range is [1..N].
func (g *Graph) N() int { return g.n }

// Edges returns the deterministic edge list. The returned slice must not be
// mutated by the caller.
func (g *Graph) Edges() []Edge { return g.edges }

// Out returns the successors of v in ascending id order. Returns nil if v
// has no successors.
func (g *Graph) Out(v NodeID) []NodeID { return g.out[v] }

// In returns the predecessors of v in ascending id order. Returns nil if v
// has no predecessors.
func (g *Graph) In(v NodeID) []NodeID { return g.in[v] }

// OutDegree returns len(Out(v)).
func (g *Graph) OutDegree(v NodeID) int { return len(g.out[v]) }

// InDegree returns len(In(v)).
func (g *Graph) InDegree(v NodeID) int { return len(g.in[v]) }

// Nodes returns all node ids 1..N in ascending order.
func (g *Graph) Nodes() []NodeID {
	nodes := make([]NodeID, g.n)
	for i := 0; i < g.n; i++ {
		nodes[i] = NodeID(i + 1)
	}
	return nodes
}

// wrapf attaches a constructor-level prefix to a sentinel, preserving it for
// errors.Is while adding reproducer context — the same convention the
// builder package used for its own sentinel errors.
func wrapf(format string, err error, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", msg, err)
}
