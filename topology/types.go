package topology

import "github.com/reliagraph/reliagraph/core"

// Topology bundles every structural artefact derived from a core.Graph
// (spec §3 "Topology artefacts (C2)"). It is built once via Compute and
// treated as read-only afterward.
type Topology struct {
	graph core.Reader

	// IterationSets is the ordered partition L1,...,Ld of all nodes such
	// that every edge (u,v) has u in L_i, v in L_j, i<j. L1 == Sources.
	IterationSets [][]core.NodeID

	// Layer maps a node to its iteration-set index (0-based).
	Layer map[core.NodeID]int

	// Sources are nodes with empty In().
	Sources []core.NodeID

	// Sinks are nodes with empty Out().
	Sinks []core.NodeID

	// Forks are nodes with OutDegree > 1.
	Forks map[core.NodeID]bool

	// Joins are nodes with InDegree > 1.
	Joins map[core.NodeID]bool

	// Ancestors[v] includes v itself, by convention (spec §3).
	Ancestors map[core.NodeID]map[core.NodeID]bool

	// Descendants[v] excludes v (spec §3).
	Descendants map[core.NodeID]map[core.NodeID]bool
}

// Graph returns the core.Reader this Topology was computed from.
func (t *Topology) Graph() core.Reader { return t.graph }

// IsSource reports whether v has no predecessors.
func (t *Topology) IsSource(v core.NodeID) bool { return t.graph.InDegree(v) == 0 }

// IsSink reports whether v has no successors.
func (t *Topology) IsSink(v core.NodeID) bool { return t.graph.OutDegree(v) == 0 }

// IsFork reports whether v has more than one successor.
func (t *Topology) IsFork(v core.NodeID) bool { return t.Forks[v] }

// IsJoin reports whether v has more than one predecessor.
func (t *Topology) IsJoin(v core.NodeID) bool { return t.Joins[v] }
