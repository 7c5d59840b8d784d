package core

import "sort"

// view is a minimal Reader over an arbitrary (non-dense) node id set. It
// backs the induced subgraphs package diamond hands back for a
// conditioning group and lets packages belief and reliability recurse
// into them with the exact same topology/diamond machinery used at the
// top level, without going through NewGraph's dense [1..N] validation.
type view struct {
	nodes []NodeID
	out   map[NodeID][]NodeID
	in    map[NodeID][]NodeID
	edges []Edge
}

var _ Reader = (*view)(nil)

// NewView builds a Reader over exactly the given node set, wired by
// edges. Both are expected to come from a diamond.DiamondGroup's
// RelevantNodes/InducedSubgraphEdges.
func NewView(nodes map[NodeID]bool, edges []Edge) Reader {
	v := &view{
		out:   make(map[NodeID][]NodeID),
		in:    make(map[NodeID][]NodeID),
		edges: edges,
	}
	for n := range nodes {
		v.nodes = append(v.nodes, n)
	}
	sort.Slice(v.nodes, func(i, j int) bool { return v.nodes[i] < v.nodes[j] })

	for _, e := range edges {
		v.out[e.From] = append(v.out[e.From], e.To)
		v.in[e.To] = append(v.in[e.To], e.From)
	}
	for _, adj := range v.out {
		sort.Slice(adj, func(i, j int) bool { return adj[i] < adj[j] })
	}
	for _, adj := range v.in {
		sort.Slice(adj, func(i, j int) bool { return adj[i] < adj[j] })
	}
	return v
}

func (v *view) Nodes() []NodeID        { return v.nodes }
func (v *view) Out(n NodeID) []NodeID  { return v.out[n] }
func (v *view) In(n NodeID) []NodeID   { return v.in[n] }
func (v *view) OutDegree(n NodeID) int { return len(v.out[n]) }
func (v *view) InDegree(n NodeID) int  { return len(v.in[n]) }
func (v *view) Edges() []Edge          { return v.edges }
