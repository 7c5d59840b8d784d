// File: api.go
// Role: the single validated constructor for Graph.
//
// Policy (mirrors the teacher's facade convention in core/api.go of the
// reference graph library): no algorithms here, only construction and
// validation. Downstream packages (topology, diamond, belief, reliability)
// never reach into unexported fields; they consume Graph only through the
// read-only accessors in types.go.
package core

import "sort"

// NewGraph validates edges against n nodes and builds the immutable Graph.
//
// Validation, in order (spec §4.1):
//  1. every node id referenced must lie in [1..n];
//  2. no edge may be a self-loop (u == v);
//  3. no duplicate ordered pair may appear twice.
//
// NewGraph does not check acyclicity; that is topology.Compute's
// job; the two stages share ErrCycle as the invariant violated when both
// detect it, but it is topology that raises it because it needs Kahn's
// algorithm state to do so (spec §4.2).
//
// Complexity: O(E log E) dominated by sorting the adjacency lists.
func NewGraph(n int, edges []Edge) (*Graph, error) {
	if n < 0 {
		return nil, wrapf("NewGraph(n=%d)", ErrNodeOutOfRange, n)
	}

	seen := make(map[Edge]struct{}, len(edges))
	outSet := make(map[NodeID]map[NodeID]struct{}, n)
	inSet := make(map[NodeID]map[NodeID]struct{}, n)
	ordered := make([]Edge, 0, len(edges))

	for _, e := range edges {
		if e.From < 1 || int(e.From) > n {
			return nil, wrapf("NewGraph: edge (%d,%d)", ErrNodeOutOfRange, e.From, e.To)
		}
		if e.To < 1 || int(e.To) > n {
			return nil, wrapf("NewGraph: edge (%d,%d)", ErrNodeOutOfRange, e.From, e.To)
		}
		if e.From == e.To {
			return nil, wrapf("NewGraph: edge (%d,%d)", ErrSelfLoop, e.From, e.To)
		}
		if _, dup := seen[e]; dup {
			return nil, wrapf("NewGraph: edge (%d,%d)", ErrDuplicateEdge, e.From, e.To)
		}
		seen[e] = struct{}{}
		ordered = append(ordered, e)

		if outSet[e.From] == nil {
			outSet[e.From] = make(map[NodeID]struct{})
		}
		outSet[e.From][e.To] = struct{}{}
		if inSet[e.To] == nil {
			inSet[e.To] = make(map[NodeID]struct{})
		}
		inSet[e.To][e.From] = struct{}{}
	}

	g := &Graph{
		n:     n,
		edges: ordered,
		out:   toSortedAdjacency(outSet),
		in:    toSortedAdjacency(inSet),
	}
	return g, nil
}

// toSortedAdjacency flattens a set-of-sets adjacency representation into
// sorted slices, so every iteration over a node's neighbors is deterministic
// regardless of Go's randomized map ordering.
func toSortedAdjacency(set map[NodeID]map[NodeID]struct{}) map[NodeID][]NodeID {
	out := make(map[NodeID][]NodeID, len(set))
	for v, nbrs := range set {
		list := make([]NodeID, 0, len(nbrs))
		for u := range nbrs {
			list = append(list, u)
		}
		sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
		out[v] = list
	}
	return out
}
