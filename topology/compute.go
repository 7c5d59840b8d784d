// File: compute.go
// Kahn layering, ancestor/descendant closures, and fork/join classification.
//
// Grounded on the teacher's dfs.TopologicalSort (state-machine cycle
// detection, deterministic vertex ordering) and bfs.BFS (closure-style
// reverse/forward reachability), generalized from a single linear order
// into the layered partition the belief propagator needs (spec §4.2).
package topology

import "github.com/reliagraph/reliagraph/core"

// Compute builds the full Topology for g: iteration sets via Kahn layering,
// ancestor/descendant closures via BFS, and the source/sink/fork/join
// classification.
//
// Returns ErrCycle if g is not a DAG (Kahn's queue empties with unprocessed
// nodes remaining — spec §4.2).
//
// Complexity: O(V+E) for layering and classification, O(V*(V+E)) worst case
// for the closures (typical case is much sparser, see spec §4.4).
func Compute(g core.Reader) (*Topology, error) {
	nodes := g.Nodes()
	t := &Topology{
		graph: g,
		Layer: make(map[core.NodeID]int, len(nodes)),
		Forks: make(map[core.NodeID]bool),
		Joins: make(map[core.NodeID]bool),
	}

	for _, v := range g.Nodes() {
		if g.InDegree(v) == 0 {
			t.Sources = append(t.Sources, v)
		}
		if g.OutDegree(v) == 0 {
			t.Sinks = append(t.Sinks, v)
		}
		if g.OutDegree(v) > 1 {
			t.Forks[v] = true
		}
		if g.InDegree(v) > 1 {
			t.Joins[v] = true
		}
	}

	sets, layer, err := kahnLayers(g)
	if err != nil {
		return nil, err
	}
	t.IterationSets = sets
	t.Layer = layer

	t.Ancestors = make(map[core.NodeID]map[core.NodeID]bool, len(nodes))
	t.Descendants = make(map[core.NodeID]map[core.NodeID]bool, len(nodes))
	for _, v := range nodes {
		t.Ancestors[v] = reverseClosure(g, v)
		t.Descendants[v] = forwardClosure(g, v)
	}

	return t, nil
}

// kahnLayers partitions g's nodes into iteration sets: L1 = sources;
// L_{k+1} = nodes whose predecessors all lie in L1..Lk and are not
// themselves already placed (spec §3). Nodes left over when the frontier
// goes empty indicate a cycle.
func kahnLayers(g core.Reader) ([][]core.NodeID, map[core.NodeID]int, error) {
	nodes := g.Nodes()
	remainingIn := make(map[core.NodeID]int, len(nodes))
	for _, v := range nodes {
		remainingIn[v] = g.InDegree(v)
	}

	layer := make(map[core.NodeID]int, len(nodes))
	var sets [][]core.NodeID
	placed := 0

	frontier := make([]core.NodeID, 0)
	for _, v := range nodes {
		if remainingIn[v] == 0 {
			frontier = append(frontier, v)
		}
	}

	for len(frontier) > 0 {
		level := frontier
		sets = append(sets, level)
		idx := len(sets) - 1
		var next []core.NodeID
		for _, v := range level {
			layer[v] = idx
			placed++
			for _, w := range g.Out(v) {
				remainingIn[w]--
				if remainingIn[w] == 0 {
					next = append(next, w)
				}
			}
		}
		frontier = next
	}

	if placed != len(nodes) {
		return nil, nil, ErrCycle
	}
	return sets, layer, nil
}

// forwardClosure returns {u : v reaches u}, excluding v itself.
func forwardClosure(g core.Reader, v core.NodeID) map[core.NodeID]bool {
	visited := make(map[core.NodeID]bool)
	queue := []core.NodeID{v}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, w := range g.Out(cur) {
			if !visited[w] {
				visited[w] = true
				queue = append(queue, w)
			}
		}
	}
	return visited
}

// reverseClosure returns {u : u reaches v}, including v itself by
// convention (spec §3).
func reverseClosure(g core.Reader, v core.NodeID) map[core.NodeID]bool {
	visited := map[core.NodeID]bool{v: true}
	queue := []core.NodeID{v}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, u := range g.In(cur) {
			if !visited[u] {
				visited[u] = true
				queue = append(queue, u)
			}
		}
	}
	return visited
}
