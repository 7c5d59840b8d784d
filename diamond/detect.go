// File: detect.go — the diamond-detection algorithm (spec §4.4).
package diamond

import (
	"sort"

	"github.com/reliagraph/reliagraph/core"
	"github.com/reliagraph/reliagraph/topology"
)

// Detect computes a DiamondsAtNode record for every join node of g that has
// at least one pair of parents sharing a fork ancestor (a fork that is also
// a source counts; see forkAncestorsOf). Join
// nodes with no such sharing are simply absent from the returned map (their
// parents combine independently — see package belief).
//
// Implements grouping variant (a) from spec §4.4: exact grouping by
// identical co-participating parent set, which is what the exact belief
// propagator assumes. The combinatorial variant (b) is not implemented
// (SPEC_FULL.md §5).
//
// Complexity: O(|joins| * |P|^2 * |ancestors|) worst case (spec §4.4).
func Detect(g core.Reader, topo *topology.Topology) (map[core.NodeID]*DiamondsAtNode, error) {
	result := make(map[core.NodeID]*DiamondsAtNode)

	for _, j := range g.Nodes() {
		if !topo.IsJoin(j) {
			continue
		}
		parents := g.In(j)

		forkAnc := make(map[core.NodeID]map[core.NodeID]bool, len(parents))
		for _, p := range parents {
			forkAnc[p] = forkAncestorsOf(topo, p)
		}

		// ancestor -> set of parents sharing it
		sharedBy := make(map[core.NodeID]map[core.NodeID]bool)
		for _, p := range parents {
			for a := range forkAnc[p] {
				if sharedBy[a] == nil {
					sharedBy[a] = make(map[core.NodeID]bool)
				}
				sharedBy[a][p] = true
			}
		}

		// group ancestors by identical co-participating parent set (key'd by
		// a sorted, stringified parent list for map-keyability and
		// determinism).
		type bucket struct {
			parents   []core.NodeID
			ancestors []core.NodeID
		}
		buckets := make(map[string]*bucket)
		for a, parentSet := range sharedBy {
			if len(parentSet) < 2 {
				continue // shared by fewer than 2 parents: not a diamond ancestor
			}
			key, sortedParents := parentSetKey(parentSet)
			b, ok := buckets[key]
			if !ok {
				b = &bucket{parents: sortedParents}
				buckets[key] = b
			}
			b.ancestors = append(b.ancestors, a)
		}

		if len(buckets) == 0 {
			continue
		}

		groups := make([]*DiamondGroup, 0, len(buckets))
		for _, b := range buckets {
			sortNodeIDs(b.ancestors)
			orderNearestFirst(topo, b.ancestors)
			group := buildGroup(g, topo, j, b.parents, b.ancestors)
			groups = append(groups, group)
		}
		groups = mergeOverlappingGroups(g, topo, j, groups)
		sort.Slice(groups, func(i, k int) bool {
			return groups[i].ConditioningAncestors[0] < groups[k].ConditioningAncestors[0]
		})

		covered := make(map[core.NodeID]bool)
		for _, grp := range groups {
			for _, p := range grp.ParticipatingParents {
				covered[p] = true
			}
		}
		var nonDiamond []core.NodeID
		for _, p := range parents {
			if !covered[p] {
				nonDiamond = append(nonDiamond, p)
			}
		}

		if err := checkPartitionInvariant(parents, groups, nonDiamond); err != nil {
			return nil, err
		}

		result[j] = &DiamondsAtNode{
			Join:              j,
			Groups:            groups,
			NonDiamondParents: nonDiamond,
		}
	}

	return result, nil
}

// forkAncestorsOf returns ancestors[p] ∩ forks, excluding p itself (a
// parent is never its own conditioning ancestor).
//
// Deviation from the literal §4.4 step-1.1 formula: the spec text reads
// "ancestors[p] ∩ forks \ sources", but the worked example S2 (§8) and
// testable property 10 both require conditioning on node 1, a fork that is
// also the graph's sole source — excluding it would make the diamond
// undetectable and collapse the computation back to the naive, wrong
// product-of-parents form the spec calls out as incorrect. This module
// therefore does not exclude source forks from the conditioning set (see
// DESIGN.md for the full resolution).
func forkAncestorsOf(topo *topology.Topology, p core.NodeID) map[core.NodeID]bool {
	out := make(map[core.NodeID]bool)
	for a := range topo.Ancestors[p] {
		if a == p {
			continue
		}
		if topo.IsFork(a) {
			out[a] = true
		}
	}
	return out
}

// parentSetKey builds a deterministic string key and sorted slice for a set
// of parent NodeIDs.
func parentSetKey(set map[core.NodeID]bool) (string, []core.NodeID) {
	list := make([]core.NodeID, 0, len(set))
	for p := range set {
		list = append(list, p)
	}
	sortNodeIDs(list)
	key := make([]byte, 0, len(list)*8)
	for _, p := range list {
		key = append(key, byte(p>>24), byte(p>>16), byte(p>>8), byte(p), ',')
	}
	return string(key), list
}

func sortNodeIDs(ids []core.NodeID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}

// orderNearestFirst sorts conditioning ancestors by descending iteration
// layer, i.e. the ancestor structurally closest to the join comes first
// (spec §3 "may be ordered (nearest-first) when multi-level").
func orderNearestFirst(topo *topology.Topology, ancestors []core.NodeID) {
	sort.Slice(ancestors, func(i, j int) bool {
		return topo.Layer[ancestors[i]] > topo.Layer[ancestors[j]]
	})
}

// buildGroup constructs the induced subgraph for one (parents, ancestors)
// diamond group.
//
// The join itself is deliberately excluded from the induced subgraph: the
// conditional sub-pass only needs the participating parents' conditional
// belief, never the join's own. Including join would make it both a node
// of subG and, once topology/diamond detection re-run over subG, a join of
// its own re-detected diamond — recursing without ever terminating (spec
// §9 "recursing on the induced subgraph" means the *ancestors-to-parents*
// subgraph, not the whole join-inclusive neighborhood).
func buildGroup(g core.Reader, topo *topology.Topology, join core.NodeID, parents, ancestors []core.NodeID) *DiamondGroup {
	relevant := make(map[core.NodeID]bool)
	for _, a := range ancestors {
		for d := range topo.Descendants[a] {
			if d != join && topo.Ancestors[join][d] {
				relevant[d] = true
			}
		}
		if topo.Ancestors[join][a] {
			relevant[a] = true
		}
	}

	var edges []core.Edge
	for _, e := range g.Edges() {
		if relevant[e.From] && relevant[e.To] {
			edges = append(edges, e)
		}
	}

	var highest []core.NodeID
	for v := range relevant {
		hasInternalPred := false
		for _, u := range g.In(v) {
			if relevant[u] {
				hasInternalPred = true
				break
			}
		}
		if !hasInternalPred {
			highest = append(highest, v)
		}
	}
	sortNodeIDs(highest)

	return &DiamondGroup{
		ConditioningAncestors: ancestors,
		ParticipatingParents:  parents,
		InducedSubgraphEdges:  edges,
		RelevantNodes:         relevant,
		HighestNodes:          highest,
	}
}

// mergeOverlappingGroups implements the chosen resolution to the "parent in
// multiple diamond groups" open question (spec §9, SPEC_FULL.md §5): any
// two groups whose ParticipatingParents sets intersect are merged into one,
// unioning their conditioning ancestors and rebuilding the induced
// subgraph, repeated until no overlaps remain.
func mergeOverlappingGroups(g core.Reader, topo *topology.Topology, join core.NodeID, groups []*DiamondGroup) []*DiamondGroup {
	for {
		i, k := findOverlap(groups)
		if i < 0 {
			return groups
		}
		union := unionGroups(g, topo, join, groups[i], groups[k])
		next := make([]*DiamondGroup, 0, len(groups)-1)
		for idx, gr := range groups {
			if idx != i && idx != k {
				next = append(next, gr)
			}
		}
		next = append(next, union)
		groups = next
	}
}

// findOverlap returns the first pair of group indices whose participating
// parents intersect, or (-1,-1) if no pair overlaps.
func findOverlap(groups []*DiamondGroup) (int, int) {
	for i := 0; i < len(groups); i++ {
		for k := i + 1; k < len(groups); k++ {
			if parentsOverlap(groups[i], groups[k]) {
				return i, k
			}
		}
	}
	return -1, -1
}

func parentsOverlap(a, b *DiamondGroup) bool {
	set := make(map[core.NodeID]bool, len(a.ParticipatingParents))
	for _, p := range a.ParticipatingParents {
		set[p] = true
	}
	for _, p := range b.ParticipatingParents {
		if set[p] {
			return true
		}
	}
	return false
}

func unionGroups(g core.Reader, topo *topology.Topology, join core.NodeID, a, b *DiamondGroup) *DiamondGroup {
	ancSet := make(map[core.NodeID]bool)
	for _, x := range a.ConditioningAncestors {
		ancSet[x] = true
	}
	for _, x := range b.ConditioningAncestors {
		ancSet[x] = true
	}
	parentSet := make(map[core.NodeID]bool)
	for _, x := range a.ParticipatingParents {
		parentSet[x] = true
	}
	for _, x := range b.ParticipatingParents {
		parentSet[x] = true
	}

	ancestors := make([]core.NodeID, 0, len(ancSet))
	for x := range ancSet {
		ancestors = append(ancestors, x)
	}
	parents := make([]core.NodeID, 0, len(parentSet))
	for x := range parentSet {
		parents = append(parents, x)
	}
	sortNodeIDs(ancestors)
	orderNearestFirst(topo, ancestors)
	sortNodeIDs(parents)

	return buildGroup(g, topo, join, parents, ancestors)
}

// checkPartitionInvariant verifies the union of participating parents
// across groups plus non-diamond parents reconstitutes In(j) exactly, with
// no parent left uncovered and (after merging) no overlap (spec §3, §4.4).
func checkPartitionInvariant(parents []core.NodeID, groups []*DiamondGroup, nonDiamond []core.NodeID) error {
	count := make(map[core.NodeID]int, len(parents))
	for _, p := range parents {
		count[p] = 0
	}
	for _, grp := range groups {
		for _, p := range grp.ParticipatingParents {
			if _, ok := count[p]; !ok {
				return ErrPartitionInvariant
			}
			count[p]++
		}
	}
	for _, p := range nonDiamond {
		if _, ok := count[p]; !ok {
			return ErrPartitionInvariant
		}
		count[p]++
	}
	for _, p := range parents {
		if count[p] != 1 {
			return ErrPartitionInvariant
		}
	}
	return nil
}
