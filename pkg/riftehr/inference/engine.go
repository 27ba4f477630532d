// Package inference implements a fixed-point closure over the cleaned
// edge set under the composition table, with a self-edge guard.
// Grounded on query/graph.go and query/algorithms.go's adjacency-map
// traversal style, and on query/incremental.go's mutation-counter
// termination pattern.
package inference

import (
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/model"
)

// EdgeSet is the engine's state M: src -> dst -> set of labels.
// A map-of-maps keyed by src, with an O(1) label-set per pair, gives
// cheap neighbor iteration for closure and resolution.
type EdgeSet struct {
	m map[string]map[string]map[model.Label]bool
}

// NewEdgeSet returns an empty edge set.
func NewEdgeSet() *EdgeSet {
	return &EdgeSet{m: make(map[string]map[string]map[model.Label]bool)}
}

// Insert adds label to the (src, dst) pair. Rejects self-edges and reports whether the label set actually grew —
// used by the closure loop's mutation counter.
func (e *EdgeSet) Insert(src, dst string, label model.Label) bool {
	if src == dst {
		return false
	}
	if e.m[src] == nil {
		e.m[src] = make(map[string]map[model.Label]bool)
	}
	if e.m[src][dst] == nil {
		e.m[src][dst] = make(map[model.Label]bool)
	}
	if e.m[src][dst][label] {
		return false
	}
	e.m[src][dst][label] = true
	return true
}

// Override replaces the entire label set for (src, dst) with the single
// given label, discarding any inferred labels that conflicted with it.
// Used to merge in ground-truth external anchors.
func (e *EdgeSet) Override(src, dst string, label model.Label) {
	if src == dst {
		return
	}
	if e.m[src] == nil {
		e.m[src] = make(map[string]map[model.Label]bool)
	}
	e.m[src][dst] = map[model.Label]bool{label: true}
}

// Labels returns the label set for (src, dst), or nil if absent.
func (e *EdgeSet) Labels(src, dst string) map[model.Label]bool {
	return e.m[src][dst]
}

// OutEdges returns dst -> label set for every edge leaving src.
func (e *EdgeSet) OutEdges(src string) map[string]map[model.Label]bool {
	return e.m[src]
}

// Nodes returns every node that has at least one outgoing edge.
func (e *EdgeSet) Nodes() []string {
	out := make([]string, 0, len(e.m))
	for n := range e.m {
		out = append(out, n)
	}
	return out
}

// Pairs calls fn for every (src, dst, labels) triple in the set.
func (e *EdgeSet) Pairs(fn func(src, dst string, labels map[model.Label]bool)) {
	for src, dsts := range e.m {
		for dst, labels := range dsts {
			fn(src, dst, labels)
		}
	}
}

// FromCandidates seeds an EdgeSet from cleaned candidate triples (E0).
func FromCandidates(candidates []model.Candidate) *EdgeSet {
	e := NewEdgeSet()
	for _, c := range candidates {
		e.Insert(c.Src, c.Dst, c.DeclaredGroup.Label())
	}
	return e
}

// FromCanonicalEdges seeds an EdgeSet from a prior pass's resolved,
// single-label canonical edges — used to re-seed the second
// closure/resolve/expand cycle after external anchors are merged in.
func FromCanonicalEdges(edges []model.CanonicalEdge) *EdgeSet {
	e := NewEdgeSet()
	for _, c := range edges {
		e.Insert(c.Src, c.Dst, c.Group.Label())
	}
	return e
}

// Close computes the transitive closure of e under the composition
// table, iterating to a fixed point. It mutates e in
// place and returns the total number of triples inserted.
func Close(e *EdgeSet, cache *LabelCache) int {
	total := 0
	for {
		inserted := sweep(e, cache)
		total += inserted
		if inserted == 0 {
			return total
		}
	}
}

// sweep performs one full pass over all pairs of outgoing edges of each
// node, inserting every new composed triple it finds, and returns how
// many triples were added.
func sweep(e *EdgeSet, cache *LabelCache) int {
	inserted := 0
	for _, a := range e.Nodes() {
		aOut := e.OutEdges(a)
		// Snapshot a's first hops (each b and its label set) before
		// inserting into a's own out-edges, so edges added for a in this
		// step are not themselves used as first hops until the next
		// sweep. Second hops (b's out-edges) are read live, so triples
		// inserted earlier in the same sweep can already feed later
		// compositions.
		type hop struct {
			b      string
			labels []model.Group
		}
		var firstHops []hop
		for b, labels := range aOut {
			var groups []model.Group
			for l := range labels {
				if g, ok := l.AsGroup(); ok {
					groups = append(groups, g)
				}
			}
			if len(groups) > 0 {
				firstHops = append(firstHops, hop{b, groups})
			}
		}

		for _, h1 := range firstHops {
			bOut := e.OutEdges(h1.b)
			for c, labels := range bOut {
				if c == a {
					continue // self-edge guard
				}
				var secondGroups []model.Group
				for l := range labels {
					if g, ok := l.AsGroup(); ok {
						secondGroups = append(secondGroups, g)
					}
				}
				for _, l1 := range h1.labels {
					for _, l2 := range secondGroups {
						composed, ok := cache.Compose(l1, l2)
						if !ok {
							continue
						}
						if e.Insert(a, c, composed) {
							inserted++
						}
					}
				}
			}
		}
	}
	return inserted
}
