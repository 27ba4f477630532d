// Package resolver implements the Label Resolver and bidirectional
// expansion: collapsing a closure pass's per-pair label
// set to a single primary label, then mirroring every resolved edge
// through its declared opposite. Grounded on query/graph_validator.go's
// priority-ordered rule table shape, reused already by the cleaner
// package for its drop/flip rules.
package resolver

import (
	"sort"

	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/inference"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/lookup"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/model"
)

// ambiguousRules maps an ambiguous composed label to the primary label
// chosen when that primary is also present in the same pair's label
// set. A second, lower-priority fallback constituent is recorded for
// the three rules that name one ("else Aunt/Uncle", "else Cousin",
// "else Nephew/Niece").
type rule struct {
	preferred model.Group
	fallback  model.Group // zero value means no fallback rule
}

var ambiguousRules = map[model.AmbiguousLabel]rule{
	model.ParentParentInLaw:         {preferred: model.Parent},
	model.ParentAuntUncle:           {preferred: model.Parent, fallback: model.AuntUncle},
	model.SiblingSiblingInLaw:       {preferred: model.Sibling},
	model.SiblingCousin:             {preferred: model.Sibling, fallback: model.Cousin},
	model.ChildNephewNiece:          {preferred: model.Child, fallback: model.NephewNiece},
	model.ChildChildInLaw:           {preferred: model.Child},
	model.NephewNieceNephewNieceInLaw: {preferred: model.NephewNiece},
	model.GrandparentGrandparentInLaw: {preferred: model.Grandparent},
	model.GrandchildGrandchildInLaw:   {preferred: model.Grandchild},
	model.GrandnephewGrandnieceInLaw:  {preferred: model.GrandnephewGrandniece},
	model.GrandauntGranduncleInLaw:    {preferred: model.GrandauntGranduncle},
	model.GreatGrandparentInLaw:       {preferred: model.GreatGrandparent},
	model.GreatGrandchildInLaw:        {preferred: model.GreatGrandchild},
}

// Stats summarizes a Resolve run.
type Stats struct {
	PairsConsidered int
	Resolved        int
	Unresolved      int
	Expanded        int
	Conflicts       int
}

// Resolve collapses every (src, dst) label set in e to zero or one
// canonical primary label, then mirrors each resolved edge through its
// declared opposite. table supplies the opposite lookups, including
// the ambiguous-label opposites that never actually survive resolution
// but are accepted for completeness.
func Resolve(e *inference.EdgeSet, table *lookup.Table) ([]model.CanonicalEdge, Stats) {
	var stats Stats
	resolved := make(map[[2]string]model.Group)

	e.Pairs(func(src, dst string, labels map[model.Label]bool) {
		stats.PairsConsidered++
		g, ok := collapse(labels)
		if !ok {
			stats.Unresolved++
			return
		}
		stats.Resolved++
		resolved[[2]string{src, dst}] = g
	})

	// Iterate pairs in a fixed (src, dst) order rather than map order.
	// cleaner.Clean only targets specific Delta/group combinations and
	// never guarantees that both directions of a pair resolve to
	// reciprocal labels, so (A, B) and (B, A) can each be independently
	// resolved to non-opposite primaries. Sorting makes the
	// lexicographically earlier pair the authority in that case: its
	// label is kept and the later pair's is overwritten with its
	// declared opposite, instead of whichever direction a map happened
	// to yield first.
	pairs := make([][2]string, 0, len(resolved))
	for pair := range resolved {
		pairs = append(pairs, pair)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})

	out := make([]model.CanonicalEdge, 0, len(resolved)*2)
	seen := make(map[[2]string]bool, len(resolved)*2)
	addEdge := func(src, dst string, g model.Group) {
		key := [2]string{src, dst}
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, model.CanonicalEdge{Src: src, Dst: dst, Group: g})
	}

	for _, pair := range pairs {
		if seen[pair] {
			continue
		}
		src, dst, g := pair[0], pair[1], resolved[pair]

		revGroup, revResolved := resolved[[2]string{dst, src}]
		if revResolved {
			if opp, ok := table.Opposite(g.Label()); !ok || opp != revGroup.Label() {
				stats.Conflicts++
			}
		}

		addEdge(src, dst, g)
		if opp, ok := table.Opposite(g.Label()); ok {
			if oppGroup, ok := opp.AsGroup(); ok {
				// Only count this as an expansion when the reverse
				// direction had no independent resolution of its own;
				// otherwise it's either a reciprocal pair (no new
				// information added) or the losing side of a conflict
				// (overwritten, not expanded).
				if !revResolved {
					stats.Expanded++
				}
				addEdge(dst, src, oppGroup)
			}
		}
	}

	return out, stats
}

// collapse applies priority rules to a single pair's
// label set and reports whether it resolved to a primary group.
func collapse(labels map[model.Label]bool) (model.Group, bool) {
	if len(labels) == 1 {
		for l := range labels {
			if g, ok := l.AsGroup(); ok {
				return g, true
			}
			// A lone ambiguous label with no accompanying primary
			// constituent is unresolved under the rules below, but a
			// set of size 1 short-circuits here: fall through.
		}
	}

	for l := range labels {
		ambig := model.AmbiguousLabel(l)
		r, ok := ambiguousRules[ambig]
		if !ok {
			continue
		}
		if labels[r.preferred.Label()] {
			return r.preferred, true
		}
		if r.fallback != "" && labels[r.fallback.Label()] {
			return r.fallback, true
		}
	}

	return "", false
}
