// Package anchors ingests the two optional external edge sources:
// a mother/child link table treated as ground truth, and an
// other-family link table normalized through the synonym table.
// Grounded on duplicate/relationships.go's family cross-reference
// resolution (getParents/getSpouses/getChildren), generalized here from
// GEDCOM FAM-record traversal to flat input triples.
package anchors

import (
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/inference"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/lookup"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/model"
)

// MotherChildLink is one row of the optional mother/child input.
type MotherChildLink struct {
	ChildMRN  string
	MotherMRN string
}

// OtherFamilyLink is one row of the optional other-family input.
type OtherFamilyLink struct {
	MRNa         string
	MRNb         string
	DeclaredRel  string
}

// Stats summarizes an anchor ingestion.
type Stats struct {
	MotherChildLinks int
	OtherFamilyLinks int
	DroppedUnknownRel int
}

// MotherChildEdges converts the ground-truth mother/child table into
// canonical edges in both directions: (child, Child, mother) and
// (mother, Parent, child).
func MotherChildEdges(links []MotherChildLink) []model.CanonicalEdge {
	out := make([]model.CanonicalEdge, 0, len(links)*2)
	for _, l := range links {
		if l.ChildMRN == "" || l.MotherMRN == "" || l.ChildMRN == l.MotherMRN {
			continue
		}
		out = append(out,
			model.CanonicalEdge{Src: l.ChildMRN, Dst: l.MotherMRN, Group: model.Child},
			model.CanonicalEdge{Src: l.MotherMRN, Dst: l.ChildMRN, Group: model.Parent},
		)
	}
	return out
}

// OtherFamilyEdges normalizes declared relationships through the
// lookup table's synonym map and mirrors each resolved edge through
// its opposite.
// Rows whose declared relationship does not resolve are dropped.
func OtherFamilyEdges(links []OtherFamilyLink, table *lookup.Table) ([]model.CanonicalEdge, Stats) {
	var stats Stats
	out := make([]model.CanonicalEdge, 0, len(links)*2)
	for _, l := range links {
		stats.OtherFamilyLinks++
		if l.MRNa == "" || l.MRNb == "" || l.MRNa == l.MRNb {
			stats.DroppedUnknownRel++
			continue
		}
		g, ok := table.ResolveSynonym(l.DeclaredRel)
		if !ok {
			stats.DroppedUnknownRel++
			continue
		}
		out = append(out, model.CanonicalEdge{Src: l.MRNa, Dst: l.MRNb, Group: g})
		if opp, ok := table.Opposite(g.Label()); ok {
			if oppGroup, ok := opp.AsGroup(); ok {
				out = append(out, model.CanonicalEdge{Src: l.MRNb, Dst: l.MRNa, Group: oppGroup})
			}
		}
	}
	return out, stats
}

// Merge inserts anchor edges into e as ground truth, overriding any
// conflicting inferred label for the same (src, dst) pair. It is called
// between the pipeline's two closure/resolve/expand cycles.
func Merge(e *inference.EdgeSet, anchorEdges []model.CanonicalEdge) {
	for _, a := range anchorEdges {
		e.Override(a.Src, a.Dst, a.Group.Label())
	}
}
