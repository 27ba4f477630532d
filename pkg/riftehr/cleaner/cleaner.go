// Package cleaner implements the Match Cleaner: fixed age/sex drop and
// flip rules, followed by a high-degree trim that suppresses residual
// shared-phone noise. Grounded on query/graph_validator.go's
// rule-table-driven cleanup shape.
package cleaner

import (
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/model"
)

// DefaultHighMatchThreshold is the --high_match flag's default value.
const DefaultHighMatchThreshold = 20

// Stats summarizes a Clean run.
type Stats struct {
	In            int
	Dropped       int
	Flipped       int
	HighDegreeTrimmed int
	Out           int
}

// Clean applies the drop/flip rules and the high-degree trim, returning
// deduplicated canonical (src, declared_rel, dst) triples as candidates
// (the declared_rel may have been flipped to its opposite).
func Clean(edges []model.JoinedEdge, highMatchThreshold int) ([]model.Candidate, Stats) {
	if highMatchThreshold <= 0 {
		highMatchThreshold = DefaultHighMatchThreshold
	}

	stats := Stats{In: len(edges)}
	survivors := make([]model.JoinedEdge, 0, len(edges))

	for _, e := range edges {
		switch {
		case e.DeclaredGroup == model.Parent && abs(e.DeltaYears) < 10:
			stats.Dropped++
			continue
		case e.DeclaredGroup == model.Child && abs(e.DeltaYears) < 10:
			stats.Dropped++
			continue
		case e.DeclaredGroup == model.Grandparent && abs(e.DeltaYears) < 20:
			stats.Dropped++
			continue
		case e.DeclaredGroup == model.Grandchild && abs(e.DeltaYears) < 20:
			stats.Dropped++
			continue
		case e.DeclaredGroup == model.Spouse && e.SexSrc == e.SexDst:
			stats.Dropped++
			continue
		}

		// Flip direction follows Δ = BirthYearSrc - BirthYearDst: a
		// genuine Parent edge has an older (smaller birth year) src, so Δ is
		// negative; a declared Parent edge with a strongly positive Δ has
		// src much younger than dst and is backwards, so it is relabeled
		// Child (see Scenario 1: a valid Parent edge with Δ=-25 must survive
		// unflipped).
		switch {
		case e.DeclaredGroup == model.Parent && e.DeltaYears > 10:
			e.DeclaredGroup = model.Child
			stats.Flipped++
		case e.DeclaredGroup == model.Child && e.DeltaYears < -10:
			e.DeclaredGroup = model.Parent
			stats.Flipped++
		case e.DeclaredGroup == model.Grandparent && e.DeltaYears > 20:
			e.DeclaredGroup = model.Grandchild
			stats.Flipped++
		case e.DeclaredGroup == model.Grandchild && e.DeltaYears < -20:
			e.DeclaredGroup = model.Grandparent
			stats.Flipped++
		}

		survivors = append(survivors, e)
	}

	degree := make(map[string]map[string]bool)
	addEndpoint := func(a, b string) {
		if degree[a] == nil {
			degree[a] = make(map[string]bool)
		}
		degree[a][b] = true
	}
	for _, e := range survivors {
		addEndpoint(e.Src, e.Dst)
		addEndpoint(e.Dst, e.Src)
	}
	highDegree := make(map[string]bool)
	for node, others := range degree {
		if len(others) > highMatchThreshold {
			highDegree[node] = true
		}
	}

	type pairKey struct {
		src, dst string
		group    model.Group
	}
	deduped := make(map[pairKey]model.Candidate)
	for _, e := range survivors {
		if highDegree[e.Src] || highDegree[e.Dst] {
			stats.HighDegreeTrimmed++
			continue
		}
		pk := pairKey{e.Src, e.Dst, e.DeclaredGroup}
		deduped[pk] = e.Candidate
	}

	out := make([]model.Candidate, 0, len(deduped))
	for _, c := range deduped {
		out = append(out, c)
	}
	stats.Out = len(out)
	return out, stats
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
