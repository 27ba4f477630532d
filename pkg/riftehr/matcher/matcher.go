// Package matcher implements the Candidate Matcher: for
// each emergency-contact entry, locate the unique patient it identifies
// and emit a candidate edge labeled with the EC's normalized declared
// relationship.
package matcher

import (
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/lookup"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/model"
)

// Stats summarizes a Match run for QC reporting.
type Stats struct {
	ECEntriesConsidered int
	DroppedUnknownRel   int
	CandidatesEmitted   int
	CandidatesDeduped   int
}

// Match runs the fixed key-priority union described in and returns
// deduplicated candidate edges plus run statistics. generation identifies
// the patient table for cache's sake — pass the same value across calls
// against the same table to reuse cache's per-key indexes, and a distinct
// value when the table changes.
func Match(patients []model.Patient, ecs []model.ECEntry, table *lookup.Table, cache *UniquenessCache, generation string) ([]model.Candidate, Stats) {
	var stats Stats

	byMRN := make(map[string]model.Patient, len(patients))
	for _, p := range patients {
		byMRN[p.MRN] = p
	}

	type pairKey struct {
		src, dst string
		group    model.Group
	}
	emitted := make(map[pairKey]*model.Candidate)

	for ki, key := range Keys {
		idx, ok := cache.get(generation, key)
		if !ok {
			idx = buildUniqueIndex(patients, key)
			cache.set(generation, key, idx)
		}

		for _, ec := range ecs {
			if ki == 0 {
				stats.ECEntriesConsidered++
			}
			group, ok := table.ResolveSynonym(ec.DeclaredRel)
			if !ok {
				if ki == 0 {
					stats.DroppedUnknownRel++
				}
				continue
			}

			tuple := key.tuple(ec.FirstName, ec.LastName, ec.PhoneNumber, ec.Zipcode)
			srcMRN, ok := idx[tuple]
			if !ok {
				continue
			}
			if srcMRN == ec.OwnerMRN {
				continue // self-loop
			}

			pk := pairKey{srcMRN, ec.OwnerMRN, group}
			if c, exists := emitted[pk]; exists {
				c.MatchedKeys = append(c.MatchedKeys, key.Name)
				continue
			}
			emitted[pk] = &model.Candidate{
				Src:           srcMRN,
				Dst:           ec.OwnerMRN,
				DeclaredGroup: group,
				MatchedKeys:   []string{key.Name},
			}
			stats.CandidatesEmitted++
		}
	}

	out := make([]model.Candidate, 0, len(emitted))
	for _, c := range emitted {
		out = append(out, *c)
	}
	stats.CandidatesDeduped = len(out)
	return out, stats
}

// buildUniqueIndex groups patients by key's tuple value and keeps only
// tuples that identify exactly one patient.
func buildUniqueIndex(patients []model.Patient, key Key) uniqueIndex {
	counts := make(map[string]int)
	owner := make(map[string]string)
	for _, p := range patients {
		t := key.tuple(p.FirstName, p.LastName, p.PhoneNumber, p.Zipcode)
		counts[t]++
		owner[t] = p.MRN
	}
	idx := make(uniqueIndex)
	for t, n := range counts {
		if n == 1 {
			idx[t] = owner[t]
		}
	}
	return idx
}
