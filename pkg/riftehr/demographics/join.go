// Package demographics implements the Demographic Join, which
// left-joins candidate edges with each endpoint's demographics and
// computes the birth-year delta, dropping edges with missing or
// implausible (<=1900) birth years. Grounded on duplicate/relationships.go's
// map-lookup join style.
package demographics

import (
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/model"
)

const minPlausibleBirthYear = 1900

// Stats summarizes a Join run for QC reporting.
type Stats struct {
	CandidatesIn     int
	DroppedNoDemog   int
	DroppedImplausible int
	JoinedOut        int
}

// Join performs the package's left join, attaching each candidate
// edge's birth-year delta and dropping edges with missing or
// implausible demographics.
func Join(candidates []model.Candidate, demographics []model.Demographic) ([]model.JoinedEdge, Stats) {
	byMRN := make(map[string]model.Demographic, len(demographics))
	for _, d := range demographics {
		byMRN[d.MRN] = d
	}

	stats := Stats{CandidatesIn: len(candidates)}
	out := make([]model.JoinedEdge, 0, len(candidates))

	for _, c := range candidates {
		dSrc, okSrc := byMRN[c.Src]
		dDst, okDst := byMRN[c.Dst]
		if !okSrc || !okDst {
			stats.DroppedNoDemog++
			continue
		}
		if dSrc.BirthYear <= minPlausibleBirthYear || dDst.BirthYear <= minPlausibleBirthYear {
			stats.DroppedImplausible++
			continue
		}
		out = append(out, model.JoinedEdge{
			Candidate:    c,
			BirthYearSrc: dSrc.BirthYear,
			SexSrc:       dSrc.Sex,
			BirthYearDst: dDst.BirthYear,
			SexDst:       dDst.Sex,
			DeltaYears:   dSrc.BirthYear - dDst.BirthYear,
		})
	}
	stats.JoinedOut = len(out)
	return out, stats
}
