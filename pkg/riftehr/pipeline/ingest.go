// Package pipeline wires the matcher, demographic join, cleaner,
// inference engine, resolver, anchor merge, and family partitioner into
// the full batch run: each stage's output is saved to the optional
// checkpoint store, and WriteArtifacts writes the final TSVs. Grounded on
// cmd/gedcom/commands/parse.go's
// stage-by-stage structure: read input, run one transformation, print a
// summary, write the next stage's artifact.
package pipeline

import (
	"strconv"

	"github.com/lesfleursdelanuitdev/riftehr-pedigree/internal/normalize"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/internal/tsv"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/anchors"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/model"
)

// LoadPatients reads the patient TSV, normalizing each field. Rows that fail
// normalization are dropped silently.
func LoadPatients(path string) ([]model.Patient, int, error) {
	r, err := tsv.Open(path)
	if err != nil {
		return nil, 0, err
	}
	var out []model.Patient
	dropped := 0
	for _, row := range r.Rows() {
		mrn, err := r.Get(row, "MRN")
		if err != nil {
			dropped++
			continue
		}
		first, _ := r.Get(row, "FirstName")
		last, _ := r.Get(row, "LastName")
		phoneRaw, _ := r.Get(row, "PhoneNumber")
		zipRaw, _ := r.Get(row, "Zipcode")

		phone, ok := normalize.Phone(phoneRaw)
		if !ok {
			dropped++
			continue
		}
		zip, ok := normalize.Zip(zipRaw)
		if !ok {
			dropped++
			continue
		}
		firstN, lastN := normalize.Name(first), normalize.Name(last)
		if firstN == "" || lastN == "" {
			dropped++
			continue
		}

		out = append(out, model.Patient{
			MRN:         mrn,
			FirstName:   firstN,
			LastName:    lastN,
			PhoneNumber: phone,
			Zipcode:     zip,
		})
	}
	return out, dropped, nil
}

// LoadECEntries reads the emergency-contact TSV.
func LoadECEntries(path string) ([]model.ECEntry, int, error) {
	r, err := tsv.Open(path)
	if err != nil {
		return nil, 0, err
	}
	var out []model.ECEntry
	dropped := 0
	seq := make(map[string]int)
	for _, row := range r.Rows() {
		owner, err := r.Get(row, "MRN_1")
		if err != nil {
			dropped++
			continue
		}
		first, _ := r.Get(row, "EC_FirstName")
		last, _ := r.Get(row, "EC_LastName")
		phoneRaw, _ := r.Get(row, "EC_PhoneNumber")
		zipRaw, _ := r.Get(row, "EC_Zipcode")
		rel, _ := r.Get(row, "EC_Relationship")

		phone, ok := normalize.Phone(phoneRaw)
		if !ok {
			dropped++
			continue
		}
		zip, ok := normalize.Zip(zipRaw)
		if !ok {
			dropped++
			continue
		}
		firstN, lastN := normalize.Name(first), normalize.Name(last)
		if firstN == "" || lastN == "" {
			dropped++
			continue
		}

		seq[owner]++
		out = append(out, model.ECEntry{
			OwnerMRN:    owner,
			Sequence:    seq[owner],
			FirstName:   firstN,
			LastName:    lastN,
			PhoneNumber: phone,
			Zipcode:     zip,
			DeclaredRel: rel,
		})
	}
	return out, dropped, nil
}

// DemographicsIngestStats summarizes LoadDemographics's per-row
// filtering, split into the two failure categories that fold into the
// ambiguous-demographic-duplicate and malformed-row QC counters.
type DemographicsIngestStats struct {
	Dropped             int // missing MRN, unparseable birth year, or unrecognized sex code
	DroppedDuplicateMRN int // MRN appeared on more than one row; all of that MRN's rows are dropped
}

// LoadDemographics reads the demographics TSV, then drops every row whose
// MRN appears more than once: a repeated MRN means the source can't say
// which row's birth year and sex actually belong to that patient, so all
// of them are treated as unreliable rather than keeping the last one.
// The ≤1900 implausible-birth-year rule is enforced later, at the
// demographic join stage, not here.
func LoadDemographics(path string) ([]model.Demographic, DemographicsIngestStats, error) {
	r, err := tsv.Open(path)
	if err != nil {
		return nil, DemographicsIngestStats{}, err
	}
	var stats DemographicsIngestStats
	var candidates []model.Demographic
	for _, row := range r.Rows() {
		mrn, err := r.Get(row, "MRN")
		if err != nil {
			stats.Dropped++
			continue
		}
		yearRaw, _ := r.Get(row, "BirthYear")
		sexRaw, _ := r.Get(row, "Sex")

		year, err := strconv.Atoi(yearRaw)
		if err != nil {
			stats.Dropped++
			continue
		}
		sexCode, ok := normalize.SexCode(sexRaw)
		if !ok {
			stats.Dropped++
			continue
		}

		candidates = append(candidates, model.Demographic{MRN: mrn, BirthYear: year, Sex: model.Sex(sexCode)})
	}

	counts := make(map[string]int, len(candidates))
	for _, d := range candidates {
		counts[d.MRN]++
	}

	out := make([]model.Demographic, 0, len(candidates))
	for _, d := range candidates {
		if counts[d.MRN] > 1 {
			stats.DroppedDuplicateMRN++
			continue
		}
		out = append(out, d)
	}
	return out, stats, nil
}

// LoadMotherChildLinks reads the optional mother/child TSV.
func LoadMotherChildLinks(path string) ([]anchors.MotherChildLink, error) {
	r, err := tsv.Open(path)
	if err != nil {
		return nil, err
	}
	out := make([]anchors.MotherChildLink, 0, len(r.Rows()))
	for _, row := range r.Rows() {
		if len(row) == 0 {
			continue
		}
		out = append(out, anchors.MotherChildLink{ChildMRN: row[0], MotherMRN: tsv.Last(row)})
	}
	return out, nil
}

// LoadOtherFamilyLinks reads the optional other-family TSV.
func LoadOtherFamilyLinks(path string) ([]anchors.OtherFamilyLink, error) {
	r, err := tsv.Open(path)
	if err != nil {
		return nil, err
	}
	out := make([]anchors.OtherFamilyLink, 0, len(r.Rows()))
	for _, row := range r.Rows() {
		if len(row) < 3 {
			continue
		}
		out = append(out, anchors.OtherFamilyLink{MRNa: row[0], MRNb: row[1], DeclaredRel: row[2]})
	}
	return out, nil
}
