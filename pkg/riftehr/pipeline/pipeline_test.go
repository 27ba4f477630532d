package pipeline

import (
	"testing"

	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/anchors"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/lookup"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/model"
)

func testTable(t *testing.T) *lookup.Table {
	t.Helper()
	table, err := lookup.Default()
	if err != nil {
		t.Fatalf("lookup.Default: %v", err)
	}
	return table
}

// A small three-generation family: grandparent -> parent -> child, each
// declared via an EC entry naming the next generation up as "mom"/"dad".
// The Matcher should link them, the join/clean rules should keep all
// three ages apart, and two closure/resolve/expand passes should surface
// the Grandparent/Grandchild edge between the first and third patient.
func TestRun_EndToEndThreeGenerations(t *testing.T) {
	patients := []model.Patient{
		{MRN: "G1", FirstName: "alice", LastName: "smith", PhoneNumber: "2125551000", Zipcode: "10001"},
		{MRN: "P1", FirstName: "bob", LastName: "smith", PhoneNumber: "2125551001", Zipcode: "10002"},
		{MRN: "C1", FirstName: "carl", LastName: "smith", PhoneNumber: "2125551002", Zipcode: "10003"},
	}
	demog := []model.Demographic{
		{MRN: "G1", BirthYear: 1950, Sex: model.Female},
		{MRN: "P1", BirthYear: 1975, Sex: model.Male},
		{MRN: "C1", BirthYear: 2000, Sex: model.Male},
	}
	ecs := []model.ECEntry{
		{OwnerMRN: "P1", Sequence: 1, FirstName: "alice", LastName: "smith", PhoneNumber: "2125551000", Zipcode: "10001", DeclaredRel: "mom"},
		{OwnerMRN: "C1", Sequence: 1, FirstName: "bob", LastName: "smith", PhoneNumber: "2125551001", Zipcode: "10002", DeclaredRel: "dad"},
	}

	in := Input{
		Patients:           patients,
		ECEntries:          ecs,
		Demographics:       demog,
		HighMatchThreshold: 20,
		Table:              testTable(t),
	}

	result, err := Run(in, "test-run", nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	found := false
	for _, e := range result.CanonicalEdges {
		if e.Src == "G1" && e.Dst == "C1" && e.Group == model.Grandparent {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected G1-C1 Grandparent in canonical output, got %+v", result.CanonicalEdges)
	}

	famOf := make(map[string]int)
	for _, a := range result.FamilyAssignments {
		famOf[a.PatientID] = a.FamilyID
	}
	if famOf["G1"] != famOf["P1"] || famOf["P1"] != famOf["C1"] {
		t.Fatalf("expected all three patients in the same family, got %+v", famOf)
	}
}

func TestRun_MergesMotherChildAnchor(t *testing.T) {
	patients := []model.Patient{
		{MRN: "M1", FirstName: "dana", LastName: "lee", PhoneNumber: "2125559000", Zipcode: "10010"},
		{MRN: "C1", FirstName: "eli", LastName: "lee", PhoneNumber: "2125559001", Zipcode: "10011"},
	}
	demog := []model.Demographic{
		{MRN: "M1", BirthYear: 1960, Sex: model.Female},
		{MRN: "C1", BirthYear: 1990, Sex: model.Male},
	}

	in := Input{
		Patients:           patients,
		Demographics:       demog,
		HighMatchThreshold: 20,
		Table:              testTable(t),
		MotherChildLinks:   []anchors.MotherChildLink{{ChildMRN: "C1", MotherMRN: "M1"}},
	}

	result, err := Run(in, "test-run-2", nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	found := false
	for _, e := range result.CanonicalEdges {
		if e.Src == "C1" && e.Dst == "M1" && e.Group == model.Child {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected anchor-derived C1-M1 Child edge, got %+v", result.CanonicalEdges)
	}
}
