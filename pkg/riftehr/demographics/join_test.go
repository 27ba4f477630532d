package demographics

import (
	"testing"

	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/model"
)

func TestJoin_DropsMissingAndImplausible(t *testing.T) {
	candidates := []model.Candidate{
		{Src: "P1", Dst: "P2", DeclaredGroup: model.Parent},
		{Src: "P1", Dst: "P9", DeclaredGroup: model.Parent}, // P9 missing demographics
		{Src: "P3", Dst: "P4", DeclaredGroup: model.Parent}, // P3 born 1850
	}
	demog := []model.Demographic{
		{MRN: "P1", BirthYear: 1960, Sex: model.Female},
		{MRN: "P2", BirthYear: 1985, Sex: model.Male},
		{MRN: "P3", BirthYear: 1850, Sex: model.Male},
		{MRN: "P4", BirthYear: 1980, Sex: model.Male},
	}

	joined, stats := Join(candidates, demog)
	if len(joined) != 1 {
		t.Fatalf("expected 1 joined edge, got %d", len(joined))
	}
	if stats.DroppedNoDemog != 1 || stats.DroppedImplausible != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if joined[0].DeltaYears != 1960-1985 {
		t.Fatalf("unexpected delta: %d", joined[0].DeltaYears)
	}
}
