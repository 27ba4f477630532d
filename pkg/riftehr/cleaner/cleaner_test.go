package cleaner

import (
	"testing"

	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/model"
)

func edge(src, dst string, group model.Group, delta int, sexSrc, sexDst model.Sex) model.JoinedEdge {
	return model.JoinedEdge{
		Candidate:  model.Candidate{Src: src, Dst: dst, DeclaredGroup: group},
		DeltaYears: delta,
		SexSrc:     sexSrc,
		SexDst:     sexDst,
	}
}

func TestClean_DropsImplausibleParentAge(t *testing.T) {
	edges := []model.JoinedEdge{edge("P1", "P2", model.Parent, 1, model.Female, model.Male)}
	out, stats := Clean(edges, DefaultHighMatchThreshold)
	if len(out) != 0 || stats.Dropped != 1 {
		t.Fatalf("expected drop, got out=%v stats=%+v", out, stats)
	}
}

func TestClean_FlipsReversedParent(t *testing.T) {
	edges := []model.JoinedEdge{edge("P2", "P1", model.Parent, 15, model.Male, model.Female)}
	out, stats := Clean(edges, DefaultHighMatchThreshold)
	if len(out) != 1 || stats.Flipped != 1 {
		t.Fatalf("expected flip, got out=%v stats=%+v", out, stats)
	}
	if out[0].DeclaredGroup != model.Child {
		t.Fatalf("expected flipped group Child, got %s", out[0].DeclaredGroup)
	}
}

func TestClean_DropsSameSexSpouse(t *testing.T) {
	edges := []model.JoinedEdge{edge("P1", "P2", model.Spouse, 2, model.Female, model.Female)}
	out, stats := Clean(edges, DefaultHighMatchThreshold)
	if len(out) != 0 || stats.Dropped != 1 {
		t.Fatalf("expected same-sex spouse drop, got out=%v stats=%+v", out, stats)
	}
}

func TestClean_HighDegreeTrim(t *testing.T) {
	var edges []model.JoinedEdge
	for i := 0; i < 25; i++ {
		edges = append(edges, edge("HUB", contactID(i), model.Parent, 30, model.Female, model.Male))
	}
	out, stats := Clean(edges, 20)
	if len(out) != 0 {
		t.Fatalf("expected all edges trimmed for high-degree hub, got %d", len(out))
	}
	if stats.HighDegreeTrimmed != 25 {
		t.Fatalf("expected 25 trimmed, got %d", stats.HighDegreeTrimmed)
	}
}

func contactID(i int) string {
	return "C" + string(rune('A'+i))
}
