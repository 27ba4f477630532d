package anchors

import (
	"testing"

	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/inference"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/lookup"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/model"
)

func TestMotherChildEdges_BothDirections(t *testing.T) {
	edges := MotherChildEdges([]MotherChildLink{{ChildMRN: "C1", MotherMRN: "M1"}})
	if len(edges) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(edges))
	}
	want := map[model.CanonicalEdge]bool{
		{Src: "C1", Dst: "M1", Group: model.Child}:  true,
		{Src: "M1", Dst: "C1", Group: model.Parent}: true,
	}
	for _, e := range edges {
		if !want[e] {
			t.Errorf("unexpected edge %+v", e)
		}
	}
}

func TestMotherChildEdges_DropsSelfLoop(t *testing.T) {
	edges := MotherChildEdges([]MotherChildLink{{ChildMRN: "X1", MotherMRN: "X1"}})
	if len(edges) != 0 {
		t.Fatalf("expected self-loop dropped, got %d edges", len(edges))
	}
}

func testTable(t *testing.T) *lookup.Table {
	t.Helper()
	table, err := lookup.Default()
	if err != nil {
		t.Fatalf("lookup.Default: %v", err)
	}
	return table
}

func TestOtherFamilyEdges_ResolvesAndExpands(t *testing.T) {
	edges, stats := OtherFamilyEdges([]OtherFamilyLink{{MRNa: "A", MRNb: "B", DeclaredRel: "aunt"}}, testTable(t))
	if len(edges) != 2 {
		t.Fatalf("expected 2 edges, got %d: %+v", len(edges), edges)
	}
	if stats.DroppedUnknownRel != 0 {
		t.Fatalf("expected no drops, got %+v", stats)
	}
}

func TestOtherFamilyEdges_DropsUnknownRelationship(t *testing.T) {
	edges, stats := OtherFamilyEdges([]OtherFamilyLink{{MRNa: "A", MRNb: "B", DeclaredRel: "neighbor"}}, testTable(t))
	if len(edges) != 0 {
		t.Fatalf("expected 0 edges, got %d", len(edges))
	}
	if stats.DroppedUnknownRel != 1 {
		t.Fatalf("expected 1 drop, got %+v", stats)
	}
}

func TestMerge_OverridesConflictingInferredLabel(t *testing.T) {
	e := inference.NewEdgeSet()
	e.Insert("C1", "M1", model.Sibling.Label())

	Merge(e, []model.CanonicalEdge{{Src: "C1", Dst: "M1", Group: model.Child}})

	labels := e.Labels("C1", "M1")
	if len(labels) != 1 || !labels[model.Child.Label()] {
		t.Fatalf("expected override to Child only, got %v", labels)
	}
}
