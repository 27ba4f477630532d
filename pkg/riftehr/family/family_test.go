package family

import (
	"testing"

	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/model"
)

func edge(src, dst string, g model.Group) model.CanonicalEdge {
	return model.CanonicalEdge{Src: src, Dst: dst, Group: g}
}

func TestPartition_LargestComponentIsFamilyZero(t *testing.T) {
	edges := []model.CanonicalEdge{
		edge("A", "B", model.Parent), edge("B", "C", model.Child), edge("B", "D", model.Child),
		edge("X", "Y", model.Spouse),
	}
	out, stats := Partition(edges)

	famOf := make(map[string]int)
	for _, a := range out {
		famOf[a.PatientID] = a.FamilyID
	}
	if famOf["A"] != 0 || famOf["B"] != 0 || famOf["C"] != 0 || famOf["D"] != 0 {
		t.Fatalf("expected the 4-node component as family 0, got %+v", famOf)
	}
	if famOf["X"] != 1 || famOf["Y"] != 1 {
		t.Fatalf("expected the 2-node component as family 1, got %+v", famOf)
	}
	if stats.Components != 2 || stats.Assigned != 6 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestPartition_SingletonsOmitted(t *testing.T) {
	// A self-edge is the only way a canonical edge yields a one-node
	// component.
	edges := []model.CanonicalEdge{edge("A", "B", model.Sibling), edge("Z", "Z", model.Sibling)}
	out, stats := Partition(edges)
	if len(out) != 2 {
		t.Fatalf("expected only the 2-node component kept, got %d rows", len(out))
	}
	for _, a := range out {
		if a.PatientID == "Z" {
			t.Fatalf("expected singleton Z omitted, got %+v", out)
		}
	}
	if stats.SingletonsSkipped != 1 {
		t.Fatalf("expected 1 singleton skipped, got %+v", stats)
	}
}

func TestPartition_EveryEdgeNodeAssignedExactlyOnce(t *testing.T) {
	edges := []model.CanonicalEdge{
		edge("A", "B", model.Parent), edge("B", "A", model.Child),
		edge("B", "C", model.Sibling), edge("C", "B", model.Sibling),
	}
	out, _ := Partition(edges)
	seen := make(map[string]int)
	for _, a := range out {
		seen[a.PatientID]++
	}
	for _, p := range []string{"A", "B", "C"} {
		if seen[p] != 1 {
			t.Fatalf("expected patient %s assigned exactly once, got %d", p, seen[p])
		}
	}
}
