package resolver

import (
	"testing"

	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/inference"
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

func findEdge(edges []model.CanonicalEdge, src, dst string) (model.CanonicalEdge, bool) {
	for _, e := range edges {
		if e.Src == src && e.Dst == dst {
			return e, true
		}
	}
	return model.CanonicalEdge{}, false
}

func TestResolve_SingleLabelKept(t *testing.T) {
	e := inference.NewEdgeSet()
	e.Insert("A", "B", model.Parent.Label())

	edges, stats := Resolve(e, testTable(t))
	got, ok := findEdge(edges, "A", "B")
	if !ok || got.Group != model.Parent {
		t.Fatalf("expected A-B Parent, got %+v ok=%v", got, ok)
	}
	if stats.Resolved != 1 {
		t.Fatalf("expected 1 resolved pair, got %+v", stats)
	}
}

func TestResolve_AmbiguousWithPreferredPresent(t *testing.T) {
	e := inference.NewEdgeSet()
	e.Insert("A", "B", model.ParentAuntUncle.Label())
	e.Insert("A", "B", model.Parent.Label())

	edges, _ := Resolve(e, testTable(t))
	got, ok := findEdge(edges, "A", "B")
	if !ok || got.Group != model.Parent {
		t.Fatalf("expected A-B resolves to Parent, got %+v ok=%v", got, ok)
	}
}

func TestResolve_AmbiguousWithFallbackPresent(t *testing.T) {
	e := inference.NewEdgeSet()
	e.Insert("A", "B", model.ParentAuntUncle.Label())
	e.Insert("A", "B", model.AuntUncle.Label())

	edges, _ := Resolve(e, testTable(t))
	got, ok := findEdge(edges, "A", "B")
	if !ok || got.Group != model.AuntUncle {
		t.Fatalf("expected A-B resolves to Aunt/Uncle, got %+v ok=%v", got, ok)
	}
}

func TestResolve_UnresolvableAmbiguousAloneExcluded(t *testing.T) {
	e := inference.NewEdgeSet()
	e.Insert("A", "B", model.ParentAuntUncle.Label())

	edges, stats := Resolve(e, testTable(t))
	if _, ok := findEdge(edges, "A", "B"); ok {
		t.Fatalf("expected A-B to be excluded, got an edge")
	}
	if stats.Unresolved != 1 {
		t.Fatalf("expected 1 unresolved pair, got %+v", stats)
	}
}

func TestResolve_ExpandsOppositeDirection(t *testing.T) {
	e := inference.NewEdgeSet()
	e.Insert("A", "B", model.Parent.Label())

	edges, stats := Resolve(e, testTable(t))
	got, ok := findEdge(edges, "B", "A")
	if !ok || got.Group != model.Child {
		t.Fatalf("expected B-A Child from expansion, got %+v ok=%v", got, ok)
	}
	if stats.Expanded != 1 {
		t.Fatalf("expected 1 expanded edge, got %+v", stats)
	}
}

func TestResolve_NoDuplicateWhenBothDirectionsAlreadyResolved(t *testing.T) {
	e := inference.NewEdgeSet()
	e.Insert("A", "B", model.Parent.Label())
	e.Insert("B", "A", model.Child.Label())

	edges, stats := Resolve(e, testTable(t))
	if len(edges) != 2 {
		t.Fatalf("expected exactly 2 edges, got %d: %+v", len(edges), edges)
	}
	if stats.Expanded != 0 {
		t.Fatalf("expected no expansion needed, got %+v", stats)
	}
}

// TestResolve_ConflictingBidirectionalEntriesAreDeterministic covers a
// pair whose two directions were independently resolved to non-opposite
// primaries (B-A resolves to Sibling rather than Child, the declared
// opposite of A-B's Parent). Run repeatedly, this must always pick the
// same winner rather than whichever direction map iteration visits first.
func TestResolve_ConflictingBidirectionalEntriesAreDeterministic(t *testing.T) {
	table := testTable(t)

	for i := 0; i < 20; i++ {
		e := inference.NewEdgeSet()
		e.Insert("A", "B", model.Parent.Label())
		e.Insert("B", "A", model.Sibling.Label())

		edges, stats := Resolve(e, table)
		if stats.Conflicts != 1 {
			t.Fatalf("run %d: expected 1 conflict, got %+v", i, stats)
		}

		ab, ok := findEdge(edges, "A", "B")
		if !ok || ab.Group != model.Parent {
			t.Fatalf("run %d: expected A-B Parent to win, got %+v ok=%v", i, ab, ok)
		}
		ba, ok := findEdge(edges, "B", "A")
		if !ok || ba.Group != model.Child {
			t.Fatalf("run %d: expected B-A overwritten with Child (Parent's opposite), got %+v ok=%v", i, ba, ok)
		}
		if len(edges) != 2 {
			t.Fatalf("run %d: expected exactly 2 edges, got %d: %+v", i, len(edges), edges)
		}
	}
}
