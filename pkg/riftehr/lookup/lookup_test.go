package lookup

import (
	"testing"

	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/model"
)

func TestDefault_ResolvesCommonSynonyms(t *testing.T) {
	table, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	cases := map[string]model.Group{
		"mom":      model.Parent,
		"Father":   model.Parent,
		"DAUGHTER": model.Child,
		"sister":   model.Sibling,
		"wife":     model.Spouse,
		"aunt":     model.AuntUncle,
		"cousin":   model.Cousin,
		"grandma":  model.Grandparent,
	}
	for in, want := range cases {
		got, ok := table.ResolveSynonym(in)
		if !ok {
			t.Errorf("ResolveSynonym(%q): not found", in)
			continue
		}
		if got != want {
			t.Errorf("ResolveSynonym(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestDefault_UnknownSynonymNotResolved(t *testing.T) {
	table, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if _, ok := table.ResolveSynonym("neighbor"); ok {
		t.Fatalf("expected neighbor to be unresolved")
	}
}

func TestDefault_OppositeCoversPrimaryAndAmbiguous(t *testing.T) {
	table, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	opp, ok := table.Opposite(model.Parent.Label())
	if !ok || opp != model.Child.Label() {
		t.Fatalf("Opposite(Parent) = %v, %v, want Child, true", opp, ok)
	}

	opp, ok = table.Opposite(model.ParentParentInLaw.Label())
	if !ok || opp != model.ChildChildInLaw.Label() {
		t.Fatalf("Opposite(Parent/Parent-in-law) = %v, %v, want Child/Child-in-law, true", opp, ok)
	}
}

func TestBuild_CanonicalNameIsItsOwnSynonym(t *testing.T) {
	table, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	got, ok := table.ResolveSynonym("Sibling")
	if !ok || got != model.Sibling {
		t.Fatalf("ResolveSynonym(Sibling) = %v, %v, want Sibling, true", got, ok)
	}
}
