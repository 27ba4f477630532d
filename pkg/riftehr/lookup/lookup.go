// Package lookup loads the two reference files the tool ships with —
// relationships_lookup.tsv and relationships_and_opposites.tsv —
// into a synonym map (free-text EC relationship string -> primary Group)
// and an opposite map that covers both the primary vocabulary and the
// ambiguous composed labels the Inference Engine produces.
package lookup

import (
	"embed"
	"fmt"
	"strings"

	"github.com/lesfleursdelanuitdev/riftehr-pedigree/internal/tsv"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/model"
)

//go:embed data/relationships_lookup.tsv data/relationships_and_opposites.tsv
var defaultData embed.FS

// Table holds the synonym -> Group map and the Label -> Label opposite
// map, the latter covering both model.Group's built-in opposites and any
// ambiguous-label opposites extended in from relationships_and_opposites.tsv.
type Table struct {
	synonyms  map[string]model.Group
	opposites map[model.Label]model.Label
}

// Default loads the reference files shipped inside the binary via
// go:embed. `riftehr run` always uses these embedded tables.
func Default() (*Table, error) {
	lf, err := defaultData.Open("data/relationships_lookup.tsv")
	if err != nil {
		return nil, err
	}
	defer lf.Close()
	of, err := defaultData.Open("data/relationships_and_opposites.tsv")
	if err != nil {
		return nil, err
	}
	defer of.Close()

	lookupR, err := tsv.Read(lf)
	if err != nil {
		return nil, fmt.Errorf("lookup: embedded relationships_lookup.tsv: %w", err)
	}
	oppR, err := tsv.Read(of)
	if err != nil {
		return nil, fmt.Errorf("lookup: embedded relationships_and_opposites.tsv: %w", err)
	}
	return build(lookupR, oppR)
}

// Load reads lookupPath (relationships_lookup.tsv shape) and, if
// opposPath is non-empty, opposPath (relationships_and_opposites.tsv
// shape), overriding the embedded defaults entirely.
func Load(lookupPath, opposPath string) (*Table, error) {
	lookupR, err := tsv.Open(lookupPath)
	if err != nil {
		return nil, err
	}
	var oppR *tsv.Reader
	if opposPath != "" {
		oppR, err = tsv.Open(opposPath)
		if err != nil {
			return nil, err
		}
	} else {
		oppR = &tsv.Reader{}
	}
	return build(lookupR, oppR)
}

func build(lookupR, oppR *tsv.Reader) (*Table, error) {
	t := &Table{
		synonyms:  make(map[string]model.Group),
		opposites: make(map[model.Label]model.Label),
	}

	for _, row := range lookupR.Rows() {
		abbrev1, _ := lookupR.Get(row, "abbrev1")
		abbrev2, _ := lookupR.Get(row, "abbrev2")
		canonical, err := lookupR.Get(row, "canonical_group")
		if err != nil {
			continue
		}
		opp, _ := lookupR.Get(row, "opposite_group")

		group, err := model.ParseGroup(canonical)
		if err != nil {
			continue
		}
		if abbrev1 != "" {
			t.synonyms[strings.ToLower(strings.TrimSpace(abbrev1))] = group
		}
		if abbrev2 != "" {
			t.synonyms[strings.ToLower(strings.TrimSpace(abbrev2))] = group
		}
		// Canonical name itself is always a valid declared relationship.
		t.synonyms[strings.ToLower(string(group))] = group

		if opp != "" {
			if oppGroup, err := model.ParseGroup(opp); err == nil {
				t.opposites[group.Label()] = oppGroup.Label()
			}
		}
	}

	for _, row := range oppR.Rows() {
		group, err := oppR.Get(row, "group")
		if err != nil {
			continue
		}
		opp, err := oppR.Get(row, "opposite")
		if err != nil {
			continue
		}
		t.opposites[model.Label(group)] = model.Label(opp)
	}

	return t, nil
}

// ResolveSynonym folds s to lowercase and looks it up in the synonym
// table, reporting whether it maps to a known primary Group.
func (t *Table) ResolveSynonym(s string) (model.Group, bool) {
	g, ok := t.synonyms[strings.ToLower(strings.TrimSpace(s))]
	return g, ok
}

// Opposite returns the declared opposite of l, preferring this table's
// loaded entries (which cover ambiguous composed labels) and falling
// back to model.Group's built-in opposite table for primary groups not
// present in the loaded file.
func (t *Table) Opposite(l model.Label) (model.Label, bool) {
	if o, ok := t.opposites[l]; ok {
		return o, true
	}
	if g, ok := l.AsGroup(); ok {
		if o, ok := g.Opposite(); ok {
			return o.Label(), true
		}
	}
	return "", false
}
