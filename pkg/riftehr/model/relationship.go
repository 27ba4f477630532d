// Package model defines the closed data shapes the riftehr pipeline
// passes between stages: patients, emergency-contact entries,
// demographics, and the relationship label vocabularies.
package model

import "fmt"

// Group is a primary relationship label. The vocabulary is closed: every
// canonical output edge carries exactly one Group.
type Group string

const (
	Parent                       Group = "Parent"
	Child                        Group = "Child"
	Sibling                      Group = "Sibling"
	Spouse                       Group = "Spouse"
	AuntUncle                    Group = "Aunt/Uncle"
	NephewNiece                  Group = "Nephew/Niece"
	Cousin                       Group = "Cousin"
	Grandparent                  Group = "Grandparent"
	Grandchild                   Group = "Grandchild"
	GrandauntGranduncle          Group = "Grandaunt/Granduncle"
	GrandnephewGrandniece        Group = "Grandnephew/Grandniece"
	GreatGrandparent             Group = "Great-grandparent"
	GreatGrandchild              Group = "Great-grandchild"
	GreatGreatGrandparent        Group = "Great-great-grandparent"
	GreatGreatGrandchild         Group = "Great-great-grandchild"
	FirstCousinOnceRemoved       Group = "First cousin once removed"
	GreatGrandauntGranduncle     Group = "Great-grandaunt/Great-granduncle"
	GreatGrandnephewGrandniece   Group = "Great-grandnephew/Great-grandniece"
)

// primaryGroups is the closed set used for membership checks and to
// reject an unresolved label from ever leaving Resolve().
var primaryGroups = map[Group]bool{
	Parent: true, Child: true, Sibling: true, Spouse: true,
	AuntUncle: true, NephewNiece: true, Cousin: true,
	Grandparent: true, Grandchild: true,
	GrandauntGranduncle: true, GrandnephewGrandniece: true,
	GreatGrandparent: true, GreatGrandchild: true,
	GreatGreatGrandparent: true, GreatGreatGrandchild: true,
	FirstCousinOnceRemoved:     true,
	GreatGrandauntGranduncle:   true,
	GreatGrandnephewGrandniece: true,
}

// IsPrimary reports whether g belongs to the primary vocabulary.
func (g Group) IsPrimary() bool {
	return primaryGroups[g]
}

// opposites maps each primary group with a declared inverse to that
// inverse. Sibling, Spouse, and Cousin are self-opposite and are handled
// by Opposite without a table entry.
var opposites = map[Group]Group{
	Parent:                     Child,
	Child:                      Parent,
	Grandparent:                Grandchild,
	Grandchild:                 Grandparent,
	AuntUncle:                  NephewNiece,
	NephewNiece:                AuntUncle,
	GrandauntGranduncle:        GrandnephewGrandniece,
	GrandnephewGrandniece:      GrandauntGranduncle,
	GreatGrandparent:           GreatGrandchild,
	GreatGrandchild:            GreatGrandparent,
	GreatGreatGrandparent:      GreatGreatGrandchild,
	GreatGreatGrandchild:       GreatGreatGrandparent,
	GreatGrandauntGranduncle:   GreatGrandnephewGrandniece,
	GreatGrandnephewGrandniece: GreatGrandauntGranduncle,
}

var selfOpposite = map[Group]bool{
	Sibling: true, Spouse: true, Cousin: true, FirstCousinOnceRemoved: true,
}

// Opposite returns the declared inverse of g and whether one is defined.
// First cousin once removed has no stable declared opposite (the removal
// direction flips, which this closed vocabulary does not distinguish) and
// is treated as self-opposite for bidirectional-expansion purposes, an
// "either shape is acceptable" tolerance for edge cases not nailed down
// by the composition table.
func (g Group) Opposite() (Group, bool) {
	if o, ok := opposites[g]; ok {
		return o, true
	}
	if selfOpposite[g] {
		return g, true
	}
	return "", false
}

// AmbiguousLabel is a composed label the Inference Engine may emit when
// composition cannot narrow a derived edge to one primary group.
type AmbiguousLabel string

const (
	ParentParentInLaw           AmbiguousLabel = "Parent/Parent-in-law"
	ParentAuntUncle              AmbiguousLabel = "Parent/Aunt/Uncle"
	ChildNephewNiece              AmbiguousLabel = "Child/Nephew/Niece"
	ChildChildInLaw               AmbiguousLabel = "Child/Child-in-law"
	SiblingSiblingInLaw           AmbiguousLabel = "Sibling/Sibling-in-law"
	SiblingCousin                 AmbiguousLabel = "Sibling/Cousin"
	NephewNieceNephewNieceInLaw   AmbiguousLabel = "Nephew/Niece/Nephew-in-law/Niece-in-law"
	GrandparentGrandparentInLaw   AmbiguousLabel = "Grandparent/Grandparent-in-law"
	GrandchildGrandchildInLaw     AmbiguousLabel = "Grandchild/Grandchild-in-law"
	GrandnephewGrandnieceInLaw    AmbiguousLabel = "Grandnephew/Grandniece/Grandnephew-in-law/Grandniece-in-law"
	GrandauntGranduncleInLaw      AmbiguousLabel = "Grandaunt/Granduncle/Grandaunt-in-law/Granduncle-in-law"
	GreatGrandparentInLaw         AmbiguousLabel = "Great-grandparent/Great-grandparent-in-law"
	GreatGrandchildInLaw          AmbiguousLabel = "Great-grandchild/Great-grandchild-in-law"
)

// Label is either a primary Group or an AmbiguousLabel, carried as a set
// of strings on a composed edge until the Resolver collapses it. A bare
// string is used instead of a sum type so a single map[Label]bool set can
// hold a mix of the two vocabularies, exactly as describes
// the engine's per-pair label set.
type Label string

// Label converts a Group to a Label.
func (g Group) Label() Label { return Label(g) }

// Label converts an AmbiguousLabel to a Label.
func (a AmbiguousLabel) Label() Label { return Label(a) }

// AsGroup reports whether l names a primary Group.
func (l Label) AsGroup() (Group, bool) {
	g := Group(l)
	if g.IsPrimary() {
		return g, true
	}
	return "", false
}

// ParseGroup validates that s names a primary Group, returning an error
// otherwise. Used by the lookup package to validate the group columns of
// relationships_lookup.tsv.
func ParseGroup(s string) (Group, error) {
	g := Group(s)
	if !g.IsPrimary() {
		return "", fmt.Errorf("model: %q is not a primary relationship group", s)
	}
	return g, nil
}
