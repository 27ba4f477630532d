package inference

import "github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/model"

// compKey is an ordered pair of consecutive edge labels, the composition
// table's domain. Composition is only ever asserted from
// two primary-group labels — an ambiguous composed label never composes
// further, so the table's domain is Group x Group, not Label x Label.
type compKey struct {
	l1, l2 model.Group
}

// compositionTable is the fixed 7x7 composition table, transcribed
// exactly except for one documented fix: the original RIFTEHR source
// misspells the Sibling x Aunt/Uncle cell as "Aunt/Uncl"; this table
// uses the corrected "Aunt/Uncle" spelling instead.
var compositionTable = map[compKey]model.Label{
	{model.Parent, model.Parent}:       model.Grandparent.Label(),
	{model.Parent, model.Child}:        model.Sibling.Label(),
	{model.Parent, model.Sibling}:      model.AuntUncle.Label(),
	{model.Parent, model.AuntUncle}:    model.GrandauntGranduncle.Label(),
	{model.Parent, model.NephewNiece}:  model.Cousin.Label(),
	{model.Parent, model.Grandparent}:  model.GreatGrandparent.Label(),
	{model.Parent, model.Grandchild}:   model.ChildNephewNiece.Label(),

	{model.Child, model.Parent}:       model.Spouse.Label(),
	{model.Child, model.Child}:        model.Grandchild.Label(),
	{model.Child, model.Sibling}:      model.Child.Label(),
	{model.Child, model.AuntUncle}:    model.SiblingSiblingInLaw.Label(),
	{model.Child, model.NephewNiece}:  model.GrandchildGrandchildInLaw.Label(),
	{model.Child, model.Grandparent}:  model.ParentParentInLaw.Label(),
	{model.Child, model.Grandchild}:   model.GreatGrandchild.Label(),

	{model.Sibling, model.Parent}:       model.Parent.Label(),
	{model.Sibling, model.Child}:        model.NephewNiece.Label(),
	{model.Sibling, model.Sibling}:      model.Sibling.Label(),
	{model.Sibling, model.AuntUncle}:    model.AuntUncle.Label(),
	{model.Sibling, model.NephewNiece}:  model.ChildNephewNiece.Label(),
	{model.Sibling, model.Grandparent}:  model.Grandparent.Label(),
	{model.Sibling, model.Grandchild}:   model.GrandnephewGrandniece.Label(),

	{model.AuntUncle, model.Parent}:       model.GrandparentGrandparentInLaw.Label(),
	{model.AuntUncle, model.Child}:        model.Cousin.Label(),
	{model.AuntUncle, model.Sibling}:      model.ParentAuntUncle.Label(),
	{model.AuntUncle, model.AuntUncle}:    model.GrandauntGranduncleInLaw.Label(),
	{model.AuntUncle, model.NephewNiece}:  model.SiblingCousin.Label(),
	{model.AuntUncle, model.Grandparent}:  model.GreatGrandparentInLaw.Label(),
	{model.AuntUncle, model.Grandchild}:   model.FirstCousinOnceRemoved.Label(),

	{model.NephewNiece, model.Parent}:       model.SiblingSiblingInLaw.Label(),
	{model.NephewNiece, model.Child}:        model.GrandnephewGrandniece.Label(),
	{model.NephewNiece, model.Sibling}:      model.NephewNieceNephewNieceInLaw.Label(),
	{model.NephewNiece, model.AuntUncle}:    model.SiblingSiblingInLaw.Label(),
	{model.NephewNiece, model.NephewNiece}:  model.GrandnephewGrandnieceInLaw.Label(),
	{model.NephewNiece, model.Grandparent}:  model.ParentParentInLaw.Label(),
	{model.NephewNiece, model.Grandchild}:   model.GreatGrandnephewGrandniece.Label(),

	{model.Grandparent, model.Parent}:       model.GreatGrandparent.Label(),
	{model.Grandparent, model.Child}:        model.ParentAuntUncle.Label(),
	{model.Grandparent, model.Sibling}:      model.GrandauntGranduncle.Label(),
	{model.Grandparent, model.AuntUncle}:    model.GreatGrandauntGranduncle.Label(),
	{model.Grandparent, model.NephewNiece}:  model.FirstCousinOnceRemoved.Label(),
	{model.Grandparent, model.Grandparent}:  model.GreatGreatGrandparent.Label(),
	{model.Grandparent, model.Grandchild}:   model.SiblingCousin.Label(),

	// Grandchild x Grandparent yields Spouse, following the stated
	// algebra (the grandparent of my grandchild is my spouse or
	// in-law). This produces false positives when a grandchild's two
	// grandparents are unrelated; the cleaner's same-sex-spouse rule
	// only partially mitigates it. Kept deliberately, not silently
	// changed.
	{model.Grandchild, model.Parent}:       model.ChildChildInLaw.Label(),
	{model.Grandchild, model.Child}:        model.GreatGrandchild.Label(),
	{model.Grandchild, model.Sibling}:      model.Grandchild.Label(),
	{model.Grandchild, model.AuntUncle}:    model.ChildChildInLaw.Label(),
	{model.Grandchild, model.NephewNiece}:  model.GreatGrandchildInLaw.Label(),
	{model.Grandchild, model.Grandparent}:  model.Spouse.Label(),
	{model.Grandchild, model.Grandchild}:   model.GreatGreatGrandchild.Label(),
}

// Compose returns the label asserted for an edge composed of consecutive
// edges labeled l1 then l2, and whether the table defines a cell for that
// pair. Missing cells mean "no inference added".
func Compose(l1, l2 model.Group) (model.Label, bool) {
	lbl, ok := compositionTable[compKey{l1, l2}]
	return lbl, ok
}
