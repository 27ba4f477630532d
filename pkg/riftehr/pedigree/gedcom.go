// Package pedigree renders one reconstructed family's canonical edges as
// a GEDCOM file: a pedigree reconstruction tool's natural "so a
// genealogist can open this in existing software" output format is
// GEDCOM, built on github.com/elliotchance/gedcom/v39 for the FAMC/FAMS
// record shapes a rendered family needs.
package pedigree

import (
	"fmt"
	"io"
	"sort"

	"github.com/elliotchance/gedcom/v39"

	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/family"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/model"
)

// BuildDocument assembles every patient assigned to familyID, plus the
// Parent/Child and Spouse canonical edges between them, into a GEDCOM
// document. Patients without a Patient record (referenced only by MRN in
// an edge) are still emitted as bare INDI records so the family tree
// stays connected.
func BuildDocument(familyID int, assignments []family.Assignment, patients map[string]model.Patient, demographics map[string]model.Demographic, edges []model.CanonicalEdge) (*gedcom.Document, error) {
	members := make(map[string]bool)
	for _, a := range assignments {
		if a.FamilyID == familyID {
			members[a.PatientID] = true
		}
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("pedigree: no patients assigned to family %d", familyID)
	}

	doc := gedcom.NewDocument()

	xrefOf := make(map[string]string, len(members))
	ordered := make([]string, 0, len(members))
	for mrn := range members {
		ordered = append(ordered, mrn)
	}
	sort.Strings(ordered)

	for i, mrn := range ordered {
		xref := fmt.Sprintf("@I%d@", i+1)
		xrefOf[mrn] = xref

		var nameNodes []gedcom.Node
		if p, ok := patients[mrn]; ok {
			nameValue := fmt.Sprintf("%s /%s/", p.FirstName, p.LastName)
			nameNodes = append(nameNodes, gedcom.NewNameNode(doc, nameValue, "", nil))
		}
		indi := gedcom.NewIndividualNode(doc, "", xref, nameNodes)
		doc.AddNode(indi)
	}

	unions := buildUnions(members, edges)
	for i, u := range unions {
		famXref := fmt.Sprintf("@F%d@", i+1)
		var famNodes []gedcom.Node
		for _, parentMRN := range u.parents {
			tag := gedcom.TagHusband
			if d, ok := demographics[parentMRN]; ok && d.Sex == model.Female {
				tag = gedcom.TagWife
			}
			famNodes = append(famNodes, gedcom.NewSimpleNode(doc, tag, xrefOf[parentMRN], "", nil))
		}
		for _, childMRN := range u.children {
			famNodes = append(famNodes, gedcom.NewSimpleNode(doc, gedcom.TagChild, xrefOf[childMRN], "", nil))
		}
		doc.AddNode(gedcom.NewFamilyNode(doc, famXref, famNodes))
	}

	return doc, nil
}

// WriteFamily builds the document for familyID and encodes it to w in
// GEDCOM line format.
func WriteFamily(w io.Writer, familyID int, assignments []family.Assignment, patients map[string]model.Patient, demographics map[string]model.Demographic, edges []model.CanonicalEdge) error {
	doc, err := BuildDocument(familyID, assignments, patients, demographics, edges)
	if err != nil {
		return err
	}
	return gedcom.NewEncoder(w, doc).Encode()
}

type union struct {
	parents  []string
	children []string
}

// buildUnions groups canonical Parent edges by the parent pair (or
// single parent, when only one is known) they share, so each group
// becomes one FAM record. A Spouse edge pairs two parents into one union
// when both have at least one Parent edge, shared children or not;
// spouses with no Parent edge produce no FAM record.
func buildUnions(members map[string]bool, edges []model.CanonicalEdge) []union {
	childrenOf := make(map[string]map[string]bool) // parent -> set of children
	spousesOf := make(map[string]map[string]bool)

	for _, e := range edges {
		if !members[e.Src] || !members[e.Dst] {
			continue
		}
		switch e.Group {
		case model.Parent:
			if childrenOf[e.Src] == nil {
				childrenOf[e.Src] = make(map[string]bool)
			}
			childrenOf[e.Src][e.Dst] = true
		case model.Spouse:
			if spousesOf[e.Src] == nil {
				spousesOf[e.Src] = make(map[string]bool)
			}
			spousesOf[e.Src][e.Dst] = true
		}
	}

	seenParentSet := make(map[string]bool)
	var unions []union
	parents := make([]string, 0, len(childrenOf))
	for p := range childrenOf {
		parents = append(parents, p)
	}
	sort.Strings(parents)

	for _, p := range parents {
		spouse := ""
		for s := range spousesOf[p] {
			if _, sharesChild := childrenOf[s]; sharesChild {
				spouse = s
				break
			}
		}
		var group []string
		if spouse != "" {
			group = []string{p, spouse}
			sort.Strings(group)
		} else {
			group = []string{p}
		}
		key := fmt.Sprintf("%v", group)
		if seenParentSet[key] {
			continue
		}
		seenParentSet[key] = true

		childSet := make(map[string]bool)
		for c := range childrenOf[p] {
			childSet[c] = true
		}
		if spouse != "" {
			for c := range childrenOf[spouse] {
				childSet[c] = true
			}
		}
		children := make([]string, 0, len(childSet))
		for c := range childSet {
			children = append(children, c)
		}
		sort.Strings(children)

		unions = append(unions, union{parents: group, children: children})
	}
	return unions
}
