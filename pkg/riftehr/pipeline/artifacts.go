package pipeline

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/lesfleursdelanuitdev/riftehr-pedigree/internal/tsv"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/family"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/model"
)

// WriteArtifacts writes the run's final TSVs into outDir:
// canonical_edges.tsv, family_assignments.tsv and QC_stats.tsv, using
// internal/tsv.Writer's header-then-rows shape. Intermediate stages are
// not written as TSVs; they go to the checkpoint store, if any.
func WriteArtifacts(outDir string, result Result) error {
	if err := writeCanonicalEdges(filepath.Join(outDir, "canonical_edges.tsv"), result.CanonicalEdges); err != nil {
		return err
	}
	if err := writeFamilyAssignments(filepath.Join(outDir, "family_assignments.tsv"), result.FamilyAssignments); err != nil {
		return err
	}
	if err := writeQCStats(filepath.Join(outDir, "QC_stats.tsv"), result); err != nil {
		return err
	}
	return nil
}

func writeCanonicalEdges(path string, edges []model.CanonicalEdge) error {
	w, err := tsv.Create(path, []string{"src", "relationship", "dst"})
	if err != nil {
		return err
	}
	for _, e := range edges {
		if err := w.WriteRow(e.Src, string(e.Group), e.Dst); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}

func writeFamilyAssignments(path string, assignments []family.Assignment) error {
	w, err := tsv.Create(path, []string{"family_id", "patient_id"})
	if err != nil {
		return err
	}
	for _, a := range assignments {
		if err := w.WriteRow(strconv.Itoa(a.FamilyID), a.PatientID); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}

func writeQCStats(path string, result Result) error {
	w, err := tsv.Create(path, []string{"stage", "counter", "value"})
	if err != nil {
		return err
	}
	rows := [][2]string{
		{"ingest.demographics_dropped", fmt.Sprint(result.DemographicsIngest.Dropped)},
		{"ingest.demographics_dropped_duplicate_mrn", fmt.Sprint(result.DemographicsIngest.DroppedDuplicateMRN)},
		{"match.ec_entries_considered", fmt.Sprint(result.MatchStats.ECEntriesConsidered)},
		{"match.dropped_unknown_rel", fmt.Sprint(result.MatchStats.DroppedUnknownRel)},
		{"match.candidates_emitted", fmt.Sprint(result.MatchStats.CandidatesEmitted)},
		{"match.candidates_deduped", fmt.Sprint(result.MatchStats.CandidatesDeduped)},
		{"join.candidates_in", fmt.Sprint(result.JoinStats.CandidatesIn)},
		{"join.dropped_no_demog", fmt.Sprint(result.JoinStats.DroppedNoDemog)},
		{"join.dropped_implausible", fmt.Sprint(result.JoinStats.DroppedImplausible)},
		{"join.out", fmt.Sprint(result.JoinStats.JoinedOut)},
		{"clean.in", fmt.Sprint(result.CleanStats.In)},
		{"clean.dropped", fmt.Sprint(result.CleanStats.Dropped)},
		{"clean.flipped", fmt.Sprint(result.CleanStats.Flipped)},
		{"clean.high_degree_trimmed", fmt.Sprint(result.CleanStats.HighDegreeTrimmed)},
		{"clean.out", fmt.Sprint(result.CleanStats.Out)},
		{"first_pass.inserted", fmt.Sprint(result.FirstPassInserts)},
		{"first_resolve.resolved", fmt.Sprint(result.FirstResolve.Resolved)},
		{"first_resolve.unresolved", fmt.Sprint(result.FirstResolve.Unresolved)},
		{"first_resolve.conflicts", fmt.Sprint(result.FirstResolve.Conflicts)},
		{"anchors.mother_child_links", fmt.Sprint(result.AnchorStats.MotherChildLinks)},
		{"anchors.other_family_links", fmt.Sprint(result.AnchorStats.OtherFamilyLinks)},
		{"anchors.dropped_unknown_rel", fmt.Sprint(result.AnchorStats.DroppedUnknownRel)},
		{"second_pass.inserted", fmt.Sprint(result.SecondPassInserts)},
		{"second_resolve.resolved", fmt.Sprint(result.SecondResolve.Resolved)},
		{"second_resolve.unresolved", fmt.Sprint(result.SecondResolve.Unresolved)},
		{"second_resolve.conflicts", fmt.Sprint(result.SecondResolve.Conflicts)},
		{"family.components", fmt.Sprint(result.FamilyStats.Components)},
		{"family.singletons_skipped", fmt.Sprint(result.FamilyStats.SingletonsSkipped)},
		{"family.assigned", fmt.Sprint(result.FamilyStats.Assigned)},
	}
	if result.QC != nil {
		rows = append(rows,
			[2]string{"qc.ground_truth_pairs", fmt.Sprint(result.QC.GroundTruthPairs)},
			[2]string{"qc.tp", fmt.Sprint(result.QC.TP)},
			[2]string{"qc.fp", fmt.Sprint(result.QC.FP)},
			[2]string{"qc.fn", fmt.Sprint(result.QC.FN)},
			[2]string{"qc.sensitivity", fmt.Sprintf("%.4f", result.QC.Sensitivity)},
			[2]string{"qc.ppv", fmt.Sprintf("%.4f", result.QC.PPV)},
			[2]string{"qc.directed_matches", fmt.Sprint(result.QC.DirectedMatches)},
			[2]string{"qc.opposite_matches", fmt.Sprint(result.QC.OppositeMatches)},
		)
	}
	for _, r := range rows {
		if err := w.WriteRow("run", r[0], r[1]); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}
