package pipeline

import (
	"fmt"

	"github.com/lesfleursdelanuitdev/riftehr-pedigree/internal/checkpoint"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/anchors"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/cleaner"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/demographics"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/family"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/inference"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/lookup"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/matcher"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/model"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/qc"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/resolver"
)

// Input bundles everything a Run needs to read. MotherChildLinks and
// OtherFamilyLinks are optional; RunQC evaluates the result against
// MotherChildLinks when any are given.
type Input struct {
	Patients         []model.Patient
	ECEntries        []model.ECEntry
	Demographics     []model.Demographic
	MotherChildLinks []anchors.MotherChildLink
	OtherFamilyLinks []anchors.OtherFamilyLink
	RunQC            bool

	HighMatchThreshold int
	Table              *lookup.Table

	// DemographicsIngest is LoadDemographics's filtering summary, passed
	// through so it lands in Result and QC_stats.tsv alongside the
	// rest of the run's drop counters.
	DemographicsIngest DemographicsIngestStats
}

// Result carries every stage's output and summary counters: each stage
// writes its artifact and returns a count summary.
type Result struct {
	DemographicsIngest DemographicsIngestStats
	MatchStats       matcher.Stats
	JoinStats        demographics.Stats
	CleanStats       cleaner.Stats
	FirstPassInserts int
	FirstResolve     resolver.Stats
	AnchorStats      anchors.Stats
	SecondPassInserts int
	SecondResolve    resolver.Stats
	FamilyStats      family.Stats

	CanonicalEdges     []model.CanonicalEdge
	FamilyAssignments  []family.Assignment
	QC                 *qc.Stats
}

// stageName constants for checkpointing.
const (
	StageMatch      = "match"
	StageJoin       = "join"
	StageClean      = "clean"
	StageFirstPass  = "first_pass"
	StageSecondPass = "second_pass"
	StageFamily     = "family"
)

// Run executes the full A->B->C->D->E->F pipeline once, saving a
// checkpoint of each stage's output under (stage, runID). Run only
// writes checkpoints; it never reads them back, so every stage is always
// recomputed. store may be nil to skip checkpointing.
func Run(in Input, runID string, store *checkpoint.Store) (Result, error) {
	if in.Table == nil {
		return Result{}, fmt.Errorf("pipeline: lookup table is required")
	}

	var result Result
	result.DemographicsIngest = in.DemographicsIngest

	cache, err := matcher.NewUniquenessCache(len(matcher.Keys))
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: matcher cache: %w", err)
	}
	candidates, matchStats := matcher.Match(in.Patients, in.ECEntries, in.Table, cache, runID)
	result.MatchStats = matchStats
	if err := save(store, StageMatch, runID, candidates); err != nil {
		return result, err
	}

	joined, joinStats := demographics.Join(candidates, in.Demographics)
	result.JoinStats = joinStats
	if err := save(store, StageJoin, runID, joined); err != nil {
		return result, err
	}

	cleaned, cleanStats := cleaner.Clean(joined, in.HighMatchThreshold)
	result.CleanStats = cleanStats
	if err := save(store, StageClean, runID, cleaned); err != nil {
		return result, err
	}

	labelCache, err := inference.NewLabelCache(4096)
	if err != nil {
		return result, fmt.Errorf("pipeline: label cache: %w", err)
	}

	firstSet := inference.FromCandidates(cleaned)
	result.FirstPassInserts = inference.Close(firstSet, labelCache)
	firstResolved, firstResolveStats := resolver.Resolve(firstSet, in.Table)
	result.FirstResolve = firstResolveStats
	if err := save(store, StageFirstPass, runID, firstResolved); err != nil {
		return result, err
	}

	secondSet := inference.FromCanonicalEdges(firstResolved)
	motherChildEdges := anchors.MotherChildEdges(in.MotherChildLinks)
	otherFamilyEdges, otherStats := anchors.OtherFamilyEdges(in.OtherFamilyLinks, in.Table)
	otherStats.MotherChildLinks = len(in.MotherChildLinks)
	result.AnchorStats = otherStats
	anchors.Merge(secondSet, motherChildEdges)
	anchors.Merge(secondSet, otherFamilyEdges)

	result.SecondPassInserts = inference.Close(secondSet, labelCache)
	secondResolved, secondResolveStats := resolver.Resolve(secondSet, in.Table)
	result.SecondResolve = secondResolveStats
	if err := save(store, StageSecondPass, runID, secondResolved); err != nil {
		return result, err
	}
	result.CanonicalEdges = secondResolved

	assignments, familyStats := family.Partition(secondResolved)
	result.FamilyAssignments = assignments
	result.FamilyStats = familyStats
	if err := save(store, StageFamily, runID, assignments); err != nil {
		return result, err
	}

	if in.RunQC && len(in.MotherChildLinks) > 0 {
		stats := qc.Evaluate(in.MotherChildLinks, secondResolved)
		result.QC = &stats
	}

	return result, nil
}

func save(store *checkpoint.Store, stage, runID string, v any) error {
	if store == nil {
		return nil
	}
	if err := store.Save(stage, runID, v); err != nil {
		return fmt.Errorf("pipeline: checkpoint %s: %w", stage, err)
	}
	return nil
}
