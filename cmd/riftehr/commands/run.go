package commands

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/cmd/riftehr/internal"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/internal/checkpoint"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/internal/reportstore"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/anchors"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/lookup"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/pipeline"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pedigree reconstruction pipeline",
	Long:  "Matches patients via emergency-contact declarations, infers the relationship closure, and partitions the result into families",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().String("pt_file", "", "Patient TSV (required)")
	runCmd.Flags().String("ec_file", "", "Emergency-contact TSV (required)")
	runCmd.Flags().String("dg_file", "", "Demographics TSV (required)")
	runCmd.Flags().String("out_dir", "", "Output directory (required)")
	runCmd.Flags().String("mc_link", "", "Optional mother/child ground-truth TSV")
	runCmd.Flags().String("of_link", "", "Optional other-family ground-truth TSV")
	runCmd.Flags().Int("high_match", 0, "High-degree trim threshold (default: matcher.high_match_threshold from config, 20)")
	runCmd.Flags().Bool("run_example", false, "Run against the bundled example data instead of --pt_file/--ec_file/--dg_file")
	runCmd.Flags().Bool("resume", false, "Announce a resumed run of --run_id; every stage is still recomputed and its checkpoint overwritten")
	runCmd.Flags().String("run_id", "", "Run id to checkpoint under (generated if empty)")
	runCmd.Flags().String("report_db_driver", "", "Report store backend: sqlite3 (default) or postgres")
	runCmd.Flags().String("report_db_dsn", "", "Report store connection string, for --report_db_driver=postgres (falls back to $DATABASE_URL)")
}

// runRun reproduces run_RIFTEHR.py's parse_arguments() contract: exit
// nonzero with a diagnostic when --out_dir is missing, or when the input
// file flags are missing and --run_example was not given.
func runRun(cmd *cobra.Command, args []string) error {
	ptFile, _ := cmd.Flags().GetString("pt_file")
	ecFile, _ := cmd.Flags().GetString("ec_file")
	dgFile, _ := cmd.Flags().GetString("dg_file")
	outDir, _ := cmd.Flags().GetString("out_dir")
	mcLink, _ := cmd.Flags().GetString("mc_link")
	ofLink, _ := cmd.Flags().GetString("of_link")
	highMatch, _ := cmd.Flags().GetInt("high_match")
	runExample, _ := cmd.Flags().GetBool("run_example")
	resume, _ := cmd.Flags().GetBool("resume")
	runID, _ := cmd.Flags().GetString("run_id")
	reportDBDriver, _ := cmd.Flags().GetString("report_db_driver")
	reportDBDSN, _ := cmd.Flags().GetString("report_db_dsn")

	if outDir == "" || (!runExample && (ptFile == "" || ecFile == "" || dgFile == "")) {
		internal.PrintError("✗ --out_dir is required; --pt_file, --ec_file and --dg_file are required unless --run_example is set\n")
		return fmt.Errorf("missing required arguments")
	}
	if runExample {
		ptFile, ecFile, dgFile = exampleDataFiles()
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating out_dir: %w", err)
	}

	if runID == "" {
		runID = uuid.New().String()
	}

	table, err := lookup.Default()
	if err != nil {
		return fmt.Errorf("loading relationship lookup tables: %w", err)
	}

	internal.PrintInfo("ℹ Loading patients: %s\n", ptFile)
	patients, ptDropped, err := pipeline.LoadPatients(ptFile)
	if err != nil {
		internal.PrintError("✗ Failed to load patients: %v\n", err)
		return err
	}
	internal.PrintInfo("ℹ Loading emergency contacts: %s\n", ecFile)
	ecs, ecDropped, err := pipeline.LoadECEntries(ecFile)
	if err != nil {
		internal.PrintError("✗ Failed to load emergency contacts: %v\n", err)
		return err
	}
	internal.PrintInfo("ℹ Loading demographics: %s\n", dgFile)
	demog, dgIngest, err := pipeline.LoadDemographics(dgFile)
	if err != nil {
		internal.PrintError("✗ Failed to load demographics: %v\n", err)
		return err
	}
	internal.PrintInfo("  Patients: %d (%d dropped)  EC entries: %d (%d dropped)  Demographics: %d (%d dropped, %d duplicate MRN)\n",
		len(patients), ptDropped, len(ecs), ecDropped, len(demog), dgIngest.Dropped, dgIngest.DroppedDuplicateMRN)

	var mcLinks []anchors.MotherChildLink
	if mcLink != "" {
		mcLinks, err = pipeline.LoadMotherChildLinks(mcLink)
		if err != nil {
			internal.PrintError("✗ Failed to load mother/child links: %v\n", err)
			return err
		}
		internal.PrintInfo("  Mother/child anchors: %d\n", len(mcLinks))
	}
	var ofLinks []anchors.OtherFamilyLink
	if ofLink != "" {
		ofLinks, err = pipeline.LoadOtherFamilyLinks(ofLink)
		if err != nil {
			internal.PrintError("✗ Failed to load other-family links: %v\n", err)
			return err
		}
		internal.PrintInfo("  Other-family anchors: %d\n", len(ofLinks))
	}

	cfg := activeConfig()
	if highMatch <= 0 {
		highMatch = cfg.Matcher.HighMatchThreshold
	}
	reportDriver := cfg.Storage.ReportDBDriver
	reportDSN := cfg.Storage.ReportDBPath
	if reportDBDriver != "" {
		reportDriver = reportDBDriver
	}
	if reportDBDSN != "" {
		reportDSN = reportDBDSN
	}

	var store *checkpoint.Store
	checkpointDir := cfg.Storage.CheckpointDir
	if checkpointDir != "" {
		store, err = checkpoint.Open(checkpointDir)
		if err != nil {
			return fmt.Errorf("opening checkpoint store: %w", err)
		}
		defer store.Close()
	}
	if resume && store != nil {
		internal.PrintInfo("ℹ Resuming run %s from %s\n", runID, checkpointDir)
	}

	in := pipeline.Input{
		Patients:           patients,
		ECEntries:          ecs,
		Demographics:       demog,
		MotherChildLinks:   mcLinks,
		OtherFamilyLinks:   ofLinks,
		RunQC:              len(mcLinks) > 0,
		HighMatchThreshold: highMatch,
		Table:              table,
		DemographicsIngest: dgIngest,
	}

	internal.PrintInfo("ℹ Running pipeline (run id %s)\n", runID)
	result, err := pipeline.Run(in, runID, store)
	if err != nil {
		internal.PrintError("✗ Pipeline failed: %v\n", err)
		return err
	}

	internal.PrintSuccess("✓ Pipeline complete\n")
	internal.PrintInfo("  Canonical edges: %d\n", len(result.CanonicalEdges))
	internal.PrintInfo("  Families: %d (%d patients assigned)\n", result.FamilyStats.Components, result.FamilyStats.Assigned)
	if result.QC != nil {
		internal.PrintInfo("  QC sensitivity: %.3f  PPV: %.3f\n", result.QC.Sensitivity, result.QC.PPV)
	}

	if err := pipeline.WriteArtifacts(outDir, result); err != nil {
		internal.PrintError("✗ Failed to write output artifacts: %v\n", err)
		return err
	}
	internal.PrintSuccess("✓ Wrote artifacts to %s\n", outDir)

	if reportDSN != "" || reportDriver == reportstore.DriverPostgres {
		rs, err := reportstore.Open(reportDriver, reportDSN)
		if err != nil {
			internal.PrintWarning("⚠ Could not open report store: %v\n", err)
		} else {
			defer rs.Close()
			if err := rs.WriteCanonicalEdges(result.CanonicalEdges); err != nil {
				internal.PrintWarning("⚠ Could not persist canonical edges: %v\n", err)
			}
			if err := rs.WriteFamilyAssignments(result.FamilyAssignments); err != nil {
				internal.PrintWarning("⚠ Could not persist family assignments: %v\n", err)
			}
		}
	}

	return nil
}

// exampleDataFiles locates the bundled example TSVs for --run_example,
// matching run_RIFTEHR.py's example_files/{pt_file,ec_file,pt_demog}.tsv
// layout and naming exactly.
func exampleDataFiles() (pt, ec, dg string) {
	base := "example_files"
	return base + "/pt_file.tsv", base + "/ec_file.tsv", base + "/pt_demog.tsv"
}

// GetRunCommand returns the run command.
func GetRunCommand() *cobra.Command {
	return runCmd
}
