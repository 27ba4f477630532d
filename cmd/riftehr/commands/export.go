package commands

import (
	"fmt"
	"os"

	"github.com/lesfleursdelanuitdev/riftehr-pedigree/cmd/riftehr/internal"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/family"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/model"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/pedigree"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export reconstructed families",
	Long:  "Export a reconstructed family to an external format",
}

var exportGedcomCmd = &cobra.Command{
	Use:   "gedcom",
	Short: "Export one family's canonical edges as a GEDCOM file",
	Long:  "Renders one family's resolved relationships as a GEDCOM file, reading the patient/demographic tables and the report store written by `riftehr run`",
	RunE:  runExportGedcom,
}

func init() {
	exportGedcomCmd.Flags().Int("family", -1, "Family id to export (required)")
	exportGedcomCmd.Flags().String("pt_file", "", "Patient TSV (required)")
	exportGedcomCmd.Flags().String("dg_file", "", "Demographics TSV (required)")
	exportGedcomCmd.Flags().StringP("output", "o", "", "Output .ged file (required)")
	exportCmd.AddCommand(exportGedcomCmd)
}

func runExportGedcom(cmd *cobra.Command, args []string) error {
	familyID, _ := cmd.Flags().GetInt("family")
	ptFile, _ := cmd.Flags().GetString("pt_file")
	dgFile, _ := cmd.Flags().GetString("dg_file")
	output, _ := cmd.Flags().GetString("output")

	if familyID < 0 || ptFile == "" || dgFile == "" || output == "" {
		internal.PrintError("✗ --family, --pt_file, --dg_file and --output are all required\n")
		return fmt.Errorf("missing required arguments")
	}

	rs, err := openReportStore()
	if err != nil {
		return err
	}
	defer rs.Close()

	memberRows, err := rs.DB().Query("SELECT patient_id FROM family_assignments WHERE family_id = ?", familyID)
	if err != nil {
		return fmt.Errorf("loading family members: %w", err)
	}
	var assignments []family.Assignment
	for memberRows.Next() {
		var patientID string
		if err := memberRows.Scan(&patientID); err != nil {
			memberRows.Close()
			return err
		}
		assignments = append(assignments, family.Assignment{FamilyID: familyID, PatientID: patientID})
	}
	memberRows.Close()
	if err := memberRows.Err(); err != nil {
		return err
	}
	if len(assignments) == 0 {
		internal.PrintError("✗ no members found for family %d (run `riftehr run` first)\n", familyID)
		return fmt.Errorf("family %d not found in report store", familyID)
	}

	edgeRows, err := rs.DB().Query(
		`SELECT ce.src, ce.label, ce.dst FROM canonical_edges ce
		 JOIN family_assignments fa ON fa.patient_id = ce.src
		 WHERE fa.family_id = ?`, familyID)
	if err != nil {
		return fmt.Errorf("loading family edges: %w", err)
	}
	var edges []model.CanonicalEdge
	for edgeRows.Next() {
		var src, label, dst string
		if err := edgeRows.Scan(&src, &label, &dst); err != nil {
			edgeRows.Close()
			return err
		}
		edges = append(edges, model.CanonicalEdge{Src: src, Group: model.Group(label), Dst: dst})
	}
	edgeRows.Close()
	if err := edgeRows.Err(); err != nil {
		return err
	}

	patients, _, err := loadPatientsIndexed(ptFile)
	if err != nil {
		return fmt.Errorf("loading patients: %w", err)
	}
	demog, _, err := loadDemographicsIndexed(dgFile)
	if err != nil {
		return fmt.Errorf("loading demographics: %w", err)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", output, err)
	}
	defer f.Close()

	if err := pedigree.WriteFamily(f, familyID, assignments, patients, demog, edges); err != nil {
		internal.PrintError("✗ GEDCOM export failed: %v\n", err)
		return err
	}

	internal.PrintSuccess("✓ Exported family %d to %s\n", familyID, output)
	return nil
}

// GetExportCommand returns the export command.
func GetExportCommand() *cobra.Command {
	return exportCmd
}
