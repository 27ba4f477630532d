package commands

import (
	"fmt"

	"github.com/lesfleursdelanuitdev/riftehr-pedigree/cmd/riftehr/internal"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/internal/reportstore"
	"github.com/spf13/cobra"
)

// queryCmd runs ad-hoc lookups against the SQLite mirror a prior `run`
// wrote (storage.report_db_path), a second, read-only entry point over
// already-parsed data.
var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query the canonical-edge/family report store",
	Long:  "Runs ad-hoc lookups against the SQLite mirror written by a prior `riftehr run`",
}

var queryRelationshipCmd = &cobra.Command{
	Use:   "relationship [patient-id]",
	Short: "Show every canonical relationship a patient appears in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rs, err := openReportStore()
		if err != nil {
			return err
		}
		defer rs.Close()

		rows, err := rs.DB().Query(
			"SELECT src, label, dst FROM canonical_edges WHERE src = ? OR dst = ? ORDER BY label, dst",
			args[0], args[0])
		if err != nil {
			return fmt.Errorf("query: %w", err)
		}
		defer rows.Close()

		found := false
		for rows.Next() {
			var src, label, dst string
			if err := rows.Scan(&src, &label, &dst); err != nil {
				return err
			}
			found = true
			internal.PrintInfo("  %s %s %s\n", src, label, dst)
		}
		if !found {
			internal.PrintWarning("⚠ no relationships found for %s\n", args[0])
		}
		return rows.Err()
	},
}

var queryFamilyCmd = &cobra.Command{
	Use:   "family [family-id]",
	Short: "List every patient assigned to a family id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rs, err := openReportStore()
		if err != nil {
			return err
		}
		defer rs.Close()

		rows, err := rs.DB().Query(
			"SELECT patient_id FROM family_assignments WHERE family_id = ? ORDER BY patient_id",
			args[0])
		if err != nil {
			return fmt.Errorf("query: %w", err)
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var patientID string
			if err := rows.Scan(&patientID); err != nil {
				return err
			}
			count++
			internal.PrintInfo("  %s\n", patientID)
		}
		if count == 0 {
			internal.PrintWarning("⚠ no patients found for family %s\n", args[0])
		}
		return rows.Err()
	},
}

func openReportStore() (*reportstore.Store, error) {
	cfg := activeConfig()
	path := cfg.Storage.ReportDBPath
	rs, err := reportstore.Open(cfg.Storage.ReportDBDriver, path)
	if err != nil {
		return nil, fmt.Errorf("opening report store %s: %w", path, err)
	}
	return rs, nil
}

func init() {
	queryCmd.AddCommand(queryRelationshipCmd)
	queryCmd.AddCommand(queryFamilyCmd)
}

// GetQueryCommand returns the query command.
func GetQueryCommand() *cobra.Command {
	return queryCmd
}
