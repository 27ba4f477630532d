package commands

import (
	"fmt"

	"github.com/lesfleursdelanuitdev/riftehr-pedigree/cmd/riftehr/internal"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/internal/normalize"
	"github.com/spf13/cobra"
)

// normalizeCmd previews what the input-parsing collaborator would do
// to a single value, without running the full pipeline — a dry pass
// with no output file, for sanity-checking a value before a real run.
var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Preview input normalization for a single value",
	Long:  "Runs the phone/zip/name/sex normalization contracts against one value and reports the result, without running the pipeline",
}

var normalizePhoneCmd = &cobra.Command{
	Use:   "phone [value]",
	Short: "Normalize a phone number",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, ok := normalize.Phone(args[0])
		return reportNormalize(out, ok)
	},
}

var normalizeZipCmd = &cobra.Command{
	Use:   "zip [value]",
	Short: "Normalize a zipcode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, ok := normalize.Zip(args[0])
		return reportNormalize(out, ok)
	},
}

var normalizeNameCmd = &cobra.Command{
	Use:   "name [value]",
	Short: "Normalize a first or last name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := normalize.Name(args[0])
		return reportNormalize(out, out != "")
	},
}

var normalizeSexCmd = &cobra.Command{
	Use:   "sex [value]",
	Short: "Normalize a sex code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, ok := normalize.SexCode(args[0])
		return reportNormalize(out, ok)
	},
}

func reportNormalize(out string, ok bool) error {
	if !ok {
		internal.PrintWarning("⚠ rejected\n")
		return fmt.Errorf("value rejected by normalization")
	}
	internal.PrintSuccess("✓ %s\n", out)
	return nil
}

func init() {
	normalizeCmd.AddCommand(normalizePhoneCmd)
	normalizeCmd.AddCommand(normalizeZipCmd)
	normalizeCmd.AddCommand(normalizeNameCmd)
	normalizeCmd.AddCommand(normalizeSexCmd)
}

// GetNormalizeCommand returns the normalize command.
func GetNormalizeCommand() *cobra.Command {
	return normalizeCmd
}
