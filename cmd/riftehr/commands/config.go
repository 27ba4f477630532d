package commands

import (
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/cmd/riftehr/internal"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage riftehr's configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration to a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Save(config.DefaultConfig(), args[0]); err != nil {
			internal.PrintError("✗ %v\n", err)
			return err
		}
		internal.PrintSuccess("✓ Wrote default configuration to %s\n", args[0])
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the currently active configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := activeConfig()
		internal.PrintInfo("output.color: %v\n", cfg.Output.Color)
		internal.PrintInfo("output.progress: %v\n", cfg.Output.Progress)
		internal.PrintInfo("storage.checkpoint_dir: %s\n", cfg.Storage.CheckpointDir)
		internal.PrintInfo("storage.report_db_path: %s\n", cfg.Storage.ReportDBPath)
		internal.PrintInfo("storage.report_db_driver: %s\n", cfg.Storage.ReportDBDriver)
		internal.PrintInfo("matcher.high_match_threshold: %d\n", cfg.Matcher.HighMatchThreshold)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

// GetConfigCommand returns the config command.
func GetConfigCommand() *cobra.Command {
	return configCmd
}
