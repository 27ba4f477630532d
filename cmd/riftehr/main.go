package main

import (
	"fmt"
	"os"

	"github.com/lesfleursdelanuitdev/riftehr-pedigree/cmd/riftehr/commands"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/cmd/riftehr/internal"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/internal/config"
	"github.com/spf13/cobra"
)

var (
	version    = "1.0.0"
	configPath string
	quiet      bool
	verbose    bool
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:     "riftehr",
	Short:   "Reconstruct familial pedigrees from EHR emergency-contact data",
	Long:    "riftehr links patients through emergency-contact declarations, infers the full relationship closure, and partitions the result into families",
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to load config: %v\n", err)
			cfg = config.DefaultConfig()
		}

		if quiet {
			internal.SetQuietMode(true)
			cfg.Output.Progress = false
		}
		if noColor {
			cfg.Output.Color = false
		}

		internal.InitColor(cfg.Output.Color)
		commands.SetGlobalConfig(cfg, verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (suppress informational and success output)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(commands.GetRunCommand())
	rootCmd.AddCommand(commands.GetNormalizeCommand())
	rootCmd.AddCommand(commands.GetQueryCommand())
	rootCmd.AddCommand(commands.GetExportCommand())
	rootCmd.AddCommand(commands.GetInteractiveCommand())
	rootCmd.AddCommand(commands.GetConfigCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		internal.PrintError("Error: %v\n", err)
		os.Exit(1)
	}
}
