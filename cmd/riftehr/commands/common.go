// Package commands holds one file per riftehr subcommand: each file
// defines its cobra.Command var(s), a Get<Name>Command accessor, and a
// runXxx function that loads config, prints progress through
// cmd/riftehr/internal, and calls into pkg/riftehr/... .
package commands

import (
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/internal/config"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/model"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/pipeline"
)

var (
	globalConfig  *config.Config
	globalVerbose bool
)

// SetGlobalConfig is called once from main's PersistentPreRun so every
// subcommand's RunE sees the same loaded configuration and verbosity
// flag without having to reload it per command.
func SetGlobalConfig(cfg *config.Config, verbose bool) {
	globalConfig = cfg
	globalVerbose = verbose
}

func activeConfig() *config.Config {
	if globalConfig == nil {
		return config.DefaultConfig()
	}
	return globalConfig
}

// loadPatientsIndexed loads a patient TSV and indexes it by MRN, for
// subcommands (export, interactive) that need to look patients up by id
// rather than iterate them in file order.
func loadPatientsIndexed(path string) (map[string]model.Patient, int, error) {
	rows, dropped, err := pipeline.LoadPatients(path)
	if err != nil {
		return nil, 0, err
	}
	out := make(map[string]model.Patient, len(rows))
	for _, p := range rows {
		out[p.MRN] = p
	}
	return out, dropped, nil
}

// loadDemographicsIndexed mirrors loadPatientsIndexed for demographics.
func loadDemographicsIndexed(path string) (map[string]model.Demographic, pipeline.DemographicsIngestStats, error) {
	rows, stats, err := pipeline.LoadDemographics(path)
	if err != nil {
		return nil, pipeline.DemographicsIngestStats{}, err
	}
	out := make(map[string]model.Demographic, len(rows))
	for _, d := range rows {
		out[d.MRN] = d
	}
	return out, stats, nil
}
