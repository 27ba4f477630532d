// Package config holds the riftehr CLI's runtime configuration: output
// styling, checkpoint/report storage locations, and the cleaner's
// high-degree trim threshold. It mirrors query/config.go's
// layered-default pattern (a DefaultConfig plus an optional file that
// overrides individual fields) but serializes with gopkg.in/yaml.v3
// instead of encoding/json.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// OutputConfig controls console rendering.
type OutputConfig struct {
	Color    bool `yaml:"color"`
	Progress bool `yaml:"progress"`
}

// StorageConfig controls where the checkpoint and report stores live.
type StorageConfig struct {
	CheckpointDir string `yaml:"checkpoint_dir"`
	ReportDBPath  string `yaml:"report_db_path"`
	// ReportDBDriver selects the report store's backend: reportstore.DriverSQLite
	// (default, ReportDBPath is a filesystem path) or reportstore.DriverPostgres
	// (ReportDBPath is a connection string, or empty to fall back to DATABASE_URL).
	ReportDBDriver string `yaml:"report_db_driver"`
}

// MatcherConfig holds matcher/cleaner tunables.
type MatcherConfig struct {
	HighMatchThreshold int `yaml:"high_match_threshold"`
}

// Config is the full, loadable configuration.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Storage StorageConfig `yaml:"storage"`
	Matcher MatcherConfig `yaml:"matcher"`
}

// DefaultConfig returns the configuration used when no file is given or
// a field is left unset in one, including the matcher's `--high_match`
// default of 20.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Color:    true,
			Progress: true,
		},
		Storage: StorageConfig{
			CheckpointDir:  ".riftehr/checkpoint",
			ReportDBPath:   ".riftehr/report.db",
			ReportDBDriver: "sqlite3",
		},
		Matcher: MatcherConfig{
			HighMatchThreshold: 20,
		},
	}
}

// Load reads path as YAML and overlays it on DefaultConfig. An empty path
// returns the defaults unchanged rather than treating a missing path as
// an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, used by `riftehr config init`.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
