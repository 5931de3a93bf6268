package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/dachshund/registry"
)

// TypeSpecEntry is one row of a YAML typespec, matching registry.TypeSpecRow
// field for field so a config file's typespec list can be decoded directly.
type TypeSpecEntry struct {
	CoreType    string `yaml:"core_type"`
	EdgeType    string `yaml:"edge_type"`
	NonCoreType string `yaml:"non_core_type"`
}

// Config holds the mining and analysis parameters a --config file can set,
// so a run can be reproduced from a single file instead of a long flag line.
// Flags explicitly passed on the command line override the corresponding
// config file value: applyMineFlagOverrides does this for mine, and
// runAnalyze checks each of its flags the same way.
type Config struct {
	Typespec               []TypeSpecEntry `yaml:"typespec"`
	CoreType               string          `yaml:"core_type"`
	BeamSize               int             `yaml:"beam_size"`
	Alpha                  float32         `yaml:"alpha"`
	GlobalThresh           *float32        `yaml:"global_thresh"`
	LocalThresh            *float32        `yaml:"local_thresh"`
	NumToSearch            int             `yaml:"num_to_search"`
	NumEpochs              int             `yaml:"num_epochs"`
	MaxRepeatedPriorScores int             `yaml:"max_repeated_prior_scores"`
	MinDegree              *int            `yaml:"min_degree"`
	LongFormat             bool            `yaml:"long_format"`
	Debug                  bool            `yaml:"debug"`

	Algorithm string `yaml:"algorithm"`
	K         int    `yaml:"k"`
	Parallel  int    `yaml:"parallel"`
}

// defaultConfig returns the parameter set the original tool ships as
// defaults, before any flag or config file is applied.
func defaultConfig() Config {
	return Config{
		CoreType:               "core",
		BeamSize:               20,
		Alpha:                  1.0,
		NumToSearch:            20,
		NumEpochs:              100,
		MaxRepeatedPriorScores: 3,
		Algorithm:              "connected-components",
		K:                      2,
		Parallel:               1,
	}
}

// loadConfigFile reads and decodes a YAML config at path into cfg, leaving
// any field absent from the file untouched.
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cmd/dachshund: reading config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("cmd/dachshund: parsing config %q: %w", path, err)
	}
	return nil
}

// typeRegistry builds a registry.TypeRegistry from the config's typespec.
func (c *Config) typeRegistry() (*registry.TypeRegistry, error) {
	rows := make([]registry.TypeSpecRow, len(c.Typespec))
	for i, t := range c.Typespec {
		rows[i] = registry.TypeSpecRow{CoreType: t.CoreType, EdgeType: t.EdgeType, NonCoreType: t.NonCoreType}
	}
	return registry.NewTypeRegistry(rows)
}
