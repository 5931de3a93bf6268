package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rs/zerolog"
)

// version is stamped at build time via -ldflags; "dev" otherwise.
var version = "dev"

var (
	configPath string
	debug      bool

	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:     "dachshund",
	Short:   "Mine dense typed-bipartite subgraphs and run companion graph analytics",
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log = newLogger(debug)
	},
}

// Execute runs the root command, exiting non-zero on failure. Per the
// module's exit discipline, os.Exit is only ever called from this package,
// never from a library package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "emit per-epoch and per-batch debug events")
}

// loadConfig starts from defaultConfig, layers configPath over it if set,
// then returns the base the caller should apply its own flag overrides to.
func loadConfig() (Config, error) {
	cfg := defaultConfig()
	if configPath != "" {
		if err := loadConfigFile(configPath, &cfg); err != nil {
			return cfg, err
		}
	}
	cfg.Debug = cfg.Debug || debug
	return cfg, nil
}
