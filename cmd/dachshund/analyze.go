package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/dachshund/row"
	"github.com/katalvlaran/dachshund/stream"
)

var analyzeFlags struct {
	input, output string
	algorithm     string
	k             int
	parallel      int
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a companion graph analysis over streamed simple-edge rows",
	Long: "Runs one of connected-components, k-core, coreness, k-truss, k-peaks,\n" +
		"betweenness, eigenvector, transitivity, cnm, or cycles over every batch\n" +
		"of the input, grouped by graph key.",
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	f := analyzeCmd.Flags()
	f.StringVar(&analyzeFlags.input, "input", "", "input file (default stdin)")
	f.StringVar(&analyzeFlags.output, "output", "", "output file (default stdout)")
	f.StringVar(&analyzeFlags.algorithm, "algorithm", "", "connected-components|k-core|coreness|k-truss|k-peaks|betweenness|eigenvector|transitivity|cnm|cycles")
	f.IntVar(&analyzeFlags.k, "k", 0, "k parameter for k-core/k-truss")
	f.IntVar(&analyzeFlags.parallel, "parallel", 0, "number of graph batches to process concurrently")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("algorithm") {
		cfg.Algorithm = analyzeFlags.algorithm
	}
	if cmd.Flags().Changed("k") {
		cfg.K = analyzeFlags.k
	}
	if cmd.Flags().Changed("parallel") {
		cfg.Parallel = analyzeFlags.parallel
	}

	alg := stream.Algorithm(cfg.Algorithm)
	if !isKnownAlgorithm(alg) {
		return fmt.Errorf("cmd/dachshund: unknown --algorithm %q", cfg.Algorithm)
	}

	driver := stream.New(
		row.NewSimpleLineProcessor(),
		stream.NewAnalyticsHandlerFactory(stream.AnalyticsConfig{
			Algorithm: alg,
			K:         cfg.K,
			Logger:    &log,
		}),
	)

	in, out, closeFn, err := openStreams(analyzeFlags.input, analyzeFlags.output)
	if err != nil {
		return err
	}
	defer closeFn()

	if cfg.Parallel > 1 {
		return driver.RunParallel(in, out, cfg.Parallel)
	}
	return driver.Run(in, out)
}

func isKnownAlgorithm(alg stream.Algorithm) bool {
	switch alg {
	case stream.ConnectedComponentsAlgorithm,
		stream.KCoreAlgorithm,
		stream.CorenessAlgorithm,
		stream.KTrussAlgorithm,
		stream.KPeaksAlgorithm,
		stream.BetweennessAlgorithm,
		stream.EigenvectorAlgorithm,
		stream.TransitivityAlgorithm,
		stream.CNMAlgorithm,
		stream.CyclesAlgorithm:
		return true
	default:
		return false
	}
}
