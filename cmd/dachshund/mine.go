package main

import (
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/dachshund/beam"
	"github.com/katalvlaran/dachshund/row"
	"github.com/katalvlaran/dachshund/stream"
)

var mineFlags struct {
	input, output          string
	coreType               string
	beamSize               int
	alpha                  float32
	globalThresh           float32
	localThresh            float32
	numToSearch            int
	numEpochs              int
	maxRepeatedPriorScores int
	minDegree              int
	longFormat             bool
}

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Run the beam search for (quasi-)bicliques over streamed typed-edge rows",
	RunE:  runMine,
}

func init() {
	rootCmd.AddCommand(mineCmd)

	f := mineCmd.Flags()
	f.StringVar(&mineFlags.input, "input", "", "input file (default stdin)")
	f.StringVar(&mineFlags.output, "output", "", "output file (default stdout)")
	f.StringVar(&mineFlags.coreType, "core-type", "", "core node type name")
	f.IntVar(&mineFlags.beamSize, "beam-size", 0, "beam width")
	f.Float32Var(&mineFlags.alpha, "alpha", 0, "cliqueness weight in the score formula")
	f.Float32Var(&mineFlags.globalThresh, "global-thresh", 0, "minimum global cliqueness to keep a candidate")
	f.Float32Var(&mineFlags.localThresh, "local-thresh", 0, "minimum local-density guarantee to keep a candidate")
	f.IntVar(&mineFlags.numToSearch, "num-to-search", 0, "candidates examined per epoch")
	f.IntVar(&mineFlags.numEpochs, "num-epochs", 0, "maximum epochs before giving up")
	f.IntVar(&mineFlags.maxRepeatedPriorScores, "max-repeated-prior-scores", 0, "epochs a repeated top score is tolerated before stopping")
	f.IntVar(&mineFlags.minDegree, "min-degree", 0, "prune nodes under this degree before searching")
	f.BoolVar(&mineFlags.longFormat, "long-format", false, "emit one output row per candidate member instead of one wide row")
}

func runMine(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyMineFlagOverrides(cmd, &cfg)

	reg, err := cfg.typeRegistry()
	if err != nil {
		return err
	}

	problem := beam.SearchProblem{
		BeamSize:               cfg.BeamSize,
		Alpha:                  cfg.Alpha,
		GlobalThresh:           cfg.GlobalThresh,
		LocalThresh:            cfg.LocalThresh,
		NumToSearch:            cfg.NumToSearch,
		NumEpochs:              cfg.NumEpochs,
		MaxRepeatedPriorScores: cfg.MaxRepeatedPriorScores,
		Verbose:                cfg.Debug,
	}

	driver := stream.New(
		&row.TypedLineProcessor{CoreType: cfg.CoreType, Registry: reg},
		stream.NewMiningHandlerFactory(stream.MiningConfig{
			Registry:   reg,
			MinDegree:  cfg.MinDegree,
			Problem:    problem,
			LongFormat: cfg.LongFormat,
			Logger:     &log,
		}),
	)

	in, out, closeFn, err := openStreams(mineFlags.input, mineFlags.output)
	if err != nil {
		return err
	}
	defer closeFn()

	start := time.Now()
	log.Debug().Str("core_type", cfg.CoreType).Int("beam_size", cfg.BeamSize).Msg("mine starting")
	err = driver.Run(in, out)
	log.Debug().Dur("elapsed", time.Since(start)).Err(err).Msg("mine finished")
	return err
}

// applyMineFlagOverrides layers every mine flag the caller actually set
// over cfg, so an unset flag falls back to the config file or default
// rather than clobbering it with a zero value.
func applyMineFlagOverrides(cmd *cobra.Command, cfg *Config) {
	f := cmd.Flags()
	if f.Changed("core-type") {
		cfg.CoreType = mineFlags.coreType
	}
	if f.Changed("beam-size") {
		cfg.BeamSize = mineFlags.beamSize
	}
	if f.Changed("alpha") {
		cfg.Alpha = mineFlags.alpha
	}
	if f.Changed("global-thresh") {
		v := mineFlags.globalThresh
		cfg.GlobalThresh = &v
	}
	if f.Changed("local-thresh") {
		v := mineFlags.localThresh
		cfg.LocalThresh = &v
	}
	if f.Changed("num-to-search") {
		cfg.NumToSearch = mineFlags.numToSearch
	}
	if f.Changed("num-epochs") {
		cfg.NumEpochs = mineFlags.numEpochs
	}
	if f.Changed("max-repeated-prior-scores") {
		cfg.MaxRepeatedPriorScores = mineFlags.maxRepeatedPriorScores
	}
	if f.Changed("min-degree") {
		v := mineFlags.minDegree
		cfg.MinDegree = &v
	}
	if f.Changed("long-format") {
		cfg.LongFormat = mineFlags.longFormat
	}
}

// openStreams resolves --input/--output to concrete readers/writers,
// falling back to stdin/stdout, and returns a cleanup func that closes
// whichever of them were opened as real files.
func openStreams(inputPath, outputPath string) (io.Reader, io.Writer, func(), error) {
	var in io.Reader = os.Stdin
	var out io.Writer = os.Stdout
	var closers []io.Closer

	if inputPath != "" {
		f, err := os.Open(inputPath)
		if err != nil {
			return nil, nil, nil, err
		}
		in = f
		closers = append(closers, f)
	}
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return nil, nil, nil, err
		}
		out = f
		closers = append(closers, f)
	}

	return in, out, func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}, nil
}
