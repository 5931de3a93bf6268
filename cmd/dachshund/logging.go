package main

import (
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// newLogger builds the run's structured logger: console-pretty when stderr
// is a terminal, JSON otherwise, so piping dachshund's stdout data stream
// never mixes with its log stream. Every event carries the run's uuid so a
// multi-batch run can be grepped out of a shared aggregator.
func newLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	var writer zerolog.ConsoleWriter
	var logger zerolog.Logger
	if isatty.IsTerminal(os.Stderr.Fd()) {
		writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
		logger = zerolog.New(writer)
	} else {
		logger = zerolog.New(os.Stderr)
	}

	runID := uuid.New().String()
	return logger.Level(level).With().Timestamp().Str("run_id", runID).Logger()
}
