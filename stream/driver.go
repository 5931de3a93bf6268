// Package stream drives line-oriented input through a LineProcessor and a
// per-graph BatchHandler: consecutive lines sharing one graph id form a
// batch, handed to a fresh handler instance once the id changes or the
// input ends. A dedicated writer goroutine drains completed output so batch
// construction is never blocked on I/O, the same split the original tool's
// worker-thread/writer-thread design makes around a channel.
package stream

import (
	"bufio"
	"context"
	"errors"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/dachshund/ids"
	"github.com/katalvlaran/dachshund/row"
)

// ErrNoInputRows indicates the input produced no parseable rows at all.
var ErrNoInputRows = errors.New("stream: no input rows")

// LineProcessor turns one input line into a tagged Row.
type LineProcessor interface {
	ProcessLine(line string) (row.Row, error)
}

// BatchHandler accumulates one graph's rows and, once the batch is
// complete, produces the output lines for that graph. A fresh handler is
// used per batch, so a handler need not support being reset.
type BatchHandler interface {
	ProcessRow(r row.Row) error
	ProcessBatch(graphID ids.GraphId) ([]string, error)
}

// HandlerFactory produces a fresh, empty BatchHandler for one batch.
type HandlerFactory func() BatchHandler

// Driver ties a LineProcessor to a HandlerFactory and runs the batching loop
// described in the package doc.
type Driver struct {
	Processor  LineProcessor
	NewHandler HandlerFactory
}

// New constructs a Driver.
func New(processor LineProcessor, newHandler HandlerFactory) *Driver {
	return &Driver{Processor: processor, NewHandler: newHandler}
}

// batch groups a run of consecutive rows sharing one graph id.
type batch struct {
	graphID ids.GraphId
	rows    []row.Row
}

// scanBatches reads r line by line, parses each line (skipping lines that
// fail with row.ErrMalformedLine and returning any other error), and emits a batch
// every time the graph id changes (input is assumed grouped by graph id, as
// the original tool requires). It closes batches when done.
func (d *Driver) scanBatches(r io.Reader, batches chan<- batch) error {
	defer close(batches)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var current *batch
	sawRow := false
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		parsed, err := d.Processor.ProcessLine(line)
		if err != nil {
			if errors.Is(err, row.ErrMalformedLine) {
				continue // wrong field count: skip the line; bad tokens still abort
			}
			return err
		}
		sawRow = true

		gid := parsed.GraphID()
		if current != nil && current.graphID != gid {
			batches <- *current
			current = nil
		}
		if current == nil {
			current = &batch{graphID: gid}
		}
		current.rows = append(current.rows, parsed)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if current != nil {
		batches <- *current
	}
	if !sawRow {
		return ErrNoInputRows
	}
	return nil
}

// Run processes batches one at a time: each batch's output lines are handed
// to the writer goroutine before the next batch's handler starts. Input
// scanning may run one batch ahead.
func (d *Driver) Run(r io.Reader, w io.Writer) error {
	return d.run(r, w, 1)
}

// RunParallel processes up to concurrency batches at once. Batches are
// independent graphs, so concurrent completion is safe, but the relative
// order of output lines across different graphs is not guaranteed.
func (d *Driver) RunParallel(r io.Reader, w io.Writer, concurrency int) error {
	if concurrency < 1 {
		concurrency = 1
	}
	return d.run(r, w, concurrency)
}

func (d *Driver) run(r io.Reader, w io.Writer, concurrency int) error {
	batches := make(chan batch, concurrency)
	lines := make(chan string, concurrency*4)

	var writerWg sync.WaitGroup
	writerWg.Add(1)
	bw := bufio.NewWriter(w)
	go func() {
		defer writerWg.Done()
		for line := range lines {
			_, _ = bw.WriteString(line)
			_, _ = bw.WriteString("\n")
		}
		_ = bw.Flush()
	}()

	scanErrCh := make(chan error, 1)
	go func() {
		scanErrCh <- d.scanBatches(r, batches)
	}()

	g, _ := errgroup.WithContext(context.Background())
	sem := make(chan struct{}, concurrency)
	for b := range batches {
		b := b
		sem <- struct{}{}
		g.Go(func() error {
			defer func() { <-sem }()

			handler := d.NewHandler()
			for _, rr := range b.rows {
				if err := handler.ProcessRow(rr); err != nil {
					return err
				}
			}
			out, err := handler.ProcessBatch(b.graphID)
			if err != nil {
				return err
			}
			for _, line := range out {
				lines <- line
			}
			return nil
		})
	}

	groupErr := g.Wait()
	close(lines)
	writerWg.Wait()

	if scanErr := <-scanErrCh; scanErr != nil {
		return scanErr
	}
	return groupErr
}
