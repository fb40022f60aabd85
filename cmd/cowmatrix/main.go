// SPDX-License-Identifier: MIT

// cowmatrix demonstrates copy-on-write sharing of a matrix.
//
// It builds a rows×cols matrix filled with 1..rows*cols, shares it, writes
// through the copy, reshapes the copy and prints both handles with their
// reference counts. With --metrics the storage event counters are printed
// at the end.
//
//	cowmatrix --rows 3 --cols 3 --insert-row 1 --erase-col 0 --verbose
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/katalvlaran/cowmatrix/matrix"
	"github.com/katalvlaran/cowmatrix/matrix/cowmetrics"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type config struct {
	rows, cols int
	insertRow  int
	eraseCol   int
	verbose    bool
	metrics    bool
}

func run(args []string, out io.Writer) error {
	var cfg config

	flagSet := pflag.NewFlagSet("cowmatrix", pflag.ContinueOnError)
	flagSet.SetOutput(out)
	flagSet.IntVar(&cfg.rows, "rows", 3, "number of rows")
	flagSet.IntVar(&cfg.cols, "cols", 3, "number of columns")
	flagSet.IntVar(&cfg.insertRow, "insert-row", -1, "insert a row of zeros into the copy before this index (-1 to skip)")
	flagSet.IntVar(&cfg.eraseCol, "erase-col", -1, "erase this column from the copy (-1 to skip)")
	flagSet.BoolVarP(&cfg.verbose, "verbose", "v", false, "log storage events to stderr")
	flagSet.BoolVar(&cfg.metrics, "metrics", false, "print storage event counters")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	logger := zap.NewNop()
	if cfg.verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		logger = l
	}
	defer func() { _ = logger.Sync() }()

	reg := prometheus.NewRegistry()
	col, err := cowmetrics.New(reg)
	if err != nil {
		return err
	}

	return demo(cfg, out, reg, matrix.WithLogger(logger), matrix.WithObserver(col))
}

func demo(cfg config, out io.Writer, reg *prometheus.Registry, opts ...matrix.Option) error {
	m, err := matrix.New[int](cfg.rows, cfg.cols, opts...)
	if err != nil {
		return err
	}
	for i := 0; i < cfg.rows; i++ {
		for j := 0; j < cfg.cols; j++ {
			if err = m.Set(i, j, i*cfg.cols+j+1); err != nil {
				return err
			}
		}
	}

	c := m.Share()
	printHandles(out, "shared", m, c)

	if cfg.rows > 0 && cfg.cols > 0 {
		if err = c.Set(0, 0, -1); err != nil {
			return err
		}
		printHandles(out, "after write", m, c)
	}

	if cfg.insertRow >= 0 {
		if err = c.InsertRow(make([]int, c.Cols()), cfg.insertRow); err != nil {
			return err
		}
		printHandles(out, "after insert-row", m, c)
	}

	if cfg.eraseCol >= 0 {
		it := c.BeginColumn()
		for i := 0; i < cfg.eraseCol && !it.IsEnd(); i++ {
			it.Advance()
		}
		if _, err = c.EraseColumn(it); err != nil {
			return err
		}
		printHandles(out, "after erase-col", m, c)
	}

	c.Release()
	m.Release()

	if cfg.metrics {
		return printMetrics(out, reg)
	}

	return nil
}

func printHandles(out io.Writer, stage string, m, c *matrix.Matrix[int]) {
	fmt.Fprintf(out, "== %s\n", stage)
	fmt.Fprintf(out, "original %dx%d refs=%d\n%s", m.Rows(), m.Cols(), m.RefCount(), m)
	fmt.Fprintf(out, "copy     %dx%d refs=%d\n%s", c.Rows(), c.Cols(), c.RefCount(), c)
}

func printMetrics(out io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	fmt.Fprintln(out, "== metrics")
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			var labels []string
			for _, lp := range metric.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			fmt.Fprintf(out, "%s %g\n", name, metric.GetCounter().GetValue())
		}
	}

	return nil
}
