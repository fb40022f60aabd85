// SPDX-License-Identifier: MIT

// Package cowmetrics exports matrix storage events as Prometheus metrics.
//
// A Collector implements matrix.Observer. Install it on any number of
// handles with matrix.WithObserver; it is safe for concurrent use.
//
//	reg := prometheus.NewRegistry()
//	col, _ := cowmetrics.New(reg)
//	m, _ := matrix.New[float64](128, 128, matrix.WithObserver(col))
//
// Exported series:
//   - cowmatrix_events_total{op}: one increment per matrix.Event, labelled by Op.
//   - cowmatrix_cells_copied_total: elements written into fresh storage by
//     clones, reshapes and replacements.
package cowmetrics

import (
	"fmt"

	"github.com/katalvlaran/cowmatrix/matrix"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cowmatrix"

// Collector counts matrix storage events.
type Collector struct {
	events *prometheus.CounterVec
	cells  prometheus.Counter
}

var _ matrix.Observer = (*Collector)(nil)

// New builds a Collector and registers its metrics on reg.
// A nil reg leaves the metrics unregistered (useful in tests).
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Matrix storage events by operation.",
		}, []string{"op"}),
		cells: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cells_copied_total",
			Help:      "Elements copied into freshly allocated matrix storage.",
		}),
	}
	if reg == nil {
		return c, nil
	}
	for _, col := range []prometheus.Collector{c.events, c.cells} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("cowmetrics: register: %w", err)
		}
	}

	return c, nil
}

// Observe implements matrix.Observer.
func (c *Collector) Observe(e matrix.Event) {
	c.events.WithLabelValues(string(e.Op)).Inc()
	if e.Cells > 0 {
		c.cells.Add(float64(e.Cells))
	}
}

// Events returns the counter for op; intended for tests and diagnostics.
func (c *Collector) Events(op matrix.Op) prometheus.Counter {
	return c.events.WithLabelValues(string(op))
}

// CellsCopied returns the copied-cells counter.
func (c *Collector) CellsCopied() prometheus.Counter { return c.cells }
