/*
Package metrics exports the work of a knapsack search as Prometheus metrics.

A Search bundles counters for search nodes, failures and solutions, the
depth of the search tree, and the deductions of knapsack propagators. It
registers them with a registry of its own, so several searches in one process
do not collide, and it can write them in the Prometheus text exposition
format.

Search implements solver.Recorder:

	m := metrics.New("kpsolve")
	stats, err := solver.New(model, solver.WithRecorder(m)).FindAll(ctx, nil)
	m.ObserveKnapsack("kp", prop.Stats())
	m.WriteText(os.Stdout)

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package metrics

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'knapsack'
func tracer() tracing.Trace {
	return tracing.Select("knapsack")
}
