/*
Package solver is a small constraint solver to run knapsack propagators in.

A Model holds bounded integer variables and propagators. Variables report
domain changes to the model's Engine, which wakes up the propagators watching
the variable, and runs coarse propagations until a fixpoint is reached or a
contradiction is detected.

A Solver enumerates all solutions of a model by depth-first search, branching
on the decision variables in input order and trying the smallest value first.
Every decision opens a new world on the model's trail, which is popped when
the decision has been explored.

	m := solver.NewModel("kp")
	items, _ := m.BoolVarArray("x", len(weights))
	capacity, _ := m.IntVar("capacity", 0, 20)
	power, _ := m.IntVar("power", 25, 35)
	m.Knapsack(items, capacity, power, weights, profits)
	stats, err := solver.New(m, solver.WithDecisionVars(items...)).FindAll(ctx, onSolution)

The solver does not optimize; it enumerates.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package solver

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'knapsack.solver'
func tracer() tracing.Trace {
	return tracing.Select("knapsack.solver")
}

// Errors returned by models and solvers.
var (
	ErrIllegalArguments = errors.New("solver: illegal arguments")
	ErrUnknownVariable  = errors.New("solver: variable does not belong to model")
)
