/*
Package cp holds the building blocks shared by propagators and the solver:
bounded integer variables, event masks, contradictions and the propagator
contract.

Variables keep an interval domain [LB, UB]. Every domain change is saved to a
trail.Environment, so backtracking restores domains exactly, and reported to a
Notifier (usually the propagation engine), which wakes up the propagators
registered for the event.

A domain which would become empty is not modified; the operation returns a
*Contradiction instead. Contradictions are the one expected failure during
search and unwind to the search driver.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package cp

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'knapsack.solver'
func tracer() tracing.Trace {
	return tracing.Select("knapsack.solver")
}
