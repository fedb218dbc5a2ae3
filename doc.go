/*
Package knapsack implements an incremental propagator for the 0/1 knapsack
constraint.

Knapsack

A knapsack constraint links 0/1 item variables x_i, a capacity variable and a
power (profit) variable:

	Σ weight_i·x_i ≤ capacity   and   Σ profit_i·x_i = power

The propagator follows Katriel, Sellmann, Upfal and Van Hentenryck ("Propagating
Knapsack Constraints in Sublinear Time", AAAI 2007). It keeps the items, sorted
by decreasing efficiency profit/weight, at the leaves of array-indexed complete
binary trees (see package fingertree):

  - a RelaxationTree sums up profit and weight. Descending it finds the critical
    item of the Dantzig relaxation, the item which is split fractionally when
    filling the capacity greedily. The relaxation's value is an upper bound on
    the profit of any integral packing.

  - a SkipSearchTree keeps maximum and minimum weights. Scanning for mandatory
    and forbidden items uses it to jump over items which cannot change the
    outcome of the scan.

An item is mandatory if leaving it out drops the relaxation below the lower
bound of the power variable; an item is forbidden if packing it does. Both
tests walk the relaxation tree from the critical item outwards in O(log n).

Items fixed by search or by other propagators are deactivated in the trees.
Every deactivation is paired with an ItemReactivation entry on the search
trail, so backtracking restores the trees exactly.

Besides the propagator, Filter offers the same reasoning without a solver.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package knapsack

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// tracer writes to trace with key 'knapsack'
func tracer() tracing.Trace {
	return tracing.Select("knapsack")
}

// KnapsackError is an error type for the knapsack module
type KnapsackError string

func (e KnapsackError) Error() string {
	return string(e)
}

// ErrIllegalArguments is flagged whenever construction parameters are invalid,
// e.g. arrays of different length or negative weights.
const ErrIllegalArguments = KnapsackError("illegal arguments")

// ErrIndexOutOfBounds is flagged whenever an item index is not within the
// item range.
const ErrIndexOutOfBounds = KnapsackError("index out of bounds")

// ErrInconsistentState is flagged if an item is fixed in contradicting ways,
// e.g. released without having been fixed.
const ErrInconsistentState = KnapsackError("inconsistent item state")

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
