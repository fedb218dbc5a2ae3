/*
Package fingertree provides an array-indexed, augmented complete binary tree
over knapsack items.

The name is historical: this is not the persistent finger tree of Hinze and
Paterson, but a complete binary tree laid out in a single index space, where
navigating to a node's "finger neighbor" (the node at the same depth one step
to the left or right) is plain index arithmetic.

Layout:
  - m = 2^⌈log2 n⌉ − 1 inner nodes occupy indices 0..m−1,
  - the n leaves follow at indices m..m+n−1 (global = leafPos + m),
  - leaf slots m+n..2m are padding and always summarize to the monoid's Zero,
  - children of i are 2i+1 and 2i+2, the parent of i is (i−1)/2.

Leaves hold items in a fixed order (the knapsack code sorts them by decreasing
efficiency before handing them over). Items are never removed physically:
deactivating a leaf keeps its position stable and makes it summarize to Zero,
which is what allows O(log n) reactivation.

Inner nodes carry a summary computed with a SummaryMonoid. Summaries are always
recomputed from the two children, never adjusted incrementally, so RemoveLeaf
and ActivateLeaf are exact inverses of each other.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package fingertree

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'knapsack'
func tracer() tracing.Trace {
	return tracing.Select("knapsack")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
