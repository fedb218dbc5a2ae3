package knapsack

import (
	"fmt"
	"math"
	"sort"
)

// Filter answers mandatory/forbidden questions for a knapsack without a
// solver: there are no variables and no trail, items are fixed and released
// explicitly.
//
// Filter shares the trees with PropKnapsack and serves as a reference for it
// in tests.
type Filter struct {
	*trees
	state   []ItemState
	used    int // weight of items fixed in
	created int // profit of items fixed in
}

// NewFilter creates a filter over items with the given profits and weights.
func NewFilter(profits, weights []int) (*Filter, error) {
	trees, err := newTrees(profits, weights)
	if err != nil {
		return nil, err
	}
	return &Filter{
		trees: trees,
		state: make([]ItemState, len(profits)),
	}, nil
}

// Len returns the number of items.
func (f *Filter) Len() int {
	return len(f.state)
}

// FixItem packs item i (in = true) or excludes it from the knapsack.
func (f *Filter) FixItem(i int, in bool) error {
	if i < 0 || i >= len(f.state) {
		return fmt.Errorf("%w: item %d", ErrIndexOutOfBounds, i)
	}
	if f.state[i] != Undetermined {
		return fmt.Errorf("%w: item %d is already %v", ErrInconsistentState, i, f.state[i])
	}
	f.deactivate(i)
	if in {
		f.state[i] = Added
		f.used += f.weights[i]
		f.created += f.profits[i]
	} else {
		f.state[i] = Removed
	}
	return nil
}

// ReleaseItem reverts FixItem.
func (f *Filter) ReleaseItem(i int) error {
	if i < 0 || i >= len(f.state) {
		return fmt.Errorf("%w: item %d", ErrIndexOutOfBounds, i)
	}
	switch f.state[i] {
	case Undetermined:
		return fmt.Errorf("%w: item %d is not fixed", ErrInconsistentState, i)
	case Added:
		f.used -= f.weights[i]
		f.created -= f.profits[i]
	}
	f.state[i] = Undetermined
	f.activate(i)
	return nil
}

// Relaxation returns the Dantzig relaxation of the undetermined items for
// the capacity left over by the fixed items.
func (f *Filter) Relaxation(capacity int) Info {
	return f.relax.FindCriticalItem(capacity - f.used)
}

// Bound returns an upper bound of the profit of any packing which respects
// the fixed items, or -Inf if the fixed items exceed capacity.
func (f *Filter) Bound(capacity int) float64 {
	info := f.Relaxation(capacity)
	if info.Index == NoCriticalItem {
		return math.Inf(-1)
	}
	return float64(f.created) + info.Profit
}

// Mandatory returns the undetermined items which every packing of profit at
// least lowerBound contains, in ascending order. If no such packing can exist
// by the relaxation, Mandatory returns nil.
func (f *Filter) Mandatory(capacity, lowerBound int) []int {
	info, lb, ok := f.prepare(capacity, lowerBound)
	if !ok {
		return nil
	}
	items := f.mandatoryItems(info, lb)
	sort.Ints(items)
	return items
}

// Forbidden returns the undetermined items which no packing of profit at
// least lowerBound contains, in ascending order. If no such packing can exist
// by the relaxation, Forbidden returns nil.
func (f *Filter) Forbidden(capacity, lowerBound int) []int {
	info, lb, ok := f.prepare(capacity, lowerBound)
	if !ok {
		return nil
	}
	items := f.forbiddenItems(info, lb)
	sort.Ints(items)
	return items
}

func (f *Filter) prepare(capacity, lowerBound int) (Info, float64, bool) {
	info := f.Relaxation(capacity)
	lb := float64(lowerBound - f.created)
	if info.Index == NoCriticalItem || info.Profit < lb {
		return info, lb, false
	}
	return info, lb, true
}
