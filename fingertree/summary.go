package fingertree

import (
	"fmt"
	"math"
)

// ProfitWeight is the summary of a sum-aggregated tree: total profit and total
// weight of the active leaves below a node.
type ProfitWeight struct {
	Profit int
	Weight int
}

func (pw ProfitWeight) String() string {
	return fmt.Sprintf("%d/%d", pw.Profit, pw.Weight)
}

// SumMonoid adds up profit and weight.
type SumMonoid struct{}

// Zero returns the empty profit/weight summary.
func (SumMonoid) Zero() ProfitWeight {
	return ProfitWeight{}
}

// Add sums up two profit/weight summaries.
func (SumMonoid) Add(left, right ProfitWeight) ProfitWeight {
	return ProfitWeight{
		Profit: left.Profit + right.Profit,
		Weight: left.Weight + right.Weight,
	}
}

// Leaf summarizes an active item.
func (SumMonoid) Leaf(it Item) ProfitWeight {
	return ProfitWeight{Profit: it.Profit, Weight: it.Weight}
}

var _ SummaryMonoid[ProfitWeight] = SumMonoid{}

// MaxWeightMonoid keeps the maximum weight of active leaves. Subtrees without
// active leaves summarize to math.MinInt.
type MaxWeightMonoid struct{}

// Zero returns math.MinInt.
func (MaxWeightMonoid) Zero() int {
	return math.MinInt
}

// Add returns the larger weight.
func (MaxWeightMonoid) Add(left, right int) int {
	return max(left, right)
}

// Leaf returns the item's weight.
func (MaxWeightMonoid) Leaf(it Item) int {
	return it.Weight
}

var _ SummaryMonoid[int] = MaxWeightMonoid{}

// MinWeightMonoid keeps the minimum weight of active leaves. Subtrees without
// active leaves summarize to math.MaxInt.
type MinWeightMonoid struct{}

// Zero returns math.MaxInt.
func (MinWeightMonoid) Zero() int {
	return math.MaxInt
}

// Add returns the smaller weight.
func (MinWeightMonoid) Add(left, right int) int {
	return min(left, right)
}

// Leaf returns the item's weight.
func (MinWeightMonoid) Leaf(it Item) int {
	return it.Weight
}

var _ SummaryMonoid[int] = MinWeightMonoid{}
