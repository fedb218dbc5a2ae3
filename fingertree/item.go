package fingertree

import (
	"fmt"
	"math"
)

// Item is a knapsack item. Inactive items keep their place in a tree but
// contribute nothing to its summaries.
type Item struct {
	Profit int
	Weight int
	active bool
}

// NewItem creates an active item.
func NewItem(profit, weight int) Item {
	return Item{Profit: profit, Weight: weight, active: true}
}

// IsActive is true if the item contributes to tree summaries.
func (it Item) IsActive() bool {
	return it.active
}

// Activate sets the item active.
func (it *Item) Activate() {
	it.active = true
}

// Deactivate sets the item inactive.
func (it *Item) Deactivate() {
	it.active = false
}

// Efficiency is profit per unit of weight. Items of weight 0 have
// infinite efficiency.
func (it Item) Efficiency() float64 {
	if it.Weight == 0 {
		return math.Inf(1)
	}
	return float64(it.Profit) / float64(it.Weight)
}

func (it Item) String() string {
	if it.active {
		return fmt.Sprintf("(%d,%d)", it.Profit, it.Weight)
	}
	return fmt.Sprintf("(%d,%d)-", it.Profit, it.Weight)
}

func (it Item) validate() error {
	if it.Profit < 0 || it.Weight < 0 {
		return fmt.Errorf("%w: profit=%d weight=%d", ErrInvalidItem, it.Profit, it.Weight)
	}
	return nil
}
