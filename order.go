package knapsack

import (
	"fmt"
	"sort"

	"github.com/npillmayer/knapsack/fingertree"
)

// Item is the item type stored at the leaves of the trees.
type Item = fingertree.Item

// SortByEfficiency returns the permutation of item indices which orders items
// by strictly decreasing efficiency profit/weight, together with its inverse:
// order[leafPos] = itemIndex and reverseOrder[itemIndex] = leafPos.
//
// Efficiencies are compared by cross-multiplication. Items of weight 0 come
// first. Ties are broken by larger weight first, then by larger profit, then by
// item index, which makes the order total.
func SortByEfficiency(profits, weights []int) (order, reverseOrder []int, err error) {
	if len(profits) != len(weights) {
		return nil, nil, fmt.Errorf("%w: %d profits but %d weights", ErrIllegalArguments,
			len(profits), len(weights))
	}
	for i := range profits {
		if profits[i] < 0 || weights[i] < 0 {
			return nil, nil, fmt.Errorf("%w: item %d has profit %d, weight %d", ErrIllegalArguments,
				i, profits[i], weights[i])
		}
	}
	order = make([]int, len(profits))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(x, y int) bool {
		return moreEfficient(order[x], order[y], profits, weights)
	})
	reverseOrder = make([]int, len(order))
	for pos, i := range order {
		reverseOrder[i] = pos
	}
	return order, reverseOrder, nil
}

func moreEfficient(a, b int, profits, weights []int) bool {
	pa, wa, pb, wb := profits[a], weights[a], profits[b], weights[b]
	switch {
	case wa == 0 && wb != 0:
		return true
	case wb == 0 && wa != 0:
		return false
	case wa != 0: // both weights positive
		if l, r := pa*wb, pb*wa; l != r {
			return l > r
		}
		if wa != wb {
			return wa > wb
		}
	}
	if pa != pb {
		return pa > pb
	}
	return a < b
}

// sortedItems creates the leaves of a tree from items in caller order.
func sortedItems(profits, weights, order []int) []Item {
	items := make([]Item, len(order))
	for pos, i := range order {
		items[pos] = fingertree.NewItem(profits[i], weights[i])
	}
	return items
}
