package knapsack

import "fmt"

// trees bundles the relaxation tree and the skip-search tree of a knapsack,
// together with the mapping between item indices and leaves.
type trees struct {
	profits, weights    []int // item order
	order, reverseOrder []int
	relax               *RelaxationTree
	skip                *SkipSearchTree
}

func newTrees(profits, weights []int) (*trees, error) {
	order, reverseOrder, err := SortByEfficiency(profits, weights)
	if err != nil {
		return nil, err
	}
	items := sortedItems(profits, weights, order)
	relax, err := NewRelaxationTree(items)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIllegalArguments, err)
	}
	skip, err := NewSkipSearchTree(items)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIllegalArguments, err)
	}
	return &trees{
		profits:      profits,
		weights:      weights,
		order:        order,
		reverseOrder: reverseOrder,
		relax:        relax,
		skip:         skip,
	}, nil
}

// leaf returns the global tree index of item i.
func (k *trees) leaf(i int) int {
	return k.relax.LeafIndex(k.reverseOrder[i])
}

// item returns the item index of the leaf at global index g.
func (k *trees) item(g int) int {
	return k.order[k.relax.LeafPos(g)]
}

func (k *trees) deactivate(i int) {
	g := k.leaf(i)
	err := k.relax.RemoveLeaf(g)
	assert(err == nil, "knapsack: relaxation tree out of sync with items")
	err = k.skip.RemoveLeaf(g)
	assert(err == nil, "knapsack: skip-search tree out of sync with items")
}

func (k *trees) activate(i int) {
	g := k.leaf(i)
	err := k.relax.ActivateLeaf(g)
	assert(err == nil, "knapsack: relaxation tree out of sync with items")
	err = k.skip.ActivateLeaf(g)
	assert(err == nil, "knapsack: skip-search tree out of sync with items")
}

// mandatoryItems scans the active items up to the critical item, in tree
// order. Once an item of weight w has been found not to be mandatory, later
// items of weight ≤ w (closer to the critical item) cannot be mandatory
// either, and are skipped.
func (k *trees) mandatoryItems(info Info, lowerBound float64) []int {
	if info.Index == NoCriticalItem {
		return nil
	}
	bound := info.Index
	if k.relax.IsTrivial(info) {
		bound = k.relax.NodeCount() - 1
	}
	var mandatory []int
	tested, threshold := 0, -1
	for g := k.skip.FindNextRightItem(-1, bound, threshold); g != -1; g = k.skip.FindNextRightItem(g, bound, threshold) {
		tested++
		if k.relax.IsMandatory(info, lowerBound, g) {
			mandatory = append(mandatory, k.item(g))
		} else {
			threshold = max(threshold, k.relax.Leaf(g).Weight)
		}
	}
	tracer().Debugf("knapsack: tested %d items, %d mandatory", tested, len(mandatory))
	return mandatory
}

// forbiddenItems scans the active items after the critical item, from the
// last one backwards, including the critical item if nothing of it is packed. Once an item of weight w has been found not to be
// forbidden, items of weight ≤ w closer to the critical item cannot be
// forbidden either, and are skipped. Items of weight 0 are never forbidden.
func (k *trees) forbiddenItems(info Info, lowerBound float64) []int {
	if info.Index == NoCriticalItem || k.relax.IsTrivial(info) {
		return nil
	}
	bound := k.relax.firstForbiddenCandidate(info)
	var forbidden []int
	tested, threshold := 0, 0
	for g := k.skip.FindPrevHeavierItem(k.relax.NodeCount(), bound, threshold); g != -1; g = k.skip.FindPrevHeavierItem(g, bound, threshold) {
		tested++
		if k.relax.IsForbidden(info, lowerBound, g) {
			forbidden = append(forbidden, k.item(g))
		} else {
			threshold = max(threshold, k.relax.Leaf(g).Weight)
		}
	}
	tracer().Debugf("knapsack: tested %d items, %d forbidden", tested, len(forbidden))
	return forbidden
}
