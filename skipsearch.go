package knapsack

import (
	"github.com/npillmayer/knapsack/fingertree"
)

// SkipSearchTree keeps the maximum and the minimum weight of active items.
// It is used to find the next item worth testing during a scan, skipping
// whole subtrees of items which cannot change the scan's outcome.
type SkipSearchTree struct {
	maxTree *fingertree.Tree[int]
	minTree *fingertree.Tree[int]
}

// NewSkipSearchTree creates trees over items, which have to be in the same
// order as for the corresponding RelaxationTree.
func NewSkipSearchTree(items []Item) (*SkipSearchTree, error) {
	maxTree, err := fingertree.New(fingertree.Config[int]{Monoid: fingertree.MaxWeightMonoid{}}, items)
	if err != nil {
		return nil, err
	}
	minTree, err := fingertree.New(fingertree.Config[int]{Monoid: fingertree.MinWeightMonoid{}}, items)
	if err != nil {
		return nil, err
	}
	return &SkipSearchTree{maxTree: maxTree, minTree: minTree}, nil
}

// NodeCount returns the first global index past the last item.
func (t *SkipSearchTree) NodeCount() int {
	return t.maxTree.NodeCount()
}

// NodeWeight returns the maximum weight of active items below node i.
func (t *SkipSearchTree) NodeWeight(i int) int {
	return t.maxTree.Summary(i)
}

// MinNodeWeight returns the minimum weight of active items below node i.
func (t *SkipSearchTree) MinNodeWeight(i int) int {
	return t.minTree.Summary(i)
}

// RemoveLeaf deactivates the item at global index i in both trees.
func (t *SkipSearchTree) RemoveLeaf(i int) error {
	if err := t.maxTree.RemoveLeaf(i); err != nil {
		return err
	}
	return t.minTree.RemoveLeaf(i)
}

// ActivateLeaf re-activates the item at global index i in both trees.
func (t *SkipSearchTree) ActivateLeaf(i int) error {
	if err := t.maxTree.ActivateLeaf(i); err != nil {
		return err
	}
	return t.minTree.ActivateLeaf(i)
}

// Check validates both trees.
func (t *SkipSearchTree) Check() error {
	if err := t.maxTree.Check(); err != nil {
		return err
	}
	return t.minTree.Check()
}

// FindNextRightItem returns the first active leaf after start and not after
// boundIndex with a weight greater than weightThreshold, or -1. A start before
// the first leaf searches from the first leaf.
func (t *SkipSearchTree) FindNextRightItem(start, boundIndex, weightThreshold int) int {
	return findNext(t.maxTree, start, boundIndex, true, func(w int) bool {
		return w > weightThreshold
	})
}

// FindNextLeftItem returns the last active leaf before start and not before
// boundIndex with a weight less than weightThreshold, or -1. A start past the
// last leaf searches from the last leaf.
func (t *SkipSearchTree) FindNextLeftItem(start, boundIndex, weightThreshold int) int {
	return findNext(t.minTree, start, boundIndex, false, func(w int) bool {
		return w < weightThreshold
	})
}

// FindPrevHeavierItem returns the last active leaf before start and not before
// boundIndex with a weight greater than weightThreshold, or -1. A start past
// the last leaf searches from the last leaf.
func (t *SkipSearchTree) FindPrevHeavierItem(start, boundIndex, weightThreshold int) int {
	return findNext(t.maxTree, start, boundIndex, false, func(w int) bool {
		return w > weightThreshold
	})
}

// findNext searches for the closest leaf beyond start whose summary is accepted.
// accept has to be monotone with respect to the monoid: a node is accepted iff
// one of its children is. The monoids' neutral elements are never accepted,
// so inactive leaves and padding are skipped.
func findNext(tree *fingertree.Tree[int], start, bound int, right bool, accept func(int) bool) int {
	if tree.LeafCount() == 0 {
		return -1
	}
	first, last := tree.LeafIndex(0), tree.NodeCount()-1
	var i int
	switch {
	case right && start > last, !right && start < first:
		return -1
	case right && start < first, !right && start > last:
		if !accept(tree.Root()) {
			return -1
		}
		i = descend(tree, 0, right, accept)
	default:
		i = start
		for {
			next, err := tree.NextNode(i, right)
			if err != nil {
				return -1
			}
			if right && tree.LeftmostLeaf(next) > bound || !right && tree.RightmostLeaf(next) < bound {
				return -1
			}
			if accept(tree.Summary(next)) {
				i = descend(tree, next, right, accept)
				break
			}
			i = next
		}
	}
	if right && i > bound || !right && i < bound {
		return -1
	}
	return i
}

// descend finds the leaf closest to the near side below an accepted node i.
func descend(tree *fingertree.Tree[int], i int, right bool, accept func(int) bool) int {
	for tree.IsInnerNode(i) {
		near, far := tree.LeftChild(i), tree.RightChild(i)
		if !right {
			near, far = far, near
		}
		if accept(tree.Summary(near)) {
			i = near
		} else {
			i = far
		}
	}
	return i
}
