package fingertree

import (
	"fmt"
	"math/bits"
)

// Tree is a complete binary tree over a fixed sequence of items. Inner nodes
// hold summaries of type S; see the package documentation for the layout.
type Tree[S any] struct {
	cfg    Config[S]
	inner  []S    // summaries of inner nodes 0..m-1
	leaves []Item // items at global indices m..m+n-1
}

// New creates a tree holding a copy of items, in the given order. Leaves
// which are inactive in items stay inactive.
func New[S any](cfg Config[S], items []Item) (*Tree[S], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	for _, it := range items {
		if err := it.validate(); err != nil {
			return nil, err
		}
	}
	t := &Tree[S]{
		cfg:    cfg,
		inner:  make([]S, innerSize(len(items))),
		leaves: make([]Item, len(items)),
	}
	copy(t.leaves, items)
	for i := len(t.inner) - 1; i >= 0; i-- {
		t.recompute(i)
	}
	tracer().Debugf("fingertree: %d leaves, %d inner nodes", len(t.leaves), len(t.inner))
	return t, nil
}

// innerSize returns 2^⌈log2 n⌉ − 1, the number of inner nodes of a complete
// binary tree with at least n leaves.
func innerSize(n int) int {
	if n <= 1 {
		return 0
	}
	return 1<<bits.Len(uint(n-1)) - 1
}

// Config returns the tree's configuration.
func (t *Tree[S]) Config() Config[S] {
	return t.cfg
}

// InnerSize returns the number of inner nodes m.
func (t *Tree[S]) InnerSize() int {
	return len(t.inner)
}

// LeafCount returns the number of items n.
func (t *Tree[S]) LeafCount() int {
	return len(t.leaves)
}

// NodeCount returns m+n, the first global index past the last item.
func (t *Tree[S]) NodeCount() int {
	return len(t.inner) + len(t.leaves)
}

// IsInnerNode is true for global indices of inner nodes.
func (t *Tree[S]) IsInnerNode(i int) bool {
	return i >= 0 && i < len(t.inner)
}

// IsLeaf is true for global indices of items (padding slots are excluded).
func (t *Tree[S]) IsLeaf(i int) bool {
	return i >= len(t.inner) && i < t.NodeCount()
}

// LeafIndex converts a leaf position (0..n-1) to a global index.
func (t *Tree[S]) LeafIndex(pos int) int {
	return pos + len(t.inner)
}

// LeafPos converts the global index of a leaf to its position (0..n-1).
func (t *Tree[S]) LeafPos(i int) int {
	return i - len(t.inner)
}

// Leaf returns the item at global index i. It panics if i is not a leaf.
func (t *Tree[S]) Leaf(i int) Item {
	assert(t.IsLeaf(i), "fingertree: Leaf called for non-leaf index")
	return t.leaves[i-len(t.inner)]
}

// Summary returns the summary of the node at global index i. Inactive
// leaves and padding slots summarize to Zero.
func (t *Tree[S]) Summary(i int) S {
	switch {
	case t.IsInnerNode(i):
		return t.inner[i]
	case t.IsLeaf(i):
		if it := t.leaves[i-len(t.inner)]; it.active {
			return t.cfg.Monoid.Leaf(it)
		}
	}
	return t.cfg.Monoid.Zero()
}

// Root returns the summary over all active items.
func (t *Tree[S]) Root() S {
	if len(t.leaves) == 0 {
		return t.cfg.Monoid.Zero()
	}
	return t.Summary(0)
}

// RemoveLeaf deactivates the item at global index i and recomputes all of
// its ancestors. Removing an inactive item is a no-op on the summaries.
func (t *Tree[S]) RemoveLeaf(i int) error {
	if !t.IsLeaf(i) {
		return fmt.Errorf("%w: cannot remove leaf %d", ErrIndexOutOfBounds, i)
	}
	t.leaves[i-len(t.inner)].Deactivate()
	t.update(i)
	return nil
}

// ActivateLeaf re-activates the item at global index i and recomputes all
// of its ancestors.
func (t *Tree[S]) ActivateLeaf(i int) error {
	if !t.IsLeaf(i) {
		return fmt.Errorf("%w: cannot activate leaf %d", ErrIndexOutOfBounds, i)
	}
	t.leaves[i-len(t.inner)].Activate()
	t.update(i)
	return nil
}

// update recomputes the ancestors of i, bottom-up to the root.
func (t *Tree[S]) update(i int) {
	for i > 0 {
		i = (i - 1) / 2
		t.recompute(i)
	}
}

func (t *Tree[S]) recompute(i int) {
	t.inner[i] = t.cfg.Monoid.Add(t.Summary(2*i+1), t.Summary(2*i+2))
}

// Each calls f for every inner node and every leaf, in global index order.
// Iteration stops at the first error, which is returned.
func (t *Tree[S]) Each(f func(i int, s S) error) error {
	for i := 0; i < t.NodeCount(); i++ {
		if err := f(i, t.Summary(i)); err != nil {
			return err
		}
	}
	return nil
}
