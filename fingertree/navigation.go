package fingertree

import "fmt"

// Parent returns the parent of node i. The root has no parent.
func (t *Tree[S]) Parent(i int) (int, error) {
	if i <= 0 {
		return -1, fmt.Errorf("%w: root has no parent", ErrNoNeighbor)
	}
	return (i - 1) / 2, nil
}

// LeftChild returns 2i+1.
func (t *Tree[S]) LeftChild(i int) int {
	return 2*i + 1
}

// RightChild returns 2i+2.
func (t *Tree[S]) RightChild(i int) int {
	return 2*i + 2
}

// Sibling returns the other child of i's parent. The root is its own sibling.
func (t *Tree[S]) Sibling(i int) int {
	switch {
	case i <= 0:
		return 0
	case i%2 == 1:
		return i + 1
	}
	return i - 1
}

// FingerNeighbor returns the node at the same depth as i, one step to the right
// (or to the left, if right is false). The leftmost node of a depth has
// i+1 = 2^d, the rightmost one has i+2 = 2^(d+1); stepping beyond them fails
// with ErrNoNeighbor.
func (t *Tree[S]) FingerNeighbor(i int, right bool) (int, error) {
	if i < 0 {
		return -1, fmt.Errorf("%w: negative index %d", ErrIndexOutOfBounds, i)
	}
	if right {
		if isPowerOfTwo(i + 2) {
			return -1, fmt.Errorf("%w: node %d is rightmost at its depth", ErrNoNeighbor, i)
		}
		return i + 1, nil
	}
	if isPowerOfTwo(i + 1) {
		return -1, fmt.Errorf("%w: node %d is leftmost at its depth", ErrNoNeighbor, i)
	}
	return i - 1, nil
}

// NextNode returns the root of the next subtree in direction right, such that
// repeated calls visit all nodes beyond i in distance order, each subtree
// exactly once: ascend while i is a right (resp. left) child, then step to the
// finger neighbor. ErrNoNeighbor signals that the walk would pass the root.
func (t *Tree[S]) NextNode(i int, right bool) (int, error) {
	if i < 0 {
		return -1, fmt.Errorf("%w: negative index %d", ErrIndexOutOfBounds, i)
	}
	if right {
		for i > 0 && i%2 == 0 {
			i = (i - 1) / 2
		}
	} else {
		for i > 0 && i%2 == 1 {
			i = (i - 1) / 2
		}
	}
	if i == 0 {
		return -1, fmt.Errorf("%w: walked past the root", ErrNoNeighbor)
	}
	return t.FingerNeighbor(i, right)
}

// LeftmostLeaf returns the global index of the leftmost leaf slot below i.
// The result may be a padding slot.
func (t *Tree[S]) LeftmostLeaf(i int) int {
	for i < len(t.inner) {
		i = 2*i + 1
	}
	return i
}

// RightmostLeaf returns the global index of the rightmost leaf slot below i.
// The result may be a padding slot.
func (t *Tree[S]) RightmostLeaf(i int) int {
	for i < len(t.inner) {
		i = 2*i + 2
	}
	return i
}

func isPowerOfTwo(x int) bool {
	return x > 0 && x&(x-1) == 0
}
