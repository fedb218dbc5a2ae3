package fingertree

import "errors"

var (
	// ErrInvalidConfig signals an invalid tree configuration.
	ErrInvalidConfig = errors.New("fingertree: invalid configuration")
	// ErrInvalidItem signals an item with negative profit or weight.
	ErrInvalidItem = errors.New("fingertree: invalid item")
	// ErrIndexOutOfBounds signals a global index which does not address a node
	// of the requested kind.
	ErrIndexOutOfBounds = errors.New("fingertree: index out of bounds")
	// ErrNoNeighbor signals that a navigation step would leave the tree, i.e.
	// there is no further node in the requested direction.
	ErrNoNeighbor = errors.New("fingertree: no neighbor in this direction")
)
