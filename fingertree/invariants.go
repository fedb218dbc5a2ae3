package fingertree

import (
	"fmt"
	"reflect"
)

// Check validates the summary invariant: every inner node equals the
// monoid sum of its two children.
//
// Check uses reflect.DeepEqual to compare summaries and is meant to be
// called from tests.
func (t *Tree[S]) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvalidConfig)
	}
	if want := innerSize(len(t.leaves)); want != len(t.inner) {
		return fmt.Errorf("%w: %d leaves need %d inner nodes, have %d",
			ErrInvalidConfig, len(t.leaves), want, len(t.inner))
	}
	for i := range t.inner {
		expected := t.cfg.Monoid.Add(t.Summary(2*i+1), t.Summary(2*i+2))
		if !reflect.DeepEqual(expected, t.inner[i]) {
			return fmt.Errorf("%w: node %d has summary %v, children sum up to %v",
				ErrInvalidConfig, i, t.inner[i], expected)
		}
	}
	return nil
}
