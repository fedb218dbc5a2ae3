package fingertree

import (
	"errors"
	"testing"
)

func TestFingerNeighbor(t *testing.T) {
	tree, _ := New(Config[int]{Monoid: MaxWeightMonoid{}}, fixtureItems())
	for _, tc := range []struct {
		i     int
		right bool
		want  int
	}{
		{1, true, 2}, {2, false, 1}, {3, true, 4}, {16, true, 17}, {16, false, 15}, {11, false, 10},
	} {
		got, err := tree.FingerNeighbor(tc.i, tc.right)
		if err != nil || got != tc.want {
			t.Errorf("FingerNeighbor(%d, %v) = %d, %v; expected %d", tc.i, tc.right, got, err, tc.want)
		}
	}
	for _, tc := range []struct {
		i     int
		right bool
	}{
		{0, true}, {0, false}, {2, true}, {1, false}, {6, true}, {3, false}, {15, false}, {30, true},
	} {
		if _, err := tree.FingerNeighbor(tc.i, tc.right); !errors.Is(err, ErrNoNeighbor) {
			t.Errorf("FingerNeighbor(%d, %v): expected ErrNoNeighbor, got %v", tc.i, tc.right, err)
		}
	}
}

func TestNextNodeVisitsEverySubtreeOnce(t *testing.T) {
	tree, _ := New(Config[int]{Monoid: MaxWeightMonoid{}}, fixtureItems())
	for _, tc := range []struct {
		start int
		right bool
		walk  []int
	}{
		{18, true, []int{4, 2}},
		{15, true, []int{16, 8, 4, 2}},
		{18, false, []int{17, 7}},
		{21, false, []int{9, 3}},
		{24, true, []int{12, 6}},
	} {
		var got []int
		i := tc.start
		for {
			next, err := tree.NextNode(i, tc.right)
			if err != nil {
				if !errors.Is(err, ErrNoNeighbor) {
					t.Fatalf("unexpected error: %v", err)
				}
				break
			}
			got = append(got, next)
			i = next
		}
		if len(got) != len(tc.walk) {
			t.Errorf("walk from %d (right=%v): expected %v, got %v", tc.start, tc.right, tc.walk, got)
			continue
		}
		for k := range got {
			if got[k] != tc.walk[k] {
				t.Errorf("walk from %d (right=%v): expected %v, got %v", tc.start, tc.right, tc.walk, got)
				break
			}
		}
	}
}

func TestParentAndSibling(t *testing.T) {
	tree, _ := New(Config[int]{Monoid: MaxWeightMonoid{}}, fixtureItems())
	if _, err := tree.Parent(0); !errors.Is(err, ErrNoNeighbor) {
		t.Errorf("expected root to have no parent, got %v", err)
	}
	if p, _ := tree.Parent(20); p != 9 {
		t.Errorf("expected parent of 20 to be 9, is %d", p)
	}
	if s := tree.Sibling(19); s != 20 {
		t.Errorf("expected sibling of 19 to be 20, is %d", s)
	}
	if s := tree.Sibling(20); s != 19 {
		t.Errorf("expected sibling of 20 to be 19, is %d", s)
	}
	if tree.LeftmostLeaf(2) != 23 || tree.RightmostLeaf(1) != 22 {
		t.Errorf("unexpected leftmost/rightmost leaves: %d, %d", tree.LeftmostLeaf(2), tree.RightmostLeaf(1))
	}
}
