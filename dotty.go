package knapsack

import (
	"fmt"
	"io"
	"math"
	"math/bits"
	"strings"

	"github.com/npillmayer/knapsack/fingertree"
)

// Tree2Dot outputs the structure of a relaxation tree in Graphviz DOT format
// (for debugging purposes). If info is not nil, its critical item is
// highlighted.
//
func Tree2Dot(tree *RelaxationTree, info *Info, w io.Writer) error {
	critical := -2
	if info != nil {
		critical = info.Index
	}
	return tree2dot(tree.Tree, w, func(i int, s fingertree.ProfitWeight) (string, bool) {
		if tree.IsLeaf(i) {
			it := tree.Leaf(i)
			return fmt.Sprintf("#%d\\n%d/%d", tree.LeafPos(i), it.Profit, it.Weight), i == critical
		}
		return fmt.Sprintf("%d/%d", s.Profit, s.Weight), false
	})
}

// SkipTree2Dot outputs the structure of a skip-search tree in Graphviz DOT
// format, labeling nodes with their maximum and minimum weights.
//
func SkipTree2Dot(tree *SkipSearchTree, w io.Writer) error {
	return tree2dot(tree.maxTree, w, func(i int, maxw int) (string, bool) {
		if tree.maxTree.IsLeaf(i) {
			return fmt.Sprintf("#%d\\nw=%d", tree.maxTree.LeafPos(i), tree.maxTree.Leaf(i).Weight), false
		}
		if !tree.maxTree.IsLeaf(tree.maxTree.LeftmostLeaf(i)) {
			return "∅", false
		}
		return fmt.Sprintf("≤%s\\n≥%s", weight(maxw), weight(tree.minTree.Summary(i))), false
	})
}

func weight(w int) string {
	if w == math.MinInt || w == math.MaxInt { // no active items below
		return "–"
	}
	return fmt.Sprint(w)
}

func tree2dot[S any](tree *fingertree.Tree[S], w io.Writer,
	label func(int, S) (string, bool)) error {
	//
	var nodelist, edgelist strings.Builder
	err := tree.Each(func(i int, s S) error {
		text, highlight := label(i, s)
		isleaf := tree.IsLeaf(i)
		active := !isleaf || tree.Leaf(i).IsActive()
		styles := nodeDotStyles(depth(i), isleaf, active, highlight)
		fmt.Fprintf(&nodelist, "\"%d\" [label=\"%s\" %s];\n", i, text, styles)
		if tree.IsInnerNode(i) {
			for _, child := range []int{tree.LeftChild(i), tree.RightChild(i)} {
				if child < tree.NodeCount() {
					fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\";\n", i, child)
				} else {
					fmt.Fprintf(&nodelist, "\"%d\" %s;\n", child, emptyNode())
					fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\";\n", i, child)
				}
			}
		}
		return nil
	})
	if err != nil {
		T().Errorf("tree DOT: %s", err.Error())
		return err
	}
	if _, err = io.WriteString(w, "strict digraph {\n\tnode [fontname=Arial,fontsize=12];\n"); err != nil {
		return err
	}
	if _, err = io.WriteString(w, nodelist.String()); err != nil {
		return err
	}
	if _, err = io.WriteString(w, edgelist.String()); err != nil {
		return err
	}
	_, err = io.WriteString(w, "}\n")
	return err
}

func depth(i int) int {
	return bits.Len(uint(i+1)) - 1
}

func emptyNode() string {
	return "[label=\"\",color=black,shape=circle,fixedsize=true,width=.2]"
}

func nodeDotStyles(depth int, isleaf, active, highlight bool) string {
	s := ",style=filled"
	if isleaf {
		s += ",shape=box"
	} else {
		s += ",color=black,shape=circle"
	}
	switch {
	case highlight:
		s += fmt.Sprintf(",fillcolor=\"%s\"", hexhlcolors[len(hexhlcolors)-1])
	case !active:
		s += ",fillcolor=gray,fontcolor=white"
	default:
		s += fmt.Sprintf(",fillcolor=\"%s\"", hexcolors[depth%len(hexcolors)])
	}
	return s
}

var hexhlcolors = [...]string{"#FFEEDD", "#FFDDCC", "#FFCCAA", "#FFBB88", "#FFAA66",
	"#FF9944", "#FF8822", "#FF7700", "#ff6600"}

var hexcolors = [...]string{"white", "#CCDDFF", "#AACCFF", "#88BBFF", "#66AAFF",
	"#4499FF", "#2288FF", "#0077FF", "#0066FF"}
