package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/npillmayer/knapsack/instance"
	"github.com/npillmayer/knapsack/solver"
	"golang.org/x/term"
)

// console prints solutions to a terminal with a fixed width font. Packed items
// are highlighted, lines are wrapped at the terminal's width.
type console struct {
	w         io.Writer
	inst      *instance.Instance
	packed    *color.Color
	dimmed    *color.Color
	header    *color.Color
	lineWidth int
}

func newConsole(w io.Writer, inst *instance.Instance, colored bool) *console {
	c := &console{
		w:         w,
		inst:      inst,
		packed:    color.New(color.FgRed, color.Bold),
		dimmed:    color.New(color.FgBlue),
		header:    color.New(color.FgGreen),
		lineWidth: lineWidthFromTerminal(),
	}
	if !colored {
		for _, col := range []*color.Color{c.packed, c.dimmed, c.header} {
			col.DisableColor()
		}
	}
	return c
}

// lineWidthFromTerminal checks whether stdout is a terminal, and if so it
// reads the terminal's width.
func lineWidthFromTerminal() int {
	width := 65
	if term.IsTerminal(1) {
		w, _, err := term.GetSize(1)
		if err == nil {
			if w > 65 {
				width = w - 10
			} else if w > 30 {
				width = w - 5
			} else if w > 10 {
				width = w
			} else {
				width = 10
			}
		}
	}
	tracer().Debugf("setting line length to %d", width)
	return width
}

// Solution prints the packed items of a solution, together with the weight
// and profit per knapsack.
func (c *console) Solution(sol solver.Solution) {
	c.header.Fprintf(c.w, "solution %d", sol.Index)
	for k, ks := range c.inst.Knapsacks {
		w, p := 0, 0
		for i, v := range sol.Values {
			w += v * ks.Weights[i]
			p += v * ks.Profits[i]
		}
		fmt.Fprintf(c.w, "  %s: weight=%d profit=%d", c.inst.KnapsackName(k), w, p)
	}
	fmt.Fprintln(c.w)
	col := 0
	for i, v := range sol.Values {
		name := c.inst.ItemName(i)
		if col > 0 && col+len(name)+1 > c.lineWidth {
			fmt.Fprintln(c.w)
			col = 0
		}
		if v == 1 {
			c.packed.Fprint(c.w, name)
		} else {
			c.dimmed.Fprint(c.w, name)
		}
		fmt.Fprint(c.w, " ")
		col += len(name) + 1
	}
	fmt.Fprintln(c.w)
}

// Summary prints the statistics of a search.
func (c *console) Summary(stats solver.Stats) {
	c.header.Fprintf(c.w, "%d solutions", stats.Solutions)
	fmt.Fprintf(c.w, ", %d nodes, %d fails, depth %d, %d propagations\n", stats.Nodes, stats.Fails,
		stats.MaxDepth, stats.Engine.CoarsePropagations+stats.Engine.VarPropagations)
}

// Instance prints the items of an instance as a table.
func (c *console) Instance() {
	c.header.Fprintf(c.w, "%s: %d items\n", c.inst.Name, c.inst.Len())
	for k, ks := range c.inst.Knapsacks {
		var b strings.Builder
		fmt.Fprintf(&b, "%-10s", c.inst.KnapsackName(k))
		for i := range ks.Weights {
			fmt.Fprintf(&b, " %d/%d", ks.Profits[i], ks.Weights[i])
		}
		fmt.Fprintf(c.w, "%s  capacity %v, profit %v\n", b.String(), ks.Capacity, ks.Power)
	}
}
