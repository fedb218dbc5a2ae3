/*
Package trail implements a backtracking environment for depth-first search.

Search code opens a world before each decision (WorldPush) and closes it when
backtracking (WorldPop). Everything that mutates solver state while a world is
open registers an Entry, and WorldPop undoes the entries of the closed world
in strict reverse order.

Entries are plain data values which know how to revert their own effect. This
keeps a trail printable, which helps a lot when debugging propagators.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package trail

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'knapsack'
func tracer() tracing.Trace {
	return tracing.Select("knapsack")
}

// ErrNoWorld signals an attempt to pop the root world.
var ErrNoWorld = errors.New("trail: no world to pop")

// Entry is a registered undo operation.
type Entry interface {
	Undo()
}

// Environment is a trail of undo entries, partitioned into worlds.
// The zero value is a valid environment at world index 0.
type Environment struct {
	entries []Entry
	marks   []int // marks[k] is len(entries) when world k+1 was opened
}

// New creates an empty environment.
func New() *Environment {
	return &Environment{
		entries: make([]Entry, 0, 64),
	}
}

// WorldIndex returns the current depth. It starts at 0 and grows by one with
// every WorldPush.
func (env *Environment) WorldIndex() int {
	return len(env.marks)
}

// WorldPush opens a new world.
func (env *Environment) WorldPush() {
	env.marks = append(env.marks, len(env.entries))
}

// WorldPop undoes every entry saved since the matching WorldPush, most recent
// first, and closes the world.
func (env *Environment) WorldPop() error {
	if len(env.marks) == 0 {
		return ErrNoWorld
	}
	mark := env.marks[len(env.marks)-1]
	env.marks = env.marks[:len(env.marks)-1]
	env.undoTo(mark)
	return nil
}

// WorldPopUntil pops worlds until WorldIndex equals w.
func (env *Environment) WorldPopUntil(w int) error {
	if w < 0 || w > env.WorldIndex() {
		return fmt.Errorf("%w: cannot backtrack from world %d to world %d", ErrNoWorld, env.WorldIndex(), w)
	}
	for env.WorldIndex() > w {
		if err := env.WorldPop(); err != nil {
			return err
		}
	}
	return nil
}

func (env *Environment) undoTo(mark int) {
	for k := len(env.entries) - 1; k >= mark; k-- {
		entry := env.entries[k]
		env.entries[k] = nil
		entry.Undo()
	}
	tracer().Debugf("trail: undid %d entries back to world %d", len(env.entries)-mark, env.WorldIndex())
	env.entries = env.entries[:mark]
}

// Save registers an undo entry with the current world. Entries saved in world 0
// are never undone.
func (env *Environment) Save(entry Entry) {
	env.entries = append(env.entries, entry)
}

// Len returns the number of registered entries over all worlds.
func (env *Environment) Len() int {
	return len(env.entries)
}

// Entries returns the registered entries, oldest first. The slice must not be
// modified by the caller.
func (env *Environment) Entries() []Entry {
	return env.entries
}

// String lists the trail, one world per line.
func (env *Environment) String() string {
	var b strings.Builder
	w := 0
	fmt.Fprintf(&b, "world 0:")
	for k, entry := range env.entries {
		for w < len(env.marks) && env.marks[w] == k {
			w++
			fmt.Fprintf(&b, "\nworld %d:", w)
		}
		fmt.Fprintf(&b, " %v", entry)
	}
	for w < len(env.marks) {
		w++
		fmt.Fprintf(&b, "\nworld %d:", w)
	}
	return b.String()
}
