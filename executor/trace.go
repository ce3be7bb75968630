package executor

import (
	"fmt"
	"strings"

	"gradsym/vm"
)

// Trace pairs a SymState with the child Traces reached from it. Run
// returns one whether or not Config.ReturnTrace is set.
type Trace struct {
	State    *vm.SymState
	Children []*Trace
}

// Walk visits t and every descendant, depth first.
func (t *Trace) Walk(visit func(*Trace)) {
	if t == nil {
		return
	}
	visit(t)
	for _, child := range t.Children {
		child.Walk(visit)
	}
}

// Leaves returns every Trace node with no children.
func (t *Trace) Leaves() []*Trace {
	var leaves []*Trace
	t.Walk(func(n *Trace) {
		if len(n.Children) == 0 {
			leaves = append(leaves, n)
		}
	})
	return leaves
}

// String renders t as an indented tree of program counters, for debug
// logging — not part of the symbolic execution contract itself.
func (t *Trace) String() string {
	var b strings.Builder
	var walk func(*Trace, int)
	walk = func(n *Trace, depth int) {
		if n == nil {
			return
		}
		fmt.Fprintf(&b, "%spc=%d\n", strings.Repeat("  ", depth), n.State.PC)
		for _, child := range n.Children {
			walk(child, depth+1)
		}
	}
	walk(t, 0)
	return b.String()
}
