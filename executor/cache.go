package executor

import (
	"sync"

	"gradsym/smt"
	"gradsym/sym"
)

// PathConstraintsTable is keyed by the canonicalised constraint string
// (sym.ConjunctionString); it doubles as the solver cache SExecutor
// consults before invoking smt.Solve.
type PathConstraintsTable struct {
	mu      sync.Mutex
	entries map[string]smt.Decision
}

func NewPathConstraintsTable() *PathConstraintsTable {
	return &PathConstraintsTable{entries: map[string]smt.Decision{}}
}

func (c *PathConstraintsTable) key(constraints []*sym.Sym) string {
	return sym.ConjunctionString(constraints)
}

// Lookup reports a cached decision for constraints, if any.
func (c *PathConstraintsTable) Lookup(constraints []*sym.Sym) (smt.Decision, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	dec, ok := c.entries[c.key(constraints)]
	return dec, ok
}

// Store records dec for constraints. The cache is order-dependent only
// in which witness is stored first for a given key — callers should
// Lookup before Store to avoid clobbering it.
func (c *PathConstraintsTable) Store(constraints []*sym.Sym, dec smt.Decision) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.key(constraints)
	if _, exists := c.entries[key]; !exists {
		c.entries[key] = dec
	}
}

// CountSAT and CountUNSAT report the number of cached decisions of each
// outcome.
func (c *PathConstraintsTable) CountSAT() int   { return c.count(true) }
func (c *PathConstraintsTable) CountUNSAT() int { return c.count(false) }

func (c *PathConstraintsTable) count(sat bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, dec := range c.entries {
		if dec.Sat == sat {
			n++
		}
	}
	return n
}

// Len reports the total number of cached entries.
func (c *PathConstraintsTable) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
