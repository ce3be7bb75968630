package prob

import (
	"sync"

	"gradsym/sym"
	"gradsym/vm"
)

// Entry is one row of ProbPathConstraintsTable: the conjunction of the
// path that reached a program counter, the concrete memory at that
// point, and the symbolic reach-probability accumulated along it.
type Entry struct {
	Constraint *sym.Sym
	Mem        vm.Mem
	P          sym.SymProb
}

// ProbPathConstraintsTable is PSExecutor's extra output table, keyed
// by the program counter a path finished at.
type ProbPathConstraintsTable struct {
	mu      sync.Mutex
	entries map[int][]Entry
}

func NewProbPathConstraintsTable() *ProbPathConstraintsTable {
	return &ProbPathConstraintsTable{entries: map[int][]Entry{}}
}

// Append records entry under pc.
func (t *ProbPathConstraintsTable) Append(pc int, entry Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[pc] = append(t.entries[pc], entry)
}

// At returns a copy of the entries recorded under pc.
func (t *ProbPathConstraintsTable) At(pc int) []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Entry, len(t.entries[pc]))
	copy(out, t.entries[pc])
	return out
}

// Len reports the total number of distinct program counters with at
// least one recorded entry.
func (t *ProbPathConstraintsTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// ExpectedValue marginalises every entry recorded at pc (per
// Marginalize) and returns the probability-weighted sum of readVar's
// concrete value across them; the sum is not divided by the total
// weight.
func (t *ProbPathConstraintsTable) ExpectedValue(pc, readVar int, params sym.Params, eps float64, randomVars map[int]DiscreteDist) float64 {
	var sum float64
	for _, entry := range t.At(pc) {
		weight := Marginalize(entry.P, params, eps, randomVars)
		if weight == 0 {
			continue
		}
		val, ok := entry.Mem[readVar]
		if !ok {
			continue
		}
		sum += weight * float64(val.Float())
	}
	return sum
}
