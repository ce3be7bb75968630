package prob

import (
	"gradsym/sym"
	"gradsym/vm"
)

// hasRandomFreeVar reports whether any atom in constraints mentions a
// registered random variable.
func (e *PSExecutor) hasRandomFreeVar(constraints []*sym.Sym) bool {
	for _, c := range constraints {
		for _, id := range c.VarIDs() {
			if _, ok := e.RandomVars[id]; ok {
				return true
			}
		}
	}
	return false
}

// pbranch is the symbolic conditional-probability update applied when
// a branch condition mentions a random variable. It returns a fork of
// state with P and HasObservedPCond updated; state itself is left
// untouched.
func (e *PSExecutor) pbranch(state *vm.SymState) *vm.SymState {
	next := state.Copy()

	n := conjunctionOf(state.PathConstraints)
	var d *sym.Sym
	if !state.HasObservedPCond {
		d = sym.ConFloat(1)
	} else {
		d = conjunctionOf(state.PathConstraints[:len(state.PathConstraints)-1])
	}

	condP := sym.SymProb{Num: n, Den: d}
	next.P = state.P.Mul(condP)
	next.HasObservedPCond = true
	return next
}

// conjunctionOf left-folds atoms into a single And-chain, matching the
// same order the executor's smt layer joins path constraints in.
func conjunctionOf(atoms []*sym.Sym) *sym.Sym {
	if len(atoms) == 0 {
		return sym.ConFloat(1)
	}
	acc := atoms[0]
	for _, a := range atoms[1:] {
		acc = sym.And(acc, a)
	}
	return acc
}
