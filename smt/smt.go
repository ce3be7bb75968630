// Package smt wraps the DPLL Boolean layer and the gradient optimizer
// into two solving strategies: the union strategy treats a path's
// constraints as one conjunction; the DPLL strategy splits on the
// Boolean skeleton first and only ever hands the numerical solver a
// signed conjunction of atoms.
package smt

import (
	"gradsym/dpll"
	"gradsym/optim"
	"gradsym/sym"
)

// Decision is what either strategy returns: satisfiability and, when
// satisfiable, the parameter assignment that witnesses it.
type Decision struct {
	Sat    bool
	Params sym.Params
}

// Memory holds the last successful parameter assignment, reused as
// the next trial's starting point unless the caller ignores it.
type Memory map[int]float64

func (m Memory) snapshot() sym.Params {
	if m == nil {
		return sym.Params{}
	}
	out := make(sym.Params, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (m Memory) remember(params sym.Params) {
	for k, v := range params {
		m[k] = v
	}
}

// unionSolve retries optim.Solve over the whole conjunction,
// incrementing the seed each trial.
func unionSolve(cfg optim.Config, constraints []*sym.Sym, mem Memory, ignoreMemory bool, maxTrials int) Decision {
	for trial := 0; trial < maxTrials; trial++ {
		trialCfg := cfg
		trialCfg.Seed = cfg.Seed + int64(trial)
		init := sym.Params{}
		if !ignoreMemory {
			init = mem.snapshot()
		}
		res := optim.New(trialCfg).Solve(constraints, init, false)
		if res.Satisfiable {
			mem.remember(res.Params)
			return Decision{Sat: true, Params: res.Params}
		}
	}
	return Decision{Sat: false}
}

// dpllSolve repeatedly asks DPLL for a satisfying Boolean assignment
// over the atom skeleton, builds the corresponding signed-atom
// conjunction, and hands it to the gradient optimizer. On a numerical
// failure it blocks that Boolean assignment (adds its negation as a
// conjunct) and asks DPLL again, until either the optimizer succeeds
// or DPLL itself reports UNSAT.
func dpllSolve(cfg optim.Config, constraints []*sym.Sym, mem Memory, ignoreMemory bool, maxTrials int) Decision {
	atoms := map[string]*sym.Sym{}
	skeleton := dpll.PathConstraintsToExpr(constraints, atoms)

	blocking := skeleton
	trial := 0
	for trial < maxTrials {
		sat, assignments := dpll.SatisfiableDPLL(blocking, map[string]bool{}, dpll.Config{})
		if !sat {
			return Decision{Sat: false}
		}

		signed := dpll.SignedConjunction(assignments, atoms)

		trialCfg := cfg
		trialCfg.Seed = cfg.Seed + int64(trial)
		init := sym.Params{}
		if !ignoreMemory {
			init = mem.snapshot()
		}
		res := optim.New(trialCfg).Solve(signed, init, false)
		if res.Satisfiable {
			mem.remember(res.Params)
			return Decision{Sat: true, Params: res.Params}
		}

		blocking = dpll.And(blocking, blockingClause(assignments, atoms))
		trial++
	}
	return Decision{Sat: false}
}

// blockingClause negates the current assignment so the next DPLL call
// is forced onto a different Boolean branch.
func blockingClause(assignments map[string]bool, atoms map[string]*sym.Sym) *dpll.Expr {
	var clause *dpll.Expr
	for name := range atoms {
		val, ok := assignments[name]
		if !ok {
			continue
		}
		lit := dpll.Var(name)
		if val {
			lit = dpll.Not(lit)
		}
		if clause == nil {
			clause = lit
		} else {
			clause = dpll.Or(clause, lit)
		}
	}
	if clause == nil {
		return dpll.BoolConst(false)
	}
	return clause
}

// Solve dispatches to the union or DPLL strategy by useDPLL.
func Solve(cfg optim.Config, constraints []*sym.Sym, mem Memory, ignoreMemory, useDPLL bool, maxTrials int) Decision {
	if useDPLL {
		return dpllSolve(cfg, constraints, mem, ignoreMemory, maxTrials)
	}
	return unionSolve(cfg, constraints, mem, ignoreMemory, maxTrials)
}
