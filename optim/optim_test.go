package optim

import (
	"testing"

	"gradsym/sym"
)

func TestSolveEmptyConstraintsIsSat(t *testing.T) {
	o := New(DefaultConfig())
	res := o.Solve(nil, sym.Params{}, true)
	if !res.Satisfiable {
		t.Fatal("empty constraint set must be satisfiable")
	}
}

func TestSolveFindsSatisfyingAssignment(t *testing.T) {
	// var_0 < 3
	c := sym.Lt(sym.Any(0), sym.ConFloat(3))
	cfg := DefaultConfig()
	cfg.Seed = 1
	o := New(cfg)
	res := o.Solve([]*sym.Sym{c}, sym.Params{}, true)
	if !res.Satisfiable {
		t.Fatal("expected SAT")
	}
	if !(res.Params[0] < 3) {
		t.Fatalf("params[0]=%v does not satisfy var_0 < 3", res.Params[0])
	}
}

func TestSolveHoldsConcretisedParamsConstant(t *testing.T) {
	// var_0 == 4, with var_0 already concretised to 4: should be
	// immediately satisfied with no gradient steps needed.
	c := sym.Eq(sym.Any(0), sym.ConFloat(4))
	o := New(DefaultConfig())
	res := o.Solve([]*sym.Sym{c}, sym.Params{0: 4}, true)
	if !res.Satisfiable || res.NumUsedItr != 0 {
		t.Fatalf("expected immediate SAT, got sat=%v itr=%d", res.Satisfiable, res.NumUsedItr)
	}
}

func TestEvalMatchesAllAtomsSatisfied(t *testing.T) {
	c1 := sym.Lt(sym.Any(0), sym.ConFloat(10))
	c2 := sym.Eq(sym.ConFloat(5), sym.ConFloat(5))
	if !Eval([]*sym.Sym{c1, c2}, sym.Params{0: 1}, 1e-6) {
		t.Fatal("expected both constraints satisfied")
	}
	if Eval([]*sym.Sym{c1, c2}, sym.Params{0: 20}, 1e-6) {
		t.Fatal("expected first constraint violated")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ParamLow, cfg.ParamHigh = 5, -5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for param_low > param_high")
	}
}

// TestCountPredicateWitnesses checks that SCnt(var_0 == 1) +
// SCnt(var_1 == 1) == k has a satisfying witness for k = 0, 1, 2, and
// that a witness for one k does not satisfy the constraint for another.
// sym.Cnt's Eval is a hard 0/1 indicator (see sym/eval.go), so this
// checks known witnesses directly through optim.Eval rather than
// gradient descent, which has no useful gradient through a step
// function.
func TestCountPredicateWitnesses(t *testing.T) {
	eq0 := sym.Eq(sym.Any(0), sym.ConFloat(1))
	eq1 := sym.Eq(sym.Any(1), sym.ConFloat(1))
	count := sym.Add(sym.Cnt(eq0, map[int]float64{}), sym.Cnt(eq1, map[int]float64{}))

	eps := DefaultConfig().Eps

	witnesses := map[int]sym.Params{
		0: {0: 0, 1: 0},
		1: {0: 1, 1: 0},
		2: {0: 1, 1: 1},
	}

	for k, params := range witnesses {
		target := sym.Eq(count, sym.ConFloat(float32(k)))
		if !Eval([]*sym.Sym{target}, params, eps) {
			t.Fatalf("k=%d: witness %v should satisfy SCnt(eq0)+SCnt(eq1)==%d", k, params, k)
		}
		for other, otherParams := range witnesses {
			if other == k {
				continue
			}
			if Eval([]*sym.Sym{target}, otherParams, eps) {
				t.Fatalf("k=%d: witness for k=%d should not also satisfy ==%d", k, other, k)
			}
		}
	}
}
