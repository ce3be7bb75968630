package smt

import (
	"testing"

	"gradsym/optim"
	"gradsym/sym"
)

func TestUnionSolveSatisfiable(t *testing.T) {
	c := sym.Lt(sym.Any(0), sym.ConFloat(3))
	dec := Solve(optim.DefaultConfig(), []*sym.Sym{c}, Memory{}, false, false, 5)
	if !dec.Sat {
		t.Fatal("expected SAT")
	}
	if !(dec.Params[0] < 3) {
		t.Fatalf("witness %v does not satisfy var_0 < 3", dec.Params[0])
	}
}

func TestUnionSolveUnsatisfiable(t *testing.T) {
	c1 := sym.Lt(sym.Any(0), sym.ConFloat(3))
	c2 := sym.Lt(sym.ConFloat(5), sym.Any(0)) // var_0 > 5
	dec := Solve(optim.DefaultConfig(), []*sym.Sym{c1, c2}, Memory{}, false, false, 3)
	if dec.Sat {
		t.Fatal("expected UNSAT for var_0 < 3 && var_0 > 5")
	}
}

func TestDPLLSolveSplitsOnDisjunction(t *testing.T) {
	// (var_0 == 3) || (var_0 == 7): DPLL should find a Boolean branch
	// the numerical solver can satisfy.
	eq3 := sym.Eq(sym.Any(0), sym.ConFloat(3))
	eq7 := sym.Eq(sym.Any(0), sym.ConFloat(7))
	constraint := sym.Or(eq3, eq7)
	dec := Solve(optim.DefaultConfig(), []*sym.Sym{constraint}, Memory{}, false, true, 5)
	if !dec.Sat {
		t.Fatal("expected SAT")
	}
	if dec.Params[0] != 3 && dec.Params[0] != 7 {
		t.Fatalf("witness %v satisfies neither disjunct", dec.Params[0])
	}
}

func TestMemoryIsReusedAcrossCalls(t *testing.T) {
	mem := Memory{}
	c := sym.Eq(sym.Any(0), sym.ConFloat(9))
	dec := Solve(optim.DefaultConfig(), []*sym.Sym{c}, mem, false, false, 10)
	if !dec.Sat {
		t.Fatal("expected SAT")
	}
	if mem[0] != dec.Params[0] {
		t.Fatalf("memory not updated: mem=%v params=%v", mem, dec.Params)
	}
}
