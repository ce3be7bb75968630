package executor

import (
	"context"
	"testing"

	"gradsym/lang"
	"gradsym/sym"
	"gradsym/vm"
)

func compileOrFatal(t *testing.T, src string) vm.Program {
	t.Helper()
	res, err := lang.Compile(src)
	if err != nil {
		t.Fatalf("compile %q: %v", src, err)
	}
	return res.Program
}

func TestRunSimpleBranchExploresBothPaths(t *testing.T) {
	prog := compileOrFatal(t, "if (x < 3) { return 1; } else { return 2; }")

	e := New(DefaultConfig())
	trace := e.Run(prog, nil, vm.NewSymState(), 32)

	leaves := trace.Leaves()
	if len(leaves) != 2 {
		t.Fatalf("expected 2 leaves, got %d (%s)", len(leaves), trace)
	}
	if e.Cache.CountSAT() != 2 {
		t.Fatalf("expected both branches SAT, cache=%+v", e.Cache.entries)
	}
	if e.Cache.CountUNSAT() != 0 {
		t.Fatalf("expected no UNSAT branches, cache=%+v", e.Cache.entries)
	}
}

func TestRunPrunesInfeasibleBranch(t *testing.T) {
	// x < 3 and, on the same variable, x > 3 nested inside its then
	// branch: the inner then-branch's constraint set is jointly
	// unsatisfiable.
	prog := compileOrFatal(t, "if (x < 3) { if (x > 3) { return 1; } return 2; } return 3;")

	e := New(DefaultConfig())
	trace := e.Run(prog, nil, vm.NewSymState(), 32)

	if e.Cache.CountUNSAT() == 0 {
		t.Fatalf("expected at least one infeasible path, cache=%+v", e.Cache.entries)
	}
	_ = trace
}

func TestDecideCachesAcrossCalls(t *testing.T) {
	e := New(DefaultConfig())
	c := sym.Lt(sym.Any(0), sym.ConFloat(3))
	constraints := []*sym.Sym{c}

	if !e.decide(context.Background(), constraints) {
		t.Fatal("expected SAT")
	}
	if e.Cache.Len() != 1 {
		t.Fatalf("expected one cache entry, got %d", e.Cache.Len())
	}

	before := e.maxSAT
	if !e.decide(context.Background(), constraints) {
		t.Fatal("expected cached SAT on second call")
	}
	if e.maxSAT != before {
		t.Fatalf("budget decremented again on a cache hit: before=%d after=%d", before, e.maxSAT)
	}
}

func TestDecideDecrementsMatchingBudget(t *testing.T) {
	e := New(DefaultConfig())
	sat := sym.Lt(sym.Any(0), sym.ConFloat(3))
	unsatPair := []*sym.Sym{
		sym.Lt(sym.Any(1), sym.ConFloat(3)),
		sym.Lt(sym.ConFloat(5), sym.Any(1)),
	}

	startSAT, startUNSAT := e.maxSAT, e.maxUNSAT
	e.decide(context.Background(), []*sym.Sym{sat})
	if e.maxSAT != startSAT-1 || e.maxUNSAT != startUNSAT {
		t.Fatalf("expected only maxSAT to decrement, got maxSAT=%d maxUNSAT=%d", e.maxSAT, e.maxUNSAT)
	}

	e.decide(context.Background(), unsatPair)
	if e.maxUNSAT != startUNSAT-1 {
		t.Fatalf("expected maxUNSAT to decrement, got %d", e.maxUNSAT)
	}
}

func TestRunRespectsMaxDepth(t *testing.T) {
	prog := compileOrFatal(t, "if (x < 3) { return 1; } else { return 2; }")

	e := New(DefaultConfig())
	trace := e.Run(prog, nil, vm.NewSymState(), 0)

	// depth 0 means the root itself is never stepped past.
	if len(trace.Children) != 0 {
		t.Fatalf("expected no children at maxDepth=0, got %d", len(trace.Children))
	}
}

// TestScenarioBranchWithConcreteAssignment checks that exploring a
// program with a concretely-assigned branch variable yields exactly 7
// SAT and 3 UNSAT cache entries.
func TestScenarioBranchWithConcreteAssignment(t *testing.T) {
	prog := compileOrFatal(t, "if (a > 2) { b = 1; if (b == 4) { c = 3; } if (b == 3) { return 1; } else { c = 1; } } if (c == 1) return 2;")

	e := New(DefaultConfig())
	e.Run(prog, nil, vm.NewSymState(), 64)

	if got := e.Cache.CountSAT(); got != 7 {
		t.Fatalf("expected 7 SAT entries, got %d (cache=%+v)", got, e.Cache.entries)
	}
	if got := e.Cache.CountUNSAT(); got != 3 {
		t.Fatalf("expected 3 UNSAT entries, got %d (cache=%+v)", got, e.Cache.entries)
	}
}

func TestIsTargetPC(t *testing.T) {
	if !isTargetPC(5, nil) {
		t.Fatal("empty target set should match every pc")
	}
	if !isTargetPC(5, []int{-1}) {
		t.Fatal("sentinel -1 should match every pc")
	}
	if !isTargetPC(5, []int{5, 9}) {
		t.Fatal("explicit member should match")
	}
	if isTargetPC(5, []int{9}) {
		t.Fatal("non-member should not match")
	}
}
