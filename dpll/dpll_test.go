package dpll

import "testing"

func TestSimplifyFoldsConstants(t *testing.T) {
	e := And(BoolConst(true), Or(BoolConst(false), Var("a")))
	got := e.Simplify().String()
	if got != "a" {
		t.Fatalf("got %q", got)
	}
}

func TestGuessVarOnConstIsIdentity(t *testing.T) {
	// substitution on a Const must not change it.
	c := BoolConst(true)
	if got := c.GuessVar("a", false); got.UnConst() != true {
		t.Fatalf("GuessVar on Const changed its value: %v", got)
	}
}

func TestUnitClauseDetection(t *testing.T) {
	if name, val, ok := Var("a").UnitClause(); !ok || name != "a" || !val {
		t.Fatalf("got %q %v %v", name, val, ok)
	}
	if name, val, ok := Not(Var("a")).UnitClause(); !ok || name != "a" || val {
		t.Fatalf("got %q %v %v", name, val, ok)
	}
	if _, _, ok := And(Var("a"), Var("b")).UnitClause(); ok {
		t.Fatal("And is not a unit clause")
	}
}

// TestDPLLConsistency checks that (A || !(B && (A || C))) is SAT, and
// that after cnf every conjunct is a disjunction of literals.
func TestDPLLConsistency(t *testing.T) {
	a, b, c := Var("A"), Var("B"), Var("C")
	expr := Or(a, Not(And(b, Or(a, c))))

	sat, assignments := SatisfiableDPLL(expr, map[string]bool{}, Config{})
	if !sat {
		t.Fatalf("expected SAT, got UNSAT with assignments %v", assignments)
	}

	cnf := CNF(expr)
	for _, clause := range cnf.Clauses() {
		if !isDisjunctionOfLiterals(clause) {
			t.Fatalf("clause %q is not a disjunction of literals", clause.String())
		}
	}
}

func isDisjunctionOfLiterals(e *Expr) bool {
	switch e.Kind {
	case KVar:
		return true
	case KNot:
		return e.Inner.Kind == KVar
	case KOr:
		return isDisjunctionOfLiterals(e.L) && isDisjunctionOfLiterals(e.R)
	default:
		return false
	}
}

func TestUnsatisfiableConjunction(t *testing.T) {
	expr := And(Var("a"), Not(Var("a")))
	sat, _ := SatisfiableDPLL(expr, map[string]bool{}, Config{})
	if sat {
		t.Fatal("expected UNSAT for a && !a")
	}
}

func TestLiteralEliminationAgreesWithoutIt(t *testing.T) {
	expr := Or(Var("a"), And(Var("a"), Var("b")))
	satOff, _ := SatisfiableDPLL(expr, map[string]bool{}, Config{})
	satOn, _ := SatisfiableDPLL(expr, map[string]bool{}, Config{EnableLiteralElimination: true})
	if satOff != satOn {
		t.Fatalf("literal elimination changed satisfiability: off=%v on=%v", satOff, satOn)
	}
}
