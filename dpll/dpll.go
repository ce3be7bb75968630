package dpll

// Config toggles the optional literal-elimination pass, which is
// implemented but left off by default; callers can enable it to
// validate its effect on a particular formula before relying on it.
type Config struct {
	EnableLiteralElimination bool
}

func cloneAssignments(m map[string]bool) map[string]bool {
	next := make(map[string]bool, len(m))
	for k, v := range m {
		next[k] = v
	}
	return next
}

// unitClauses collects every clause of e that is itself a literal.
func unitClauses(e *Expr) []struct {
	name string
	val  bool
} {
	var out []struct {
		name string
		val  bool
	}
	for _, clause := range e.Clauses() {
		if name, val, ok := clause.UnitClause(); ok {
			out = append(out, struct {
				name string
				val  bool
			}{name, val})
		}
	}
	return out
}

// unitPropagate scans e's CNF clauses for unit clauses and substitutes
// each one's forced value, recording the assignment.
func unitPropagate(e *Expr, assignments map[string]bool) *Expr {
	for _, uc := range unitClauses(e) {
		e = e.GuessVar(uc.name, uc.val)
		assignments[uc.name] = uc.val
	}
	return e
}

// literalEliminate assigns every atom that occurs with a single
// polarity throughout e to that polarity, recording the assignment.
func literalEliminate(e *Expr, assignments map[string]bool) *Expr {
	for _, name := range e.Literals() {
		switch e.LiteralPolarity(name) {
		case Positive:
			e = e.GuessVar(name, true)
			assignments[name] = true
		case Negative:
			e = e.GuessVar(name, false)
			assignments[name] = false
		}
	}
	return e
}

// SatisfiableDPLL decides satisfiability of e: unit-propagate,
// optionally literal-eliminate, then split on a free variable, trying
// true before false. It returns the satisfying assignment merged into
// a fresh map when true.
func SatisfiableDPLL(e *Expr, assignments map[string]bool, cfg Config) (bool, map[string]bool) {
	assignments = cloneAssignments(assignments)

	working := unitPropagate(CNF(e), assignments)
	if cfg.EnableLiteralElimination {
		working = literalEliminate(working, assignments)
	}

	name, ok := working.FreeVar()
	if !ok {
		return working.Simplify().UnConst(), assignments
	}

	trueGuess := e.GuessVar(name, true).Simplify()
	trueAssignments := cloneAssignments(assignments)
	trueAssignments[name] = true
	if sat, final := SatisfiableDPLL(trueGuess, trueAssignments, cfg); sat {
		return true, final
	}

	falseGuess := e.GuessVar(name, false).Simplify()
	falseAssignments := cloneAssignments(assignments)
	falseAssignments[name] = false
	if sat, final := SatisfiableDPLL(falseGuess, falseAssignments, cfg); sat {
		return true, final
	}

	return false, assignments
}
