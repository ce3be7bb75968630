package dpll

// FixNegations pushes negation down to the literals via De Morgan and
// eliminates double negation.
func (e *Expr) FixNegations() *Expr {
	switch e.Kind {
	case KVar, KConst:
		return e
	case KAnd:
		return And(e.L.FixNegations(), e.R.FixNegations())
	case KOr:
		return Or(e.L.FixNegations(), e.R.FixNegations())
	case KNot:
		inner := e.Inner
		switch inner.Kind {
		case KConst:
			return BoolConst(!inner.Value)
		case KVar:
			return Not(inner)
		case KNot:
			return inner.Inner.FixNegations()
		case KAnd:
			return Or(Not(inner.L).FixNegations(), Not(inner.R).FixNegations())
		case KOr:
			return And(Not(inner.L).FixNegations(), Not(inner.R).FixNegations())
		}
	}
	return e
}

// Distribute converts e to CNF by distributing Or over And.
func (e *Expr) Distribute() *Expr {
	switch e.Kind {
	case KVar, KConst:
		return e
	case KNot:
		return Not(e.Inner.Distribute())
	case KAnd:
		return And(e.L.Distribute(), e.R.Distribute())
	case KOr:
		switch {
		case e.R.Kind == KAnd:
			return And(
				Or(e.L.Distribute(), e.R.L.Distribute()),
				Or(e.L.Distribute(), e.R.R.Distribute()),
			)
		case e.L.Kind == KAnd:
			return And(
				Or(e.R.Distribute(), e.L.L.Distribute()),
				Or(e.R.Distribute(), e.L.R.Distribute()),
			)
		default:
			return Or(e.L.Distribute(), e.R.Distribute())
		}
	}
	return e
}

// CNF is the fixpoint of FixNegations composed with Distribute: every
// conjunct of the result is a disjunction of literals.
func CNF(e *Expr) *Expr {
	next := e.FixNegations().Distribute()
	if next.String() == e.String() {
		return e
	}
	return CNF(next)
}
