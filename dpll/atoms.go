package dpll

import "gradsym/sym"

// FromSym abstracts a Sym Boolean skeleton (And/Or/Not over
// comparison atoms) into an Expr, giving each syntactically distinct
// leaf atom a propositional variable named by its canonical string.
// atoms is populated with every leaf encountered, keyed by that same
// name, so a satisfying Boolean assignment can later be turned back
// into a signed conjunction of the original atoms.
func FromSym(s *sym.Sym, atoms map[string]*sym.Sym) *Expr {
	switch s.Kind {
	case sym.KAnd:
		return And(FromSym(s.L, atoms), FromSym(s.R, atoms))
	case sym.KOr:
		return Or(FromSym(s.L, atoms), FromSym(s.R, atoms))
	case sym.KNot:
		return Not(FromSym(s.L, atoms))
	default:
		name := s.CanonicalString()
		atoms[name] = s
		return Var(name)
	}
}

// PathConstraintsToExpr conjoins a path's constraints into a single
// Expr; an empty constraint set is trivially satisfiable.
func PathConstraintsToExpr(constraints []*sym.Sym, atoms map[string]*sym.Sym) *Expr {
	if len(constraints) == 0 {
		return BoolConst(true)
	}
	e := FromSym(constraints[0], atoms)
	for _, c := range constraints[1:] {
		e = And(e, FromSym(c, atoms))
	}
	return e
}

// SignedConjunction turns a DPLL assignment back into the conjunction
// of atoms (each possibly wrapped in sym.Not) to hand to the gradient
// optimizer.
func SignedConjunction(assignments map[string]bool, atoms map[string]*sym.Sym) []*sym.Sym {
	out := make([]*sym.Sym, 0, len(assignments))
	for name, val := range assignments {
		atom, ok := atoms[name]
		if !ok {
			continue
		}
		if val {
			out = append(out, atom)
		} else {
			out = append(out, sym.Not(atom))
		}
	}
	return out
}
