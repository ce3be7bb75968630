// Package dpll implements the Boolean layer: an atom-abstracted
// propositional Expr tree and a Davis-Putnam-Logemann-Loveland solver
// over it. The numerical layer (package optim) only ever sees a
// conjunction of atoms; dpll decides which polarity each atom should
// take.
package dpll

// Kind tags the variant of an Expr node, mirroring sym.Kind's
// single-struct-with-tag shape rather than an interface hierarchy.
type Kind uint8

const (
	KVar Kind = iota
	KAnd
	KOr
	KNot
	KConst
)

// Expr is a node in the propositional skeleton. Var carries a leaf
// atom's name; And/Or carry L and R; Not carries Inner; Const carries
// Value. Exactly the fields relevant to Kind are populated.
type Expr struct {
	Kind Kind

	Name string // KVar

	L, R  *Expr // KAnd, KOr
	Inner *Expr // KNot

	Value bool // KConst
}

func Var(name string) *Expr   { return &Expr{Kind: KVar, Name: name} }
func And(l, r *Expr) *Expr    { return &Expr{Kind: KAnd, L: l, R: r} }
func Or(l, r *Expr) *Expr     { return &Expr{Kind: KOr, L: l, R: r} }
func Not(inner *Expr) *Expr   { return &Expr{Kind: KNot, Inner: inner} }
func BoolConst(v bool) *Expr  { return &Expr{Kind: KConst, Value: v} }

// String renders e in infix form, used both for display and as the
// fixpoint-comparison key in cnf.
func (e *Expr) String() string {
	switch e.Kind {
	case KVar:
		return e.Name
	case KConst:
		if e.Value {
			return "True"
		}
		return "False"
	case KNot:
		return "(!" + e.Inner.String() + ")"
	case KAnd:
		return "(" + e.L.String() + " && " + e.R.String() + ")"
	case KOr:
		return "(" + e.L.String() + " || " + e.R.String() + ")"
	}
	return "?"
}

// constValue reports whether e is a KConst node and its value.
func (e *Expr) constValue() (bool, bool) {
	if e.Kind == KConst {
		return e.Value, true
	}
	return false, false
}

// Evaluate reduces a fully-assigned (constant-only) tree to a bool.
// Any surviving Var evaluates to false; SatisfiableDPLL never calls
// this before every variable has been substituted away.
func (e *Expr) Evaluate() bool {
	switch e.Kind {
	case KVar:
		return false
	case KConst:
		return e.Value
	case KNot:
		return !e.Inner.Evaluate()
	case KAnd:
		return e.L.Evaluate() && e.R.Evaluate()
	case KOr:
		return e.L.Evaluate() || e.R.Evaluate()
	}
	return false
}

// UnConst reports e's constant value, or false if e is not a Const.
func (e *Expr) UnConst() bool {
	if e.Kind == KConst {
		return e.Value
	}
	return false
}

// FreeVar returns the first Var name reachable in e, left to right.
func (e *Expr) FreeVar() (string, bool) {
	switch e.Kind {
	case KVar:
		return e.Name, true
	case KConst:
		return "", false
	case KNot:
		return e.Inner.FreeVar()
	case KAnd, KOr:
		if name, ok := e.L.FreeVar(); ok {
			return name, true
		}
		return e.R.FreeVar()
	}
	return "", false
}

// GuessVar substitutes every occurrence of the named var with a
// BoolConst(val), returning a new tree. On a Const node the
// substitution is the identity: a constant's value never depends on
// any variable assignment.
func (e *Expr) GuessVar(name string, val bool) *Expr {
	switch e.Kind {
	case KVar:
		if e.Name == name {
			return BoolConst(val)
		}
		return e
	case KConst:
		return e
	case KNot:
		return Not(e.Inner.GuessVar(name, val))
	case KAnd:
		return And(e.L.GuessVar(name, val), e.R.GuessVar(name, val))
	case KOr:
		return Or(e.L.GuessVar(name, val), e.R.GuessVar(name, val))
	}
	return e
}

// Simplify folds trivial True/False children of And/Or/Not.
func (e *Expr) Simplify() *Expr {
	switch e.Kind {
	case KVar, KConst:
		return e
	case KNot:
		inner := e.Inner.Simplify()
		if v, ok := inner.constValue(); ok {
			return BoolConst(!v)
		}
		return Not(inner)
	case KAnd:
		l := e.L.Simplify()
		r := e.R.Simplify()
		lv, lok := l.constValue()
		rv, rok := r.constValue()
		switch {
		case lok && !lv, rok && !rv:
			return BoolConst(false)
		case lok && rok:
			return BoolConst(lv && rv)
		case lok && lv:
			return r
		case rok && rv:
			return l
		default:
			return And(l, r)
		}
	case KOr:
		l := e.L.Simplify()
		r := e.R.Simplify()
		lv, lok := l.constValue()
		rv, rok := r.constValue()
		switch {
		case lok && lv, rok && rv:
			return BoolConst(true)
		case lok && rok:
			return BoolConst(lv || rv)
		case lok && !lv:
			return r
		case rok && !rv:
			return l
		default:
			return Or(l, r)
		}
	}
	return e
}

// Literals returns the sorted, de-duplicated set of atom names in e.
func (e *Expr) Literals() []string {
	seen := map[string]bool{}
	var walk func(*Expr)
	walk = func(n *Expr) {
		switch n.Kind {
		case KVar:
			seen[n.Name] = true
		case KNot:
			walk(n.Inner)
		case KAnd, KOr:
			walk(n.L)
			walk(n.R)
		}
	}
	walk(e)
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	// deterministic order for a deterministic literal-elimination pass
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j-1] > names[j]; j-- {
			names[j-1], names[j] = names[j], names[j-1]
		}
	}
	return names
}

// Polarity is a Var's sign across every occurrence of it in an Expr.
type Polarity uint8

const (
	Absent Polarity = iota
	Positive
	Negative
	Mixed
)

func mergePolarity(a, b Polarity) Polarity {
	switch {
	case a == Absent:
		return b
	case b == Absent:
		return a
	case a == b:
		return a
	default:
		return Mixed
	}
}

// LiteralPolarity reports name's polarity across every occurrence of it
// in e: Positive if every occurrence is unnegated, Negative if every
// occurrence is negated, Mixed if both occur, Absent if name doesn't
// appear.
func (e *Expr) LiteralPolarity(name string) Polarity {
	switch e.Kind {
	case KVar:
		if e.Name == name {
			return Positive
		}
		return Absent
	case KNot:
		if e.Inner.Kind == KVar && e.Inner.Name == name {
			return Negative
		}
		return Absent
	case KAnd, KOr:
		return mergePolarity(e.L.LiteralPolarity(name), e.R.LiteralPolarity(name))
	}
	return Absent
}

// UnitClause reports (name, polarity, true) if e is itself a literal
// (a bare Var or a negated Var); otherwise ("", false, false).
func (e *Expr) UnitClause() (string, bool, bool) {
	switch e.Kind {
	case KVar:
		return e.Name, true, true
	case KNot:
		if e.Inner.Kind == KVar {
			return e.Inner.Name, false, true
		}
	}
	return "", false, false
}

// Clauses splits a CNF-form e into its top-level conjuncts; e itself
// counts as a single clause when it isn't an And.
func (e *Expr) Clauses() []*Expr {
	if e.Kind == KAnd {
		return append(e.L.Clauses(), e.R.Clauses()...)
	}
	return []*Expr{e}
}

func (p Polarity) String() string {
	switch p {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	case Mixed:
		return "mixed"
	default:
		return "absent"
	}
}
