package sym

// SymProb is a symbolic rational representing a reach probability as
// Num/Den.
type SymProb struct {
	Num *Sym
	Den *Sym
}

// OneOverOne is the identity probability 1/1, the starting value of
// SymState.P before any probabilistic branch has been observed.
func OneOverOne() SymProb {
	return SymProb{Num: ConFloat(1), Den: ConFloat(1)}
}

// Mul multiplies two symbolic rationals, applying a textual
// cancellation rule: if p.Den and q.Num render identically, the product
// simplifies to p.Num/q.Den (and symmetrically). This is a syntactic,
// not semantic, simplification — it is correct but not complete, so
// callers should compare by Eval rather than by tree shape.
func (p SymProb) Mul(q SymProb) SymProb {
	if p.Den.CanonicalString() == q.Num.CanonicalString() {
		return SymProb{Num: p.Num, Den: q.Den}
	}
	if p.Num.CanonicalString() == q.Den.CanonicalString() {
		return SymProb{Num: q.Num, Den: p.Den}
	}
	return SymProb{Num: Mul(p.Num, q.Num), Den: Mul(p.Den, q.Den)}
}

// Eval returns the numeric ratio of p under params; if the denominator
// evaluates to zero, Eval returns 0 rather than dividing by it.
func (p SymProb) Eval(params Params, eps float64) float64 {
	num := p.Num.Eval(params, eps)
	den := p.Den.Eval(params, eps)
	if den == 0 {
		return 0
	}
	return num / den
}

// CompareOp names the comparison SymProb.Query builds.
type CompareOp uint8

const (
	QueryEq CompareOp = iota
	QueryLt
	QueryLe
)

// Query builds a single comparison op(Num, Den*rhs) — asking "is the
// posterior probability equal to (or bounded by) rhs?" — without
// performing a division, so the result stays usable by the gradient
// optimizer.
func (p SymProb) Query(op CompareOp, rhs *Sym) *Sym {
	scaledDen := Mul(p.Den, rhs)
	switch op {
	case QueryLt:
		return Lt(p.Num, scaledDen)
	case QueryLe:
		return Le(p.Num, scaledDen)
	default:
		return Eq(p.Num, scaledDen)
	}
}
