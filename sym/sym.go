// Package sym implements the symbolic expression algebra: an immutable
// term DAG with evaluation against a differentiable loss, a gradient,
// and the variable-gathering and canonical-string operations the
// executor, the gradient optimizer, and the DPLL layer all build on.
//
// Sym nodes are never mutated after construction: this package leans on
// Go's garbage collector as its arena instead of a hand-rolled
// arena-by-index or raw pointers — a *Sym is already a safely shared,
// reference-counted-by-GC node, and children may be shared freely
// between trees.
package sym

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gradsym/word"
)

// Kind tags the variant of a Sym node.
type Kind uint8

const (
	KAdd Kind = iota
	KSub
	KMul
	KEq
	KNot
	KOr
	KAnd
	KLt
	KLe
	KCon
	KAny
	KCnt
)

// Sym is a node in the symbolic term DAG. Exactly the fields relevant to
// Kind are populated; the zero value of the others is ignored.
type Sym struct {
	Kind Kind

	L, R *Sym // operands of binary/unary nodes (L only, for Not)

	Con word.Word // KCon
	Var int       // KAny: input variable id

	Sub    *Sym            // KCnt: the wrapped sub-term
	Assign map[int]float64 // KCnt: the partial assignment extending the context
}

// Con builds a literal Sym.
func Con(w word.Word) *Sym { return &Sym{Kind: KCon, Con: w} }

// ConFloat is a convenience wrapper around Con for float literals.
func ConFloat(v float32) *Sym { return Con(word.FromFloat(v)) }

// Any builds an input-variable Sym.
func Any(varID int) *Sym { return &Sym{Kind: KAny, Var: varID} }

// Add, Sub, Mul build arithmetic nodes.
func Add(l, r *Sym) *Sym { return &Sym{Kind: KAdd, L: l, R: r} }
func Sub(l, r *Sym) *Sym { return &Sym{Kind: KSub, L: l, R: r} }
func Mul(l, r *Sym) *Sym { return &Sym{Kind: KMul, L: l, R: r} }

// Eq, Lt, Le build comparison atoms.
func Eq(l, r *Sym) *Sym { return &Sym{Kind: KEq, L: l, R: r} }
func Lt(l, r *Sym) *Sym { return &Sym{Kind: KLt, L: l, R: r} }
func Le(l, r *Sym) *Sym { return &Sym{Kind: KLe, L: l, R: r} }

// Ne is encoded as Not(Eq(l, r)); there is no dedicated inequality node.
func Ne(l, r *Sym) *Sym { return Not(Eq(l, r)) }

// Not, And, Or build the Boolean combinators.
func Not(a *Sym) *Sym   { return &Sym{Kind: KNot, L: a} }
func And(l, r *Sym) *Sym { return &Sym{Kind: KAnd, L: l, R: r} }
func Or(l, r *Sym) *Sym  { return &Sym{Kind: KOr, L: l, R: r} }

// Cnt wraps sub under a partial assignment used during probability
// marginalisation. assign is copied so the caller's map may be reused.
func Cnt(sub *Sym, assign map[int]float64) *Sym {
	copied := make(map[int]float64, len(assign))
	for k, v := range assign {
		copied[k] = v
	}
	return &Sym{Kind: KCnt, Sub: sub, Assign: copied}
}

// IsAtom reports whether s is a leaf comparison (non-boolean-combinator)
// node — the unit DPLL treats as an atomic proposition.
func (s *Sym) IsAtom() bool {
	switch s.Kind {
	case KEq, KLt, KLe:
		return true
	default:
		return false
	}
}

// IsBoolCombinator reports whether s is And/Or/Not.
func (s *Sym) IsBoolCombinator() bool {
	switch s.Kind {
	case KAnd, KOr, KNot:
		return true
	default:
		return false
	}
}

// VarIDs returns the sorted, de-duplicated set of input-variable ids
// appearing free in s (KCnt's Assign entries are bindings, not free
// occurrences, and are excluded unless the sub-term also references
// them directly).
func (s *Sym) VarIDs() []int {
	seen := map[int]bool{}
	var walk func(*Sym)
	walk = func(n *Sym) {
		if n == nil {
			return
		}
		switch n.Kind {
		case KAny:
			seen[n.Var] = true
		case KCon:
			// no vars
		case KCnt:
			walk(n.Sub)
		case KNot:
			walk(n.L)
		default:
			walk(n.L)
			walk(n.R)
		}
	}
	walk(s)
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// String renders s in a human-readable infix form, for logs and
// debugging. It is distinct from the canonical cache key produced by
// CanonicalString.
func (s *Sym) String() string {
	if s == nil {
		return "<nil>"
	}
	switch s.Kind {
	case KCon:
		f := s.Con.Float()
		if word.IsInteger(f) {
			return strconv.FormatInt(int64(f), 10)
		}
		return strconv.FormatFloat(float64(f), 'g', -1, 32)
	case KAny:
		return fmt.Sprintf("v%d", s.Var)
	case KNot:
		return "!" + paren(s.L)
	case KAdd:
		return paren(s.L) + " + " + paren(s.R)
	case KSub:
		return paren(s.L) + " - " + paren(s.R)
	case KMul:
		return paren(s.L) + " * " + paren(s.R)
	case KEq:
		return paren(s.L) + " == " + paren(s.R)
	case KLt:
		return paren(s.L) + " < " + paren(s.R)
	case KLe:
		return paren(s.L) + " <= " + paren(s.R)
	case KAnd:
		return paren(s.L) + " && " + paren(s.R)
	case KOr:
		return paren(s.L) + " || " + paren(s.R)
	case KCnt:
		var parts []string
		for k, v := range s.Assign {
			parts = append(parts, fmt.Sprintf("v%d=%g", k, v))
		}
		sort.Strings(parts)
		return "cnt(" + s.Sub.String() + "; " + strings.Join(parts, ",") + ")"
	}
	return "?"
}

func paren(s *Sym) string {
	if s == nil {
		return "<nil>"
	}
	if s.Kind == KCon || s.Kind == KAny {
		return s.String()
	}
	return "(" + s.String() + ")"
}

// CanonicalString is the cache-key form used by the constraint caches:
// it always renders literals as numbers, and structurally identical,
// order-identical atom sequences always render identically.
func (s *Sym) CanonicalString() string {
	if s == nil {
		return ""
	}
	switch s.Kind {
	case KCon:
		return strconv.FormatFloat(float64(s.Con.Float()), 'g', -1, 32)
	case KAny:
		return "v" + strconv.Itoa(s.Var)
	case KNot:
		return "!(" + s.L.CanonicalString() + ")"
	case KAdd:
		return "(" + s.L.CanonicalString() + "+" + s.R.CanonicalString() + ")"
	case KSub:
		return "(" + s.L.CanonicalString() + "-" + s.R.CanonicalString() + ")"
	case KMul:
		return "(" + s.L.CanonicalString() + "*" + s.R.CanonicalString() + ")"
	case KEq:
		return "(" + s.L.CanonicalString() + "==" + s.R.CanonicalString() + ")"
	case KLt:
		return "(" + s.L.CanonicalString() + "<" + s.R.CanonicalString() + ")"
	case KLe:
		return "(" + s.L.CanonicalString() + "<=" + s.R.CanonicalString() + ")"
	case KAnd:
		return "(" + s.L.CanonicalString() + "&&" + s.R.CanonicalString() + ")"
	case KOr:
		return "(" + s.L.CanonicalString() + "||" + s.R.CanonicalString() + ")"
	case KCnt:
		ids := make([]int, 0, len(s.Assign))
		for k := range s.Assign {
			ids = append(ids, k)
		}
		sort.Ints(ids)
		var parts []string
		for _, id := range ids {
			parts = append(parts, fmt.Sprintf("v%d=%g", id, s.Assign[id]))
		}
		return "cnt(" + s.Sub.CanonicalString() + ";" + strings.Join(parts, ",") + ")"
	}
	return ""
}

// ConjunctionString joins atoms' canonical strings with "&&": the cache
// key form for a whole path constraint set.
func ConjunctionString(atoms []*Sym) string {
	parts := make([]string, len(atoms))
	for i, a := range atoms {
		parts[i] = a.CanonicalString()
	}
	return strings.Join(parts, "&&")
}

// Substitute rebuilds s with every KAny(v) leaf for which concrete has an
// entry replaced by the corresponding literal. Used by JmpIf to simplify
// a branch condition against already-concretised memory before it is
// recorded as a path constraint.
func (s *Sym) Substitute(concrete map[int]word.Word) *Sym {
	if s == nil {
		return nil
	}
	switch s.Kind {
	case KCon:
		return s
	case KAny:
		if w, ok := concrete[s.Var]; ok {
			return Con(w)
		}
		return s
	case KNot:
		return &Sym{Kind: KNot, L: s.L.Substitute(concrete)}
	case KCnt:
		return &Sym{Kind: KCnt, Sub: s.Sub.Substitute(concrete), Assign: s.Assign}
	default:
		return &Sym{Kind: s.Kind, L: s.L.Substitute(concrete), R: s.R.Substitute(concrete)}
	}
}
