package sym

import "math"

// Params maps input-variable ids to the concrete float values the
// gradient optimizer is currently trying.
type Params map[int]float64

// Eval computes the differentiable loss of s under params, with slack
// eps for strict inequalities and negation. A node is "satisfied" when
// its loss is <= 0.
func (s *Sym) Eval(params Params, eps float64) float64 {
	switch s.Kind {
	case KCon:
		return float64(s.Con.Float())
	case KAny:
		return params[s.Var]
	case KAdd:
		return s.L.Eval(params, eps) + s.R.Eval(params, eps)
	case KSub:
		return s.L.Eval(params, eps) - s.R.Eval(params, eps)
	case KMul:
		return s.L.Eval(params, eps) * s.R.Eval(params, eps)
	case KEq:
		return math.Abs(s.L.Eval(params, eps) - s.R.Eval(params, eps))
	case KLt:
		return s.L.Eval(params, eps) - s.R.Eval(params, eps) + eps
	case KLe:
		return s.L.Eval(params, eps) - s.R.Eval(params, eps)
	case KNot:
		return -s.L.Eval(params, eps) + eps
	case KAnd:
		return math.Max(0, s.L.Eval(params, eps)) + math.Max(0, s.R.Eval(params, eps))
	case KOr:
		lv := math.Max(0, s.L.Eval(params, eps))
		rv := math.Max(0, s.R.Eval(params, eps))
		return lv * rv
	case KCnt:
		extended := make(Params, len(params)+len(s.Assign))
		for k, v := range params {
			extended[k] = v
		}
		for k, v := range s.Assign {
			extended[k] = v
		}
		if s.Sub.IsPredicate() {
			if s.Sub.Eval(extended, eps) <= 0 {
				return 1
			}
			return 0
		}
		return 1
	}
	return 0
}

// IsPredicate reports whether s is a Boolean-valued node (an atom or a
// combinator over atoms), as opposed to a purely arithmetic node. KCnt
// uses this to decide whether its Eval yields an indicator or a plain
// pass-through count of 1.
func (s *Sym) IsPredicate() bool {
	switch s.Kind {
	case KEq, KLt, KLe, KNot, KAnd, KOr:
		return true
	default:
		return false
	}
}

// Holds reports whether s's loss is <= 0 under params, i.e. whether the
// predicate s is satisfied.
func (s *Sym) Holds(params Params, eps float64) bool {
	return s.Eval(params, eps) <= 0
}
