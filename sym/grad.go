package sym

import "math"

// Grad is a sparse gradient: var-id -> coefficient. Absent keys are
// implicitly zero.
type Grad map[int]float64

// Add returns the elementwise sum of g and other.
func (g Grad) Add(other Grad) Grad {
	out := make(Grad, len(g)+len(other))
	for k, v := range g {
		out[k] += v
	}
	for k, v := range other {
		out[k] += v
	}
	return out
}

// Sub returns the elementwise difference g - other.
func (g Grad) Sub(other Grad) Grad {
	out := make(Grad, len(g)+len(other))
	for k, v := range g {
		out[k] += v
	}
	for k, v := range other {
		out[k] -= v
	}
	return out
}

// Scale returns g scaled by c.
func (g Grad) Scale(c float64) Grad {
	out := make(Grad, len(g))
	for k, v := range g {
		out[k] = v * c
	}
	return out
}

// Abs returns the elementwise absolute value of g.
func (g Grad) Abs() Grad {
	out := make(Grad, len(g))
	for k, v := range g {
		out[k] = math.Abs(v)
	}
	return out
}

// Sign returns the elementwise sign of g (-1, 0, or 1), used when the
// optimizer is configured for sign-gradient updates.
func (g Grad) Sign() Grad {
	out := make(Grad, len(g))
	for k, v := range g {
		switch {
		case v > 0:
			out[k] = 1
		case v < 0:
			out[k] = -1
		default:
			out[k] = 0
		}
	}
	return out
}

func zeroGrad() Grad { return Grad{} }

// unitGrad returns {varID: 1}.
func unitGrad(varID int) Grad {
	return Grad{varID: 1}
}

// Grad computes the subgradient of s's Eval loss at params.
func (s *Sym) Grad(params Params, eps float64) Grad {
	switch s.Kind {
	case KCon:
		return zeroGrad()
	case KAny:
		return unitGrad(s.Var)
	case KAdd:
		return s.L.Grad(params, eps).Add(s.R.Grad(params, eps))
	case KSub:
		return s.L.Grad(params, eps).Sub(s.R.Grad(params, eps))
	case KMul:
		lv := s.L.Eval(params, eps)
		rv := s.R.Eval(params, eps)
		return s.R.Grad(params, eps).Scale(lv).Add(s.L.Grad(params, eps).Scale(rv))
	case KEq:
		diff := s.L.Eval(params, eps) - s.R.Eval(params, eps)
		gradDiff := s.L.Grad(params, eps).Sub(s.R.Grad(params, eps))
		if diff == 0 {
			return zeroGrad()
		}
		return gradDiff.Scale(sign(diff))
	case KLt, KLe:
		return s.L.Grad(params, eps).Sub(s.R.Grad(params, eps))
	case KNot:
		return s.L.Grad(params, eps).Scale(-1)
	case KAnd:
		lv := s.L.Eval(params, eps)
		rv := s.R.Eval(params, eps)
		g := zeroGrad()
		if lv > 0 {
			g = g.Add(s.L.Grad(params, eps))
		}
		if rv > 0 {
			g = g.Add(s.R.Grad(params, eps))
		}
		return g
	case KOr:
		lv := math.Max(0, s.L.Eval(params, eps))
		rv := math.Max(0, s.R.Eval(params, eps))
		if lv <= 0 || rv <= 0 {
			return zeroGrad()
		}
		return s.L.Grad(params, eps).Scale(rv).Add(s.R.Grad(params, eps).Scale(lv))
	case KCnt:
		// SCnt's value is a 0/1 indicator (or a constant 1 for an
		// arithmetic sub-term): it is locally flat almost everywhere,
		// so its gradient is zero.
		return zeroGrad()
	}
	return zeroGrad()
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
