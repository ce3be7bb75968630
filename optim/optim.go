package optim

import (
	"math"
	"math/rand/v2"
	"sort"

	"gradsym/sym"
)

// Optimizer minimises the differentiable loss of a conjunction of Sym
// atoms by gradient descent: accumulate the gradient over violated
// constraints each epoch, step every non-constant parameter, recheck,
// with a bounded uniform initialisation, a sign-vs-raw gradient choice,
// and an epsilon slack on strict inequalities.
type Optimizer struct {
	Config Config
}

func New(cfg Config) Optimizer {
	return Optimizer{Config: cfg}
}

// Eval reports whether every constraint is satisfied under params: each
// atom's loss must be <= 0.
func Eval(constraints []*sym.Sym, params sym.Params, eps float64) bool {
	for _, c := range constraints {
		if c.Eval(params, eps) > 0 {
			return false
		}
	}
	return true
}

// Result is what Solve returns: whether the conjunction was satisfied,
// the final parameter assignment, and how many gradient steps were
// spent, surfaced for callers that report exploration cost.
type Result struct {
	Satisfiable bool
	Params      sym.Params
	NumUsedItr  int
}

// Solve runs (sign) gradient descent on constraints starting from
// params:
//
//  1. an empty constraint set is trivially satisfiable;
//  2. variables already bound in params are held constant iff
//     initParamsConst (they represent already-concretised memory);
//     unbound variables are seeded by a Config.Seed-determined uniform
//     draw from [ParamLow, ParamHigh];
//  3. while unsatisfied and under NumEpochs, accumulate the gradient
//     over violated constraints and step every non-constant
//     coordinate, by sign(g)*lr if SignGrad else g*lr;
//  4. return the final satisfiability.
func (o Optimizer) Solve(constraints []*sym.Sym, params sym.Params, initParamsConst bool) Result {
	if len(constraints) == 0 {
		return Result{Satisfiable: true, Params: cloneParams(params)}
	}

	params = cloneParams(params)
	isConst := map[int]bool{}
	for _, varID := range collectVarIDs(constraints) {
		if _, ok := params[varID]; ok {
			isConst[varID] = initParamsConst
		} else {
			params[varID] = o.sampleInitial(varID)
			isConst[varID] = false
		}
	}

	itr := 0
	satisfied := Eval(constraints, params, o.Config.Eps)
	for !satisfied && itr < o.Config.NumEpochs {
		grad := sym.Grad{}
		for _, c := range constraints {
			if c.Eval(params, o.Config.Eps) > 0 {
				grad = grad.Add(c.Grad(params, o.Config.Eps))
			}
		}
		step := grad
		if o.Config.SignGrad {
			step = grad.Sign()
		}
		for varID, g := range step {
			if isConst[varID] {
				continue
			}
			params[varID] -= o.Config.LR * g
		}
		satisfied = Eval(constraints, params, o.Config.Eps)
		itr++
	}

	return Result{Satisfiable: satisfied, Params: params, NumUsedItr: itr}
}

// sampleInitial draws a deterministic uniform value for varID from
// [ParamLow, ParamHigh]. Seeding on Config.Seed plus varID keeps
// initialisation reproducible under a fixed seed while giving each
// unbound variable an independent draw.
func (o Optimizer) sampleInitial(varID int) float64 {
	src := rand.NewPCG(uint64(o.Config.Seed), uint64(varID))
	r := rand.New(src)
	span := o.Config.ParamHigh - o.Config.ParamLow
	v := o.Config.ParamLow + r.Float64()*span
	if o.Config.InitParamUniformInt {
		return math.Round(v)
	}
	return v
}

func cloneParams(params sym.Params) sym.Params {
	next := make(sym.Params, len(params))
	for k, v := range params {
		next[k] = v
	}
	return next
}

func collectVarIDs(constraints []*sym.Sym) []int {
	seen := map[int]bool{}
	for _, c := range constraints {
		for _, id := range c.VarIDs() {
			seen[id] = true
		}
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
