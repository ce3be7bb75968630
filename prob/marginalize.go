package prob

import (
	"sort"

	"gradsym/sym"
	"gradsym/word"
)

type valWeight struct {
	val    int
	weight float64
}

// Marginalize evaluates p under params, summing indicator-wrapped
// copies of its numerator and denominator over the Cartesian product
// of the support of every random variable free in p, each combination
// weighted by its joint probability. Variables with no distribution
// registered are left alone: if p mentions none, Marginalize falls
// back to p.Eval directly.
func Marginalize(p sym.SymProb, params sym.Params, eps float64, randomVars map[int]DiscreteDist) float64 {
	ids := relevantRandomVars(p, randomVars)
	if len(ids) == 0 {
		return p.Eval(params, eps)
	}

	sets := make([][]valWeight, len(ids))
	for i, id := range ids {
		dist := randomVars[id]
		vws := make([]valWeight, len(dist.Vals))
		for j, v := range dist.Vals {
			vws[j] = valWeight{val: v, weight: dist.Weights[j]}
		}
		sets[i] = vws
	}
	combos := word.CartesianProduct(sets)

	var numSum, denSum float64
	for _, combo := range combos {
		assign := make(map[int]float64, len(ids))
		weight := 1.0
		for i, vw := range combo {
			assign[ids[i]] = float64(vw.val)
			weight *= vw.weight
		}
		numSum += weight * sym.Cnt(p.Num, assign).Eval(params, eps)
		denSum += weight * sym.Cnt(p.Den, assign).Eval(params, eps)
	}

	if denSum == 0 {
		return 0
	}
	return numSum / denSum
}

// relevantRandomVars returns the sorted ids of registered random
// variables that appear free in p's numerator or denominator.
func relevantRandomVars(p sym.SymProb, randomVars map[int]DiscreteDist) []int {
	seen := map[int]bool{}
	for _, id := range p.Num.VarIDs() {
		if _, ok := randomVars[id]; ok {
			seen[id] = true
		}
	}
	for _, id := range p.Den.VarIDs() {
		if _, ok := randomVars[id]; ok {
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
