package word

// CartesianProduct returns every combination that picks one element from
// each of sets, in the order that varies the last set fastest. It is used
// to enumerate joint assignments of discrete random variables during
// probability marginalisation.
func CartesianProduct[T any](sets [][]T) [][]T {
	if len(sets) == 0 {
		return [][]T{{}}
	}
	for _, s := range sets {
		if len(s) == 0 {
			return nil
		}
	}

	total := 1
	for _, s := range sets {
		total *= len(s)
	}

	result := make([][]T, 0, total)
	combo := make([]T, len(sets))
	var build func(i int)
	build = func(i int) {
		if i == len(sets) {
			row := make([]T, len(combo))
			copy(row, combo)
			result = append(result, row)
			return
		}
		for _, v := range sets[i] {
			combo[i] = v
			build(i + 1)
		}
	}
	build(0)
	return result
}
