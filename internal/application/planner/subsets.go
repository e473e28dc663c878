package planner

import (
	"math"
	"sort"
)

// MinimalSubsets enumerates every minimal subset of candidates accepted by
// satisfied. A subset is minimal when it is accepted and removing any single
// element makes it rejected, which for a monotonic predicate means no proper
// subset is accepted. Subsets keep the candidates' order and are produced in
// include-first depth-first order.
//
// The search is exhaustive (2^n in the worst case). Supersets of an accepted
// subset are never explored.
func MinimalSubsets[T any](candidates []T, satisfied func([]T) bool) [][]T {
	var result [][]T
	var search func(next int, chosen []T)
	search = func(next int, chosen []T) {
		if satisfied(chosen) {
			if isMinimal(chosen, satisfied) {
				subset := make([]T, len(chosen))
				copy(subset, chosen)
				result = append(result, subset)
			}
			return
		}
		if next == len(candidates) {
			return
		}
		search(next+1, append(chosen, candidates[next]))
		search(next+1, chosen)
	}
	search(0, make([]T, 0, len(candidates)))
	return result
}

func isMinimal[T any](subset []T, satisfied func([]T) bool) bool {
	reduced := make([]T, 0, len(subset))
	for skip := range subset {
		reduced = reduced[:0]
		reduced = append(reduced, subset[:skip]...)
		reduced = append(reduced, subset[skip+1:]...)
		if satisfied(reduced) {
			return false
		}
	}
	return true
}

// sumCosts adds costs in ascending order so the result does not depend on the
// order edges were created in. Any NaN makes the sum NaN.
func sumCosts(costs []float64) float64 {
	sorted := append([]float64(nil), costs...)
	for _, c := range sorted {
		if math.IsNaN(c) {
			return math.NaN()
		}
	}
	sort.Float64s(sorted)
	total := 0.0
	for _, c := range sorted {
		total += c
	}
	return total
}

// cheapest returns the index of the lowest total among totals. Known totals
// beat NaN and ties keep the earliest index. Returns -1 for an empty slice.
func cheapest(totals []float64) int {
	best := -1
	for i, total := range totals {
		switch {
		case best < 0:
			best = i
		case math.IsNaN(totals[best]) && !math.IsNaN(total):
			best = i
		case !math.IsNaN(total) && total < totals[best]:
			best = i
		}
	}
	return best
}
