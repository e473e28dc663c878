package planner

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// coversAtLeast builds a monotonic predicate: the chosen weights must add up to target
func coversAtLeast(target int) func([]int) bool {
	return func(chosen []int) bool {
		total := 0
		for _, w := range chosen {
			total += w
		}
		return total >= target
	}
}

func TestMinimalSubsets_OnlyReturnsIrreducibleSubsets(t *testing.T) {
	// Arrange
	candidates := []int{5, 3, 2, 4}
	satisfied := coversAtLeast(7)

	// Act
	subsets := MinimalSubsets(candidates, satisfied)

	// Assert
	require.NotEmpty(t, subsets)
	for _, subset := range subsets {
		assert.True(t, satisfied(subset), "subset %v must satisfy", subset)
		for skip := range subset {
			reduced := append(append([]int{}, subset[:skip]...), subset[skip+1:]...)
			assert.False(t, satisfied(reduced), "subset %v is reducible to %v", subset, reduced)
		}
	}
	assert.Equal(t, [][]int{{5, 3}, {5, 2}, {5, 4}, {3, 4}}, subsets)
}

func TestMinimalSubsets_EmptySubsetWhenNothingIsRequired(t *testing.T) {
	subsets := MinimalSubsets([]int{1, 2}, coversAtLeast(0))

	assert.Equal(t, [][]int{{}}, subsets)
}

func TestMinimalSubsets_NoSolution(t *testing.T) {
	assert.Empty(t, MinimalSubsets([]int{1, 2}, coversAtLeast(10)))
	assert.Empty(t, MinimalSubsets(nil, coversAtLeast(1)))
}

func TestSumCosts_IsOrderIndependent(t *testing.T) {
	a := sumCosts([]float64{1e16, 1, -1e16, 1})
	b := sumCosts([]float64{1, 1, 1e16, -1e16})

	assert.Equal(t, a, b)
	assert.True(t, math.IsNaN(sumCosts([]float64{1, math.NaN()})))
	assert.Equal(t, 0.0, sumCosts(nil))
}

func TestCheapest(t *testing.T) {
	tests := []struct {
		name     string
		totals   []float64
		expected int
	}{
		{"empty", nil, -1},
		{"lowest wins", []float64{3, 1, 2}, 1},
		{"ties keep first", []float64{2, 1, 1}, 1},
		{"known beats NaN", []float64{math.NaN(), 5}, 1},
		{"NaN never beats known", []float64{5, math.NaN()}, 0},
		{"all NaN keeps first", []float64{math.NaN(), math.NaN()}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cheapest(tt.totals))
		})
	}
}
