package plangraph_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/production-planner/internal/domain/plangraph"
)

func TestMergeNodes_SumsMultipliersAndCosts(t *testing.T) {
	// Arrange
	g := plangraph.New()
	output := g.AddOutputNode(rate("Iron ingot", 150))
	first := g.AddRecipeNode(ingotRecipe, 2)
	second := g.AddRecipeNode(ingotRecipe, 3)
	connect(t, g, first, output, rate("Iron ingot", 60))
	connect(t, g, second, output, rate("Iron ingot", 90))
	g.SetCost(first, 200)
	g.SetCost(second, 300)

	// Act
	err := g.MergeNodes(first, second)

	// Assert
	require.NoError(t, err)
	assert.False(t, g.Has(second))
	merged, _ := g.Node(first)
	assert.InDelta(t, 5, merged.Multiplier(), 1e-9)
	cost, ok := merged.Cost()
	require.True(t, ok)
	assert.InDelta(t, 500, cost, 1e-9)
	assert.Len(t, g.IncomingEdges(output), 2)
	for _, e := range g.IncomingEdges(output) {
		assert.Equal(t, first, e.Source())
	}
}

func TestMergeNodes_RejectsMismatches(t *testing.T) {
	g := plangraph.New()
	ingot := g.AddRecipeNode(ingotRecipe, 1)
	plate := g.AddRecipeNode(plateRecipe, 1)
	ore := g.AddInputNode(rate("Iron ore", 30))
	water := g.AddInputNode(rate("Water", 30))

	var violation *plangraph.InvariantViolationError
	assert.True(t, errors.As(g.MergeNodes(ingot, plate), &violation))
	assert.True(t, errors.As(g.MergeNodes(ore, water), &violation))
	assert.True(t, errors.As(g.MergeNodes(ingot, ore), &violation))
	assert.True(t, errors.As(g.MergeNodes(ingot, ingot), &violation))
	assert.True(t, g.Has(plate))
	assert.True(t, g.Has(water))
}

func TestMergeNodes_InputRates(t *testing.T) {
	g := plangraph.New()
	smelter := g.AddRecipeNode(ingotRecipe, 2)
	a := g.AddInputNode(rate("Iron ore", 30))
	b := g.AddInputNode(rate("Iron ore", 30))
	connect(t, g, a, smelter, rate("Iron ore", 30))
	connect(t, g, b, smelter, rate("Iron ore", 30))
	g.SetCost(a, 30)

	require.NoError(t, g.MergeNodes(a, b))

	merged, _ := g.Node(a)
	assert.InDelta(t, 60, merged.Item().Rate, 1e-9)
	cost, ok := merged.Cost()
	require.True(t, ok)
	assert.InDelta(t, 30, cost, 1e-9)
	assert.Len(t, g.OutgoingEdges(a), 2)
}

func TestMergeEdges(t *testing.T) {
	// Arrange
	g := plangraph.New()
	smelter := g.AddRecipeNode(ingotRecipe, 2)
	ore := g.AddInputNode(rate("Iron ore", 60))
	first := connect(t, g, ore, smelter, rate("Iron ore", 30))
	second := connect(t, g, ore, smelter, rate("Iron ore", 30))
	g.MarkSuboptimal(second)

	// Act
	err := g.MergeEdges(first, second)

	// Assert
	require.NoError(t, err)
	edges := g.IncomingEdges(smelter)
	require.Len(t, edges, 1)
	assert.InDelta(t, 60, edges[0].Item().Rate, 1e-9)
	assert.False(t, edges[0].Suboptimal())
	_, ok := g.Edge(second)
	assert.False(t, ok)
}

func TestMergeEdges_RejectsDifferentEndpoints(t *testing.T) {
	g := plangraph.New()
	smelter := g.AddRecipeNode(ingotRecipe, 1)
	a := g.AddInputNode(rate("Iron ore", 30))
	b := g.AddInputNode(rate("Iron ore", 30))
	first := connect(t, g, a, smelter, rate("Iron ore", 30))
	second := connect(t, g, b, smelter, rate("Iron ore", 30))

	err := g.MergeEdges(first, second)

	var violation *plangraph.InvariantViolationError
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, "MergeEdges", violation.Op)
}
