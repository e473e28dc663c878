package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/production-planner/internal/domain/plangraph"
	"github.com/andrescamacho/production-planner/internal/domain/production"
	"github.com/andrescamacho/production-planner/test/helpers"
)

var (
	testIngot = production.NewRecipe("Iron ingot", "smelter",
		[]production.ItemRate{helpers.Rate("Iron ore", 30)},
		[]production.ItemRate{helpers.Rate("Iron ingot", 30)}, false)
	testPureIngot = production.NewRecipe("Pure iron ingot", "refinery",
		[]production.ItemRate{helpers.Rate("Iron ore", 35), helpers.Rate("Water", 20)},
		[]production.ItemRate{helpers.Rate("Iron ingot", 65)}, true)
	testPlate = production.NewRecipe("Iron plate", "constructor",
		[]production.ItemRate{helpers.Rate("Iron ingot", 30)},
		[]production.ItemRate{helpers.Rate("Iron plate", 20)}, false)
)

func mustConnect(t *testing.T, g *plangraph.Graph, source, target plangraph.NodeID, rate production.ItemRate) plangraph.EdgeID {
	t.Helper()
	id, err := g.Connect(source, target, rate)
	require.NoError(t, err)
	return id
}

func TestPruneUnfinishedChains_RemovesUnsatisfiableBranchOnly(t *testing.T) {
	// Arrange: output fed by a complete smelter chain and by a refinery
	// missing its water
	g := plangraph.New()
	output := g.AddOutputNode(helpers.Rate("Iron ingot", 65))
	smelter := g.AddRecipeNode(testIngot, 65.0/30.0)
	refinery := g.AddRecipeNode(testPureIngot, 1)
	smelterOre := g.AddInputNode(helpers.Rate("Iron ore", 65))
	refineryOre := g.AddInputNode(helpers.Rate("Iron ore", 35))
	mustConnect(t, g, smelter, output, helpers.Rate("Iron ingot", 65))
	mustConnect(t, g, refinery, output, helpers.Rate("Iron ingot", 65))
	mustConnect(t, g, smelterOre, smelter, helpers.Rate("Iron ore", 65))
	mustConnect(t, g, refineryOre, refinery, helpers.Rate("Iron ore", 35))

	// Act
	removed := pruneUnfinishedChains(g)

	// Assert
	assert.ElementsMatch(t, []plangraph.NodeID{refinery, refineryOre}, removed)
	assert.True(t, g.Has(smelter))
	assert.True(t, g.Has(smelterOre))
	assert.Equal(t, []plangraph.NodeID{smelter}, g.Parents(output))
}

func TestPruneUnfinishedChains_InsufficientRate(t *testing.T) {
	// Arrange
	g := plangraph.New()
	output := g.AddOutputNode(helpers.Rate("Iron plate", 20))
	plate := g.AddRecipeNode(testPlate, 1)
	ingot := g.AddRecipeNode(testIngot, 1)
	ore := g.AddInputNode(helpers.Rate("Iron ore", 10))
	mustConnect(t, g, plate, output, helpers.Rate("Iron plate", 20))
	mustConnect(t, g, ingot, plate, helpers.Rate("Iron ingot", 30))
	mustConnect(t, g, ore, ingot, helpers.Rate("Iron ore", 10))

	// Act
	removed := pruneUnfinishedChains(g)

	// Assert
	assert.ElementsMatch(t, []plangraph.NodeID{plate, ingot, ore}, removed)
	assert.Equal(t, []plangraph.NodeID{output}, g.Roots())
}

func TestPruneUnfinishedChains_RemovesRecipesWithoutProducers(t *testing.T) {
	spring := production.NewRecipe("Water extractor", "extractor", nil,
		[]production.ItemRate{helpers.Rate("Water", 120)}, false)
	g := plangraph.New()
	output := g.AddOutputNode(helpers.Rate("Water", 120))
	extractor := g.AddRecipeNode(spring, 1)
	mustConnect(t, g, extractor, output, helpers.Rate("Water", 120))

	removed := pruneUnfinishedChains(g)

	assert.Equal(t, []plangraph.NodeID{extractor}, removed)
	assert.Equal(t, []plangraph.NodeID{output}, g.Roots())
}
