package planner

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/production-planner/internal/application/common"
	"github.com/andrescamacho/production-planner/internal/domain/plangraph"
	"github.com/andrescamacho/production-planner/test/helpers"
)

func newTestPropagator(t *testing.T, prune bool) *costPropagator {
	t.Helper()
	return &costPropagator{
		catalog:         helpers.NewTestCatalog(t, helpers.CompetingIngotDefinition()),
		scarcityScale:   DefaultScarcityScale,
		iterationLimit:  DefaultCostIterationLimit,
		pruneSuboptimal: prune,
		logger:          common.LoggerFromContext(t.Context()),
	}
}

func TestCostPropagator_PicksCheapestMinimalSubset(t *testing.T) {
	// Arrange: a plate constructor fed by two competing smelters, either of
	// which covers the whole demand
	g := plangraph.New()
	plate := g.AddRecipeNode(testPlate, 1)
	cheap := g.AddInputNode(helpers.Rate("Iron ore", 10))
	expensive := g.AddInputNode(helpers.Rate("Iron ore", 100))
	smelterA := g.AddRecipeNode(testIngot, 10.0/30.0)
	smelterB := g.AddRecipeNode(testIngot, 1)
	mustConnect(t, g, cheap, smelterA, helpers.Rate("Iron ore", 10))
	mustConnect(t, g, expensive, smelterB, helpers.Rate("Iron ore", 100))
	loser := mustConnect(t, g, smelterB, plate, helpers.Rate("Iron ingot", 30))
	winner := mustConnect(t, g, smelterA, plate, helpers.Rate("Iron ingot", 30))
	p := newTestPropagator(t, false)

	// Act
	report := p.calculateCost(g)

	// Assert
	assert.False(t, report.Truncated)
	node, ok := g.Node(plate)
	require.True(t, ok)
	cost, _ := node.Cost()
	assert.InDelta(t, 100, cost, 1e-9)

	loserEdge, _ := g.Edge(loser)
	winnerEdge, _ := g.Edge(winner)
	assert.True(t, loserEdge.Suboptimal())
	assert.False(t, winnerEdge.Suboptimal())
}

func TestCostPropagator_PrunesRejectedRoutes(t *testing.T) {
	// Arrange
	g := plangraph.New()
	output := g.AddOutputNode(helpers.Rate("Iron ingot", 30))
	smelterA := g.AddRecipeNode(testIngot, 1)
	smelterB := g.AddRecipeNode(testIngot, 1)
	oreA := g.AddInputNode(helpers.Rate("Iron ore", 30))
	oreB := g.AddInputNode(helpers.Rate("Iron ore", 60))
	mustConnect(t, g, smelterA, output, helpers.Rate("Iron ingot", 30))
	mustConnect(t, g, smelterB, output, helpers.Rate("Iron ingot", 30))
	mustConnect(t, g, oreA, smelterA, helpers.Rate("Iron ore", 30))
	mustConnect(t, g, oreB, smelterB, helpers.Rate("Iron ore", 60))
	p := newTestPropagator(t, true)

	// Act
	report := p.calculateCost(g)

	// Assert
	assert.ElementsMatch(t, []plangraph.NodeID{smelterB, oreB}, report.Pruned)
	assert.Equal(t, 3, g.Len())
	node, _ := g.Node(output)
	cost, _ := node.Cost()
	assert.InDelta(t, 300, cost, 1e-9)
}

func TestCostPropagator_WaitsForEveryProducer(t *testing.T) {
	// Arrange: the refinery must not be costed before both its inputs are
	g := plangraph.New()
	refinery := g.AddRecipeNode(testPureIngot, 1)
	ore := g.AddInputNode(helpers.Rate("Iron ore", 35))
	water := g.AddInputNode(helpers.Rate("Water", 20))
	mustConnect(t, g, ore, refinery, helpers.Rate("Iron ore", 35))
	mustConnect(t, g, water, refinery, helpers.Rate("Water", 20))
	p := newTestPropagator(t, true)

	// Act
	p.calculateCost(g)

	// Assert
	node, _ := g.Node(refinery)
	cost, ok := node.Cost()
	require.True(t, ok)
	assert.InDelta(t, 370, cost, 1e-9)
}

func TestCostPropagator_UnsatisfiableRecipeGetsInfiniteCost(t *testing.T) {
	g := plangraph.New()
	smelter := g.AddRecipeNode(testIngot, 1)
	ore := g.AddInputNode(helpers.Rate("Iron ore", 10))
	edge := mustConnect(t, g, ore, smelter, helpers.Rate("Iron ore", 10))
	p := newTestPropagator(t, true)

	p.calculateCost(g)

	node, _ := g.Node(smelter)
	cost, ok := node.Cost()
	require.True(t, ok)
	assert.True(t, math.IsInf(cost, 1))
	_, kept := g.Edge(edge)
	assert.True(t, kept)
}

func TestCostPropagator_FlagsWholeRejectedBranch(t *testing.T) {
	// Arrange
	g := plangraph.New()
	output := g.AddOutputNode(helpers.Rate("Iron ingot", 30))
	smelterA := g.AddRecipeNode(testIngot, 1)
	smelterB := g.AddRecipeNode(testIngot, 1)
	oreA := g.AddInputNode(helpers.Rate("Iron ore", 30))
	oreB := g.AddInputNode(helpers.Rate("Iron ore", 60))
	mustConnect(t, g, smelterA, output, helpers.Rate("Iron ingot", 30))
	loser := mustConnect(t, g, smelterB, output, helpers.Rate("Iron ingot", 30))
	kept := mustConnect(t, g, oreA, smelterA, helpers.Rate("Iron ore", 30))
	upstream := mustConnect(t, g, oreB, smelterB, helpers.Rate("Iron ore", 60))
	p := newTestPropagator(t, false)

	// Act
	report := p.calculateCost(g)

	// Assert
	assert.Empty(t, report.Pruned)
	assert.Equal(t, 5, g.Len())
	for id, want := range map[plangraph.EdgeID]bool{loser: true, upstream: true, kept: false} {
		edge, _ := g.Edge(id)
		assert.Equal(t, want, edge.Suboptimal(), "edge carrying %s", edge.Item().FriendlyName())
	}
	assert.True(t, g.FeedsOnlySuboptimal(smelterB))
	assert.True(t, g.FeedsOnlySuboptimal(oreB))
	assert.False(t, g.FeedsOnlySuboptimal(smelterA))
}
