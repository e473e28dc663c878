package plangraph_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/production-planner/internal/domain/plangraph"
	"github.com/andrescamacho/production-planner/internal/domain/production"
)

func rate(name string, r float64) production.ItemRate {
	return production.NewItemRate(production.NewItem(name), r)
}

var (
	ingotRecipe = production.NewRecipe("Iron ingot", "smelter",
		[]production.ItemRate{rate("Iron ore", 30)},
		[]production.ItemRate{rate("Iron ingot", 30)}, false)
	plateRecipe = production.NewRecipe("Iron plate", "constructor",
		[]production.ItemRate{rate("Iron ingot", 30)},
		[]production.ItemRate{rate("Iron plate", 20)}, false)
)

func connect(t *testing.T, g *plangraph.Graph, source, target plangraph.NodeID, r production.ItemRate) plangraph.EdgeID {
	t.Helper()
	id, err := g.Connect(source, target, r)
	require.NoError(t, err)
	return id
}

// chain builds Input(ore) -> Recipe(ingot) -> Recipe(plate) -> Output(plate)
func chain(t *testing.T) (*plangraph.Graph, []plangraph.NodeID) {
	g := plangraph.New()
	output := g.AddOutputNode(rate("Iron plate", 20))
	plate := g.AddRecipeNode(plateRecipe, 1)
	ingot := g.AddRecipeNode(ingotRecipe, 1)
	ore := g.AddInputNode(rate("Iron ore", 30))
	connect(t, g, plate, output, rate("Iron plate", 20))
	connect(t, g, ingot, plate, rate("Iron ingot", 30))
	connect(t, g, ore, ingot, rate("Iron ore", 30))
	return g, []plangraph.NodeID{output, plate, ingot, ore}
}

func TestGraph_RootsLeavesAndDistance(t *testing.T) {
	// Arrange
	g, ids := chain(t)
	output, plate, ingot, ore := ids[0], ids[1], ids[2], ids[3]

	// Assert
	assert.Equal(t, []plangraph.NodeID{ore}, g.Roots())
	assert.Equal(t, []plangraph.NodeID{output}, g.Leaves())
	assert.Equal(t, []plangraph.NodeID{ingot}, g.Parents(plate))
	assert.Equal(t, []plangraph.NodeID{output}, g.Children(plate))
	assert.Equal(t, 0, g.DistanceToLeaf(output))
	assert.Equal(t, 1, g.DistanceToLeaf(plate))
	assert.Equal(t, 3, g.DistanceToLeaf(ore))
	assert.True(t, g.IsSatisfied(plate))
	assert.Equal(t, 4, g.Len())
}

func TestGraph_DistanceToLeafWithoutReachableLeaf(t *testing.T) {
	// Arrange: two recipes feeding each other, no leaf anywhere
	g := plangraph.New()
	a := g.AddRecipeNode(ingotRecipe, 1)
	b := g.AddRecipeNode(plateRecipe, 1)
	connect(t, g, a, b, rate("Iron ingot", 30))
	connect(t, g, b, a, rate("Iron plate", 20))

	// Act & Assert
	assert.Equal(t, plangraph.Unreachable, g.DistanceToLeaf(a))
	assert.Equal(t, plangraph.Unreachable, g.DistanceToLeaf(plangraph.NodeID(99)))
}

func TestGraph_ConnectRejectsUnknownNodes(t *testing.T) {
	g := plangraph.New()
	output := g.AddOutputNode(rate("Iron plate", 20))

	_, err := g.Connect(plangraph.NodeID(42), output, rate("Iron plate", 20))

	var notFound *plangraph.NodeNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, plangraph.NodeID(42), notFound.ID)
}

func TestGraph_DeleteDetachesNeighbours(t *testing.T) {
	// Arrange
	g, ids := chain(t)
	output, plate, ingot := ids[0], ids[1], ids[2]

	// Act
	g.Delete(plate)

	// Assert
	assert.False(t, g.Has(plate))
	assert.True(t, g.Has(output))
	assert.Empty(t, g.IncomingEdges(output))
	assert.Empty(t, g.OutgoingEdges(ingot))
	assert.Len(t, g.Edges(), 1)
	for _, e := range g.Edges() {
		assert.True(t, g.Has(e.Source()))
		assert.True(t, g.Has(e.Target()))
	}
}

func TestGraph_DeleteCascadingTowardsRoot(t *testing.T) {
	// Arrange
	g, ids := chain(t)
	output, plate, ingot, ore := ids[0], ids[1], ids[2], ids[3]

	// Act
	removed := g.DeleteCascadingTowardsRoot(plate)

	// Assert
	assert.Equal(t, []plangraph.NodeID{plate, ingot, ore}, removed)
	assert.Equal(t, 1, g.Len())
	assert.True(t, g.Has(output))
	assert.Empty(t, g.Edges())

	// idempotent
	assert.Empty(t, g.DeleteCascadingTowardsRoot(plate))
}

func TestGraph_DeleteCascadingKeepsSharedAncestors(t *testing.T) {
	// Arrange: one ore input feeds two smelters, only one of them is deleted
	g := plangraph.New()
	output := g.AddOutputNode(rate("Iron ingot", 60))
	left := g.AddRecipeNode(ingotRecipe, 1)
	right := g.AddRecipeNode(ingotRecipe, 1)
	ore := g.AddInputNode(rate("Iron ore", 60))
	connect(t, g, left, output, rate("Iron ingot", 30))
	connect(t, g, right, output, rate("Iron ingot", 30))
	connect(t, g, ore, left, rate("Iron ore", 30))
	connect(t, g, ore, right, rate("Iron ore", 30))

	// Act
	removed := g.DeleteCascadingTowardsRoot(left)

	// Assert
	assert.Equal(t, []plangraph.NodeID{left}, removed)
	assert.True(t, g.Has(ore))
	assert.Equal(t, []plangraph.NodeID{right}, g.Children(ore))
}

func TestGraph_EdgeCostIsSourceCost(t *testing.T) {
	g, ids := chain(t)
	ingot, ore := ids[2], ids[3]
	edge := g.OutgoingEdges(ore)[0]

	_, ok := g.EdgeCost(edge.ID())
	assert.False(t, ok)

	g.SetCost(ore, 300)
	cost, ok := g.EdgeCost(edge.ID())
	require.True(t, ok)
	assert.InDelta(t, 300, cost, 1e-9)
	assert.Equal(t, ingot, edge.Target())
}

func TestNode_FriendlyName(t *testing.T) {
	g, ids := chain(t)
	output, plate, ore := ids[0], ids[1], ids[3]

	g.SetCost(plate, 1234.5)
	nodeOf := func(id plangraph.NodeID) *plangraph.Node {
		n, ok := g.Node(id)
		require.True(t, ok)
		return n
	}

	assert.Equal(t, "Output: Iron plate x 20.00", nodeOf(output).FriendlyName())
	assert.Equal(t, "Recipe: Iron plate x1.00 WP: 1234.5000", nodeOf(plate).FriendlyName())
	assert.Equal(t, "Input: Iron ore x 30.00", nodeOf(ore).FriendlyName())
}

func TestNode_IsSatisfiedByIsMonotonic(t *testing.T) {
	g := plangraph.New()
	id := g.AddRecipeNode(production.NewRecipe("Reinforced iron plate", "assembler",
		[]production.ItemRate{rate("Iron plate", 30), rate("Screw", 60)},
		[]production.ItemRate{rate("Reinforced iron plate", 5)}, false), 1)
	node, _ := g.Node(id)

	partial := []production.ItemRate{rate("Iron plate", 30)}
	full := append(partial, rate("Screw", 40), rate("Screw", 20))
	more := append(full, rate("Iron plate", 10), rate("Water", 5))

	assert.False(t, node.IsSatisfiedBy(partial))
	assert.True(t, node.IsSatisfiedBy(full))
	assert.True(t, node.IsSatisfiedBy(more))
}
