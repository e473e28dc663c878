package cli

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/production-planner/internal/application/planner"
	"github.com/andrescamacho/production-planner/internal/domain/plangraph"
	"github.com/andrescamacho/production-planner/internal/domain/production"
)

func rate(name string, r float64) production.ItemRate {
	return production.NewItemRate(production.NewItem(name), r)
}

// smeltingPlan builds ore -> ingot recipe -> ingot output with every node costed at 10
func smeltingPlan(t *testing.T) (*plangraph.Graph, plangraph.EdgeID) {
	t.Helper()
	recipe := production.NewRecipe("Iron ingot", "smelter",
		[]production.ItemRate{rate("Iron ore", 30)},
		[]production.ItemRate{rate("Iron ingot", 30)},
		false)

	g := plangraph.New()
	output := g.AddOutputNode(rate("Iron ingot", 30))
	smelter := g.AddRecipeNode(recipe, 1)
	ore := g.AddInputNode(rate("Iron ore", 30))

	_, err := g.Connect(smelter, output, rate("Iron ingot", 30))
	require.NoError(t, err)
	oreEdge, err := g.Connect(ore, smelter, rate("Iron ore", 30))
	require.NoError(t, err)

	for _, id := range []plangraph.NodeID{output, smelter, ore} {
		g.SetCost(id, 10)
	}
	return g, oreEdge
}

func TestTreeFormatter_FormatTree(t *testing.T) {
	// Arrange
	g, _ := smeltingPlan(t)
	formatter := NewTreeFormatter(false)

	// Act
	tree := formatter.FormatTree(g)

	// Assert
	expected := "Output: Iron ingot x 30.00 WP: 10.0000\n" +
		"└── Iron ingot x 30.00 ← Recipe: Iron ingot x1.00 WP: 10.0000\n" +
		"    └── Iron ore x 30.00 ← Input: Iron ore x 30.00 WP: 10.0000"
	assert.Equal(t, expected, tree)
}

func TestTreeFormatter_MarksSuboptimalEdges(t *testing.T) {
	// Arrange
	g, oreEdge := smeltingPlan(t)
	g.MarkSuboptimal(oreEdge)

	// Act
	tree := NewTreeFormatter(false).FormatTree(g)

	// Assert
	assert.Contains(t, tree, "└── (suboptimal) Iron ore x 30.00 ← Input")
}

func TestTreeFormatter_EmptyPlan(t *testing.T) {
	assert.Equal(t, "(empty plan)", NewTreeFormatter(true).FormatTree(plangraph.New()))
}

func TestTreeFormatter_FormatTreeSummary(t *testing.T) {
	// Arrange
	g, _ := smeltingPlan(t)
	result := &planner.Result{Graph: g}

	// Act
	summary := NewTreeFormatter(false).FormatTreeSummary(result)

	// Assert
	assert.Contains(t, summary, "Plan: 3 nodes (1 outputs, 1 recipes, 1 inputs), 2 edges, cost=10.0000")
	assert.NotContains(t, summary, "partial")
}

func TestDOTFormatter_Format(t *testing.T) {
	// Arrange
	g, oreEdge := smeltingPlan(t)
	g.MarkSuboptimal(oreEdge)

	// Act
	dot := NewDOTFormatter().Format(g)

	// Assert
	assert.Contains(t, dot, "digraph plan {\n")
	assert.Contains(t, dot, `n0 [label="Output: Iron ingot x 30.00 WP: 10.0000", shape=doubleoctagon];`)
	assert.Contains(t, dot, `n1 [label="Recipe: Iron ingot x1.00 WP: 10.0000", shape=box];`)
	assert.Contains(t, dot, `n1 -> n0 [label="Iron ingot x 30.00"];`)
	assert.Contains(t, dot, `n2 -> n1 [label="Iron ore x 30.00", style=dashed, color=orange];`)
}

func TestSummaryFormatter_Format(t *testing.T) {
	// Arrange
	g, _ := smeltingPlan(t)
	unbounded := g.AddInputNode(rate("Water", 5))
	g.SetCost(unbounded, math.NaN())
	result := &planner.Result{
		RunID: "run-1",
		Graph: g,
		Diagnostics: planner.Diagnostics{
			ExpansionIterations: 3,
			ExpansionTruncated:  true,
			UnsatisfiedOutputs:  []production.ItemRate{rate("Screw", 40)},
		},
	}

	// Act
	summary := NewSummaryFormatter().Format(result)

	// Assert
	assert.Contains(t, summary, "Run:               run-1")
	assert.Contains(t, summary, "Roots (2):\n  Input: Iron ore x 30.00 WP: 10.0000\n  Input: Water x 5.00 WP: unknown")
	assert.Contains(t, summary, "Intermediate (1):\n  Recipe: Iron ingot x1.00 WP: 10.0000")
	assert.Contains(t, summary, "Inputs without a known cost (1):\n  Input: Water x 5.00 WP: unknown")
	assert.Contains(t, summary, "3 iterations (limit reached, plan is partial)")
	assert.Contains(t, summary, "Unsatisfied:     Screw x 40.00")
}
