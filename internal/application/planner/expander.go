package planner

import (
	"fmt"

	"github.com/andrescamacho/production-planner/internal/application/common"
	"github.com/andrescamacho/production-planner/internal/domain/plangraph"
	"github.com/andrescamacho/production-planner/internal/domain/production"
)

// expansionReport summarises one expander run
type expansionReport struct {
	Iterations   int
	Truncated    bool
	DepthLimited []plangraph.NodeID
}

// expander builds the supergraph: every way of producing the demanded items,
// down to raw resources or dead ends, as parallel alternative edges
type expander struct {
	catalog       *production.Catalog
	bannedInputs  map[string]bool
	bannedRecipes map[string]bool
	depthLimit    int
	logger        common.Logger
}

func (e *expander) expand(g *plangraph.Graph, demanded []production.ItemRate, maxIterations int) (expansionReport, error) {
	var report expansionReport

	queue := make([]plangraph.NodeID, 0, len(demanded))
	for _, demand := range demanded {
		queue = append(queue, g.AddOutputNode(demand))
	}

	for len(queue) > 0 && report.Iterations < maxIterations {
		report.Iterations++
		id := queue[0]
		queue = queue[1:]

		node, ok := g.Node(id)
		if !ok {
			continue
		}

		if distance := g.DistanceToLeaf(id); distance > e.depthLimit {
			report.DepthLimited = append(report.DepthLimited, id)
			e.logger.Log("DEBUG", "Depth limit reached, node left unexpanded", map[string]interface{}{
				"node":        node.FriendlyName(),
				"distance":    distance,
				"depth_limit": e.depthLimit,
			})
			continue
		}

		for _, required := range node.RequiredRates() {
			created, err := e.expandRequirement(g, id, required)
			if err != nil {
				return report, err
			}
			queue = append(queue, created...)
		}
	}

	if len(queue) > 0 {
		report.Truncated = true
		e.logger.Log("WARNING", "Expansion stopped at iteration limit", map[string]interface{}{
			"max_iterations": maxIterations,
			"pending_nodes":  len(queue),
		})
	}

	return report, nil
}

// expandRequirement attaches every producer of required to the consumer and
// returns the recipe nodes that still need expanding
func (e *expander) expandRequirement(g *plangraph.Graph, consumer plangraph.NodeID, required production.ItemRate) ([]plangraph.NodeID, error) {
	var created []plangraph.NodeID

	for _, recipe := range e.catalog.RecipesProducing(required.Item) {
		if e.bannedRecipes[recipe.Name] {
			continue
		}
		multiplier, ok := recipe.MultiplierFor(required)
		if !ok {
			continue
		}
		recipeNode := g.AddRecipeNode(recipe, multiplier)
		if _, err := g.Connect(recipeNode, consumer, required); err != nil {
			return nil, fmt.Errorf("failed to connect recipe %s: %w", recipe.Name, err)
		}
		created = append(created, recipeNode)
	}

	if e.catalog.IsExtractable(required.Item) && !e.bannedInputs[required.Item.Name] {
		inputNode := g.AddInputNode(required)
		if _, err := g.Connect(inputNode, consumer, required); err != nil {
			return nil, fmt.Errorf("failed to connect input %s: %w", required.Item.Name, err)
		}
	}

	return created, nil
}
