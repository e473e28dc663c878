package planner

import (
	"fmt"

	"github.com/andrescamacho/production-planner/internal/domain/plangraph"
)

// simplify merges duplicate recipe nodes, duplicate inputs feeding the same
// consumer and parallel edges. Total flow is unchanged. A failed merge means
// the graph is corrupt and aborts the calculation.
func simplify(g *plangraph.Graph) error {
	if err := mergeRecipeNodes(g); err != nil {
		return fmt.Errorf("failed to merge recipe nodes: %w", err)
	}
	if err := mergeInputNodes(g); err != nil {
		return fmt.Errorf("failed to merge input nodes: %w", err)
	}
	if err := mergeParallelEdges(g); err != nil {
		return fmt.Errorf("failed to merge parallel edges: %w", err)
	}
	return nil
}

type recipeKey struct {
	name       string
	suboptimal bool
}

// mergeRecipeNodes folds every instance of a recipe into its first instance.
// Instances on rejected routes are merged among themselves only.
func mergeRecipeNodes(g *plangraph.Graph) error {
	survivors := make(map[recipeKey]plangraph.NodeID)
	for _, node := range g.NodesOfKind(plangraph.KindRecipe) {
		key := recipeKey{name: node.Recipe().Name, suboptimal: g.FeedsOnlySuboptimal(node.ID())}
		survivor, ok := survivors[key]
		if !ok {
			survivors[key] = node.ID()
			continue
		}
		if err := g.MergeNodes(survivor, node.ID()); err != nil {
			return err
		}
	}
	return nil
}

type inputKey struct {
	consumer   plangraph.NodeID
	item       string
	suboptimal bool
}

// mergeInputNodes folds input nodes of the same item feeding the same
// consumer. Inputs with more than one consumer are left alone.
func mergeInputNodes(g *plangraph.Graph) error {
	survivors := make(map[inputKey]plangraph.NodeID)
	for _, node := range g.NodesOfKind(plangraph.KindInput) {
		outgoing := g.OutgoingEdges(node.ID())
		if len(outgoing) != 1 {
			continue
		}
		key := inputKey{
			consumer:   outgoing[0].Target(),
			item:       node.Item().Item.Name,
			suboptimal: outgoing[0].Suboptimal(),
		}
		survivor, ok := survivors[key]
		if !ok {
			survivors[key] = node.ID()
			continue
		}
		if err := g.MergeNodes(survivor, node.ID()); err != nil {
			return err
		}
	}
	return nil
}

type parallelKey struct {
	source     plangraph.NodeID
	item       string
	suboptimal bool
}

// mergeParallelEdges collapses edges that carry the same item between the
// same pair of nodes. A producer delivering several items to one consumer
// keeps one edge per item.
func mergeParallelEdges(g *plangraph.Graph) error {
	for _, node := range g.Nodes() {
		survivors := make(map[parallelKey]plangraph.EdgeID)
		for _, edge := range g.IncomingEdges(node.ID()) {
			key := parallelKey{source: edge.Source(), item: edge.Item().Item.Name, suboptimal: edge.Suboptimal()}
			survivor, ok := survivors[key]
			if !ok {
				survivors[key] = edge.ID()
				continue
			}
			if err := g.MergeEdges(survivor, edge.ID()); err != nil {
				return err
			}
		}
	}
	return nil
}
