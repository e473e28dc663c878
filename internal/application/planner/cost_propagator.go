package planner

import (
	"math"

	"github.com/andrescamacho/production-planner/internal/application/common"
	"github.com/andrescamacho/production-planner/internal/domain/plangraph"
	"github.com/andrescamacho/production-planner/internal/domain/production"
)

// costReport summarises one cost propagation run
type costReport struct {
	Iterations int
	Truncated  bool
	Pruned     []plangraph.NodeID
}

// costPropagator assigns every node a scalar cost bottom-up, starting at the
// input nodes, and rejects the more expensive supply routes on the way
type costPropagator struct {
	catalog         *production.Catalog
	scarcityScale   float64
	iterationLimit  int
	pruneSuboptimal bool
	logger          common.Logger
}

func (p *costPropagator) calculateCost(g *plangraph.Graph) costReport {
	var report costReport

	var queue []plangraph.NodeID
	for _, input := range g.NodesOfKind(plangraph.KindInput) {
		queue = append(queue, input.ID())
	}
	processed := make(map[plangraph.NodeID]bool)

	for len(queue) > 0 {
		if report.Iterations >= p.iterationLimit {
			report.Truncated = true
			p.logger.Log("WARNING", "Cost propagation stopped at iteration limit", map[string]interface{}{
				"iteration_limit": p.iterationLimit,
				"pending_nodes":   len(queue),
			})
			break
		}
		report.Iterations++

		id := queue[0]
		queue = queue[1:]

		node, ok := g.Node(id)
		if !ok || processed[id] || !p.ready(g, id) {
			continue
		}
		processed[id] = true

		rejected := p.assignCost(g, node)
		queue = append(queue, g.Children(id)...)

		for _, edge := range rejected {
			if p.pruneSuboptimal {
				report.Pruned = append(report.Pruned, p.discard(g, edge)...)
			} else {
				p.flag(g, edge)
			}
		}
	}

	return report
}

// ready reports whether every producer of the node has been costed
func (p *costPropagator) ready(g *plangraph.Graph, id plangraph.NodeID) bool {
	for _, edge := range g.IncomingEdges(id) {
		if _, ok := g.EdgeCost(edge.ID()); !ok {
			return false
		}
	}
	return true
}

// assignCost sets the node cost and returns the incoming edges that lost
func (p *costPropagator) assignCost(g *plangraph.Graph, node *plangraph.Node) []*plangraph.Edge {
	switch node.Kind() {
	case plangraph.KindInput:
		g.SetCost(node.ID(), p.catalog.ScarcityCost(node.Item(), p.scarcityScale))
		return nil

	case plangraph.KindOutput:
		edges := g.IncomingEdges(node.ID())
		candidates := make([][]*plangraph.Edge, len(edges))
		for i, edge := range edges {
			candidates[i] = []*plangraph.Edge{edge}
		}
		return p.selectCheapest(g, node, edges, candidates)

	case plangraph.KindRecipe:
		edges := g.IncomingEdges(node.ID())
		candidates := MinimalSubsets(edges, func(subset []*plangraph.Edge) bool {
			return node.IsSatisfiedBy(edgeItems(subset))
		})
		return p.selectCheapest(g, node, edges, candidates)
	}
	return nil
}

// selectCheapest costs the node with the cheapest candidate subset and
// returns every edge outside it. Without candidates the node gets an
// infinite cost and nothing is rejected.
func (p *costPropagator) selectCheapest(g *plangraph.Graph, node *plangraph.Node, edges []*plangraph.Edge, candidates [][]*plangraph.Edge) []*plangraph.Edge {
	totals := make([]float64, len(candidates))
	for i, subset := range candidates {
		costs := make([]float64, len(subset))
		for j, edge := range subset {
			costs[j], _ = g.EdgeCost(edge.ID())
		}
		totals[i] = sumCosts(costs)
	}

	best := cheapest(totals)
	if best < 0 {
		g.SetCost(node.ID(), math.Inf(1))
		p.logger.Log("WARNING", "No combination of supplies satisfies node", map[string]interface{}{
			"node":           node.FriendlyName(),
			"incoming_edges": len(edges),
		})
		return nil
	}
	g.SetCost(node.ID(), totals[best])

	chosen := make(map[plangraph.EdgeID]bool, len(candidates[best]))
	for _, edge := range candidates[best] {
		chosen[edge.ID()] = true
	}
	var rejected []*plangraph.Edge
	for _, edge := range edges {
		if !chosen[edge.ID()] {
			rejected = append(rejected, edge)
		}
	}

	if len(candidates) > 1 {
		p.logger.Log("DEBUG", "Selected cheapest supply combination", map[string]interface{}{
			"node":       node.FriendlyName(),
			"candidates": len(candidates),
			"rejected":   len(rejected),
		})
	}
	return rejected
}

// discard removes a rejected edge and the producers that fed nothing else
func (p *costPropagator) discard(g *plangraph.Graph, edge *plangraph.Edge) []plangraph.NodeID {
	source := edge.Source()
	g.RemoveEdge(edge.ID())
	if node, ok := g.Node(source); ok && node.IsLeaf() {
		return g.DeleteCascadingTowardsRoot(source)
	}
	return nil
}

// flag marks a rejected edge suboptimal, then every edge above it whose
// source now feeds rejected routes only
func (p *costPropagator) flag(g *plangraph.Graph, edge *plangraph.Edge) {
	g.MarkSuboptimal(edge.ID())
	if !g.FeedsOnlySuboptimal(edge.Source()) {
		return
	}
	for _, upstream := range g.IncomingEdges(edge.Source()) {
		if !upstream.Suboptimal() {
			p.flag(g, upstream)
		}
	}
}

func edgeItems(edges []*plangraph.Edge) []production.ItemRate {
	items := make([]production.ItemRate, len(edges))
	for i, edge := range edges {
		items[i] = edge.Item()
	}
	return items
}
