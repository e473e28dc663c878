package planner

import (
	"github.com/andrescamacho/production-planner/internal/domain/plangraph"
)

// chainPruner removes recipe branches that can never be completed, either
// because expansion stopped above them or because an input is unavailable.
// Recipe nodes without any producer are always removed, including recipes
// that declare no inputs.
type chainPruner struct {
	graph   *plangraph.Graph
	visited map[plangraph.NodeID]bool
	marked  map[plangraph.NodeID]bool
	order   []plangraph.NodeID
}

// pruneUnfinishedChains walks the graph from every leaf towards the roots,
// producers first, and removes unsatisfiable recipe nodes together with the
// producers that only fed them. Returns the removed node handles.
func pruneUnfinishedChains(g *plangraph.Graph) []plangraph.NodeID {
	p := &chainPruner{
		graph:   g,
		visited: make(map[plangraph.NodeID]bool),
		marked:  make(map[plangraph.NodeID]bool),
	}
	for _, leaf := range g.Leaves() {
		p.visit(leaf)
	}

	var removed []plangraph.NodeID
	for _, id := range p.order {
		removed = append(removed, g.DeleteCascadingTowardsRoot(id)...)
	}
	return removed
}

func (p *chainPruner) visit(id plangraph.NodeID) {
	if p.visited[id] {
		return
	}
	p.visited[id] = true

	node, ok := p.graph.Node(id)
	if !ok {
		return
	}

	for _, parent := range p.graph.Parents(id) {
		p.visit(parent)
		if node.Kind() == plangraph.KindRecipe && !p.graph.IsSatisfied(id) {
			break
		}
	}

	if node.Kind() != plangraph.KindRecipe {
		return
	}
	if node.IsRoot() {
		p.mark(id)
		return
	}
	if !p.graph.IsSatisfied(id) {
		p.mark(id)
	}
}

// mark detaches the node from its consumers so they see the missing supply
// immediately; deletion happens after the traversal
func (p *chainPruner) mark(id plangraph.NodeID) {
	if p.marked[id] {
		return
	}
	p.marked[id] = true
	p.order = append(p.order, id)
	p.graph.DetachFromChildren(id)
}
