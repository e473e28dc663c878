package plangraph

import "github.com/andrescamacho/production-planner/internal/domain/production"

// MergeNodes folds other into survivor: recipe multipliers or item rates are
// summed, costs are summed and every edge of other is re-pointed to survivor.
// Merging nodes of different kinds, recipes or items is an invariant violation.
func (g *Graph) MergeNodes(survivor, other NodeID) error {
	const op = "MergeNodes"

	if survivor == other {
		return invariantViolation(op, "cannot merge node %d into itself", survivor)
	}
	s, ok := g.Node(survivor)
	if !ok {
		return &NodeNotFoundError{ID: survivor}
	}
	o, ok := g.Node(other)
	if !ok {
		return &NodeNotFoundError{ID: other}
	}
	if s.kind != o.kind {
		return invariantViolation(op, "cannot merge %s node %d into %s node %d", o.kind, other, s.kind, survivor)
	}

	switch s.kind {
	case KindRecipe:
		if s.recipe.Name != o.recipe.Name {
			return invariantViolation(op, "cannot merge recipe %q into recipe %q", o.recipe.Name, s.recipe.Name)
		}
		s.multiplier += o.multiplier
	case KindInput, KindOutput:
		if !s.item.Item.SameAs(o.item.Item) {
			return invariantViolation(op, "cannot merge item %q into item %q", o.item.Item.Name, s.item.Item.Name)
		}
		s.item = production.NewItemRate(s.item.Item, s.item.Rate+o.item.Rate)
	}

	if o.hasCost {
		if s.hasCost {
			s.cost += o.cost
		} else {
			s.cost = o.cost
			s.hasCost = true
		}
	}

	for _, eid := range o.incoming {
		g.edges[eid].target = survivor
		s.incoming = append(s.incoming, eid)
	}
	for _, eid := range o.outgoing {
		g.edges[eid].source = survivor
		s.outgoing = append(s.outgoing, eid)
	}
	o.incoming = nil
	o.outgoing = nil
	g.nodes[other] = nil

	return nil
}

// MergeEdges folds other into survivor by summing the carried rates. Both
// edges must connect the same nodes and carry the same item. The merged edge
// stays suboptimal only if both parts were.
func (g *Graph) MergeEdges(survivor, other EdgeID) error {
	const op = "MergeEdges"

	if survivor == other {
		return invariantViolation(op, "cannot merge edge %d into itself", survivor)
	}
	s, ok := g.Edge(survivor)
	if !ok {
		return invariantViolation(op, "edge %d not found", survivor)
	}
	o, ok := g.Edge(other)
	if !ok {
		return invariantViolation(op, "edge %d not found", other)
	}
	if s.source != o.source || s.target != o.target {
		return invariantViolation(op, "edge %d (%d->%d) and edge %d (%d->%d) connect different nodes",
			survivor, s.source, s.target, other, o.source, o.target)
	}
	if !s.item.Item.SameAs(o.item.Item) {
		return invariantViolation(op, "cannot merge item %q into item %q", o.item.Item.Name, s.item.Item.Name)
	}

	s.item = production.NewItemRate(s.item.Item, s.item.Rate+o.item.Rate)
	s.suboptimal = s.suboptimal && o.suboptimal
	g.RemoveEdge(other)

	return nil
}
