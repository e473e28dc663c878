// Package plangraph holds the weighted production graph built by the planner.
//
// Nodes and edges live in an arena owned by Graph and are addressed by integer
// handles, so re-pointing edges during merges and cascading deletions are plain
// index updates. A removed node or edge leaves a nil slot; handles are never
// reused within a Graph.
package plangraph

import (
	"math"

	"github.com/andrescamacho/production-planner/internal/domain/production"
)

// Unreachable is the distance reported for nodes from which no leaf can be reached
const Unreachable = math.MaxInt

// Graph owns the node set and the edges between them
type Graph struct {
	nodes []*Node
	edges []*Edge
}

// New creates an empty graph
func New() *Graph {
	return &Graph{}
}

// AddOutputNode adds a demanded item rate
func (g *Graph) AddOutputNode(demand production.ItemRate) NodeID {
	return g.addNode(&Node{kind: KindOutput, item: demand})
}

// AddRecipeNode adds a recipe instance scaled by multiplier
func (g *Graph) AddRecipeNode(recipe *production.Recipe, multiplier float64) NodeID {
	return g.addNode(&Node{kind: KindRecipe, recipe: recipe, multiplier: multiplier})
}

// AddInputNode adds a raw item rate obtained outside the production chain
func (g *Graph) AddInputNode(supply production.ItemRate) NodeID {
	return g.addNode(&Node{kind: KindInput, item: supply})
}

func (g *Graph) addNode(n *Node) NodeID {
	n.id = NodeID(len(g.nodes))
	g.nodes = append(g.nodes, n)
	return n.id
}

// Connect adds an edge carrying rate from source to target
func (g *Graph) Connect(source, target NodeID, rate production.ItemRate) (EdgeID, error) {
	src, ok := g.Node(source)
	if !ok {
		return 0, &NodeNotFoundError{ID: source}
	}
	dst, ok := g.Node(target)
	if !ok {
		return 0, &NodeNotFoundError{ID: target}
	}
	e := &Edge{id: EdgeID(len(g.edges)), source: source, target: target, item: rate}
	g.edges = append(g.edges, e)
	src.outgoing = append(src.outgoing, e.id)
	dst.incoming = append(dst.incoming, e.id)
	return e.id, nil
}

// Node returns the live node with the given handle
func (g *Graph) Node(id NodeID) (*Node, bool) {
	if id < 0 || int(id) >= len(g.nodes) || g.nodes[id] == nil {
		return nil, false
	}
	return g.nodes[id], true
}

// Has reports whether id is a live node of the graph
func (g *Graph) Has(id NodeID) bool {
	_, ok := g.Node(id)
	return ok
}

// Edge returns the live edge with the given handle
func (g *Graph) Edge(id EdgeID) (*Edge, bool) {
	if id < 0 || int(id) >= len(g.edges) || g.edges[id] == nil {
		return nil, false
	}
	return g.edges[id], true
}

// Nodes returns all live nodes in creation order
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// NodesOfKind returns the live nodes of one variant in creation order
func (g *Graph) NodesOfKind(kind NodeKind) []*Node {
	var nodes []*Node
	for _, n := range g.nodes {
		if n != nil && n.kind == kind {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Edges returns all live edges in creation order
func (g *Graph) Edges() []*Edge {
	edges := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		if e != nil {
			edges = append(edges, e)
		}
	}
	return edges
}

// Len returns the number of live nodes
func (g *Graph) Len() int {
	count := 0
	for _, n := range g.nodes {
		if n != nil {
			count++
		}
	}
	return count
}

// Roots returns the nodes without incoming edges
func (g *Graph) Roots() []NodeID {
	var ids []NodeID
	for _, n := range g.Nodes() {
		if n.IsRoot() {
			ids = append(ids, n.id)
		}
	}
	return ids
}

// Leaves returns the nodes without outgoing edges
func (g *Graph) Leaves() []NodeID {
	var ids []NodeID
	for _, n := range g.Nodes() {
		if n.IsLeaf() {
			ids = append(ids, n.id)
		}
	}
	return ids
}

// IncomingEdges returns the edges entering id
func (g *Graph) IncomingEdges(id NodeID) []*Edge {
	n, ok := g.Node(id)
	if !ok {
		return nil
	}
	return g.resolveEdges(n.incoming)
}

// OutgoingEdges returns the edges leaving id
func (g *Graph) OutgoingEdges(id NodeID) []*Edge {
	n, ok := g.Node(id)
	if !ok {
		return nil
	}
	return g.resolveEdges(n.outgoing)
}

func (g *Graph) resolveEdges(ids []EdgeID) []*Edge {
	edges := make([]*Edge, 0, len(ids))
	for _, eid := range ids {
		edges = append(edges, g.edges[eid])
	}
	return edges
}

// Parents returns the distinct producers feeding id, in edge order
func (g *Graph) Parents(id NodeID) []NodeID {
	var parents []NodeID
	seen := make(map[NodeID]bool)
	for _, e := range g.IncomingEdges(id) {
		if !seen[e.source] {
			seen[e.source] = true
			parents = append(parents, e.source)
		}
	}
	return parents
}

// Children returns the distinct consumers fed by id, in edge order
func (g *Graph) Children(id NodeID) []NodeID {
	var children []NodeID
	seen := make(map[NodeID]bool)
	for _, e := range g.OutgoingEdges(id) {
		if !seen[e.target] {
			seen[e.target] = true
			children = append(children, e.target)
		}
	}
	return children
}

// EdgeCost returns the cost of an edge, which is the cost of its source node
func (g *Graph) EdgeCost(id EdgeID) (float64, bool) {
	e, ok := g.Edge(id)
	if !ok {
		return 0, false
	}
	return g.nodes[e.source].Cost()
}

// SetCost assigns a propagated cost to a node
func (g *Graph) SetCost(id NodeID, cost float64) {
	if n, ok := g.Node(id); ok {
		n.cost = cost
		n.hasCost = true
	}
}

// MarkSuboptimal flags an edge as a rejected supply route
func (g *Graph) MarkSuboptimal(id EdgeID) {
	if e, ok := g.Edge(id); ok {
		e.suboptimal = true
	}
}

// FeedsOnlySuboptimal reports whether id has consumers and every edge leaving
// it is a rejected supply route
func (g *Graph) FeedsOnlySuboptimal(id NodeID) bool {
	edges := g.OutgoingEdges(id)
	if len(edges) == 0 {
		return false
	}
	for _, e := range edges {
		if !e.suboptimal {
			return false
		}
	}
	return true
}

// IncomingRates returns the item rates of all edges entering id
func (g *Graph) IncomingRates(id NodeID) []production.ItemRate {
	edges := g.IncomingEdges(id)
	rates := make([]production.ItemRate, 0, len(edges))
	for _, e := range edges {
		rates = append(rates, e.item)
	}
	return rates
}

// IsSatisfied reports whether the edges currently entering id cover its needs
func (g *Graph) IsSatisfied(id NodeID) bool {
	n, ok := g.Node(id)
	if !ok {
		return false
	}
	return n.IsSatisfiedBy(g.IncomingRates(id))
}

// DistanceToLeaf returns the number of edges on the shortest path from id to
// a leaf, following outgoing edges. Cycles and dead ends without a reachable
// leaf yield Unreachable.
func (g *Graph) DistanceToLeaf(id NodeID) int {
	if !g.Has(id) {
		return Unreachable
	}
	visited := map[NodeID]bool{id: true}
	frontier := []NodeID{id}
	for depth := 0; len(frontier) > 0; depth++ {
		var next []NodeID
		for _, nid := range frontier {
			n := g.nodes[nid]
			if n.IsLeaf() {
				return depth
			}
			for _, eid := range n.outgoing {
				target := g.edges[eid].target
				if !visited[target] {
					visited[target] = true
					next = append(next, target)
				}
			}
		}
		frontier = next
	}
	return Unreachable
}

// RemoveEdge detaches an edge from both endpoints and drops it
func (g *Graph) RemoveEdge(id EdgeID) {
	e, ok := g.Edge(id)
	if !ok {
		return
	}
	if src, ok := g.Node(e.source); ok {
		src.outgoing = removeEdgeID(src.outgoing, id)
	}
	if dst, ok := g.Node(e.target); ok {
		dst.incoming = removeEdgeID(dst.incoming, id)
	}
	g.edges[id] = nil
}

// DetachFromChildren removes every outgoing edge of id
func (g *Graph) DetachFromChildren(id NodeID) {
	for _, e := range g.OutgoingEdges(id) {
		g.RemoveEdge(e.id)
	}
}

// Delete detaches id from all neighbours and removes it from the graph
func (g *Graph) Delete(id NodeID) {
	n, ok := g.Node(id)
	if !ok {
		return
	}
	for _, eid := range append(n.Incoming(), n.outgoing...) {
		g.RemoveEdge(eid)
	}
	g.nodes[id] = nil
}

// DeleteCascadingTowardsRoot deletes id and then every producer that no longer
// feeds any surviving node, recursively. Shared ancestors reached through
// several paths are handled once. Returns the removed node handles.
func (g *Graph) DeleteCascadingTowardsRoot(id NodeID) []NodeID {
	var removed []NodeID
	g.cascade(id, make(map[NodeID]bool), &removed)
	return removed
}

func (g *Graph) cascade(id NodeID, seen map[NodeID]bool, removed *[]NodeID) {
	if seen[id] || !g.Has(id) {
		return
	}
	seen[id] = true
	parents := g.Parents(id)
	g.Delete(id)
	*removed = append(*removed, id)
	for _, parent := range parents {
		if n, ok := g.Node(parent); ok && n.IsLeaf() {
			g.cascade(parent, seen, removed)
		}
	}
}

func removeEdgeID(ids []EdgeID, id EdgeID) []EdgeID {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
