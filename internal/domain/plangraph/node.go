package plangraph

import (
	"fmt"
	"math"

	"github.com/andrescamacho/production-planner/internal/domain/production"
)

// NodeID addresses a node inside its Graph. IDs are never reused.
type NodeID int

// NodeKind discriminates the node variants
type NodeKind int

const (
	// KindOutput is a demanded item rate the plan must deliver
	KindOutput NodeKind = iota + 1

	// KindRecipe is a scaled recipe instance
	KindRecipe

	// KindInput is a raw item rate extracted outside the production chain
	KindInput
)

func (k NodeKind) String() string {
	switch k {
	case KindOutput:
		return "OUTPUT"
	case KindRecipe:
		return "RECIPE"
	case KindInput:
		return "INPUT"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// Node is a vertex of the production graph. The payload depends on Kind:
// output and input nodes carry an item rate, recipe nodes a recipe and a
// multiplier. Edges are referenced by ID and owned by the Graph.
type Node struct {
	id   NodeID
	kind NodeKind

	item       production.ItemRate
	recipe     *production.Recipe
	multiplier float64

	cost    float64
	hasCost bool

	incoming []EdgeID
	outgoing []EdgeID
}

// ID returns the node's handle
func (n *Node) ID() NodeID { return n.id }

// Kind returns the node variant
func (n *Node) Kind() NodeKind { return n.kind }

// Item returns the item rate of an output or input node
func (n *Node) Item() production.ItemRate { return n.item }

// Recipe returns the recipe of a recipe node (nil for other kinds)
func (n *Node) Recipe() *production.Recipe { return n.recipe }

// Multiplier returns the scale factor of a recipe node
func (n *Node) Multiplier() float64 { return n.multiplier }

// Cost returns the propagated cost. The second value is false until the cost
// propagator has visited the node. A set cost may be NaN (unknown scarcity).
func (n *Node) Cost() (float64, bool) { return n.cost, n.hasCost }

// HasCost reports whether a cost was assigned
func (n *Node) HasCost() bool { return n.hasCost }

// IsCostKnown reports whether a finite cost was assigned
func (n *Node) IsCostKnown() bool {
	return n.hasCost && !math.IsNaN(n.cost) && !math.IsInf(n.cost, 0)
}

// IsRoot returns true if the node has no incoming edges
func (n *Node) IsRoot() bool { return len(n.incoming) == 0 }

// IsLeaf returns true if the node has no outgoing edges
func (n *Node) IsLeaf() bool { return len(n.outgoing) == 0 }

// Incoming returns the IDs of the edges entering the node
func (n *Node) Incoming() []EdgeID { return append([]EdgeID(nil), n.incoming...) }

// Outgoing returns the IDs of the edges leaving the node
func (n *Node) Outgoing() []EdgeID { return append([]EdgeID(nil), n.outgoing...) }

// ScaledInputs returns the recipe inputs multiplied by the node's multiplier.
// Depends only on recipe and multiplier, never on graph topology.
func (n *Node) ScaledInputs() []production.ItemRate {
	if n.kind != KindRecipe {
		return nil
	}
	return n.recipe.ScaledInputs(n.multiplier)
}

// ScaledOutputs returns the recipe outputs multiplied by the node's multiplier
func (n *Node) ScaledOutputs() []production.ItemRate {
	if n.kind != KindRecipe {
		return nil
	}
	return n.recipe.ScaledOutputs(n.multiplier)
}

// RequiredRates returns what the node needs from its producers: the demanded
// item for an output node, the scaled inputs for a recipe node and nothing for
// an input node.
func (n *Node) RequiredRates() []production.ItemRate {
	switch n.kind {
	case KindOutput:
		return []production.ItemRate{n.item}
	case KindRecipe:
		return n.ScaledInputs()
	default:
		return nil
	}
}

// IsSatisfiedBy reports whether the candidate rates cover every required rate.
// Candidates are merged per item name first, so adding rates never turns a
// satisfied node unsatisfied.
func (n *Node) IsSatisfiedBy(rates []production.ItemRate) bool {
	available := production.Simplify(rates)
	for _, required := range n.RequiredRates() {
		candidate, ok := production.FindRate(available, required.Item)
		if !ok || !required.LessThanOrEqual(candidate) {
			return false
		}
	}
	return true
}

// FriendlyName returns the label shown to the user and in logs
func (n *Node) FriendlyName() string {
	var label string
	switch n.kind {
	case KindOutput:
		label = "Output: " + n.item.FriendlyName()
	case KindRecipe:
		label = fmt.Sprintf("Recipe: %s x%.2f", n.recipe.Name, n.multiplier)
	case KindInput:
		label = "Input: " + n.item.FriendlyName()
	default:
		label = n.kind.String()
	}
	if n.hasCost {
		if math.IsNaN(n.cost) {
			return label + " WP: unknown"
		}
		return fmt.Sprintf("%s WP: %.4f", label, n.cost)
	}
	return label
}

func (n *Node) String() string {
	return n.FriendlyName()
}
