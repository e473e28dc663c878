package plangraph

import "github.com/andrescamacho/production-planner/internal/domain/production"

// EdgeID addresses an edge inside its Graph. IDs are never reused.
type EdgeID int

// Edge carries an item flow from a producer (Source) to a consumer (Target).
// Its cost is the cost of the source node, i.e. the total cost contribution of
// the flow, not a per-unit price.
type Edge struct {
	id         EdgeID
	source     NodeID
	target     NodeID
	item       production.ItemRate
	suboptimal bool
}

// ID returns the edge's handle
func (e *Edge) ID() EdgeID { return e.id }

// Source returns the producing node
func (e *Edge) Source() NodeID { return e.source }

// Target returns the consuming node
func (e *Edge) Target() NodeID { return e.target }

// Item returns the carried item rate
func (e *Edge) Item() production.ItemRate { return e.item }

// Suboptimal reports whether cost propagation rejected this supply route
func (e *Edge) Suboptimal() bool { return e.suboptimal }
