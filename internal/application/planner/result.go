package planner

import (
	"time"

	"github.com/andrescamacho/production-planner/internal/domain/plangraph"
	"github.com/andrescamacho/production-planner/internal/domain/production"
)

// Result is the outcome of one Calculate call
type Result struct {
	RunID       string
	Graph       *plangraph.Graph
	Diagnostics Diagnostics
	Timings     Timings
}

// Diagnostics reports the non-fatal problems met while planning
type Diagnostics struct {
	ExpansionIterations int
	ExpansionTruncated  bool

	// DepthLimitedNodes holds the labels of nodes left unexpanded at the depth limit
	DepthLimitedNodes []string

	CostIterations int
	CostTruncated  bool

	// PrunedNodes counts nodes removed by the chain pruner and by suboptimal route removal
	PrunedNodes int

	// UncostedNodes are nodes of the final graph without a finite cost
	UncostedNodes []plangraph.NodeID

	// UnsatisfiedOutputs are demands the final graph cannot deliver
	UnsatisfiedOutputs []production.ItemRate
}

// HasWarnings reports whether the plan is partial or has unknown costs
func (d Diagnostics) HasWarnings() bool {
	return d.ExpansionTruncated || d.CostTruncated ||
		len(d.UncostedNodes) > 0 || len(d.UnsatisfiedOutputs) > 0
}

// Timings holds the wall-clock duration of each stage
type Timings struct {
	Expand   time.Duration
	Prune    time.Duration
	Cost     time.Duration
	Simplify time.Duration
	Total    time.Duration
}
