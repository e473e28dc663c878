package planner

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/andrescamacho/production-planner/internal/adapters/metrics"
	"github.com/andrescamacho/production-planner/internal/application/common"
	"github.com/andrescamacho/production-planner/internal/domain/plangraph"
	"github.com/andrescamacho/production-planner/internal/domain/production"
)

// Planner computes production plans against a read-only catalog. A Planner
// holds no per-run state; every Calculate call works on a fresh graph.
type Planner struct {
	catalog *production.Catalog
	opts    Options
}

// New creates a planner. Zero-valued limits in opts fall back to the defaults.
func New(catalog *production.Catalog, opts Options) *Planner {
	return &Planner{
		catalog: catalog,
		opts:    opts.withDefaults(),
	}
}

// Options returns the effective options
func (p *Planner) Options() Options {
	return p.opts
}

// Calculate builds the production graph for the demanded outputs.
//
// Stages run in order: expansion, chain pruning, cost propagation and
// simplification. Limits and unsatisfiable branches are reported in the
// result diagnostics; only corrupted graph state returns an error.
//
// inputs is reserved for externally supplied items and is currently ignored.
func (p *Planner) Calculate(ctx context.Context, inputs, outputs []production.ItemRate) (*Result, error) {
	runID := uuid.New().String()
	logger := common.WithFields(common.LoggerFromContext(ctx), map[string]interface{}{"run_id": runID})
	start := time.Now()

	for _, output := range outputs {
		if output.Rate < 0 || math.IsNaN(output.Rate) || math.IsInf(output.Rate, 0) {
			metrics.RecordPlanCalculation("invalid", time.Since(start), 0, 0, 0)
			return nil, &InvalidDemandError{Item: output.Item.Name, Rate: output.Rate}
		}
	}
	if len(inputs) > 0 {
		logger.Log("INFO", "Supplied inputs are not used by the planner yet", map[string]interface{}{
			"inputs": len(inputs),
		})
	}

	g := plangraph.New()
	result := &Result{RunID: runID, Graph: g}

	exp := &expander{
		catalog:       p.catalog,
		bannedInputs:  p.opts.bannedInputSet(),
		bannedRecipes: p.opts.bannedRecipeSet(),
		depthLimit:    p.opts.DepthLimit,
		logger:        logger,
	}
	var expansion expansionReport
	var err error
	result.Timings.Expand = timeStage("expand", func() {
		expansion, err = exp.expand(g, outputs, p.opts.MaxIterations)
	})
	if err != nil {
		return nil, p.fail(logger, start, fmt.Errorf("expansion failed: %w", err))
	}
	result.Diagnostics.ExpansionIterations = expansion.Iterations
	result.Diagnostics.ExpansionTruncated = expansion.Truncated
	for _, id := range expansion.DepthLimited {
		if node, ok := g.Node(id); ok {
			result.Diagnostics.DepthLimitedNodes = append(result.Diagnostics.DepthLimitedNodes, node.FriendlyName())
		}
	}
	if expansion.Truncated {
		metrics.RecordPlannerLimitReached("expand")
	}
	supergraphSize := g.Len()

	var pruned []plangraph.NodeID
	result.Timings.Prune = timeStage("prune", func() {
		pruned = pruneUnfinishedChains(g)
	})
	result.Diagnostics.PrunedNodes = len(pruned)

	prop := &costPropagator{
		catalog:         p.catalog,
		scarcityScale:   p.opts.ScarcityScale,
		iterationLimit:  p.opts.CostIterationLimit,
		pruneSuboptimal: p.opts.PruneSuboptimal,
		logger:          logger,
	}
	var costing costReport
	result.Timings.Cost = timeStage("cost", func() {
		costing = prop.calculateCost(g)
	})
	result.Diagnostics.CostIterations = costing.Iterations
	result.Diagnostics.CostTruncated = costing.Truncated
	result.Diagnostics.PrunedNodes += len(costing.Pruned)
	if costing.Truncated {
		metrics.RecordPlannerLimitReached("cost")
	}

	if p.opts.Simplify {
		result.Timings.Simplify = timeStage("simplify", func() {
			err = simplify(g)
		})
		if err != nil {
			return nil, p.fail(logger, start, err)
		}
	}

	for _, node := range g.Nodes() {
		if !node.IsCostKnown() {
			result.Diagnostics.UncostedNodes = append(result.Diagnostics.UncostedNodes, node.ID())
		}
		if node.Kind() == plangraph.KindOutput && !g.IsSatisfied(node.ID()) {
			result.Diagnostics.UnsatisfiedOutputs = append(result.Diagnostics.UnsatisfiedOutputs, node.Item())
		}
	}
	result.Timings.Total = time.Since(start)

	metrics.RecordPlanCalculation("success", result.Timings.Total, g.Len(), len(g.Edges()), len(result.Diagnostics.UncostedNodes))

	logger.Log("INFO", "Production plan calculated", map[string]interface{}{
		"outputs":         len(outputs),
		"supergraph_size": supergraphSize,
		"nodes":           g.Len(),
		"edges":           len(g.Edges()),
		"roots":           len(g.Roots()),
		"leaves":          len(g.Leaves()),
		"pruned_nodes":    result.Diagnostics.PrunedNodes,
		"expand_ms":       result.Timings.Expand.Milliseconds(),
		"prune_ms":        result.Timings.Prune.Milliseconds(),
		"cost_ms":         result.Timings.Cost.Milliseconds(),
		"simplify_ms":     result.Timings.Simplify.Milliseconds(),
		"total_ms":        result.Timings.Total.Milliseconds(),
	})
	for _, id := range result.Diagnostics.UncostedNodes {
		node, _ := g.Node(id)
		logger.Log("WARNING", "Node has no known cost", map[string]interface{}{
			"node": node.FriendlyName(),
		})
	}
	for _, output := range result.Diagnostics.UnsatisfiedOutputs {
		logger.Log("WARNING", "Demand cannot be produced", map[string]interface{}{
			"output": output.FriendlyName(),
		})
	}

	return result, nil
}

func (p *Planner) fail(logger common.Logger, start time.Time, err error) error {
	metrics.RecordPlanCalculation("failed", time.Since(start), 0, 0, 0)
	logger.Log("ERROR", "Production plan calculation failed", map[string]interface{}{
		"error": err.Error(),
	})
	return err
}

func timeStage(stage string, fn func()) time.Duration {
	start := time.Now()
	fn()
	elapsed := time.Since(start)
	metrics.RecordPlannerStage(stage, elapsed)
	return elapsed
}
