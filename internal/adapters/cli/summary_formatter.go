package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/andrescamacho/production-planner/internal/application/planner"
	"github.com/andrescamacho/production-planner/internal/domain/plangraph"
)

// SummaryFormatter renders the run report: stage timings, the roots, leaves
// and intermediate nodes of the plan and the inputs without a known cost
type SummaryFormatter struct{}

// NewSummaryFormatter creates a new summary formatter
func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{}
}

// Format renders the report
func (f *SummaryFormatter) Format(result *planner.Result) string {
	g := result.Graph
	var builder strings.Builder

	fmt.Fprintf(&builder, "Run:               %s\n", result.RunID)
	fmt.Fprintf(&builder, "Nodes:             %d\n", g.Len())
	fmt.Fprintf(&builder, "Edges:             %d\n", len(g.Edges()))
	fmt.Fprintf(&builder, "Total cost:        %s\n", formatCost(totalCost(g)))

	builder.WriteString("\nTimings:\n")
	writeTiming(&builder, "expand", result.Timings.Expand)
	writeTiming(&builder, "prune", result.Timings.Prune)
	writeTiming(&builder, "cost", result.Timings.Cost)
	writeTiming(&builder, "simplify", result.Timings.Simplify)
	writeTiming(&builder, "total", result.Timings.Total)

	var intermediate []*plangraph.Node
	for _, node := range g.Nodes() {
		if !node.IsRoot() && !node.IsLeaf() {
			intermediate = append(intermediate, node)
		}
	}

	writeNodeList(&builder, "Roots", nodesByID(g, g.Roots()))
	writeNodeList(&builder, "Leaves", nodesByID(g, g.Leaves()))
	writeNodeList(&builder, "Intermediate", intermediate)

	var badCost []*plangraph.Node
	for _, node := range g.NodesOfKind(plangraph.KindInput) {
		if !node.IsCostKnown() {
			badCost = append(badCost, node)
		}
	}
	writeNodeList(&builder, "Inputs without a known cost", badCost)

	d := result.Diagnostics
	builder.WriteString("\nDiagnostics:\n")
	fmt.Fprintf(&builder, "  Expansion:       %d iterations%s\n", d.ExpansionIterations, truncatedSuffix(d.ExpansionTruncated))
	fmt.Fprintf(&builder, "  Cost:            %d iterations%s\n", d.CostIterations, truncatedSuffix(d.CostTruncated))
	fmt.Fprintf(&builder, "  Pruned nodes:    %d\n", d.PrunedNodes)
	for _, label := range d.DepthLimitedNodes {
		fmt.Fprintf(&builder, "  Depth limited:   %s\n", label)
	}
	for _, output := range d.UnsatisfiedOutputs {
		fmt.Fprintf(&builder, "  Unsatisfied:     %s\n", output.FriendlyName())
	}

	return builder.String()
}

func writeTiming(builder *strings.Builder, stage string, d time.Duration) {
	fmt.Fprintf(builder, "  %-16s %s\n", stage+":", d)
}

func writeNodeList(builder *strings.Builder, title string, nodes []*plangraph.Node) {
	fmt.Fprintf(builder, "\n%s (%d):\n", title, len(nodes))
	for _, node := range nodes {
		fmt.Fprintf(builder, "  %s\n", node.FriendlyName())
	}
}

func nodesByID(g *plangraph.Graph, ids []plangraph.NodeID) []*plangraph.Node {
	nodes := make([]*plangraph.Node, 0, len(ids))
	for _, id := range ids {
		if node, ok := g.Node(id); ok {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

func truncatedSuffix(truncated bool) string {
	if truncated {
		return " (limit reached, plan is partial)"
	}
	return ""
}
