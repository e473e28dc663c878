package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/andrescamacho/production-planner/internal/domain/plangraph"
)

// DOTFormatter renders a production plan as a Graphviz digraph. Edges point
// from producer to consumer.
type DOTFormatter struct{}

// NewDOTFormatter creates a new DOT formatter
func NewDOTFormatter() *DOTFormatter {
	return &DOTFormatter{}
}

// Format renders the graph
func (f *DOTFormatter) Format(g *plangraph.Graph) string {
	var builder strings.Builder
	builder.WriteString("digraph plan {\n")
	builder.WriteString("  rankdir=LR;\n")
	builder.WriteString("  node [fontname=\"Helvetica\"];\n")

	for _, node := range g.Nodes() {
		attrs := []string{
			"label=" + strconv.Quote(node.FriendlyName()),
			"shape=" + nodeShape(node.Kind()),
		}
		if node.HasCost() && !node.IsCostKnown() {
			attrs = append(attrs, "color=red")
		}
		fmt.Fprintf(&builder, "  n%d [%s];\n", node.ID(), strings.Join(attrs, ", "))
	}

	for _, edge := range g.Edges() {
		attrs := []string{"label=" + strconv.Quote(edge.Item().FriendlyName())}
		if edge.Suboptimal() {
			attrs = append(attrs, "style=dashed", "color=orange")
		}
		fmt.Fprintf(&builder, "  n%d -> n%d [%s];\n", edge.Source(), edge.Target(), strings.Join(attrs, ", "))
	}

	builder.WriteString("}\n")
	return builder.String()
}

func nodeShape(kind plangraph.NodeKind) string {
	switch kind {
	case plangraph.KindOutput:
		return "doubleoctagon"
	case plangraph.KindRecipe:
		return "box"
	default:
		return "ellipse"
	}
}
