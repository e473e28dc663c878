package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/andrescamacho/production-planner/internal/application/planner"
	"github.com/andrescamacho/production-planner/internal/domain/plangraph"
)

var (
	colorOutput     = lipgloss.Color("#2CD7C7")
	colorRecipe     = lipgloss.Color("#F4D03F")
	colorInput      = lipgloss.Color("#1D9EA3")
	colorSuboptimal = lipgloss.Color("#E67E22")
	colorUncosted   = lipgloss.Color("#E74C3C")
	colorMuted      = lipgloss.Color("#7F8C8D")
)

// TreeFormatter renders a production plan as a tree growing from each demanded
// output towards the raw inputs
type TreeFormatter struct {
	useColors bool

	output     lipgloss.Style
	recipe     lipgloss.Style
	input      lipgloss.Style
	suboptimal lipgloss.Style
	uncosted   lipgloss.Style
	muted      lipgloss.Style
}

// NewTreeFormatter creates a new tree formatter
func NewTreeFormatter(useColors bool) *TreeFormatter {
	return &TreeFormatter{
		useColors:  useColors,
		output:     lipgloss.NewStyle().Bold(true).Foreground(colorOutput),
		recipe:     lipgloss.NewStyle().Foreground(colorRecipe),
		input:      lipgloss.NewStyle().Foreground(colorInput),
		suboptimal: lipgloss.NewStyle().Italic(true).Foreground(colorSuboptimal),
		uncosted:   lipgloss.NewStyle().Bold(true).Foreground(colorUncosted),
		muted:      lipgloss.NewStyle().Foreground(colorMuted),
	}
}

// FormatTree renders one tree per output node. Producers shared by several
// consumers are printed under each of them.
func (f *TreeFormatter) FormatTree(g *plangraph.Graph) string {
	outputs := g.NodesOfKind(plangraph.KindOutput)
	if len(outputs) == 0 {
		return "(empty plan)"
	}

	var builder strings.Builder
	for _, output := range outputs {
		f.formatNode(&builder, g, output, nil, "", true, true, make(map[plangraph.NodeID]bool))
	}
	return strings.TrimRight(builder.String(), "\n")
}

// formatNode recursively formats a node and the producers feeding it
func (f *TreeFormatter) formatNode(builder *strings.Builder, g *plangraph.Graph, node *plangraph.Node, via *plangraph.Edge, prefix string, isLast, isRoot bool, path map[plangraph.NodeID]bool) {
	// Build the tree structure prefix
	var linePrefix string
	if isRoot {
		linePrefix = ""
	} else if isLast {
		linePrefix = prefix + "└── "
	} else {
		linePrefix = prefix + "├── "
	}

	edgeText := ""
	if via != nil {
		edgeText = f.render(f.muted, via.Item().FriendlyName()+" ← ")
		if via.Suboptimal() {
			edgeText = f.render(f.suboptimal, "(suboptimal) ") + edgeText
		}
	}

	builder.WriteString(linePrefix + edgeText + f.nodeLabel(node) + "\n")

	if path[node.ID()] {
		return
	}
	path[node.ID()] = true
	defer delete(path, node.ID())

	var childPrefix string
	if isRoot {
		childPrefix = ""
	} else if isLast {
		childPrefix = prefix + "    "
	} else {
		childPrefix = prefix + "│   "
	}

	incoming := g.IncomingEdges(node.ID())
	for i, edge := range incoming {
		producer, ok := g.Node(edge.Source())
		if !ok {
			continue
		}
		f.formatNode(builder, g, producer, edge, childPrefix, i == len(incoming)-1, false, path)
	}
}

// nodeLabel returns the styled label of a node
func (f *TreeFormatter) nodeLabel(node *plangraph.Node) string {
	label := node.FriendlyName()
	if node.HasCost() && !node.IsCostKnown() {
		return f.render(f.uncosted, label)
	}
	switch node.Kind() {
	case plangraph.KindOutput:
		return f.render(f.output, label)
	case plangraph.KindRecipe:
		return f.render(f.recipe, label)
	default:
		return f.render(f.input, label)
	}
}

func (f *TreeFormatter) render(style lipgloss.Style, text string) string {
	if !f.useColors {
		return text
	}
	return style.Render(text)
}

// FormatTreeSummary creates a compact summary of the plan
func (f *TreeFormatter) FormatTreeSummary(result *planner.Result) string {
	g := result.Graph
	summary := fmt.Sprintf(
		"Plan: %d nodes (%d outputs, %d recipes, %d inputs), %d edges, cost=%s, took %s",
		g.Len(),
		len(g.NodesOfKind(plangraph.KindOutput)),
		len(g.NodesOfKind(plangraph.KindRecipe)),
		len(g.NodesOfKind(plangraph.KindInput)),
		len(g.Edges()),
		formatCost(totalCost(g)),
		result.Timings.Total,
	)
	if result.Diagnostics.HasWarnings() {
		summary += " " + f.render(f.uncosted, "(partial or uncosted, see summary format)")
	}
	return summary
}

// totalCost sums the costs of the output nodes. The second value is false
// when no output has a cost yet.
func totalCost(g *plangraph.Graph) (float64, bool) {
	total := 0.0
	costed := false
	for _, output := range g.NodesOfKind(plangraph.KindOutput) {
		if cost, ok := output.Cost(); ok {
			total += cost
			costed = true
		}
	}
	return total, costed
}

func formatCost(cost float64, ok bool) string {
	switch {
	case !ok:
		return "n/a"
	case math.IsNaN(cost):
		return "unknown"
	case math.IsInf(cost, 0):
		return "unsatisfiable"
	default:
		return fmt.Sprintf("%.4f", cost)
	}
}
