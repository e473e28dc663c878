package steps

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/production-planner/internal/application/planner"
	"github.com/andrescamacho/production-planner/internal/domain/plangraph"
	"github.com/andrescamacho/production-planner/internal/domain/production"
)

const costTolerance = 1e-6

// PlannerContext holds state for production planning scenarios
type PlannerContext struct {
	catalog       catalogContext
	opts          planner.Options
	bannedInputs  []string
	bannedRecipes []string
	result        *planner.Result
	err           error
}

// InitializePlannerScenario registers the planning steps
func InitializePlannerScenario(sc *godog.ScenarioContext) {
	c := &PlannerContext{}

	// Reset context before each scenario
	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		c.reset()
		return ctx, nil
	})

	c.catalog.register(sc)

	// Given steps
	sc.Step(`^suboptimal routes are kept$`, c.suboptimalRoutesAreKept)
	sc.Step(`^simplification is disabled$`, c.simplificationIsDisabled)
	sc.Step(`^the depth limit is (\d+)$`, c.theDepthLimitIs)
	sc.Step(`^the expansion limit is (\d+) iterations?$`, c.theExpansionLimitIs)
	sc.Step(`^input "([^"]*)" is banned$`, c.inputIsBanned)
	sc.Step(`^recipe "([^"]*)" is banned$`, c.recipeIsBanned)

	// When steps
	sc.Step(`^I plan for ([\d.-]+) "([^"]*)" per minute$`, c.iPlanFor)
	sc.Step(`^I plan for:$`, c.iPlanForTable)

	// Then steps
	sc.Step(`^the plan should have (\d+) nodes?$`, c.thePlanShouldHaveNodes)
	sc.Step(`^the plan should have (\d+) edges?$`, c.thePlanShouldHaveEdges)
	sc.Step(`^the plan should contain:$`, c.thePlanShouldContain)
	sc.Step(`^the plan should not contain "([^"]*)"$`, c.thePlanShouldNotContain)
	sc.Step(`^recipe "([^"]*)" should (not )?be used$`, c.recipeShouldBeUsed)
	sc.Step(`^every node should cost ([\d.]+)$`, c.everyNodeShouldCost)
	sc.Step(`^no edge should be suboptimal$`, c.noEdgeShouldBeSuboptimal)
	sc.Step(`^the edges leaving "([^"]*)" should be suboptimal$`, c.theEdgesLeavingShouldBeSuboptimal)
	sc.Step(`^the output "([^"]*)" should be unsatisfied$`, c.theOutputShouldBeUnsatisfied)
	sc.Step(`^the cost of "([^"]*)" should be unknown$`, c.theCostShouldBeUnknown)
	sc.Step(`^the plan should be marked partial$`, c.thePlanShouldBeMarkedPartial)
	sc.Step(`^the planning should fail with "([^"]*)"$`, c.thePlanningShouldFailWith)
	sc.Step(`^the planning should fail with an invalid demand$`, c.thePlanningShouldFailWithInvalidDemand)
}

func (c *PlannerContext) reset() {
	c.catalog.reset()
	c.opts = planner.DefaultOptions()
	c.bannedInputs = nil
	c.bannedRecipes = nil
	c.result = nil
	c.err = nil
}

func (c *PlannerContext) suboptimalRoutesAreKept() error {
	c.opts.PruneSuboptimal = false
	return nil
}

func (c *PlannerContext) simplificationIsDisabled() error {
	c.opts.Simplify = false
	return nil
}

func (c *PlannerContext) theDepthLimitIs(limit int) error {
	c.opts.DepthLimit = limit
	return nil
}

func (c *PlannerContext) theExpansionLimitIs(limit int) error {
	c.opts.MaxIterations = limit
	return nil
}

func (c *PlannerContext) inputIsBanned(ref string) error {
	c.bannedInputs = append(c.bannedInputs, ref)
	return nil
}

func (c *PlannerContext) recipeIsBanned(name string) error {
	c.bannedRecipes = append(c.bannedRecipes, name)
	return nil
}

func (c *PlannerContext) iPlanFor(rate float64, ref string) error {
	return c.plan([]string{ref}, []float64{rate})
}

func (c *PlannerContext) iPlanForTable(table *godog.Table) error {
	var refs []string
	var rates []float64
	for _, row := range dataRows(table) {
		rate, err := parseFloat(getCellValueFromTable(table, row, "rate"))
		if err != nil {
			return err
		}
		refs = append(refs, getCellValueFromTable(table, row, "item"))
		rates = append(rates, rate)
	}
	return c.plan(refs, rates)
}

func (c *PlannerContext) plan(refs []string, rates []float64) error {
	catalog, err := c.catalog.build()
	if err != nil {
		return fmt.Errorf("failed to build catalog: %w", err)
	}

	for _, ref := range c.bannedInputs {
		item, err := catalog.ResolveItem(ref)
		if err != nil {
			return err
		}
		c.opts.BannedInputs = append(c.opts.BannedInputs, item)
	}
	for _, name := range c.bannedRecipes {
		recipe, err := catalog.ResolveRecipe(name)
		if err != nil {
			return err
		}
		c.opts.BannedRecipes = append(c.opts.BannedRecipes, recipe)
	}

	outputs := make([]production.ItemRate, 0, len(refs))
	for i, ref := range refs {
		item, err := catalog.ResolveItem(ref)
		if err != nil {
			c.err = err
			return nil
		}
		outputs = append(outputs, production.NewItemRate(item, rates[i]))
	}

	c.result, c.err = planner.New(catalog, c.opts).Calculate(context.Background(), nil, outputs)
	return nil
}

func (c *PlannerContext) graph() (*plangraph.Graph, error) {
	if c.err != nil {
		return nil, fmt.Errorf("expected planning to succeed, got: %w", c.err)
	}
	if c.result == nil {
		return nil, errors.New("no plan was calculated")
	}
	return c.result.Graph, nil
}

// findNode looks a node up by its label without the cost suffix,
// e.g. "Recipe: Iron ingot x1.50" or "Input: Iron ore x 45.00"
func (c *PlannerContext) findNode(label string) (*plangraph.Node, error) {
	g, err := c.graph()
	if err != nil {
		return nil, err
	}
	var labels []string
	for _, node := range g.Nodes() {
		name, _, _ := strings.Cut(node.FriendlyName(), " WP: ")
		if name == label {
			return node, nil
		}
		labels = append(labels, name)
	}
	return nil, fmt.Errorf("node %q not found in plan, have: %s", label, strings.Join(labels, "; "))
}

func (c *PlannerContext) thePlanShouldHaveNodes(count int) error {
	g, err := c.graph()
	if err != nil {
		return err
	}
	if g.Len() != count {
		return fmt.Errorf("expected %d nodes, got %d", count, g.Len())
	}
	return nil
}

func (c *PlannerContext) thePlanShouldHaveEdges(count int) error {
	g, err := c.graph()
	if err != nil {
		return err
	}
	if len(g.Edges()) != count {
		return fmt.Errorf("expected %d edges, got %d", count, len(g.Edges()))
	}
	return nil
}

func (c *PlannerContext) thePlanShouldContain(table *godog.Table) error {
	for _, row := range dataRows(table) {
		node, err := c.findNode(getCellValueFromTable(table, row, "node"))
		if err != nil {
			return err
		}
		expected := getCellValueFromTable(table, row, "cost")
		if expected == "" {
			continue
		}
		if err := checkCost(node, expected); err != nil {
			return err
		}
	}
	return nil
}

func checkCost(node *plangraph.Node, expected string) error {
	cost, ok := node.Cost()
	if !ok {
		return fmt.Errorf("%s has no cost", node.FriendlyName())
	}
	if expected == "unknown" {
		if !math.IsNaN(cost) {
			return fmt.Errorf("expected %s to have an unknown cost", node.FriendlyName())
		}
		return nil
	}
	want, err := parseFloat(expected)
	if err != nil {
		return err
	}
	if math.Abs(cost-want) > costTolerance {
		return fmt.Errorf("expected %s to cost %v, got %v", node.FriendlyName(), want, cost)
	}
	return nil
}

func (c *PlannerContext) thePlanShouldNotContain(label string) error {
	if node, err := c.findNode(label); err == nil {
		return fmt.Errorf("expected plan not to contain %s", node.FriendlyName())
	}
	return nil
}

func (c *PlannerContext) recipeShouldBeUsed(name, not string) error {
	g, err := c.graph()
	if err != nil {
		return err
	}
	used := false
	for _, node := range g.NodesOfKind(plangraph.KindRecipe) {
		if node.Recipe().Name == name {
			used = true
		}
	}
	if want := not == ""; used != want {
		return fmt.Errorf("expected recipe %s used=%t, got %t", name, want, used)
	}
	return nil
}

func (c *PlannerContext) everyNodeShouldCost(expected string) error {
	g, err := c.graph()
	if err != nil {
		return err
	}
	for _, node := range g.Nodes() {
		if err := checkCost(node, expected); err != nil {
			return err
		}
	}
	return nil
}

func (c *PlannerContext) noEdgeShouldBeSuboptimal() error {
	g, err := c.graph()
	if err != nil {
		return err
	}
	for _, edge := range g.Edges() {
		if edge.Suboptimal() {
			return fmt.Errorf("edge carrying %s is suboptimal", edge.Item().FriendlyName())
		}
	}
	return nil
}

func (c *PlannerContext) theEdgesLeavingShouldBeSuboptimal(label string) error {
	node, err := c.findNode(label)
	if err != nil {
		return err
	}
	edges := c.result.Graph.OutgoingEdges(node.ID())
	if len(edges) == 0 {
		return fmt.Errorf("%s has no outgoing edges", node.FriendlyName())
	}
	for _, edge := range edges {
		if !edge.Suboptimal() {
			return fmt.Errorf("edge carrying %s from %s is not suboptimal", edge.Item().FriendlyName(), node.FriendlyName())
		}
	}
	return nil
}

func (c *PlannerContext) theOutputShouldBeUnsatisfied(itemName string) error {
	if _, err := c.graph(); err != nil {
		return err
	}
	for _, output := range c.result.Diagnostics.UnsatisfiedOutputs {
		if output.Item.Name == itemName {
			return nil
		}
	}
	return fmt.Errorf("expected %s to be unsatisfied, unsatisfied outputs: %v", itemName, c.result.Diagnostics.UnsatisfiedOutputs)
}

func (c *PlannerContext) theCostShouldBeUnknown(label string) error {
	node, err := c.findNode(label)
	if err != nil {
		return err
	}
	if node.IsCostKnown() {
		return fmt.Errorf("expected %s to have an unknown cost", node.FriendlyName())
	}
	for _, id := range c.result.Diagnostics.UncostedNodes {
		if id == node.ID() {
			return nil
		}
	}
	return fmt.Errorf("%s is not reported as uncosted", node.FriendlyName())
}

func (c *PlannerContext) thePlanShouldBeMarkedPartial() error {
	if _, err := c.graph(); err != nil {
		return err
	}
	d := c.result.Diagnostics
	if !d.ExpansionTruncated && !d.CostTruncated && len(d.DepthLimitedNodes) == 0 {
		return errors.New("expected the plan to be partial")
	}
	return nil
}

func (c *PlannerContext) thePlanningShouldFailWith(message string) error {
	if c.err == nil {
		return errors.New("expected planning to fail")
	}
	if !strings.Contains(c.err.Error(), message) {
		return fmt.Errorf("expected error containing %q, got %q", message, c.err.Error())
	}
	return nil
}

func (c *PlannerContext) thePlanningShouldFailWithInvalidDemand() error {
	var invalid *planner.InvalidDemandError
	if !errors.As(c.err, &invalid) {
		return fmt.Errorf("expected an invalid demand error, got %v", c.err)
	}
	return nil
}
