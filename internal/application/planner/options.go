package planner

import "github.com/andrescamacho/production-planner/internal/domain/production"

// Default tuning values
const (
	DefaultMaxIterations      = 1000
	DefaultDepthLimit         = 20
	DefaultCostIterationLimit = 100000
	DefaultScarcityScale      = 10000
)

// Options tunes a planner run. Banned items and recipes are resolved against
// the catalog by the caller.
type Options struct {
	// MaxIterations caps the number of nodes the expander dequeues
	MaxIterations int

	// DepthLimit stops expansion below nodes that are further than this from a leaf
	DepthLimit int

	// CostIterationLimit caps the number of queue pops during cost propagation
	CostIterationLimit int

	// ScarcityScale multiplies rate/maxRate for input node costs
	ScarcityScale float64

	// PruneSuboptimal removes rejected supply routes instead of flagging them
	PruneSuboptimal bool

	// Simplify merges duplicate nodes and parallel edges after costing
	Simplify bool

	BannedInputs  []production.Item
	BannedRecipes []*production.Recipe
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		MaxIterations:      DefaultMaxIterations,
		DepthLimit:         DefaultDepthLimit,
		CostIterationLimit: DefaultCostIterationLimit,
		ScarcityScale:      DefaultScarcityScale,
		PruneSuboptimal:    true,
		Simplify:           true,
	}
}

// withDefaults fills zero-valued limits with the defaults
func (o Options) withDefaults() Options {
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.DepthLimit <= 0 {
		o.DepthLimit = DefaultDepthLimit
	}
	if o.CostIterationLimit <= 0 {
		o.CostIterationLimit = DefaultCostIterationLimit
	}
	if o.ScarcityScale <= 0 {
		o.ScarcityScale = DefaultScarcityScale
	}
	return o
}

func (o Options) bannedInputSet() map[string]bool {
	banned := make(map[string]bool, len(o.BannedInputs))
	for _, item := range o.BannedInputs {
		banned[item.Name] = true
	}
	return banned
}

func (o Options) bannedRecipeSet() map[string]bool {
	banned := make(map[string]bool, len(o.BannedRecipes))
	for _, recipe := range o.BannedRecipes {
		banned[recipe.Name] = true
	}
	return banned
}
