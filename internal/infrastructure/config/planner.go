package config

// PlannerConfig holds the tuning values of the planning engine
type PlannerConfig struct {
	// Maximum number of nodes the expander visits
	MaxIterations int `mapstructure:"max_iterations" validate:"min=1"`

	// Nodes further than this from the demanded outputs are not expanded
	DepthLimit int `mapstructure:"depth_limit" validate:"min=1"`

	// Maximum number of queue pops during cost propagation
	CostIterationLimit int `mapstructure:"cost_iteration_limit" validate:"min=1"`

	// Multiplier applied to rate/max_rate for raw resource costs
	ScarcityScale float64 `mapstructure:"scarcity_scale" validate:"gt=0"`

	// Remove rejected supply routes instead of flagging them
	PruneSuboptimal bool `mapstructure:"prune_suboptimal"`

	// Merge duplicate nodes and parallel edges
	Simplify bool `mapstructure:"simplify"`

	// Raw resources that must not be extracted (item keys or names)
	BannedInputs []string `mapstructure:"banned_inputs" validate:"dive,required"`

	// Recipes that must not be used (recipe names)
	BannedRecipes []string `mapstructure:"banned_recipes" validate:"dive,required"`
}
