package config

import (
	"time"

	"github.com/spf13/viper"
)

// Raw resources and recipes excluded from plans unless configured otherwise.
// References missing from the loaded catalog are ignored.
var (
	DefaultBannedInputs  = []string{"mycelia", "wood", "leaves"}
	DefaultBannedRecipes = []string{
		"Unpackage oil",
		"Unpackage liquid biofuel",
		"Unpackage heavy oil residue",
		"Unpackage fuel",
	}
)

// DefaultConfig returns a configuration with every default applied
func DefaultConfig() *Config {
	cfg := &Config{
		Planner: PlannerConfig{
			PruneSuboptimal: true,
			Simplify:        true,
			BannedInputs:    append([]string(nil), DefaultBannedInputs...),
			BannedRecipes:   append([]string(nil), DefaultBannedRecipes...),
		},
	}
	SetDefaults(cfg)
	return cfg
}

// registerDefaults declares the keys whose zero value is meaningful, so they
// cannot be filled in by SetDefaults after unmarshalling
func registerDefaults(v *viper.Viper) {
	v.SetDefault("planner.prune_suboptimal", true)
	v.SetDefault("planner.simplify", true)
	v.SetDefault("planner.banned_inputs", DefaultBannedInputs)
	v.SetDefault("planner.banned_recipes", DefaultBannedRecipes)
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("catalog.source", "embedded")
	v.SetDefault("catalog.path", "")
	v.SetDefault("database.url", "")
	v.SetDefault("logging.level", "info")
}

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "production-planner.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "planner"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "production_planner"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Catalog defaults
	if cfg.Catalog.Source == "" {
		cfg.Catalog.Source = CatalogSourceEmbedded
	}

	// Planner defaults
	if cfg.Planner.MaxIterations == 0 {
		cfg.Planner.MaxIterations = 1000
	}
	if cfg.Planner.DepthLimit == 0 {
		cfg.Planner.DepthLimit = 20
	}
	if cfg.Planner.CostIterationLimit == 0 {
		cfg.Planner.CostIterationLimit = 100000
	}
	if cfg.Planner.ScarcityScale == 0 {
		cfg.Planner.ScarcityScale = 10000
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.TextfilePath == "" {
		cfg.Metrics.TextfilePath = "production-planner.prom"
	}
}
