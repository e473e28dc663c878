package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/production-planner/internal/adapters/metrics"
	"github.com/andrescamacho/production-planner/internal/application/planner"
	"github.com/andrescamacho/production-planner/internal/infrastructure/config"
)

// Output formats of the plan command
const (
	FormatTree    = "tree"
	FormatDOT     = "dot"
	FormatSummary = "summary"
)

var planFormats = []string{FormatTree, FormatDOT, FormatSummary}

// planFlags holds the flags of the plan command
type planFlags struct {
	outputs       []string
	catalogPath   string
	noPrune       bool
	noSimplify    bool
	maxIterations int
	depthLimit    int
	banInputs     []string
	banRecipes    []string
	format        string
	color         bool
}

// NewPlanCommand creates the plan command
func NewPlanCommand() *cobra.Command {
	flags := &planFlags{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Calculate a production plan",
		Long: `Calculate the production graph that delivers the demanded item rates.

Items are referenced by catalog key or display name, rates are per minute.
Banned inputs and recipes from the configuration, the user preferences and
the flags are combined.

Examples:
  production-planner plan --output reinforcedIronPlate=5
  production-planner plan --output ironPlate=20 --output screw=40 --format summary
  production-planner plan --output ironIngot=65 --ban-recipe "Iron ingot" --no-prune
  production-planner plan --output ironPlate=20 --format dot | dot -Tsvg > plan.svg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, flags)
		},
	}

	cmd.Flags().StringArrayVarP(&flags.outputs, "output", "o", nil, "Demanded item rate as item=rate (repeatable)")
	cmd.Flags().StringVar(&flags.catalogPath, "catalog", "", "Catalog file (YAML or JSON), overrides the configured source")
	cmd.Flags().BoolVar(&flags.noPrune, "no-prune", false, "Flag rejected supply routes instead of removing them")
	cmd.Flags().BoolVar(&flags.noSimplify, "no-simplify", false, "Keep duplicate recipe and input nodes")
	cmd.Flags().IntVar(&flags.maxIterations, "max-iterations", 0, "Maximum number of nodes to expand (default from config)")
	cmd.Flags().IntVar(&flags.depthLimit, "depth-limit", 0, "Maximum expansion depth (default from config)")
	cmd.Flags().StringArrayVar(&flags.banInputs, "ban-input", nil, "Raw resource that must not be extracted (repeatable)")
	cmd.Flags().StringArrayVar(&flags.banRecipes, "ban-recipe", nil, "Recipe that must not be used (repeatable)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "Output format: tree, dot, summary (default from user config, else tree)")
	cmd.Flags().BoolVar(&flags.color, "color", false, "Colorize tree output")

	cmd.MarkFlagRequired("output")

	return cmd
}

func runPlan(cmd *cobra.Command, flags *planFlags) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	userCfg := loadUserConfig(cmd)

	format := flags.format
	if format == "" {
		format = userCfg.DefaultFormat
	}
	if format == "" {
		format = FormatTree
	}
	if !slices.Contains(planFormats, format) {
		return fmt.Errorf("unknown format %q: expected one of %v", format, planFormats)
	}

	source, cleanup, err := s.catalogSource(flags.catalogPath)
	if err != nil {
		return err
	}
	defer cleanup()

	catalog, err := s.loadCatalog(source)
	if err != nil {
		return err
	}

	outputs, err := parseItemRates(catalog, flags.outputs)
	if err != nil {
		return err
	}

	opts := plannerOptions(s.cfg.Planner, flags)
	opts.BannedInputs, opts.BannedRecipes = resolveBans(s.logger, catalog,
		concat(s.cfg.Planner.BannedInputs, userCfg.BannedInputs, flags.banInputs),
		concat(s.cfg.Planner.BannedRecipes, userCfg.BannedRecipes, flags.banRecipes),
	)

	if s.cfg.Metrics.Enabled {
		metrics.InitRegistry()
		collector := metrics.NewPlannerMetricsCollector()
		if err := collector.Register(); err != nil {
			return fmt.Errorf("failed to register planner metrics: %w", err)
		}
		metrics.SetGlobalPlannerCollector(collector)
		defer func() {
			if err := metrics.WriteTextfile(s.cfg.Metrics.TextfilePath); err != nil {
				s.logger.Log("ERROR", "Failed to write metrics", map[string]interface{}{
					"path":  s.cfg.Metrics.TextfilePath,
					"error": err.Error(),
				})
			}
		}()
	}

	result, err := planner.New(catalog, opts).Calculate(s.ctx, nil, outputs)
	if err != nil {
		return fmt.Errorf("failed to calculate plan: %w", err)
	}

	return writePlan(cmd.OutOrStdout(), format, flags.color, result)
}

// plannerOptions applies flag overrides on top of the configured planner values
func plannerOptions(cfg config.PlannerConfig, flags *planFlags) planner.Options {
	opts := planner.Options{
		MaxIterations:      cfg.MaxIterations,
		DepthLimit:         cfg.DepthLimit,
		CostIterationLimit: cfg.CostIterationLimit,
		ScarcityScale:      cfg.ScarcityScale,
		PruneSuboptimal:    cfg.PruneSuboptimal && !flags.noPrune,
		Simplify:           cfg.Simplify && !flags.noSimplify,
	}
	if flags.maxIterations > 0 {
		opts.MaxIterations = flags.maxIterations
	}
	if flags.depthLimit > 0 {
		opts.DepthLimit = flags.depthLimit
	}
	return opts
}

func writePlan(w io.Writer, format string, color bool, result *planner.Result) error {
	var out string
	switch format {
	case FormatDOT:
		out = NewDOTFormatter().Format(result.Graph)
	case FormatSummary:
		out = NewSummaryFormatter().Format(result)
	default:
		formatter := NewTreeFormatter(color)
		out = formatter.FormatTree(result.Graph) + "\n" + formatter.FormatTreeSummary(result) + "\n"
	}
	_, err := io.WriteString(w, out)
	return err
}

// loadUserConfig reads user preferences, falling back to none on error
func loadUserConfig(cmd *cobra.Command) *config.UserConfig {
	handler, err := newUserConfigHandler()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to load user config: %v\n", err)
		return &config.UserConfig{}
	}
	userCfg, err := handler.Load()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to load user config: %v\n", err)
		return &config.UserConfig{}
	}
	return userCfg
}

func concat(lists ...[]string) []string {
	var all []string
	for _, list := range lists {
		all = append(all, list...)
	}
	return all
}
