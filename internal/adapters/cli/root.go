package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "production-planner",
		Short: "Production planner - Compute the cheapest production chain for target item rates",
		Long: `Production planner expands demanded item rates into the recipes and raw
resources that can supply them, removes chains that cannot be completed and
keeps the supply routes with the lowest scarcity cost.

Examples:
  production-planner plan --output reinforcedIronPlate=5
  production-planner plan --output ironPlate=20 --format dot > plan.dot
  production-planner plan --output screw=40 --catalog recipes.yaml --no-prune
  production-planner catalog validate recipes.yaml
  production-planner catalog import recipes.yaml
  production-planner config ban-recipe "Pure iron ingot"`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: config.yaml in ., ./configs or /etc/production-planner)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewPlanCommand())
	rootCmd.AddCommand(NewCatalogCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
