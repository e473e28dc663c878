package cli

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/production-planner/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage production planner configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (PLANNER_* prefix)
2. Config file (config.yaml)
3. Default values

User preferences (bans, default format) are stored in ~/.production-planner/config.json

Examples:
  production-planner config show
  production-planner config ban-input water
  production-planner config ban-recipe "Pure iron ingot"
  production-planner config set-format summary`,
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigListCommand("ban-input", "Never extract a raw resource", (*config.UserConfigHandler).BanInput))
	cmd.AddCommand(newConfigListCommand("unban-input", "Allow a banned raw resource again", (*config.UserConfigHandler).UnbanInput))
	cmd.AddCommand(newConfigListCommand("ban-recipe", "Never use a recipe", (*config.UserConfigHandler).BanRecipe))
	cmd.AddCommand(newConfigListCommand("unban-recipe", "Allow a banned recipe again", (*config.UserConfigHandler).UnbanRecipe))
	cmd.AddCommand(newConfigSetFormatCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			// Load system config
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.DefaultConfig()
			}

			// Load user config
			userConfigHandler, err := newUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			fmt.Fprintln(out, "Production Planner Configuration")
			fmt.Fprintln(out, "================================")

			fmt.Fprintln(out, "User Preferences:")
			fmt.Fprintf(out, "  Config file:      %s\n", userConfigHandler.GetConfigPath())
			fmt.Fprintf(out, "  Banned inputs:    %s\n", listOrNone(userCfg.BannedInputs))
			fmt.Fprintf(out, "  Banned recipes:   %s\n", listOrNone(userCfg.BannedRecipes))
			fmt.Fprintf(out, "  Default format:   %s\n", valueOrNone(userCfg.DefaultFormat))

			fmt.Fprintln(out, "\nCatalog:")
			fmt.Fprintf(out, "  Source:           %s\n", cfg.Catalog.Source)
			if cfg.Catalog.Path != "" {
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Catalog.Path)
			}

			fmt.Fprintln(out, "\nPlanner:")
			fmt.Fprintf(out, "  Max iterations:   %d\n", cfg.Planner.MaxIterations)
			fmt.Fprintf(out, "  Depth limit:      %d\n", cfg.Planner.DepthLimit)
			fmt.Fprintf(out, "  Cost iterations:  %d\n", cfg.Planner.CostIterationLimit)
			fmt.Fprintf(out, "  Scarcity scale:   %g\n", cfg.Planner.ScarcityScale)
			fmt.Fprintf(out, "  Prune suboptimal: %t\n", cfg.Planner.PruneSuboptimal)
			fmt.Fprintf(out, "  Simplify:         %t\n", cfg.Planner.Simplify)
			fmt.Fprintf(out, "  Banned inputs:    %s\n", listOrNone(cfg.Planner.BannedInputs))
			fmt.Fprintf(out, "  Banned recipes:   %s\n", listOrNone(cfg.Planner.BannedRecipes))

			fmt.Fprintln(out, "\nDatabase:")
			fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
			default:
				fmt.Fprintf(out, "  Host:             %s\n", cfg.Database.Host)
				fmt.Fprintf(out, "  Port:             %d\n", cfg.Database.Port)
				fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
				fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
			}

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

			fmt.Fprintln(out, "\nMetrics:")
			fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Metrics.Enabled)
			fmt.Fprintf(out, "  Textfile:         %s\n", cfg.Metrics.TextfilePath)

			return nil
		},
	}
}

// newConfigListCommand creates a subcommand that edits one of the user ban lists
func newConfigListCommand(use, short string, apply func(*config.UserConfigHandler, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <name>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := newUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := apply(handler, args[0]); err != nil {
				return fmt.Errorf("failed to update user config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %s\n", use, args[0])
			return nil
		},
	}
}

// newConfigSetFormatCommand creates the config set-format subcommand
func newConfigSetFormatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-format <tree|dot|summary>",
		Short: "Set the default output format of the plan command",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := args[0]
			if !slices.Contains(planFormats, format) {
				return fmt.Errorf("unknown format %q: expected one of %v", format, planFormats)
			}

			handler, err := newUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := handler.SetDefaultFormat(format); err != nil {
				return fmt.Errorf("failed to set default format: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Default format set to %s\n", format)
			return nil
		},
	}
}

// maskPassword hides the password of a connection URL
func maskPassword(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Redacted()
}

func listOrNone(values []string) string {
	if len(values) == 0 {
		return "(none)"
	}
	return strings.Join(values, ", ")
}

func valueOrNone(value string) string {
	if value == "" {
		return "(not set)"
	}
	return value
}
