package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/production-planner/internal/adapters/catalogfile"
	"github.com/andrescamacho/production-planner/internal/domain/production"
)

// NewCatalogCommand creates the catalog command with subcommands
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and manage recipe catalogs",
		Long: `Inspect and manage the item and recipe catalog used by the planner.

The catalog is read from the configured source (catalog.source: embedded,
file or database) unless a file is given explicitly.

Examples:
  production-planner catalog validate recipes.yaml
  production-planner catalog list
  production-planner catalog import recipes.yaml
  production-planner catalog export > recipes.yaml`,
	}

	cmd.AddCommand(newCatalogValidateCommand())
	cmd.AddCommand(newCatalogListCommand())
	cmd.AddCommand(newCatalogImportCommand())
	cmd.AddCommand(newCatalogExportCommand())

	return cmd
}

// newCatalogValidateCommand creates the catalog validate subcommand
func newCatalogValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			source, cleanup, err := s.catalogSource(firstArg(args))
			if err != nil {
				return err
			}
			defer cleanup()

			def, err := source.Load(s.ctx)
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}

			catalog, warnings, err := production.NewCatalog(def)
			out := cmd.OutOrStdout()
			for _, warning := range warnings {
				fmt.Fprintf(out, "warning: %s\n", warning)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Catalog is valid: %d items, %d recipes, %d resources (%d warnings)\n",
				len(catalog.ItemKeys()), len(catalog.Recipes()), len(catalog.Resources()), len(warnings))
			return nil
		},
	}
}

// newCatalogListCommand creates the catalog list subcommand
func newCatalogListCommand() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items, recipes and resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			source, cleanup, err := s.catalogSource(catalogPath)
			if err != nil {
				return err
			}
			defer cleanup()

			catalog, err := s.loadCatalog(source)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Items (%d):\n", len(catalog.ItemKeys()))
			for _, key := range catalog.ItemKeys() {
				item, _ := catalog.Item(key)
				fmt.Fprintf(out, "  %-24s %s\n", key, item.Name)
			}

			fmt.Fprintf(out, "\nRecipes (%d):\n", len(catalog.Recipes()))
			for _, recipe := range catalog.Recipes() {
				fmt.Fprintf(out, "  %s\n", formatRecipe(recipe))
			}

			fmt.Fprintf(out, "\nResources (%d):\n", len(catalog.Resources()))
			for _, name := range catalog.Resources() {
				maxRate, _ := catalog.MaxSustainableRate(production.NewItem(name))
				fmt.Fprintf(out, "  %-24s max %.2f/min\n", name, maxRate)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Catalog file (YAML or JSON), overrides the configured source")

	return cmd
}

// newCatalogImportCommand creates the catalog import subcommand
func newCatalogImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the database catalog with a catalog file",
		Long: `Validate a catalog file and store it in the configured database, replacing
the catalog stored there. Set catalog.source to "database" to plan with it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			def, err := catalogfile.NewFileSource(args[0]).Load(s.ctx)
			if err != nil {
				return err
			}
			if _, _, err := production.NewCatalog(def); err != nil {
				return err
			}

			repo, cleanup, err := s.catalogRepository()
			if err != nil {
				return err
			}
			defer cleanup()

			if err := repo.Save(s.ctx, def); err != nil {
				return fmt.Errorf("failed to import catalog: %w", err)
			}

			s.logger.Log("INFO", "Catalog imported", map[string]interface{}{
				"path":    args[0],
				"recipes": len(def.Recipes),
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d items, %d recipes, %d resources from %s\n",
				len(def.Items), len(def.Recipes), len(def.Resources), args[0])
			return nil
		},
	}
}

// newCatalogExportCommand creates the catalog export subcommand
func newCatalogExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the configured catalog as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			source, cleanup, err := s.catalogSource("")
			if err != nil {
				return err
			}
			defer cleanup()

			def, err := source.Load(s.ctx)
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}

			data, err := catalogfile.Encode(def)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

// formatRecipe renders "Name [machine]: inputs -> outputs"
func formatRecipe(recipe *production.Recipe) string {
	name := recipe.Name
	if recipe.Alternate {
		name += " (alt)"
	}
	return fmt.Sprintf("%s [%s]: %s -> %s", name, recipe.Machine, joinRates(recipe.Inputs), joinRates(recipe.Outputs))
}

func joinRates(rates []production.ItemRate) string {
	if len(rates) == 0 {
		return "nothing"
	}
	parts := make([]string, 0, len(rates))
	for _, r := range rates {
		parts = append(parts, r.FriendlyName())
	}
	return strings.Join(parts, " + ")
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
