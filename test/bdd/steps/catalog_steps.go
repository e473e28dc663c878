package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/production-planner/internal/adapters/catalogfile"
	"github.com/andrescamacho/production-planner/internal/adapters/persistence"
	"github.com/andrescamacho/production-planner/internal/domain/production"
	"github.com/andrescamacho/production-planner/internal/infrastructure/database"
)

// catalogContext builds a catalog definition from feature tables
type catalogContext struct {
	definition *production.Definition
}

func (c *catalogContext) reset() {
	c.definition = &production.Definition{}
}

func (c *catalogContext) register(sc *godog.ScenarioContext) {
	sc.Step(`^the items:$`, c.theItems)
	sc.Step(`^the recipes:$`, c.theRecipes)
	sc.Step(`^the alternate recipes:$`, c.theAlternateRecipes)
	sc.Step(`^the resources:$`, c.theResources)
	sc.Step(`^the built-in catalog$`, c.theBuiltInCatalog)
	sc.Step(`^the catalog is stored in and reloaded from the database$`, c.theCatalogIsStoredAndReloaded)
}

func (c *catalogContext) theItems(table *godog.Table) error {
	for _, row := range dataRows(table) {
		c.definition.Items = append(c.definition.Items, production.ItemDefinition{
			Key:  getCellValueFromTable(table, row, "key"),
			Name: getCellValueFromTable(table, row, "name"),
		})
	}
	return nil
}

func (c *catalogContext) theRecipes(table *godog.Table) error {
	return c.addRecipes(table, false)
}

func (c *catalogContext) theAlternateRecipes(table *godog.Table) error {
	return c.addRecipes(table, true)
}

func (c *catalogContext) addRecipes(table *godog.Table, alternate bool) error {
	for _, row := range dataRows(table) {
		inputs, err := parseIngredients(getCellValueFromTable(table, row, "inputs"))
		if err != nil {
			return err
		}
		outputs, err := parseIngredients(getCellValueFromTable(table, row, "outputs"))
		if err != nil {
			return err
		}
		c.definition.Recipes = append(c.definition.Recipes, production.RecipeDefinition{
			Name:      getCellValueFromTable(table, row, "name"),
			Machine:   getCellValueFromTable(table, row, "machine"),
			Alternate: alternate,
			Inputs:    inputs,
			Outputs:   outputs,
		})
	}
	return nil
}

func (c *catalogContext) theResources(table *godog.Table) error {
	for _, row := range dataRows(table) {
		maxRate, err := parseFloat(getCellValueFromTable(table, row, "max_rate"))
		if err != nil {
			return err
		}
		c.definition.Resources = append(c.definition.Resources, production.ResourceDefinition{
			Item:    getCellValueFromTable(table, row, "item"),
			MaxRate: maxRate,
		})
	}
	return nil
}

func (c *catalogContext) theBuiltInCatalog() error {
	def, err := catalogfile.NewEmbeddedSource().Load(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load built-in catalog: %w", err)
	}
	c.definition = def
	return nil
}

func (c *catalogContext) theCatalogIsStoredAndReloaded() error {
	db, err := database.NewTestConnection()
	if err != nil {
		return fmt.Errorf("failed to create test database: %w", err)
	}
	defer database.Close(db)

	repo := persistence.NewGormCatalogRepository(db)
	ctx := context.Background()
	if err := repo.Save(ctx, c.definition); err != nil {
		return err
	}
	def, err := repo.Load(ctx)
	if err != nil {
		return err
	}
	c.definition = def
	return nil
}

// build validates the collected definition
func (c *catalogContext) build() (*production.Catalog, error) {
	catalog, _, err := production.NewCatalog(c.definition)
	return catalog, err
}
