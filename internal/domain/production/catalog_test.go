package production_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/production-planner/internal/domain/production"
)

func smelterDefinition() *production.Definition {
	return &production.Definition{
		Items: []production.ItemDefinition{
			{Key: "ironOre", Name: "Iron ore"},
			{Key: "ironIngot", Name: "Iron ingot"},
			{Key: "water", Name: "Water"},
		},
		Recipes: []production.RecipeDefinition{
			{
				Name:    "Iron ingot",
				Machine: "smelter",
				Inputs:  []production.IngredientDefinition{{Item: "ironOre", Rate: 30}},
				Outputs: []production.IngredientDefinition{{Item: "ironIngot", Rate: 30}},
			},
			{
				Name:      "Pure iron ingot",
				Machine:   "refinery",
				Alternate: true,
				Inputs: []production.IngredientDefinition{
					{Item: "ironOre", Rate: 35},
					{Item: "water", Rate: 20},
				},
				Outputs: []production.IngredientDefinition{{Item: "ironIngot", Rate: 65}},
			},
		},
		Resources: []production.ResourceDefinition{
			{Item: "ironOre", MaxRate: 1000},
			{Item: "water"},
		},
	}
}

func TestNewCatalog_ResolvesItemsAndRecipes(t *testing.T) {
	// Act
	catalog, warnings, err := production.NewCatalog(smelterDefinition())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"resource water has no sustainable rate, its cost will be unknown"}, warnings)

	ore, err := catalog.ResolveItem("ironOre")
	require.NoError(t, err)
	byName, err := catalog.ResolveItem("Iron ore")
	require.NoError(t, err)
	assert.True(t, ore.SameAs(byName))

	key, ok := catalog.KeyOf(ore)
	require.True(t, ok)
	assert.Equal(t, "ironOre", key)

	producers := catalog.RecipesProducing(production.NewItem("Iron ingot"))
	require.Len(t, producers, 2)
	assert.Equal(t, "Iron ingot", producers[0].Name)
	assert.Equal(t, "Pure iron ingot", producers[1].Name)
	assert.True(t, producers[1].Alternate)

	recipe, err := catalog.ResolveRecipe("Pure iron ingot")
	require.NoError(t, err)
	assert.Same(t, producers[1], recipe)
}

func TestNewCatalog_UnknownReferences(t *testing.T) {
	catalog, _, err := production.NewCatalog(smelterDefinition())
	require.NoError(t, err)

	_, err = catalog.ResolveItem("copperOre")
	var unknownItem *production.UnknownItemError
	assert.True(t, errors.As(err, &unknownItem))

	_, err = catalog.ResolveRecipe("Copper ingot")
	var unknownRecipe *production.UnknownRecipeError
	assert.True(t, errors.As(err, &unknownRecipe))
}

func TestCatalog_ScarcityCost(t *testing.T) {
	catalog, _, err := production.NewCatalog(smelterDefinition())
	require.NoError(t, err)

	assert.InDelta(t, 300, catalog.ScarcityCost(rate("Iron ore", 30), 10000), 1e-9)
	assert.True(t, math.IsNaN(catalog.ScarcityCost(rate("Water", 20), 10000)), "unbounded resource")
	assert.True(t, math.IsNaN(catalog.ScarcityCost(rate("Iron ingot", 20), 10000)), "not a resource")

	assert.True(t, catalog.IsExtractable(production.NewItem("Water")))
	assert.False(t, catalog.IsExtractable(production.NewItem("Iron ingot")))
	assert.Equal(t, []string{"Iron ore", "Water"}, catalog.Resources())
}

func TestValidateDefinition_FatalProblems(t *testing.T) {
	// Arrange
	def := smelterDefinition()
	def.Items = append(def.Items,
		production.ItemDefinition{Key: "IronOre", Name: "Capitalised key"},
		production.ItemDefinition{Key: "ironOre", Name: "Duplicate key"},
	)
	def.Recipes = append(def.Recipes, production.RecipeDefinition{Name: "Iron ingot", Outputs: def.Recipes[0].Outputs})
	def.Resources = append(def.Resources, production.ResourceDefinition{Item: "ironOre", MaxRate: -1})

	// Act
	_, err := production.ValidateDefinition(def)

	// Assert
	var validationErr *production.CatalogValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, err.Error(), "itemkey")
	assert.Contains(t, err.Error(), "duplicate item key: ironOre")
	assert.Contains(t, err.Error(), "duplicate recipe name: Iron ingot")
	assert.Contains(t, err.Error(), "duplicate resource: ironOre")
	assert.Contains(t, err.Error(), "gte")
}

func TestValidateDefinition_Warnings(t *testing.T) {
	// Arrange
	def := smelterDefinition()
	def.Items = append(def.Items, production.ItemDefinition{Key: "screw", Name: "SCREW"})
	def.Recipes = append(def.Recipes, production.RecipeDefinition{
		Name:    "Screw",
		Inputs:  []production.IngredientDefinition{{Item: "ironRod", Rate: 0}},
		Outputs: []production.IngredientDefinition{{Item: "screw", Rate: 40}},
	})

	// Act
	warnings, err := production.ValidateDefinition(def)

	// Assert
	require.NoError(t, err)
	assert.Contains(t, warnings, "item screw: display name \"SCREW\" should be in the form `Foo bar baz` or `Foo`")
	assert.Contains(t, warnings, "recipe \"Screw\": input references undeclared item: ironRod")
	assert.Contains(t, warnings, "recipe \"Screw\": input ironRod has invalid rate: 0")
}
