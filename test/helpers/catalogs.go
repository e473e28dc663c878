package helpers

import (
	"testing"

	"github.com/andrescamacho/production-planner/internal/domain/production"
)

// IronChainDefinition is the single-path catalog ore -> ingot -> plate -> reinforced plate
func IronChainDefinition() *production.Definition {
	return &production.Definition{
		Items: []production.ItemDefinition{
			{Key: "ironOre", Name: "Iron ore"},
			{Key: "ironIngot", Name: "Iron ingot"},
			{Key: "ironPlate", Name: "Iron plate"},
			{Key: "reinforcedIronPlate", Name: "Reinforced iron plate"},
		},
		Recipes: []production.RecipeDefinition{
			recipe("Iron ingot", "smelter", in("ironOre", 30), out("ironIngot", 30)),
			recipe("Iron plate", "constructor", in("ironIngot", 30), out("ironPlate", 20)),
			recipe("Reinforced iron plate", "assembler", in("ironPlate", 30), out("reinforcedIronPlate", 5)),
		},
		Resources: []production.ResourceDefinition{
			{Item: "ironOre", MaxRate: 1000},
		},
	}
}

// CompetingIngotDefinition has two ingot recipes: plain smelting from ore and
// an alternate refinery route from ore and water
func CompetingIngotDefinition() *production.Definition {
	return &production.Definition{
		Items: []production.ItemDefinition{
			{Key: "ironOre", Name: "Iron ore"},
			{Key: "water", Name: "Water"},
			{Key: "ironIngot", Name: "Iron ingot"},
		},
		Recipes: []production.RecipeDefinition{
			recipe("Iron ingot", "smelter", in("ironOre", 30), out("ironIngot", 30)),
			alternate(recipe("Pure iron ingot", "refinery", in("ironOre", 35, "water", 20), out("ironIngot", 65))),
		},
		Resources: []production.ResourceDefinition{
			{Item: "ironOre", MaxRate: 1000},
			{Item: "water", MaxRate: 10000},
		},
	}
}

// ScrewsAndPlatesDefinition needs iron ingots along two branches, which
// yields duplicate ingot recipe nodes before simplification
func ScrewsAndPlatesDefinition() *production.Definition {
	return &production.Definition{
		Items: []production.ItemDefinition{
			{Key: "ironOre", Name: "Iron ore"},
			{Key: "ironIngot", Name: "Iron ingot"},
			{Key: "ironPlate", Name: "Iron plate"},
			{Key: "ironRod", Name: "Iron rod"},
			{Key: "screw", Name: "Screw"},
			{Key: "reinforcedIronPlate", Name: "Reinforced iron plate"},
		},
		Recipes: []production.RecipeDefinition{
			recipe("Reinforced iron plate", "assembler", in("ironPlate", 30, "screw", 60), out("reinforcedIronPlate", 5)),
			recipe("Iron plate", "constructor", in("ironIngot", 30), out("ironPlate", 20)),
			recipe("Screw", "constructor", in("ironRod", 10), out("screw", 40)),
			recipe("Iron rod", "constructor", in("ironIngot", 15), out("ironRod", 15)),
			recipe("Iron ingot", "smelter", in("ironOre", 30), out("ironIngot", 30)),
		},
		Resources: []production.ResourceDefinition{
			{Item: "ironOre", MaxRate: 1000},
		},
	}
}

// WaterExtractorDefinition makes water both extractable and producible by a
// recipe without inputs
func WaterExtractorDefinition() *production.Definition {
	return &production.Definition{
		Items: []production.ItemDefinition{
			{Key: "water", Name: "Water"},
			{Key: "ice", Name: "Ice"},
		},
		Recipes: []production.RecipeDefinition{
			recipe("Water extractor", "extractor", nil, out("water", 120)),
			recipe("Ice", "freezer", in("water", 10), out("ice", 10)),
		},
		Resources: []production.ResourceDefinition{
			{Item: "water", MaxRate: 1000},
		},
	}
}

// RodAlternativesDefinition has two rod recipes that both consume iron
// ingots, so the ingot recipe appears on the winning and the losing route
func RodAlternativesDefinition() *production.Definition {
	return &production.Definition{
		Items: []production.ItemDefinition{
			{Key: "ironOre", Name: "Iron ore"},
			{Key: "water", Name: "Water"},
			{Key: "ironIngot", Name: "Iron ingot"},
			{Key: "ironRod", Name: "Iron rod"},
		},
		Recipes: []production.RecipeDefinition{
			recipe("Iron ingot", "smelter", in("ironOre", 30), out("ironIngot", 30)),
			recipe("Iron rod", "constructor", in("ironIngot", 15), out("ironRod", 15)),
			alternate(recipe("Wet rod", "assembler", in("ironIngot", 15, "water", 100), out("ironRod", 15))),
		},
		Resources: []production.ResourceDefinition{
			{Item: "ironOre", MaxRate: 1000},
			{Item: "water", MaxRate: 10000},
		},
	}
}

// NewTestCatalog builds a catalog from def and fails the test on error
func NewTestCatalog(t *testing.T, def *production.Definition) *production.Catalog {
	t.Helper()
	catalog, _, err := production.NewCatalog(def)
	if err != nil {
		t.Fatalf("failed to build test catalog: %v", err)
	}
	return catalog
}

// Rate is shorthand for an item rate of the named item
func Rate(name string, rate float64) production.ItemRate {
	return production.NewItemRate(production.NewItem(name), rate)
}

func recipe(name, machine string, inputs, outputs []production.IngredientDefinition) production.RecipeDefinition {
	return production.RecipeDefinition{Name: name, Machine: machine, Inputs: inputs, Outputs: outputs}
}

func alternate(r production.RecipeDefinition) production.RecipeDefinition {
	r.Alternate = true
	return r
}

// in builds ingredients from alternating key/rate pairs
func in(pairs ...interface{}) []production.IngredientDefinition {
	ingredients := make([]production.IngredientDefinition, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		ingredients = append(ingredients, production.IngredientDefinition{
			Item: pairs[i].(string),
			Rate: toFloat(pairs[i+1]),
		})
	}
	return ingredients
}

func out(pairs ...interface{}) []production.IngredientDefinition {
	return in(pairs...)
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case float64:
		return n
	default:
		panic("rate must be int or float64")
	}
}
