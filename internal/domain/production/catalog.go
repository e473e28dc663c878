package production

import (
	"context"
	"math"
	"sort"
)

// CatalogSource provides catalog definitions (files, embedded data, database)
type CatalogSource interface {
	Load(ctx context.Context) (*Definition, error)
}

// Catalog is the read-only item/recipe/scarcity data the planner works on.
// It is built once from a Definition and must not be mutated while a plan is
// being calculated.
type Catalog struct {
	items     map[string]Item
	itemKeys  []string
	byName    map[string]string
	recipes   []*Recipe
	byRecipe  map[string]*Recipe
	producers map[string][]*Recipe
	maxRates  map[string]float64
}

// NewCatalog validates def and builds a catalog from it. Warnings are returned
// for problems that do not prevent loading.
func NewCatalog(def *Definition) (*Catalog, []string, error) {
	warnings, err := ValidateDefinition(def)
	if err != nil {
		return nil, warnings, err
	}

	c := &Catalog{
		items:     make(map[string]Item, len(def.Items)),
		byName:    make(map[string]string, len(def.Items)),
		byRecipe:  make(map[string]*Recipe, len(def.Recipes)),
		producers: make(map[string][]*Recipe),
		maxRates:  make(map[string]float64, len(def.Resources)),
	}
	for _, item := range def.Items {
		c.items[item.Key] = NewItem(item.Name)
		c.byName[item.Name] = item.Key
		c.itemKeys = append(c.itemKeys, item.Key)
	}

	for _, rd := range def.Recipes {
		recipe := NewRecipe(rd.Name, rd.Machine, c.toRates(rd.Inputs), c.toRates(rd.Outputs), rd.Alternate)
		c.recipes = append(c.recipes, recipe)
		c.byRecipe[recipe.Name] = recipe
		for _, output := range recipe.Outputs {
			c.producers[output.Item.Name] = append(c.producers[output.Item.Name], recipe)
		}
	}

	for _, resource := range def.Resources {
		c.maxRates[c.itemFor(resource.Item).Name] = resource.MaxRate
	}

	return c, warnings, nil
}

// itemFor maps a key to its item. Undeclared keys (already reported as
// warnings) fall back to an item named after the key.
func (c *Catalog) itemFor(key string) Item {
	if item, ok := c.items[key]; ok {
		return item
	}
	return NewItem(key)
}

func (c *Catalog) toRates(ingredients []IngredientDefinition) []ItemRate {
	rates := make([]ItemRate, 0, len(ingredients))
	for _, ingredient := range ingredients {
		rates = append(rates, NewItemRate(c.itemFor(ingredient.Item), ingredient.Rate))
	}
	return rates
}

// Item returns the item registered under key
func (c *Catalog) Item(key string) (Item, bool) {
	item, ok := c.items[key]
	return item, ok
}

// ResolveItem looks an item up by key first, then by display name
func (c *Catalog) ResolveItem(ref string) (Item, error) {
	if item, ok := c.items[ref]; ok {
		return item, nil
	}
	if key, ok := c.byName[ref]; ok {
		return c.items[key], nil
	}
	return Item{}, &UnknownItemError{Ref: ref}
}

// KeyOf returns the catalog key of item
func (c *Catalog) KeyOf(item Item) (string, bool) {
	key, ok := c.byName[item.Name]
	return key, ok
}

// ItemKeys returns all item keys in declaration order
func (c *Catalog) ItemKeys() []string {
	keys := make([]string, len(c.itemKeys))
	copy(keys, c.itemKeys)
	return keys
}

// Recipes returns all recipes in declaration order
func (c *Catalog) Recipes() []*Recipe {
	recipes := make([]*Recipe, len(c.recipes))
	copy(recipes, c.recipes)
	return recipes
}

// ResolveRecipe looks a recipe up by name
func (c *Catalog) ResolveRecipe(name string) (*Recipe, error) {
	recipe, ok := c.byRecipe[name]
	if !ok {
		return nil, &UnknownRecipeError{Name: name}
	}
	return recipe, nil
}

// RecipesProducing returns every recipe that lists item among its outputs, in
// declaration order
func (c *Catalog) RecipesProducing(item Item) []*Recipe {
	return c.producers[item.Name]
}

// MaxSustainableRate returns the scarcity bound of a raw item. Resources
// declared without a bound report false.
func (c *Catalog) MaxSustainableRate(item Item) (float64, bool) {
	rate, ok := c.maxRates[item.Name]
	return rate, ok && rate > 0
}

// IsExtractable reports whether item is a raw resource that can be extracted
func (c *Catalog) IsExtractable(item Item) bool {
	_, ok := c.maxRates[item.Name]
	return ok
}

// Resources returns the names of all extractable items, sorted
func (c *Catalog) Resources() []string {
	names := make([]string, 0, len(c.maxRates))
	for name := range c.maxRates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ScarcityCost scores extracting rate relative to the item's sustainable
// maximum. Returns NaN when the item has no known bound.
func (c *Catalog) ScarcityCost(rate ItemRate, scale float64) float64 {
	bound, ok := c.MaxSustainableRate(rate.Item)
	if !ok || bound <= 0 {
		return math.NaN()
	}
	return rate.Rate / bound * scale
}
