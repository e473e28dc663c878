package production

// Definition is the serialisable form of a catalog as it is stored in catalog
// files and in the database. Items are referenced by key (camelCase) everywhere
// except in the item list itself.
type Definition struct {
	Items     []ItemDefinition     `yaml:"items" json:"items" validate:"dive"`
	Recipes   []RecipeDefinition   `yaml:"recipes" json:"recipes" validate:"dive"`
	Resources []ResourceDefinition `yaml:"resources" json:"resources" validate:"dive"`
}

// ItemDefinition declares an item
type ItemDefinition struct {
	// Key is the stable lookup key, e.g. "ironOre"
	Key string `yaml:"key" json:"key" validate:"required,itemkey"`

	// Name is the display name and the item identity, e.g. "Iron ore"
	Name string `yaml:"name" json:"name" validate:"required"`
}

// RecipeDefinition declares a recipe
type RecipeDefinition struct {
	Name      string                 `yaml:"name" json:"name" validate:"required"`
	Machine   string                 `yaml:"machine" json:"machine"`
	Alternate bool                   `yaml:"alt" json:"alt"`
	Inputs    []IngredientDefinition `yaml:"inputs" json:"inputs" validate:"dive"`
	Outputs   []IngredientDefinition `yaml:"outputs" json:"outputs" validate:"min=1,dive"`
}

// IngredientDefinition is an item key with a rate per minute
type IngredientDefinition struct {
	Item string  `yaml:"item" json:"item" validate:"required"`
	Rate float64 `yaml:"rate" json:"rate"`
}

// ResourceDefinition is an entry of the scarcity table: a raw item that can be
// extracted and its maximum sustainable extraction rate. A zero MaxRate marks
// the resource as extractable with an unknown bound.
type ResourceDefinition struct {
	Item    string  `yaml:"item" json:"item" validate:"required"`
	MaxRate float64 `yaml:"max_rate" json:"max_rate" validate:"gte=0"`
}
