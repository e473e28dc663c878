package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/production-planner/internal/domain/production"
)

// GormCatalogRepository stores catalog definitions using GORM. It implements
// production.CatalogSource.
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GORM catalog repository
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// Save replaces the stored catalog with def in a single transaction
func (r *GormCatalogRepository) Save(ctx context.Context, def *production.Definition) error {
	items, recipes, resources, err := r.definitionToModels(def, time.Now())
	if err != nil {
		return fmt.Errorf("failed to convert catalog to models: %w", err)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&ItemModel{}, &RecipeModel{}, &ResourceModel{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to clear catalog: %w", err)
			}
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return fmt.Errorf("failed to save items: %w", err)
			}
		}
		if len(recipes) > 0 {
			if err := tx.Create(&recipes).Error; err != nil {
				return fmt.Errorf("failed to save recipes: %w", err)
			}
		}
		if len(resources) > 0 {
			if err := tx.Create(&resources).Error; err != nil {
				return fmt.Errorf("failed to save resources: %w", err)
			}
		}
		return nil
	})
}

// Load reads the stored catalog in its original declaration order
func (r *GormCatalogRepository) Load(ctx context.Context) (*production.Definition, error) {
	db := r.db.WithContext(ctx)

	var items []ItemModel
	if err := db.Order("position").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}

	var recipes []RecipeModel
	if err := db.Order("position").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}

	var resources []ResourceModel
	if err := db.Order("position").Find(&resources).Error; err != nil {
		return nil, fmt.Errorf("failed to load resources: %w", err)
	}

	return r.modelsToDefinition(items, recipes, resources)
}

// CountRecipes returns the number of stored recipes
func (r *GormCatalogRepository) CountRecipes(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&RecipeModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return count, nil
}

// definitionToModels converts a catalog definition to database models
func (r *GormCatalogRepository) definitionToModels(def *production.Definition, now time.Time) ([]ItemModel, []RecipeModel, []ResourceModel, error) {
	items := make([]ItemModel, 0, len(def.Items))
	for i, item := range def.Items {
		items = append(items, ItemModel{
			Key:       item.Key,
			Name:      item.Name,
			Position:  i,
			CreatedAt: now,
		})
	}

	recipes := make([]RecipeModel, 0, len(def.Recipes))
	for i, recipe := range def.Recipes {
		inputsJSON, err := json.Marshal(recipe.Inputs)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to marshal inputs of %s: %w", recipe.Name, err)
		}
		outputsJSON, err := json.Marshal(recipe.Outputs)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to marshal outputs of %s: %w", recipe.Name, err)
		}
		recipes = append(recipes, RecipeModel{
			Name:      recipe.Name,
			Machine:   recipe.Machine,
			Alternate: recipe.Alternate,
			Inputs:    string(inputsJSON),
			Outputs:   string(outputsJSON),
			Position:  i,
			CreatedAt: now,
		})
	}

	resources := make([]ResourceModel, 0, len(def.Resources))
	for i, resource := range def.Resources {
		resources = append(resources, ResourceModel{
			Item:      resource.Item,
			MaxRate:   resource.MaxRate,
			Position:  i,
			CreatedAt: now,
		})
	}

	return items, recipes, resources, nil
}

// modelsToDefinition converts database models to a catalog definition
func (r *GormCatalogRepository) modelsToDefinition(items []ItemModel, recipes []RecipeModel, resources []ResourceModel) (*production.Definition, error) {
	def := &production.Definition{
		Items:     make([]production.ItemDefinition, 0, len(items)),
		Recipes:   make([]production.RecipeDefinition, 0, len(recipes)),
		Resources: make([]production.ResourceDefinition, 0, len(resources)),
	}

	for _, model := range items {
		def.Items = append(def.Items, production.ItemDefinition{Key: model.Key, Name: model.Name})
	}

	for _, model := range recipes {
		recipe := production.RecipeDefinition{
			Name:      model.Name,
			Machine:   model.Machine,
			Alternate: model.Alternate,
		}
		if model.Inputs != "" && model.Inputs != "null" {
			if err := json.Unmarshal([]byte(model.Inputs), &recipe.Inputs); err != nil {
				return nil, fmt.Errorf("failed to unmarshal inputs of %s: %w", model.Name, err)
			}
		}
		if err := json.Unmarshal([]byte(model.Outputs), &recipe.Outputs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal outputs of %s: %w", model.Name, err)
		}
		def.Recipes = append(def.Recipes, recipe)
	}

	for _, model := range resources {
		def.Resources = append(def.Resources, production.ResourceDefinition{Item: model.Item, MaxRate: model.MaxRate})
	}

	return def, nil
}
