package persistence

import (
	"time"
)

// ItemModel represents the catalog_items table
type ItemModel struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Name      string    `gorm:"column:name;unique;not null"`
	Position  int       `gorm:"column:position;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (ItemModel) TableName() string {
	return "catalog_items"
}

// RecipeModel represents the catalog_recipes table
type RecipeModel struct {
	Name      string    `gorm:"column:name;primaryKey"`
	Machine   string    `gorm:"column:machine"`
	Alternate bool      `gorm:"column:alternate;not null;default:false"`
	Inputs    string    `gorm:"column:inputs;type:jsonb"`  // JSON stored as string
	Outputs   string    `gorm:"column:outputs;type:jsonb"` // JSON stored as string
	Position  int       `gorm:"column:position;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (RecipeModel) TableName() string {
	return "catalog_recipes"
}

// ResourceModel represents the catalog_resources table (scarcity bounds of raw items)
type ResourceModel struct {
	Item      string    `gorm:"column:item;primaryKey"`
	MaxRate   float64   `gorm:"column:max_rate;not null"`
	Position  int       `gorm:"column:position;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (ResourceModel) TableName() string {
	return "catalog_resources"
}
