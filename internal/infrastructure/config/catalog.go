package config

// Catalog sources
const (
	CatalogSourceEmbedded = "embedded"
	CatalogSourceFile     = "file"
	CatalogSourceDatabase = "database"
)

// CatalogConfig selects where recipes and items are loaded from
type CatalogConfig struct {
	// Source: embedded (built-in sample catalog), file, database
	Source string `mapstructure:"source" validate:"required,oneof=embedded file database"`

	// Path to a YAML or JSON catalog (required if source is "file")
	Path string `mapstructure:"path" validate:"required_if=Source file"`
}
