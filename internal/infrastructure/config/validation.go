package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator checks configuration structs. Besides the tag rules it knows:
//   - promfile: metrics textfile name the node exporter picks up (*.prom)
//   - dburl: empty or a postgres:// / postgresql:// connection URL
//   - a database catalog needs a database that outlives the process
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the planner's configuration rules
func NewValidator() *Validator {
	v := validator.New()
	mustRegister(v, "promfile", func(fl validator.FieldLevel) bool {
		return strings.HasSuffix(fl.Field().String(), ".prom")
	})
	mustRegister(v, "dburl", func(fl validator.FieldLevel) bool {
		raw := fl.Field().String()
		if raw == "" {
			return true
		}
		u, err := url.Parse(raw)
		return err == nil && (u.Scheme == "postgres" || u.Scheme == "postgresql")
	})
	v.RegisterStructValidation(validateCatalogDatabase, Config{})

	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("failed to register %s validation: %v", tag, err))
	}
}

// validateCatalogDatabase rejects database catalogs that cannot be reopened
func validateCatalogDatabase(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(Config)
	if cfg.Catalog.Source != CatalogSourceDatabase {
		return
	}
	db := cfg.Database
	switch db.Type {
	case "sqlite":
		if db.Path == "" || db.Path == ":memory:" {
			sl.ReportError(db.Path, "Database.Path", "Path", "persistent", "")
		}
	case "postgres":
		if db.URL == "" && (db.Host == "" || db.Name == "") {
			sl.ReportError(db.URL, "Database.URL", "URL", "required_without_host", "")
		}
	}
}

// Validate validates a struct using validation tags
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors into readable messages
func (v *Validator) formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		messages = append(messages, fmt.Sprintf(
			"%s: failed %s (value: '%v')",
			strings.TrimPrefix(e.Namespace(), "Config."),
			e.Tag(),
			e.Value(),
		))
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
}

// ValidateConfig validates the entire configuration
func ValidateConfig(cfg *Config) error {
	return NewValidator().Validate(cfg)
}
