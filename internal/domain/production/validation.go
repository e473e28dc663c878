package production

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	itemKeyPattern     = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)
	displayNamePattern = regexp.MustCompile(`^[A-Z][a-z0-9]*(?: [a-z0-9]*)*$`)
)

// definitionValidator validates Definition structs. Custom rules:
//   - itemkey: camelCase lookup key ("ironOre")
var definitionValidator = newDefinitionValidator()

func newDefinitionValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("itemkey", func(fl validator.FieldLevel) bool {
		return itemKeyPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("failed to register itemkey validation: %v", err))
	}
	return v
}

// ValidateDefinition checks a definition. Problems that make the catalog
// unusable are returned as a *CatalogValidationError; cosmetic or recoverable
// problems are returned as warnings.
func ValidateDefinition(def *Definition) (warnings []string, err error) {
	var problems []string

	if structErr := definitionValidator.Struct(def); structErr != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(structErr, &validationErrs) {
			return nil, structErr
		}
		for _, e := range validationErrs {
			problems = append(problems, fmt.Sprintf(
				"field '%s' failed validation: %s (value: '%v')",
				e.Namespace(),
				e.Tag(),
				e.Value(),
			))
		}
	}

	keys := make(map[string]bool, len(def.Items))
	names := make(map[string]bool, len(def.Items))
	for _, item := range def.Items {
		if keys[item.Key] {
			problems = append(problems, fmt.Sprintf("duplicate item key: %s", item.Key))
		}
		if names[item.Name] {
			problems = append(problems, fmt.Sprintf("duplicate item name: %s", item.Name))
		}
		keys[item.Key] = true
		names[item.Name] = true
		if item.Name != "" && !displayNamePattern.MatchString(item.Name) {
			warnings = append(warnings, fmt.Sprintf(
				"item %s: display name %q should be in the form `Foo bar baz` or `Foo`", item.Key, item.Name))
		}
	}

	recipes := make(map[string]bool, len(def.Recipes))
	for _, recipe := range def.Recipes {
		if recipes[recipe.Name] {
			problems = append(problems, fmt.Sprintf("duplicate recipe name: %s", recipe.Name))
		}
		recipes[recipe.Name] = true
		if recipe.Name != "" && !displayNamePattern.MatchString(recipe.Name) {
			warnings = append(warnings, fmt.Sprintf(
				"recipe %q: display name should be in the form `Foo bar baz` or `Foo`", recipe.Name))
		}
		warnings = append(warnings, ingredientWarnings(recipe.Name, "input", recipe.Inputs, keys)...)
		warnings = append(warnings, ingredientWarnings(recipe.Name, "output", recipe.Outputs, keys)...)
	}

	resources := make(map[string]bool, len(def.Resources))
	for _, resource := range def.Resources {
		if resources[resource.Item] {
			problems = append(problems, fmt.Sprintf("duplicate resource: %s", resource.Item))
		}
		resources[resource.Item] = true
		if !keys[resource.Item] {
			warnings = append(warnings, fmt.Sprintf("resource references undeclared item: %s", resource.Item))
		}
		if resource.MaxRate == 0 {
			warnings = append(warnings, fmt.Sprintf("resource %s has no sustainable rate, its cost will be unknown", resource.Item))
		}
	}

	if len(problems) > 0 {
		return warnings, &CatalogValidationError{Problems: problems}
	}
	return warnings, nil
}

func ingredientWarnings(recipe, side string, ingredients []IngredientDefinition, keys map[string]bool) []string {
	var warnings []string
	for _, ingredient := range ingredients {
		if !keys[ingredient.Item] {
			warnings = append(warnings, fmt.Sprintf(
				"recipe %q: %s references undeclared item: %s", recipe, side, ingredient.Item))
		}
		if ingredient.Rate <= 0 {
			warnings = append(warnings, fmt.Sprintf(
				"recipe %q: %s %s has invalid rate: %v", recipe, side, ingredient.Item, ingredient.Rate))
		}
	}
	return warnings
}
