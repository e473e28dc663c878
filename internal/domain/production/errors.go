package production

import (
	"fmt"
	"strings"
)

// CatalogValidationError is returned when a catalog definition cannot be loaded
type CatalogValidationError struct {
	Problems []string
}

func (e *CatalogValidationError) Error() string {
	return fmt.Sprintf("invalid catalog:\n  %s", strings.Join(e.Problems, "\n  "))
}

// UnknownItemError indicates an item reference (key or display name) that is not in the catalog
type UnknownItemError struct {
	Ref string
}

func (e *UnknownItemError) Error() string {
	return fmt.Sprintf("unknown item: %s", e.Ref)
}

// UnknownRecipeError indicates a recipe name that is not in the catalog
type UnknownRecipeError struct {
	Name string
}

func (e *UnknownRecipeError) Error() string {
	return fmt.Sprintf("unknown recipe: %s", e.Name)
}
