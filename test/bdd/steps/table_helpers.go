package steps

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"

	"github.com/andrescamacho/production-planner/internal/domain/production"
)

// getCellValueFromTable returns the cell of row under the header named columnName
func getCellValueFromTable(table *godog.Table, row *messages.PickleTableRow, columnName string) string {
	if len(table.Rows) == 0 {
		return ""
	}

	headerRow := table.Rows[0]

	// Find column index by matching header
	for i, headerCell := range headerRow.Cells {
		if headerCell.Value == columnName {
			if i < len(row.Cells) {
				return strings.TrimSpace(row.Cells[i].Value)
			}
			return ""
		}
	}

	return ""
}

// dataRows returns the rows of table without the header
func dataRows(table *godog.Table) []*messages.PickleTableRow {
	if len(table.Rows) == 0 {
		return nil
	}
	return table.Rows[1:]
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return v, nil
}

// parseIngredients parses "ironOre:35, water:20" into ingredient definitions
func parseIngredients(s string) ([]production.IngredientDefinition, error) {
	var ingredients []production.IngredientDefinition
	if strings.TrimSpace(s) == "" {
		return ingredients, nil
	}
	for _, part := range strings.Split(s, ",") {
		key, rawRate, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			return nil, fmt.Errorf("invalid ingredient %q: expected key:rate", part)
		}
		rate, err := parseFloat(rawRate)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, production.IngredientDefinition{Item: strings.TrimSpace(key), Rate: rate})
	}
	return ingredients, nil
}
