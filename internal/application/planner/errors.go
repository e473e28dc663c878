package planner

import "fmt"

// InvalidDemandError indicates a demanded rate that cannot be planned for
type InvalidDemandError struct {
	Item string
	Rate float64
}

func (e *InvalidDemandError) Error() string {
	return fmt.Sprintf("invalid demand for %s: rate must be a finite non-negative number, got %v", e.Item, e.Rate)
}
