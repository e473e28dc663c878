package production

import (
	"fmt"
	"math"
)

// rateTolerance is the relative slack allowed when comparing rates that were
// derived through multiplier arithmetic
const rateTolerance = 1e-9

// Item is a resource in the catalog. Two items are the same resource iff their
// names match, so Item is a plain value type.
type Item struct {
	Name string
}

// NewItem creates an item with the given display name
func NewItem(name string) Item {
	return Item{Name: name}
}

// SameAs reports whether both items denote the same resource
func (i Item) SameAs(other Item) bool {
	return i.Name == other.Name
}

// ItemRate is a flow of an item, in units per minute
type ItemRate struct {
	Item Item
	Rate float64
}

// NewItemRate creates an item rate
func NewItemRate(item Item, rate float64) ItemRate {
	return ItemRate{Item: item, Rate: rate}
}

// Scale returns a copy of the rate multiplied by factor
func (r ItemRate) Scale(factor float64) ItemRate {
	return ItemRate{Item: r.Item, Rate: r.Rate * factor}
}

// LessThanOrEqual reports whether r does not exceed other. Rates of different
// items are never comparable.
func (r ItemRate) LessThanOrEqual(other ItemRate) bool {
	if !r.Item.SameAs(other.Item) {
		return false
	}
	return r.Rate <= other.Rate+rateTolerance*math.Max(1, math.Abs(other.Rate))
}

// FriendlyName returns a human readable label, e.g. "Iron ore x 30.00"
func (r ItemRate) FriendlyName() string {
	return fmt.Sprintf("%s x %.2f", r.Item.Name, r.Rate)
}

// String implements fmt.Stringer
func (r ItemRate) String() string {
	return r.FriendlyName()
}

// Simplify collapses a list of rates into one rate per distinct item name by
// summing. Items keep the order of their first appearance.
func Simplify(rates []ItemRate) []ItemRate {
	index := make(map[string]int, len(rates))
	simplified := make([]ItemRate, 0, len(rates))
	for _, rate := range rates {
		if i, ok := index[rate.Item.Name]; ok {
			simplified[i].Rate += rate.Rate
			continue
		}
		index[rate.Item.Name] = len(simplified)
		simplified = append(simplified, NewItemRate(NewItem(rate.Item.Name), rate.Rate))
	}
	return simplified
}

// FindRate returns the rate for item within rates
func FindRate(rates []ItemRate, item Item) (ItemRate, bool) {
	for _, rate := range rates {
		if rate.Item.SameAs(item) {
			return rate, true
		}
	}
	return ItemRate{}, false
}
