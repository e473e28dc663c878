package production

// Recipe converts input items into output items on a machine. Recipes are
// immutable once the catalog is built and are shared by pointer.
type Recipe struct {
	Name      string
	Machine   string
	Inputs    []ItemRate
	Outputs   []ItemRate
	Alternate bool
}

// NewRecipe creates a recipe
func NewRecipe(name, machine string, inputs, outputs []ItemRate, alternate bool) *Recipe {
	return &Recipe{
		Name:      name,
		Machine:   machine,
		Inputs:    inputs,
		Outputs:   outputs,
		Alternate: alternate,
	}
}

// OutputRateFor returns the nominal output rate of item
func (r *Recipe) OutputRateFor(item Item) (float64, bool) {
	rate, ok := FindRate(r.Outputs, item)
	if !ok {
		return 0, false
	}
	return rate.Rate, true
}

// MultiplierFor returns the scale factor needed for the recipe to deliver demand.
// Returns false if the recipe does not produce the demanded item.
func (r *Recipe) MultiplierFor(demand ItemRate) (float64, bool) {
	rate, ok := r.OutputRateFor(demand.Item)
	if !ok || rate <= 0 {
		return 0, false
	}
	return demand.Rate / rate, true
}

// ScaledInputs returns the inputs multiplied by multiplier
func (r *Recipe) ScaledInputs(multiplier float64) []ItemRate {
	return scaleAll(r.Inputs, multiplier)
}

// ScaledOutputs returns the outputs multiplied by multiplier
func (r *Recipe) ScaledOutputs(multiplier float64) []ItemRate {
	return scaleAll(r.Outputs, multiplier)
}

func scaleAll(rates []ItemRate, multiplier float64) []ItemRate {
	scaled := make([]ItemRate, len(rates))
	for i, rate := range rates {
		scaled[i] = rate.Scale(multiplier)
	}
	return scaled
}
