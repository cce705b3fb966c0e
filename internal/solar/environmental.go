package solar

import (
	"math"

	"rooftop-solar/internal/model"
)

// maxTrees is 2^63, the first float64 that does not fit in an int64.
const maxTrees = float64(1 << 63)

// ComputeEnvironmental converts annual output into avoided CO2 and the number
// of tree-years that would absorb the same amount. Trees round half up.
// Negative or non-finite output counts as zero; trees saturate at MaxInt64.
func ComputeEnvironmental(annualOutputKWh float64, a model.Assumptions) model.EnvironmentalResult {
	if !(annualOutputKWh > 0) || math.IsInf(annualOutputKWh, 0) {
		return model.EnvironmentalResult{}
	}
	kg := annualOutputKWh * a.CO2KgPerKWh
	res := model.EnvironmentalResult{
		CO2AvoidedKg:     kg,
		CO2AvoidedTonnes: kg / 1000,
		TreeEquivalent:   math.MaxInt64,
	}
	if trees := math.Floor(kg/a.KgCO2PerTree + 0.5); trees < maxTrees {
		res.TreeEquivalent = int64(trees)
	}
	return res
}
