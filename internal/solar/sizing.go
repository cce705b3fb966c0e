package solar

import (
	"fmt"
	"math"

	"rooftop-solar/internal/model"
)

// ComputeSizing estimates installed capacity and cost from rooftop area using
// the areal density assumption (a.M2PerKW) and a flat cost per kW.
//
// A negative or non-finite area, or one so large that size or cost overflow,
// yields a zero-size, zero-cost result and an error wrapping
// model.ErrInvalidArea. Zero area is valid.
func ComputeSizing(areaM2 float64, a model.Assumptions) (model.SizingResult, error) {
	if math.IsNaN(areaM2) || math.IsInf(areaM2, 0) || areaM2 < 0 {
		return model.SizingResult{}, fmt.Errorf("%w: %v m²", model.ErrInvalidArea, areaM2)
	}
	size := areaM2 / a.M2PerKW
	if !finite(size) || !finite(size*a.CostPerKW) {
		return model.SizingResult{}, fmt.Errorf("%w: %v m² overflows system cost", model.ErrInvalidArea, areaM2)
	}
	return model.SizingResult{
		AreaM2:       areaM2,
		SystemSizeKW: size,
		SystemCost:   size * a.CostPerKW,
	}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
