package solar

import (
	"errors"
	"fmt"
	"time"

	"rooftop-solar/internal/model"
)

const daysPerYear = 365

// EnergyParams are the efficiency and calendar inputs of the energy model.
type EnergyParams struct {
	// PerformanceRatio applies in flat mode only.
	PerformanceRatio float64
	// PanelEfficiency and LossFactor apply in series mode only.
	PanelEfficiency float64
	LossFactor      float64

	SeasonalWeights [model.Months]float64
	DaysInMonth     [model.Months]int
}

// EnergyParamsFrom extracts the energy inputs from the model assumptions.
func EnergyParamsFrom(a model.Assumptions) EnergyParams {
	return EnergyParams{
		PerformanceRatio: a.PerformanceRatio,
		PanelEfficiency:  a.PanelEfficiency,
		LossFactor:       a.LossFactor,
		SeasonalWeights:  a.SeasonalWeights,
		DaysInMonth:      a.DaysInMonth,
	}
}

// MonthError records why one month produced no energy.
type MonthError struct {
	Month time.Month
	Err   error
}

func (e *MonthError) Error() string {
	return fmt.Sprintf("%s: %v", e.Month, e.Err)
}

func (e *MonthError) Unwrap() error { return e.Err }

// ComputeMonthlyEnergy models monthly and annual output for either irradiance mode.
//
// Flat mode: annual = kW × irradiance × 365 × performance ratio; month m is
// the annual/12 average times seasonal weight m. The default weights sum to
// 11.7, so flat months add up to 97.5% of the annual figure.
// Series mode: month m = irradiance_m × days_m × area × efficiency × loss factor,
// annual = Σ months.
//
// A month with no usable irradiance contributes zero energy and is flagged in
// MissingMonths. The returned error joins one *MonthError per such month and
// matches model.ErrMissingIrradiance; the result is always usable.
func ComputeMonthlyEnergy(sizing model.SizingResult, irr model.Irradiance, p EnergyParams) (model.EnergyResult, error) {
	if irr == nil {
		irr = model.FlatIrradiance(0)
	}
	switch irr.Mode() {
	case model.ModeSeries:
		return seriesEnergy(sizing, irr, p)
	default:
		return flatEnergy(sizing, irr, p)
	}
}

func flatEnergy(sizing model.SizingResult, irr model.Irradiance, p EnergyParams) (model.EnergyResult, error) {
	res := model.EnergyResult{Mode: model.ModeFlat, SystemSizeKW: sizing.SystemSizeKW}

	value, ok := irr.At(time.January)
	if !ok {
		errs := make([]error, 0, model.Months)
		for i := range res.MissingMonths {
			res.MissingMonths[i] = true
			errs = append(errs, &MonthError{Month: time.Month(i + 1), Err: model.ErrMissingIrradiance})
		}
		return res, errors.Join(errs...)
	}

	annual := sizing.SystemSizeKW * value * daysPerYear * p.PerformanceRatio
	average := annual / model.Months
	for i := range res.MonthlyOutputKWh {
		res.MonthlyIrradiance[i] = value
		res.MonthlyOutputKWh[i] = average * p.SeasonalWeights[i]
	}
	res.AnnualOutputKWh = annual
	return res, nil
}

func seriesEnergy(sizing model.SizingResult, irr model.Irradiance, p EnergyParams) (model.EnergyResult, error) {
	res := model.EnergyResult{Mode: model.ModeSeries, SystemSizeKW: sizing.SystemSizeKW}

	var errs []error
	total := 0.0
	for i := range res.MonthlyOutputKWh {
		month := time.Month(i + 1)
		value, ok := irr.At(month)
		if !ok {
			res.MissingMonths[i] = true
			errs = append(errs, &MonthError{Month: month, Err: model.ErrMissingIrradiance})
			continue
		}
		e := value * float64(p.DaysInMonth[i]) * sizing.AreaM2 * p.PanelEfficiency * p.LossFactor
		res.MonthlyIrradiance[i] = value
		res.MonthlyOutputKWh[i] = e
		total += e
	}
	res.AnnualOutputKWh = total
	return res, errors.Join(errs...)
}
