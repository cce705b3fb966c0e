package model

import (
	"errors"
	"math"
)

// Assumptions are the fixed constants of the estimation model.
// Units:
// - M2PerKW: m² of roof per installed kW
// - CostPerKW: currency per installed kW
// - ElectricityRate: currency per kWh
// - FlatIrradiance: kWh/m²/day
// - PerformanceRatio, PanelEfficiency, LossFactor: fractions 0..1
// - CO2KgPerKWh: kg CO2 avoided per kWh produced
// - KgCO2PerTree: kg CO2 absorbed per tree-year
type Assumptions struct {
	M2PerKW          float64
	CostPerKW        float64
	ElectricityRate  float64
	FlatIrradiance   float64
	PerformanceRatio float64
	PanelEfficiency  float64
	LossFactor       float64
	CO2KgPerKWh      float64
	KgCO2PerTree     float64

	// SeasonalWeights shapes the flat-mode annual output into months.
	// Each flat month is the annual/12 average times its weight; weights are not normalised.
	SeasonalWeights [Months]float64
	DaysInMonth     [Months]int
}

// DefaultSeasonalWeights peaks in winter and dips in the monsoon months.
var DefaultSeasonalWeights = [Months]float64{1.1, 1.05, 1.0, 0.95, 0.9, 0.85, 0.85, 0.9, 0.95, 1.0, 1.05, 1.1}

// DefaultDaysInMonth is a non-leap year.
var DefaultDaysInMonth = [Months]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DefaultAssumptions returns the constants the estimator ships with.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		M2PerKW:          10,
		CostPerKW:        50000,
		ElectricityRate:  8,
		FlatIrradiance:   5,
		PerformanceRatio: 0.75,
		PanelEfficiency:  0.18,
		LossFactor:       0.77,
		CO2KgPerKWh:      0.82,
		KgCO2PerTree:     20,
		SeasonalWeights:  DefaultSeasonalWeights,
		DaysInMonth:      DefaultDaysInMonth,
	}
}

func (a Assumptions) Validate() error {
	if !positive(a.M2PerKW) {
		return errors.New("M2PerKW must be > 0")
	}
	if !nonNegative(a.CostPerKW) {
		return errors.New("CostPerKW must be >= 0")
	}
	if !nonNegative(a.ElectricityRate) {
		return errors.New("ElectricityRate must be >= 0")
	}
	if !nonNegative(a.FlatIrradiance) {
		return errors.New("FlatIrradiance must be >= 0")
	}
	if !fraction(a.PerformanceRatio) {
		return errors.New("PerformanceRatio must be in (0, 1]")
	}
	if !fraction(a.PanelEfficiency) {
		return errors.New("PanelEfficiency must be in (0, 1]")
	}
	if !fraction(a.LossFactor) {
		return errors.New("LossFactor must be in (0, 1]")
	}
	if !nonNegative(a.CO2KgPerKWh) {
		return errors.New("CO2KgPerKWh must be >= 0")
	}
	if !positive(a.KgCO2PerTree) {
		return errors.New("KgCO2PerTree must be > 0")
	}
	sum := 0.0
	for _, w := range a.SeasonalWeights {
		if !nonNegative(w) {
			return errors.New("SeasonalWeights must be >= 0")
		}
		sum += w
	}
	if sum <= 0 {
		return errors.New("SeasonalWeights must not all be zero")
	}
	for _, d := range a.DaysInMonth {
		if d < 28 || d > 31 {
			return errors.New("DaysInMonth entries must be in [28, 31]")
		}
	}
	return nil
}

func positive(x float64) bool    { return x > 0 && !math.IsInf(x, 0) }
func nonNegative(x float64) bool { return x >= 0 && !math.IsInf(x, 0) }
func fraction(x float64) bool    { return x > 0 && x <= 1 }
