package models

import (
	"time"

	"rooftop-solar/internal/config"
	"rooftop-solar/internal/export"
	"rooftop-solar/internal/model"
)

// ReportResponse is a stored estimate.
type ReportResponse struct {
	ID        string               `json:"id"`
	CreatedAt time.Time            `json:"created_at"`
	Report    model.AnalysisReport `json:"report"`
	Figures   export.Figures       `json:"figures"`
}

// CompareResponse ranks the base request and its variations by payback.
type CompareResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one variation
type ComparisonResult struct {
	Rank    int                  `json:"rank"`
	Name    string               `json:"name"`
	Figures export.Figures       `json:"figures"`
	Report  model.AnalysisReport `json:"report"`
}

// SessionResponse describes a session and its current report, if any.
type SessionResponse struct {
	ID        string                `json:"id"`
	CreatedAt time.Time             `json:"created_at"`
	Report    *model.AnalysisReport `json:"report,omitempty"`
	Figures   *export.Figures       `json:"figures,omitempty"`
}

// AssumptionsInfo lists the effective model constants.
type AssumptionsInfo struct {
	Name             string    `json:"name"`
	M2PerKW          float64   `json:"m2_per_kw"`
	CostPerKW        float64   `json:"cost_per_kw"`
	ElectricityRate  float64   `json:"electricity_rate"`
	FlatIrradiance   float64   `json:"flat_irradiance"`
	PerformanceRatio float64   `json:"performance_ratio"`
	PanelEfficiency  float64   `json:"panel_efficiency"`
	LossFactor       float64   `json:"loss_factor"`
	CO2KgPerKWh      float64   `json:"co2_kg_per_kwh"`
	KgCO2PerTree     float64   `json:"kg_co2_per_tree"`
	SeasonalWeights  []float64 `json:"seasonal_weights"`
	DaysInMonth      []int     `json:"days_in_month"`
}

func NewAssumptionsInfo(a config.AssumptionsConfig) AssumptionsInfo {
	return AssumptionsInfo{
		Name:             a.Name,
		M2PerKW:          a.M2PerKW,
		CostPerKW:        a.CostPerKW,
		ElectricityRate:  a.ElectricityRate,
		FlatIrradiance:   a.FlatIrradiance,
		PerformanceRatio: a.PerformanceRatio,
		PanelEfficiency:  a.PanelEfficiency,
		LossFactor:       a.LossFactor,
		CO2KgPerKWh:      a.CO2KgPerKWh,
		KgCO2PerTree:     a.KgCO2PerTree,
		SeasonalWeights:  a.SeasonalWeights,
		DaysInMonth:      a.DaysInMonth,
	}
}

// LocationsResponse holds autocomplete suggestions.
type LocationsResponse struct {
	Query       string           `json:"query"`
	Suggestions []model.Location `json:"suggestions"`
}

// IrradianceResponse is a location's monthly climatology.
type IrradianceResponse struct {
	Lat           float64                `json:"lat"`
	Lon           float64                `json:"lon"`
	Monthly       model.SeriesIrradiance `json:"monthly"`
	MissingMonths []int                  `json:"missing_months,omitempty"`
	EnergyKWh     *[model.Months]float64 `json:"energy_kwh,omitempty"` // Only when area_m2 is given
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
