package model

// Months is the length of every per-month series.
const Months = 12

// SizingResult is the installed capacity and cost derived from rooftop area.
// Units:
// - AreaM2: m²
// - SystemSizeKW: kW
// - SystemCost: currency units
type SizingResult struct {
	AreaM2       float64 `json:"area_m2"`
	SystemSizeKW float64 `json:"system_size_kw"`
	SystemCost   float64 `json:"system_cost"`
}

// EnergyResult is the modeled production. Index 0 is January.
type EnergyResult struct {
	Mode              IrradianceMode  `json:"mode"`
	SystemSizeKW      float64         `json:"system_size_kw"`
	MonthlyIrradiance [Months]float64 `json:"monthly_irradiance"`
	MonthlyOutputKWh  [Months]float64 `json:"monthly_output_kwh"`
	AnnualOutputKWh   float64         `json:"annual_output_kwh"`
	MissingMonths     [Months]bool    `json:"missing_months"`
}

// MissingCount returns how many months were zeroed for lack of irradiance.
func (e EnergyResult) MissingCount() int {
	n := 0
	for _, m := range e.MissingMonths {
		if m {
			n++
		}
	}
	return n
}

// BillComparison is the annual bill with and without the system.
type BillComparison struct {
	WithoutSolar float64 `json:"without_solar"`
	WithSolar    float64 `json:"with_solar"`
	Savings      float64 `json:"savings"`
}

// FinancialResult holds savings and payback. When BillSupplied is false the
// actual savings equal the potential and Comparison is zero.
type FinancialResult struct {
	ElectricityRate float64 `json:"electricity_rate"`
	YearlyBill      float64 `json:"yearly_bill"`
	BillSupplied    bool    `json:"bill_supplied"`

	MonthlySavingsPotential [Months]float64 `json:"monthly_savings_potential"`
	MonthlyActualSavings    [Months]float64 `json:"monthly_actual_savings"`

	AnnualSavingsPotential      float64 `json:"annual_savings_potential"`
	ActualAnnualSavings         float64 `json:"actual_annual_savings"`
	PaybackPeriodYears          float64 `json:"payback_period_years"`
	PaybackPeriodPotentialYears float64 `json:"payback_period_potential_years"`

	Comparison BillComparison `json:"comparison"`
}

// EnvironmentalResult is the avoided CO2 and its tree-year equivalent.
type EnvironmentalResult struct {
	CO2AvoidedKg     float64 `json:"co2_avoided_kg"`
	CO2AvoidedTonnes float64 `json:"co2_avoided_tonnes"`
	TreeEquivalent   int64   `json:"tree_equivalent"`
}

// AnalysisReport is the single output value handed to presentation.
// It is rebuilt on every input change and never updated field by field.
type AnalysisReport struct {
	Polygon       RooftopPolygon      `json:"polygon"`
	Location      Location            `json:"location"`
	LocationLabel string              `json:"location_label,omitempty"`
	Sizing        SizingResult        `json:"sizing"`
	Energy        EnergyResult        `json:"energy"`
	Financial     FinancialResult     `json:"financial"`
	Environmental EnvironmentalResult `json:"environmental"`
	Notices       []Notice            `json:"notices,omitempty"`
}

// Clone returns a deep copy so callers can never reach a published report's slices.
func (r AnalysisReport) Clone() AnalysisReport {
	out := r
	out.Polygon = r.Polygon.Clone()
	if r.Notices != nil {
		out.Notices = append([]Notice(nil), r.Notices...)
	}
	return out
}
