package export

import (
	"strconv"

	"rooftop-solar/internal/model"
)

// Figures are the headline numbers of a report rounded for display:
// size 2 dp; output, cost and savings 0 dp; payback 1 dp; CO2 kg 0 dp, tonnes 2 dp.
type Figures struct {
	AreaM2                 string `json:"area_m2"`
	SystemSizeKW           string `json:"system_size_kw"`
	SystemCost             string `json:"system_cost"`
	AnnualOutputKWh        string `json:"annual_output_kwh"`
	AnnualSavingsPotential string `json:"annual_savings_potential"`
	ActualAnnualSavings    string `json:"actual_annual_savings"`
	PaybackPeriod          string `json:"payback_period_years"`
	PaybackPeriodPotential string `json:"payback_period_potential_years"`
	CO2AvoidedKg           string `json:"co2_avoided_kg"`
	CO2AvoidedTonnes       string `json:"co2_avoided_tonnes"`
	TreeEquivalent         string `json:"tree_equivalent"`

	// Set only when a bill was supplied.
	BillWithoutSolar string `json:"bill_without_solar,omitempty"`
	BillWithSolar    string `json:"bill_with_solar,omitempty"`
}

// DisplayFigures rounds a report's headline numbers.
func DisplayFigures(r model.AnalysisReport) Figures {
	f := Figures{
		AreaM2:                 FormatFixed(r.Sizing.AreaM2, 2),
		SystemSizeKW:           FormatFixed(r.Sizing.SystemSizeKW, 2),
		SystemCost:             FormatFixed(r.Sizing.SystemCost, 0),
		AnnualOutputKWh:        FormatFixed(r.Energy.AnnualOutputKWh, 0),
		AnnualSavingsPotential: FormatFixed(r.Financial.AnnualSavingsPotential, 0),
		ActualAnnualSavings:    FormatFixed(r.Financial.ActualAnnualSavings, 0),
		PaybackPeriod:          FormatFixed(r.Financial.PaybackPeriodYears, 1),
		PaybackPeriodPotential: FormatFixed(r.Financial.PaybackPeriodPotentialYears, 1),
		CO2AvoidedKg:           FormatFixed(r.Environmental.CO2AvoidedKg, 0),
		CO2AvoidedTonnes:       FormatFixed(r.Environmental.CO2AvoidedTonnes, 2),
		TreeEquivalent:         printer.Sprintf("%d", r.Environmental.TreeEquivalent),
	}
	if r.Financial.BillSupplied {
		f.BillWithoutSolar = FormatFixed(r.Financial.Comparison.WithoutSolar, 0)
		f.BillWithSolar = FormatFixed(r.Financial.Comparison.WithSolar, 0)
	}
	return f
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
