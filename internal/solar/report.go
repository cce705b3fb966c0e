package solar

import (
	"fmt"
	"math"

	"rooftop-solar/internal/model"
)

// Assemble aggregates the sub-results into one report without recomputing
// anything. It rejects results that were not derived from the same rooftop:
// sizing must match the polygon area and energy must match the system size.
// A zero sizing is accepted for an invalid area or one flagged by an
// InvalidArea notice.
func Assemble(
	polygon model.RooftopPolygon,
	sizing model.SizingResult,
	energy model.EnergyResult,
	financial model.FinancialResult,
	environmental model.EnvironmentalResult,
	locationLabel string,
	notices ...model.Notice,
) (model.AnalysisReport, error) {
	wantArea := polygon.AreaM2
	if sizing == (model.SizingResult{}) && (polygon.Validate() != nil || hasNotice(notices, model.NoticeInvalidArea)) {
		wantArea = 0
	}
	if sizing.AreaM2 != wantArea {
		return model.AnalysisReport{}, fmt.Errorf("%w: sizing area %v m² != polygon area %v m²",
			model.ErrInconsistentResults, sizing.AreaM2, polygon.AreaM2)
	}
	if energy.SystemSizeKW != sizing.SystemSizeKW {
		return model.AnalysisReport{}, fmt.Errorf("%w: energy size %v kW != sizing size %v kW",
			model.ErrInconsistentResults, energy.SystemSizeKW, sizing.SystemSizeKW)
	}
	if want := energy.AnnualOutputKWh * financial.ElectricityRate; financial.AnnualSavingsPotential != want &&
		!(math.IsNaN(want) && math.IsNaN(financial.AnnualSavingsPotential)) {
		return model.AnalysisReport{}, fmt.Errorf("%w: savings potential does not match annual output",
			model.ErrInconsistentResults)
	}

	report := model.AnalysisReport{
		Polygon:       polygon.Clone(),
		LocationLabel: locationLabel,
		Sizing:        sizing,
		Energy:        energy,
		Financial:     financial,
		Environmental: environmental,
	}
	if len(notices) > 0 {
		report.Notices = append([]model.Notice(nil), notices...)
	}
	return report, nil
}

func hasNotice(notices []model.Notice, kind model.NoticeKind) bool {
	for _, n := range notices {
		if n.Kind == kind {
			return true
		}
	}
	return false
}
