package solar

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"rooftop-solar/internal/model"
)

// Inputs is everything one recomputation depends on.
type Inputs struct {
	Polygon model.RooftopPolygon
	// YearlyBill <= 0 means no bill was entered.
	YearlyBill float64
	Location   model.Location
	// Irradiance nil selects flat mode with the assumed default irradiance.
	Irradiance model.Irradiance
	// Notices carries fallbacks applied upstream, e.g. a failed irradiance lookup.
	Notices []model.Notice
}

// Estimator runs the full pipeline with a fixed set of assumptions.
// It holds no state between calls and is safe for concurrent use.
type Estimator struct {
	assumptions model.Assumptions
}

func NewEstimator(a model.Assumptions) (*Estimator, error) {
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("assumptions invalid: %w", err)
	}
	return &Estimator{assumptions: a}, nil
}

// Assumptions returns the constants this estimator uses.
func (e *Estimator) Assumptions() model.Assumptions {
	return e.assumptions
}

// Analyze runs sizing, energy, financial and environmental models and
// assembles a fresh report. It never fails: every error is absorbed into a
// fallback value plus a notice. Identical inputs give identical reports.
func (e *Estimator) Analyze(in Inputs) model.AnalysisReport {
	a := e.assumptions
	notices := append([]model.Notice(nil), in.Notices...)

	sizing, err := ComputeSizing(in.Polygon.AreaM2, a)
	if err != nil {
		notices = append(notices, model.NoticeFromError(err))
	}

	irr := in.Irradiance
	if irr == nil {
		irr = model.FlatIrradiance(a.FlatIrradiance)
	}
	energy, energyErr := ComputeMonthlyEnergy(sizing, irr, EnergyParamsFrom(a))
	financial, financialErr := ComputeFinancials(energy, sizing.SystemCost, a.ElectricityRate, in.YearlyBill)
	environmental := ComputeEnvironmental(energy.AnnualOutputKWh, a)

	if sizing != (model.SizingResult{}) && overflows(energy, financial, environmental) {
		notices = append(notices, model.NoticeFromError(
			fmt.Errorf("%w: %v m² overflows the estimate", model.ErrInvalidArea, in.Polygon.AreaM2)))
		sizing = model.SizingResult{}
		energy, energyErr = ComputeMonthlyEnergy(sizing, irr, EnergyParamsFrom(a))
		financial, financialErr = ComputeFinancials(energy, sizing.SystemCost, a.ElectricityRate, in.YearlyBill)
		environmental = ComputeEnvironmental(energy.AnnualOutputKWh, a)
	}
	if energyErr != nil {
		notices = append(notices, monthNotices(energyErr)...)
	}
	if financialErr != nil {
		notices = append(notices, model.NoticeFromError(financialErr))
	}

	report, err := Assemble(in.Polygon, sizing, energy, financial, environmental, in.Location.DisplayName, notices...)
	if err != nil {
		// Unreachable with results computed above; keep the report usable regardless.
		log.Error().Err(err).Msg("assembling analysis report")
		report = model.AnalysisReport{Polygon: in.Polygon.Clone(), Notices: notices}
	}
	report.Location = in.Location

	log.Debug().
		Float64("area_m2", in.Polygon.AreaM2).
		Str("mode", string(energy.Mode)).
		Float64("annual_kwh", energy.AnnualOutputKWh).
		Float64("actual_savings", financial.ActualAnnualSavings).
		Int("notices", len(report.Notices)).
		Msg("analysis computed")
	return report
}

// overflows reports whether a figure derived from the sizing left the float64
// range, or the tree count no longer fits in an int64.
func overflows(e model.EnergyResult, f model.FinancialResult, env model.EnvironmentalResult) bool {
	for _, v := range []float64{
		e.AnnualOutputKWh,
		f.AnnualSavingsPotential,
		f.ActualAnnualSavings,
		f.Comparison.WithSolar,
		env.CO2AvoidedKg,
	} {
		if !finite(v) {
			return true
		}
	}
	for i := range e.MonthlyOutputKWh {
		if !finite(e.MonthlyOutputKWh[i]) || !finite(f.MonthlySavingsPotential[i]) {
			return true
		}
	}
	return env.TreeEquivalent == math.MaxInt64
}

// monthNotices expands a joined energy error into one notice per month.
func monthNotices(err error) []model.Notice {
	var out []model.Notice
	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}
	for _, e := range errs {
		n := model.NoticeFromError(e)
		var me *MonthError
		if errors.As(e, &me) {
			n.Month = int(me.Month)
		}
		out = append(out, n)
	}
	return out
}
