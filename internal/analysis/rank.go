// Package analysis compares estimates of several what-if scenarios.
package analysis

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"rooftop-solar/internal/model"
	"rooftop-solar/internal/solar"
)

// Scenario is one named variation to estimate.
type Scenario struct {
	Name        string
	Assumptions model.Assumptions
	Inputs      solar.Inputs
}

// RankedScenario is a scenario's report and its place in the ranking.
type RankedScenario struct {
	Rank   int
	Name   string
	Report model.AnalysisReport
}

// Payback is the payback used for ranking: actual when a bill was supplied,
// otherwise the potential. Zero means the system never pays back.
func Payback(r model.AnalysisReport) float64 {
	if r.Financial.BillSupplied {
		return r.Financial.PaybackPeriodYears
	}
	return r.Financial.PaybackPeriodPotentialYears
}

// Evaluate estimates every scenario concurrently. It fails if any scenario's
// assumptions are invalid; everything else is absorbed into report notices.
func Evaluate(ctx context.Context, scenarios []Scenario) ([]model.AnalysisReport, error) {
	reports := make([]model.AnalysisReport, len(scenarios))
	g, ctx := errgroup.WithContext(ctx)
	for i, s := range scenarios {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			est, err := solar.NewEstimator(s.Assumptions)
			if err != nil {
				return fmt.Errorf("scenario %q: %w", s.Name, err)
			}
			reports[i] = est.Analyze(s.Inputs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// RankByPayback orders reports by shortest payback. Scenarios that never pay
// back go last; ties keep the larger actual savings first, then name order.
func RankByPayback(names []string, reports []model.AnalysisReport) []RankedScenario {
	out := make([]RankedScenario, len(reports))
	for i, r := range reports {
		out[i] = RankedScenario{Name: names[i], Report: r}
	}
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := Payback(out[i].Report), Payback(out[j].Report)
		if (pi > 0) != (pj > 0) {
			return pi > 0
		}
		if pi != pj {
			return pi < pj
		}
		si, sj := out[i].Report.Financial.ActualAnnualSavings, out[j].Report.Financial.ActualAnnualSavings
		if si != sj {
			return si > sj
		}
		return out[i].Name < out[j].Name
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
