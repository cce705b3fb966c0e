package export

import (
	"bufio"
	"fmt"
	"io"

	"rooftop-solar/internal/model"
)

// WriteSummary writes a human-readable report: the headline figures, then the
// bill comparison when a bill was given, then any notices.
func WriteSummary(out io.Writer, r model.AnalysisReport) error {
	w := bufio.NewWriter(out)
	f := DisplayFigures(r)

	fmt.Fprintln(w, "Rooftop Solar Report")
	if label := reportLabel(r); label != "" {
		fmt.Fprintf(w, "Location:            %s\n", label)
	}
	fmt.Fprintf(w, "Rooftop area:        %s m²\n", f.AreaM2)
	fmt.Fprintf(w, "System size:         %s kW\n", f.SystemSizeKW)
	fmt.Fprintf(w, "Irradiance:          %s\n", irradianceLabel(r.Energy))
	fmt.Fprintf(w, "Annual output:       %s kWh\n", f.AnnualOutputKWh)
	fmt.Fprintf(w, "System cost:         %s\n", f.SystemCost)
	fmt.Fprintf(w, "Savings potential:   %s / year\n", f.AnnualSavingsPotential)

	if r.Financial.BillSupplied {
		fmt.Fprintf(w, "Actual savings:      %s / year\n", f.ActualAnnualSavings)
		fmt.Fprintf(w, "Payback period:      %s years\n", f.PaybackPeriod)
		fmt.Fprintf(w, "Bill without solar:  %s\n", f.BillWithoutSolar)
		fmt.Fprintf(w, "Bill with solar:     %s\n", f.BillWithSolar)
	} else {
		fmt.Fprintf(w, "Payback period:      %s years\n", f.PaybackPeriodPotential)
	}

	fmt.Fprintf(w, "CO2 avoided:         %s kg (%s t)\n", f.CO2AvoidedKg, f.CO2AvoidedTonnes)
	fmt.Fprintf(w, "Tree equivalent:     %s trees\n", f.TreeEquivalent)

	if len(r.Notices) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Notices:")
		for _, n := range r.Notices {
			if n.Month > 0 {
				fmt.Fprintf(w, "  - %s (%s): %s\n", n.Kind, monthName(n.Month), n.Message)
				continue
			}
			fmt.Fprintf(w, "  - %s: %s\n", n.Kind, n.Message)
		}
	}
	return w.Flush()
}

func reportLabel(r model.AnalysisReport) string {
	if r.LocationLabel != "" {
		return r.LocationLabel
	}
	return r.Location.DisplayName
}

func irradianceLabel(e model.EnergyResult) string {
	if e.Mode == model.ModeSeries {
		if n := e.MissingCount(); n > 0 {
			return fmt.Sprintf("location data (%d months missing)", n)
		}
		return "location data"
	}
	return fmt.Sprintf("flat %s kWh/m²/day", FormatFixed(e.MonthlyIrradiance[0], 2))
}

func monthName(m int) string {
	if m < 1 || m > model.Months {
		return "?"
	}
	return [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}[m-1]
}
