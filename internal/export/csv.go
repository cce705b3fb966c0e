package export

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"time"

	"rooftop-solar/internal/model"
)

// WriteMonthlyCSV writes one row per calendar month of a report.
func WriteMonthlyCSV(out io.Writer, r model.AnalysisReport) error {
	w := csv.NewWriter(out)

	header := []string{
		"month",
		"month_name",
		"irradiance_kwh_m2_day",
		"irradiance_missing",
		"output_kwh",
		"savings_potential",
		"actual_savings",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := 0; i < model.Months; i++ {
		row := []string{
			strconv.Itoa(i + 1),
			time.Month(i + 1).String()[:3],
			fmtFloat(r.Energy.MonthlyIrradiance[i]),
			strconv.FormatBool(r.Energy.MissingMonths[i]),
			fmtFloat(r.Energy.MonthlyOutputKWh[i]),
			fmtFloat(r.Financial.MonthlySavingsPotential[i]),
			fmtFloat(r.Financial.MonthlyActualSavings[i]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// WriteMonthlyCSVFile writes the monthly table to path.
func WriteMonthlyCSVFile(path string, r model.AnalysisReport) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteMonthlyCSV(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
