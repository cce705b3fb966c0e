package export

import (
	"bytes"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rooftop-solar/internal/model"
	"rooftop-solar/internal/solar"
)

func analyze(t *testing.T, in solar.Inputs) model.AnalysisReport {
	t.Helper()
	est, err := solar.NewEstimator(model.DefaultAssumptions())
	require.NoError(t, err)
	return est.Analyze(in)
}

func TestFormatFixed(t *testing.T) {
	tests := []struct {
		v      float64
		places int32
		want   string
	}{
		{13687.5, 0, "13,688"},
		{500000, 0, "500,000"},
		{4.5662, 1, "4.6"},
		{10, 2, "10.00"},
		{1234567.891, 2, "1,234,567.89"},
		{0, 1, "0.0"},
		{-1500.25, 1, "-1,500.3"},
		{-0.5, 1, "-0.5"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFixed(tt.v, tt.places))
		})
	}
}

func TestFormatFixedOutOfRange(t *testing.T) {
	assert.Equal(t, "n/a", FormatFixed(math.Inf(1), 0))
	assert.Equal(t, "n/a", FormatFixed(math.Inf(-1), 2))
	assert.Equal(t, "n/a", FormatFixed(math.NaN(), 1))
	assert.True(t, Round(math.Inf(1), 2).IsZero())

	// Integer parts beyond int64 still group correctly.
	assert.Equal(t, "12,000,000,000,000,000,000", FormatFixed(1.2e19, 0))
	assert.Equal(t, "-50,000,000,000,000,000,000.00", FormatFixed(-5e19, 2))
}

func TestDisplayFiguresHugeArea(t *testing.T) {
	r := analyze(t, solar.Inputs{Polygon: model.RooftopPolygon{AreaM2: 1e305}, YearlyBill: 12000})
	assert.NotPanics(t, func() { DisplayFigures(r) })
	f := DisplayFigures(r)
	assert.Equal(t, "0", f.SystemCost)
	assert.Equal(t, "0.0", f.PaybackPeriod)
}

func TestDisplayFiguresFlatNoBill(t *testing.T) {
	r := analyze(t, solar.Inputs{Polygon: model.RooftopPolygon{AreaM2: 100}})
	f := DisplayFigures(r)

	assert.Equal(t, "10.00", f.SystemSizeKW)
	assert.Equal(t, "500,000", f.SystemCost)
	assert.Equal(t, "13,688", f.AnnualOutputKWh)
	assert.Equal(t, "109,500", f.AnnualSavingsPotential)
	assert.Equal(t, "4.6", f.PaybackPeriodPotential)
	assert.Equal(t, "11,224", f.CO2AvoidedKg)
	assert.Equal(t, "11.22", f.CO2AvoidedTonnes)
	assert.Equal(t, "561", f.TreeEquivalent)
	assert.Empty(t, f.BillWithSolar)
}

func TestDisplayFiguresWithBill(t *testing.T) {
	r := analyze(t, solar.Inputs{Polygon: model.RooftopPolygon{AreaM2: 100}, YearlyBill: 60000})
	f := DisplayFigures(r)

	assert.Equal(t, "60,000", f.ActualAnnualSavings)
	assert.Equal(t, "60,000", f.BillWithoutSolar)
	assert.Equal(t, "0", f.BillWithSolar)
	assert.Equal(t, "8.3", f.PaybackPeriod)
}

func TestWriteMonthlyCSV(t *testing.T) {
	series := model.NewSeriesIrradiance(map[int]float64{1: 5, 2: 5, 3: 5, 4: 5, 5: 5, 6: 5, 7: 5, 8: 5, 9: 5, 10: 5, 11: 5})
	r := analyze(t, solar.Inputs{Polygon: model.RooftopPolygon{AreaM2: 50}, Irradiance: series})

	var buf bytes.Buffer
	require.NoError(t, WriteMonthlyCSV(&buf, r))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 13)
	assert.Equal(t, "month", rows[0][0])
	assert.Equal(t, []string{"1", "Jan", "5.000000", "false"}, rows[1][:4])
	assert.Equal(t, []string{"12", "Dec", "0.000000", "true", "0.000000"}, rows[12][:5])
}

func TestWriteMonthlyCSVFile(t *testing.T) {
	r := analyze(t, solar.Inputs{Polygon: model.RooftopPolygon{AreaM2: 100}})
	p := filepath.Join(t.TempDir(), "monthly.csv")
	require.NoError(t, WriteMonthlyCSVFile(p, r))

	raw, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, 13, strings.Count(string(raw), "\n"))

	assert.Error(t, WriteMonthlyCSVFile(filepath.Join(t.TempDir(), "missing", "x.csv"), r))
}

func TestWriteSummary(t *testing.T) {
	r := analyze(t, solar.Inputs{
		Polygon:    model.RooftopPolygon{AreaM2: 100},
		YearlyBill: 60000,
		Location:   model.Location{Lat: 19.07, Lon: 72.87, DisplayName: "Mumbai"},
		Notices:    []model.Notice{{Kind: model.NoticeUpstreamUnavailable, Message: "nasa_power: request failed"}},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, r))
	out := buf.String()

	assert.Contains(t, out, "Location:            Mumbai")
	assert.Contains(t, out, "System size:         10.00 kW")
	assert.Contains(t, out, "flat 5.00 kWh/m²/day")
	assert.Contains(t, out, "Bill with solar:     0")
	assert.Contains(t, out, "UPSTREAM_UNAVAILABLE: nasa_power: request failed")
}

func TestWriteSummaryWithoutBillShowsPotentialPayback(t *testing.T) {
	r := analyze(t, solar.Inputs{Polygon: model.RooftopPolygon{AreaM2: 100}})

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, r))
	assert.Contains(t, buf.String(), "Payback period:      4.6 years")
	assert.NotContains(t, buf.String(), "Bill with solar")
}
