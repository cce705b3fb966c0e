package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rooftop-solar/internal/data"
	"rooftop-solar/internal/export"
	"rooftop-solar/internal/geo"
	"rooftop-solar/internal/model"
	"rooftop-solar/internal/solar"
)

type estimateParams struct {
	area               float64
	geojsonPath        string
	bill               float64
	lat, lon           float64
	label              string
	locationIrradiance bool
	irradianceFile     string
	csvPath            string
	asJSON             bool
}

type estimateOutput struct {
	Report  model.AnalysisReport `json:"report"`
	Figures export.Figures       `json:"figures"`
}

func newEstimateCmd(a *app) *cobra.Command {
	var p estimateParams

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate output, savings and CO2 impact for one rooftop",
		Long: `Estimate sizes a system for the rooftop and models a year of output.

Irradiance is flat (the configured default) unless --irradiance-file gives a
saved NASA POWER response or --location-irradiance looks up the --lat/--lon
climatology. A failed lookup falls back to flat irradiance with a notice.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runEstimate(cmd, p)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&p.area, "area", 0, "rooftop area in m²")
	f.StringVar(&p.geojsonPath, "geojson", "", "GeoJSON file with the roof outline; its geodesic area is used")
	f.Float64Var(&p.bill, "bill", 0, "yearly electricity bill (0 = none)")
	f.Float64Var(&p.lat, "lat", 0, "latitude of the site")
	f.Float64Var(&p.lon, "lon", 0, "longitude of the site")
	f.StringVar(&p.label, "label", "", "display name of the site")
	f.BoolVar(&p.locationIrradiance, "location-irradiance", false, "use NASA POWER monthly climatology for --lat/--lon")
	f.StringVar(&p.irradianceFile, "irradiance-file", "", "saved NASA POWER climatology JSON")
	f.StringVar(&p.csvPath, "csv", "", "write the monthly table to this CSV file")
	f.BoolVar(&p.asJSON, "json", false, "print the report as JSON instead of text")

	cmd.MarkFlagsOneRequired("area", "geojson")
	cmd.MarkFlagsMutuallyExclusive("area", "geojson")
	cmd.MarkFlagsMutuallyExclusive("location-irradiance", "irradiance-file")
	cmd.MarkFlagsRequiredTogether("lat", "lon")

	return cmd
}

func (a *app) runEstimate(cmd *cobra.Command, p estimateParams) error {
	assumptions, err := a.cfg.Assumptions.ToModel()
	if err != nil {
		return err
	}
	est, err := solar.NewEstimator(assumptions)
	if err != nil {
		return err
	}

	polygon := model.NewRooftopPolygon(nil, p.area)
	if p.geojsonPath != "" {
		raw, err := os.ReadFile(p.geojsonPath)
		if err != nil {
			return err
		}
		polygon, err = geo.ParseRooftop(raw)
		if err != nil {
			return err
		}
	}

	in := solar.Inputs{Polygon: polygon, YearlyBill: p.bill}
	var site *model.Location
	if cmd.Flags().Changed("lat") {
		in.Location = model.Location{Lat: p.lat, Lon: p.lon, DisplayName: p.label}
		site = &in.Location
	}
	if p.locationIrradiance && site == nil {
		return errors.New("--location-irradiance needs --lat and --lon")
	}

	var explicit model.Irradiance
	if p.irradianceFile != "" {
		series, err := data.LoadClimatologyJSON(p.irradianceFile)
		if err != nil {
			return fmt.Errorf("irradiance file: %w", err)
		}
		explicit = series
	}
	var src solar.IrradianceSource
	if p.locationIrradiance {
		src = a.nasaPower()
	}
	in.Irradiance, in.Notices = solar.ResolveIrradiance(cmd.Context(), src, site, explicit, p.locationIrradiance)

	report := est.Analyze(in)
	if p.label != "" {
		report.LocationLabel = p.label
	}

	if p.csvPath != "" {
		if err := export.WriteMonthlyCSVFile(p.csvPath, report); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	if p.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(estimateOutput{Report: report, Figures: export.DisplayFigures(report)})
	}
	return export.WriteSummary(out, report)
}
