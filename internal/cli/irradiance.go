package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"rooftop-solar/internal/data"
	"rooftop-solar/internal/export"
)

func newIrradianceCmd(a *app) *cobra.Command {
	var (
		lat, lon, area float64
		asJSON         bool
	)

	cmd := &cobra.Command{
		Use:   "irradiance",
		Short: "Show NASA POWER monthly irradiance for a point",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			series, err := a.nasaPower().MonthlyIrradiance(cmd.Context(), lat, lon)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return json.NewEncoder(out).Encode(series)
			}

			assumptions, err := a.cfg.Assumptions.ToModel()
			if err != nil {
				return err
			}
			energy := data.DisplayEnergy(series, area, assumptions)

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "MONTH\tKWH/M²/DAY\tENERGY KWH")
			for m := time.January; m <= time.December; m++ {
				v, ok := series.At(m)
				if !ok {
					fmt.Fprintf(tw, "%s\t-\t-\n", m.String()[:3])
					continue
				}
				e := "-"
				if area > 0 {
					e = export.FormatFixed(energy[m-1], 0)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", m.String()[:3], export.FormatFixed(v, 2), e)
			}
			return tw.Flush()
		},
	}

	f := cmd.Flags()
	f.Float64Var(&lat, "lat", 0, "latitude")
	f.Float64Var(&lon, "lon", 0, "longitude")
	f.Float64Var(&area, "area", 0, "rooftop area in m² for the energy column")
	f.BoolVar(&asJSON, "json", false, "print the monthly values as JSON")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")
	return cmd
}
