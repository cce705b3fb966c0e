package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newLocationsCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "locations QUERY",
		Short: "Search places with LocationIQ autocomplete",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			places, err := a.locationIQ().Autocomplete(cmd.Context(), query)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return json.NewEncoder(out).Encode(places)
			}
			if len(places) == 0 {
				fmt.Fprintln(out, "no matches")
				return nil
			}
			for _, p := range places {
				fmt.Fprintf(out, "%.6f\t%.6f\t%s\n", p.Lat, p.Lon, p.DisplayName)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print suggestions as JSON")
	return cmd
}
