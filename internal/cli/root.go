// Package cli implements the solar command-line tool.
package cli

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"rooftop-solar/internal/config"
	"rooftop-solar/internal/data"
)

// app is the state shared by subcommands once flags are parsed.
type app struct {
	configPath string
	logLevel   string
	cfg        *config.Config
}

// NewRootCmd creates the root command. Configuration is read from --config,
// falling back to $SOLAR_CONFIG and then built-in defaults.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "solar",
		Short:         "Estimate rooftop solar potential",
		Long:          "solar sizes a rooftop PV system and estimates its output, savings, payback and CO2 impact.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example:       rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "path to YAML config (default $SOLAR_CONFIG)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	cmd.AddCommand(newEstimateCmd(a), newLocationsCmd(a), newIrradianceCmd(a))

	return cmd
}

const rootCmdExample = `  # Estimate a 120 m² roof with a yearly bill of 60,000
  solar estimate --area 120 --bill 60000

  # Use the location's NASA POWER climatology and export the monthly table
  solar estimate --geojson roof.geojson --lat 18.52 --lon 73.85 --location-irradiance --csv monthly.csv

  # Search for a place
  solar locations "Koregaon Park"

  # Show monthly irradiance for a point
  solar irradiance --lat 18.52 --lon 73.85`

func (a *app) setup(cmd *cobra.Command) error {
	path := a.configPath
	if path == "" {
		path = os.Getenv("SOLAR_CONFIG")
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	a.cfg = cfg

	config.InitLoggerTo(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Pretty)
	log.Debug().Str("config", path).Msg("configuration loaded")
	return nil
}

func (a *app) nasaPower() *data.NASAPowerClient {
	n := a.cfg.Services.NASAPower
	return data.NewNASAPowerClient(n.BaseURL, n.Timeout, n.CacheTTL)
}

func (a *app) locationIQ() *data.LocationIQClient {
	l := a.cfg.Services.LocationIQ
	c := data.NewLocationIQClient(l.APIKey, l.BaseURL, l.Timeout, l.CacheTTL)
	c.MinQueryLength = l.MinQueryLength
	c.Limit = l.Limit
	return c
}
