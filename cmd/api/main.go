package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"rooftop-solar/internal/api"
	"rooftop-solar/internal/config"
	"rooftop-solar/internal/data"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	config.InitLogger(cfg.Logging.Level, cfg.Logging.Pretty)

	// Set up Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	nasa := cfg.Services.NASAPower
	liq := cfg.Services.LocationIQ
	locationIQ := data.NewLocationIQClient(liq.APIKey, liq.BaseURL, liq.Timeout, liq.CacheTTL)
	locationIQ.MinQueryLength = liq.MinQueryLength
	locationIQ.Limit = liq.Limit
	if liq.APIKey == "" {
		log.Warn().Msg("LOCATIONIQ_API_KEY not set; location search will answer 503")
	}

	srv, err := api.NewServer(cfg, api.Dependencies{
		Irradiance: data.NewNASAPowerClient(nasa.BaseURL, nasa.Timeout, nasa.CacheTTL),
		Suggester:  locationIQ,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build server")
	}
	defer srv.Close()

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           srv.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", httpServer.Addr).Str("env", cfg.Server.Env).Msg("starting API server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// loadConfig reads $SOLAR_CONFIG if set, then applies environment overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if path := os.Getenv("SOLAR_CONFIG"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	return cfg, cfg.Validate()
}
