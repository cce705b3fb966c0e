// Package api wires the HTTP surface of the estimator.
package api

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"rooftop-solar/internal/api/handlers"
	"rooftop-solar/internal/api/middleware"
	"rooftop-solar/internal/api/models"
	"rooftop-solar/internal/config"
	"rooftop-solar/internal/data"
	"rooftop-solar/internal/solar"
)

// Dependencies are the external collaborators. Either may be nil, in which
// case the endpoints that need it answer 503 and estimates use flat irradiance.
type Dependencies struct {
	Irradiance handlers.IrradianceSource
	Suggester  data.Suggester
}

// Server is the configured router plus the stores it must release.
type Server struct {
	Router *gin.Engine

	reports  *data.Cache[models.ReportResponse]
	sessions *handlers.SessionHandler
}

// NewServer builds the router for cfg. cfg must have been loaded with defaults.
func NewServer(cfg *config.Config, deps Dependencies) (*Server, error) {
	assumptions, err := cfg.Assumptions.ToModel()
	if err != nil {
		return nil, err
	}
	est, err := solar.NewEstimator(assumptions)
	if err != nil {
		return nil, err
	}

	ttl := cfg.Server.ReportTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	reports := data.NewCache[models.ReportResponse](ttl)
	reports.StartCleanup(time.Minute)

	estimateHandler, err := handlers.NewEstimateHandler(cfg.Assumptions, deps.Irradiance, reports)
	if err != nil {
		return nil, err
	}
	locationHandler := handlers.NewLocationHandler(deps.Suggester, deps.Irradiance, assumptions)
	sessionHandler := handlers.NewSessionHandler(est, deps.Irradiance, deps.Suggester, cfg.Services.LocationIQ.Debounce, ttl)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/assumptions", estimateHandler.GetAssumptions)
		api.POST("/estimate", estimateHandler.Estimate)
		api.POST("/estimate/compare", estimateHandler.CompareEstimates)
		api.GET("/reports/:id", estimateHandler.GetReport)
		api.GET("/reports/:id/monthly.csv", estimateHandler.GetMonthlyCSV)
		api.GET("/reports/:id/summary", estimateHandler.GetSummary)

		api.GET("/locations", locationHandler.SearchLocations)
		api.GET("/irradiance", locationHandler.GetIrradiance)

		api.POST("/sessions", sessionHandler.CreateSession)
		api.GET("/sessions/:id/report", sessionHandler.GetSession)
		api.DELETE("/sessions/:id", sessionHandler.DeleteSession)
		api.PUT("/sessions/:id/polygon", sessionHandler.SetPolygon)
		api.DELETE("/sessions/:id/polygon", sessionHandler.ClearPolygon)
		api.PUT("/sessions/:id/bill", sessionHandler.SetBill)
		api.PUT("/sessions/:id/location", sessionHandler.SetLocation)
		api.GET("/sessions/:id/locations", sessionHandler.SearchLocations)
	}

	serveStatic(router, cfg.Server.StaticDir)

	return &Server{Router: router, reports: reports, sessions: sessionHandler}, nil
}

// Close stops background cleanup of the report and session stores.
func (s *Server) Close() {
	s.reports.Close()
	s.sessions.Close()
}

// serveStatic serves the built front-end from staticDir (if it exists).
func serveStatic(router *gin.Engine, staticDir string) {
	if staticDir == "" {
		return
	}
	if _, err := os.Stat(staticDir); err != nil {
		log.Info().Str("static_dir", staticDir).Msg("static directory not found, skipping static file serving")
		router.NoRoute(func(c *gin.Context) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: models.ErrorDetail{Code: "NOT_FOUND", Message: "Not found"}})
		})
		return
	}

	router.Static("/assets", staticDir+"/assets")
	router.StaticFile("/favicon.ico", staticDir+"/favicon.ico")

	// Serve index.html for all non-API routes (SPA routing)
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: models.ErrorDetail{Code: "NOT_FOUND", Message: "Not found"}})
			return
		}
		c.File(staticDir + "/index.html")
	})
	log.Info().Str("static_dir", staticDir).Msg("serving static files")
}
