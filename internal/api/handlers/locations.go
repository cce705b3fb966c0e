package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"rooftop-solar/internal/api/models"
	"rooftop-solar/internal/data"
	"rooftop-solar/internal/model"
)

// LocationHandler proxies place search and climatology lookups.
type LocationHandler struct {
	suggester   data.Suggester
	irradiance  IrradianceSource
	assumptions model.Assumptions
}

func NewLocationHandler(suggester data.Suggester, irradiance IrradianceSource, assumptions model.Assumptions) *LocationHandler {
	return &LocationHandler{
		suggester:   suggester,
		irradiance:  irradiance,
		assumptions: assumptions,
	}
}

// SearchLocations handles GET /api/v1/locations?q=
func (h *LocationHandler) SearchLocations(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if h.suggester == nil {
		respondError(c, http.StatusServiceUnavailable, "SEARCH_UNAVAILABLE", "location search is not configured")
		return
	}
	suggestions, err := h.suggester.Autocomplete(c.Request.Context(), q)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	if suggestions == nil {
		suggestions = []model.Location{}
	}
	c.JSON(http.StatusOK, models.LocationsResponse{Query: q, Suggestions: suggestions})
}

// GetIrradiance handles GET /api/v1/irradiance?lat=&lon=[&area_m2=]
func (h *LocationHandler) GetIrradiance(c *gin.Context) {
	var q models.IrradianceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if h.irradiance == nil {
		respondError(c, http.StatusServiceUnavailable, "IRRADIANCE_UNAVAILABLE", "irradiance lookup is not configured")
		return
	}
	series, err := h.irradiance.MonthlyIrradiance(c.Request.Context(), *q.Lat, *q.Lon)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	resp := models.IrradianceResponse{Lat: *q.Lat, Lon: *q.Lon, Monthly: series}
	for m := time.January; m <= time.December; m++ {
		if _, ok := series.At(m); !ok {
			resp.MissingMonths = append(resp.MissingMonths, int(m))
		}
	}
	if q.AreaM2 > 0 {
		energy := data.DisplayEnergy(series, q.AreaM2, h.assumptions)
		resp.EnergyKWh = &energy
	}
	c.JSON(http.StatusOK, resp)
}
