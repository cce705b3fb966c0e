package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rooftop-solar/internal/api/models"
	"rooftop-solar/internal/data"
	"rooftop-solar/internal/model"
	"rooftop-solar/internal/solar"
)

// IrradianceSource looks up a location's monthly climatology.
type IrradianceSource = solar.IrradianceSource

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// respondUpstreamError maps a collaborator failure to an HTTP status.
func respondUpstreamError(c *gin.Context, err error) {
	var ue *data.UpstreamError
	if !errors.As(err, &ue) {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	statusCode := http.StatusBadGateway
	switch ue.StatusCode {
	case http.StatusForbidden, http.StatusUnauthorized:
		statusCode = http.StatusUnauthorized
	case http.StatusTooManyRequests:
		statusCode = http.StatusTooManyRequests
	}
	if ue.Code == "MISSING_API_KEY" {
		statusCode = http.StatusServiceUnavailable
	}
	c.JSON(statusCode, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    ue.Code,
			Message: ue.Message,
			Details: map[string]interface{}{
				"service":     ue.Service,
				"status_code": ue.StatusCode,
				"retry_after": ue.RetryAfter,
			},
		},
	})
}

// resolveIrradiance applies a request's irradiance choice.
func resolveIrradiance(ctx context.Context, src IrradianceSource, loc *model.Location, explicit *model.SeriesIrradiance, lookup bool) (model.Irradiance, []model.Notice) {
	var irr model.Irradiance
	if explicit != nil {
		irr = *explicit
	}
	return solar.ResolveIrradiance(ctx, src, loc, irr, lookup)
}
