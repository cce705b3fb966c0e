package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"rooftop-solar/internal/analysis"
	"rooftop-solar/internal/api/models"
	"rooftop-solar/internal/config"
	"rooftop-solar/internal/data"
	"rooftop-solar/internal/export"
	"rooftop-solar/internal/solar"
)

// EstimateHandler runs one-shot estimates and serves the stored reports.
type EstimateHandler struct {
	assumptions config.AssumptionsConfig
	est         *solar.Estimator
	irradiance  IrradianceSource
	reports     *data.Cache[models.ReportResponse]
	now         func() time.Time
}

// NewEstimateHandler creates a handler. Reports live in the given cache only.
func NewEstimateHandler(assumptions config.AssumptionsConfig, irradiance IrradianceSource, reports *data.Cache[models.ReportResponse]) (*EstimateHandler, error) {
	a, err := assumptions.ToModel()
	if err != nil {
		return nil, err
	}
	est, err := solar.NewEstimator(a)
	if err != nil {
		return nil, err
	}
	return &EstimateHandler{
		assumptions: assumptions,
		est:         est,
		irradiance:  irradiance,
		reports:     reports,
		now:         time.Now,
	}, nil
}

// GetAssumptions handles GET /api/v1/assumptions
func (h *EstimateHandler) GetAssumptions(c *gin.Context) {
	c.JSON(http.StatusOK, models.NewAssumptionsInfo(h.assumptions))
}

// Estimate handles POST /api/v1/estimate
func (h *EstimateHandler) Estimate(c *gin.Context) {
	var req models.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	est := h.est
	if req.Assumptions != nil {
		var err error
		est, err = h.estimatorWith(*req.Assumptions)
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_ASSUMPTIONS", err.Error())
			return
		}
	}

	in := solar.Inputs{
		Polygon:    req.Polygon.ToModel(),
		YearlyBill: req.YearlyBill,
	}
	if req.Location != nil {
		in.Location = *req.Location
	}
	in.Irradiance, in.Notices = resolveIrradiance(c.Request.Context(), h.irradiance, req.Location, req.Irradiance, req.UseLocationIrradiance)

	report := est.Analyze(in)
	resp := models.ReportResponse{
		ID:        uuid.NewString(),
		CreatedAt: h.now().UTC(),
		Report:    report,
		Figures:   export.DisplayFigures(report),
	}
	h.reports.Set(resp.ID, resp)

	log.Debug().
		Str("report_id", resp.ID).
		Float64("area_m2", report.Sizing.AreaM2).
		Str("mode", string(report.Energy.Mode)).
		Int("notices", len(report.Notices)).
		Msg("estimate stored")

	c.JSON(http.StatusOK, resp)
}

// baseName labels the unmodified request in a comparison.
const baseName = "base"

// CompareEstimates handles POST /api/v1/estimate/compare
func (h *EstimateHandler) CompareEstimates(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	baseAssumptions := h.assumptions
	if req.Base.Assumptions != nil {
		baseAssumptions = config.MergeAssumptions(baseAssumptions, req.Base.Assumptions.ToConfig())
	}

	base := solar.Inputs{
		Polygon:    req.Base.Polygon.ToModel(),
		YearlyBill: req.Base.YearlyBill,
	}
	if req.Base.Location != nil {
		base.Location = *req.Base.Location
	}
	base.Irradiance, base.Notices = resolveIrradiance(c.Request.Context(), h.irradiance, req.Base.Location, req.Base.Irradiance, req.Base.UseLocationIrradiance)

	names := []string{baseName}
	sets := []config.AssumptionsConfig{baseAssumptions}
	inputs := []solar.Inputs{base}
	for _, v := range req.Variations {
		if v.Name == baseName {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", `variation name "base" is reserved`)
			return
		}
		in := base
		if v.Polygon != nil {
			in.Polygon = v.Polygon.ToModel()
		}
		if v.YearlyBill != nil {
			in.YearlyBill = *v.YearlyBill
		}
		a := baseAssumptions
		if v.Assumptions != nil {
			a = config.MergeAssumptions(a, v.Assumptions.ToConfig())
		}
		names = append(names, v.Name)
		sets = append(sets, a)
		inputs = append(inputs, in)
	}

	scenarios := make([]analysis.Scenario, len(names))
	for i := range names {
		a, err := sets[i].ToModel()
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_ASSUMPTIONS", fmt.Sprintf("scenario %q: %v", names[i], err))
			return
		}
		scenarios[i] = analysis.Scenario{Name: names[i], Assumptions: a, Inputs: inputs[i]}
	}

	reports, err := analysis.Evaluate(c.Request.Context(), scenarios)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ASSUMPTIONS", err.Error())
		return
	}

	ranked := analysis.RankByPayback(names, reports)
	resp := models.CompareResponse{Comparison: make([]models.ComparisonResult, len(ranked))}
	for i, r := range ranked {
		resp.Comparison[i] = models.ComparisonResult{
			Rank:    r.Rank,
			Name:    r.Name,
			Figures: export.DisplayFigures(r.Report),
			Report:  r.Report,
		}
	}
	c.JSON(http.StatusOK, resp)
}

// GetReport handles GET /api/v1/reports/:id
func (h *EstimateHandler) GetReport(c *gin.Context) {
	resp, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetMonthlyCSV handles GET /api/v1/reports/:id/monthly.csv
func (h *EstimateHandler) GetMonthlyCSV(c *gin.Context) {
	resp, ok := h.lookup(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WriteMonthlyCSV(&buf, resp.Report); err != nil {
		respondError(c, http.StatusInternalServerError, "EXPORT_ERROR", err.Error())
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+resp.ID+`-monthly.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// GetSummary handles GET /api/v1/reports/:id/summary
func (h *EstimateHandler) GetSummary(c *gin.Context) {
	resp, ok := h.lookup(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WriteSummary(&buf, resp.Report); err != nil {
		respondError(c, http.StatusInternalServerError, "EXPORT_ERROR", err.Error())
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}

func (h *EstimateHandler) lookup(c *gin.Context) (models.ReportResponse, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "report id must be a UUID")
		return models.ReportResponse{}, false
	}
	resp, ok := h.reports.Get(id)
	if !ok {
		respondError(c, http.StatusNotFound, "REPORT_NOT_FOUND", "report not found or expired")
		return models.ReportResponse{}, false
	}
	return resp, true
}

func (h *EstimateHandler) estimatorWith(o models.AssumptionsOverride) (*solar.Estimator, error) {
	merged := config.MergeAssumptions(h.assumptions, o.ToConfig())
	a, err := merged.ToModel()
	if err != nil {
		return nil, err
	}
	return solar.NewEstimator(a)
}
