package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"rooftop-solar/internal/api/models"
	"rooftop-solar/internal/data"
	"rooftop-solar/internal/export"
	"rooftop-solar/internal/model"
	"rooftop-solar/internal/solar"
)

// sessionEntry is one browser's working state.
type sessionEntry struct {
	id        string
	createdAt time.Time
	session   *solar.Session
	search    *data.Searcher
}

// SessionHandler keeps interactive sessions: each input change rebuilds the
// session's whole report, and location searches typed into a session are
// debounced with only the latest query answered.
type SessionHandler struct {
	est        *solar.Estimator
	irradiance IrradianceSource
	suggester  data.Suggester
	debounce   time.Duration
	sessions   *data.Cache[*sessionEntry]
	now        func() time.Time
}

// NewSessionHandler creates a handler whose sessions expire after ttl of inactivity.
func NewSessionHandler(est *solar.Estimator, irradiance IrradianceSource, suggester data.Suggester, debounce, ttl time.Duration) *SessionHandler {
	if ttl <= 0 {
		ttl = time.Hour
	}
	sessions := data.NewCache[*sessionEntry](ttl)
	sessions.StartCleanup(time.Minute)
	return &SessionHandler{
		est:        est,
		irradiance: irradiance,
		suggester:  suggester,
		debounce:   debounce,
		sessions:   sessions,
		now:        time.Now,
	}
}

// Close stops expiring sessions in the background.
func (h *SessionHandler) Close() {
	h.sessions.Close()
}

// CreateSession handles POST /api/v1/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	e := &sessionEntry{
		id:        uuid.NewString(),
		createdAt: h.now().UTC(),
		session:   solar.NewSession(h.est),
	}
	if h.suggester != nil {
		e.search = data.NewSearcher(h.suggester, h.debounce)
	}
	h.sessions.Set(e.id, e)
	log.Debug().Str("session_id", e.id).Msg("session created")
	c.JSON(http.StatusCreated, h.response(e))
}

// GetSession handles GET /api/v1/sessions/:id/report
func (h *SessionHandler) GetSession(c *gin.Context) {
	e, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.response(e))
}

// DeleteSession handles DELETE /api/v1/sessions/:id
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	e, ok := h.lookup(c)
	if !ok {
		return
	}
	h.sessions.Delete(e.id)
	c.Status(http.StatusNoContent)
}

// SetPolygon handles PUT /api/v1/sessions/:id/polygon
func (h *SessionHandler) SetPolygon(c *gin.Context) {
	e, ok := h.lookup(c)
	if !ok {
		return
	}
	var req models.SessionPolygonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	e.session.SetPolygon(req.Polygon.ToModel())
	c.JSON(http.StatusOK, h.response(e))
}

// ClearPolygon handles DELETE /api/v1/sessions/:id/polygon
func (h *SessionHandler) ClearPolygon(c *gin.Context) {
	e, ok := h.lookup(c)
	if !ok {
		return
	}
	e.session.ClearPolygon()
	c.JSON(http.StatusOK, h.response(e))
}

// SetBill handles PUT /api/v1/sessions/:id/bill
func (h *SessionHandler) SetBill(c *gin.Context) {
	e, ok := h.lookup(c)
	if !ok {
		return
	}
	var req models.SessionBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	e.session.SetYearlyBill(*req.YearlyBill)
	c.JSON(http.StatusOK, h.response(e))
}

// SetLocation handles PUT /api/v1/sessions/:id/location
// A newer selection made while this one's irradiance lookup was in flight
// answers this one with 409.
func (h *SessionHandler) SetLocation(c *gin.Context) {
	e, ok := h.lookup(c)
	if !ok {
		return
	}
	var req models.SessionLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	ticket := e.session.LocationTicket()
	irr, notices := resolveIrradiance(c.Request.Context(), h.irradiance, &req.Location, req.Irradiance, req.UseLocationIrradiance)
	if _, _, applied := e.session.SetLocationWithTicket(ticket, req.Location, irr, notices...); !applied {
		respondError(c, http.StatusConflict, "SUPERSEDED", "a newer location was selected")
		return
	}
	c.JSON(http.StatusOK, h.response(e))
}

// SearchLocations handles GET /api/v1/sessions/:id/locations?q=
// A newer search on the same session answers the older one with 409.
func (h *SessionHandler) SearchLocations(c *gin.Context) {
	e, ok := h.lookup(c)
	if !ok {
		return
	}
	if e.search == nil {
		respondError(c, http.StatusServiceUnavailable, "SEARCH_UNAVAILABLE", "location search is not configured")
		return
	}
	q := strings.TrimSpace(c.Query("q"))
	suggestions, err := e.search.Search(c.Request.Context(), q)
	switch {
	case errors.Is(err, data.ErrSuperseded):
		respondError(c, http.StatusConflict, "SUPERSEDED", err.Error())
		return
	case errors.Is(err, context.Canceled):
		// Client went away.
		c.Abort()
		return
	case err != nil:
		respondUpstreamError(c, err)
		return
	}
	if suggestions == nil {
		suggestions = []model.Location{}
	}
	c.JSON(http.StatusOK, models.LocationsResponse{Query: q, Suggestions: suggestions})
}

// lookup finds the session and refreshes its expiry.
func (h *SessionHandler) lookup(c *gin.Context) (*sessionEntry, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "session id must be a UUID")
		return nil, false
	}
	e, ok := h.sessions.Get(id)
	if !ok {
		respondError(c, http.StatusNotFound, "SESSION_NOT_FOUND", "session not found or expired")
		return nil, false
	}
	h.sessions.Set(id, e)
	return e, true
}

func (h *SessionHandler) response(e *sessionEntry) models.SessionResponse {
	resp := models.SessionResponse{ID: e.id, CreatedAt: e.createdAt}
	if r, ok := e.session.Report(); ok {
		f := export.DisplayFigures(r)
		resp.Report = &r
		resp.Figures = &f
	}
	return resp
}
