package solar

import (
	"sync"
	"sync/atomic"

	"rooftop-solar/internal/model"
)

// Session owns the inputs of one user's analysis and the latest report built
// from them. Each setter recomputes the whole report and swaps it in, so a
// reader sees either the old report or the new one, never a mix.
type Session struct {
	est *Estimator

	mu         sync.Mutex // serialises input changes
	inputs     Inputs
	hasPolygon bool

	// locationSeq numbers location selections; only the latest may apply.
	locationSeq atomic.Uint64

	report atomic.Pointer[model.AnalysisReport]
}

func NewSession(est *Estimator) *Session {
	return &Session{est: est}
}

// SetPolygon replaces the active rooftop. At most one polygon is active.
func (s *Session) SetPolygon(p model.RooftopPolygon) model.AnalysisReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputs.Polygon = p.Clone()
	s.hasPolygon = true
	return s.recomputeLocked()
}

// ClearPolygon drops the rooftop and its report.
func (s *Session) ClearPolygon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputs.Polygon = model.RooftopPolygon{}
	s.hasPolygon = false
	s.report.Store(nil)
}

// SetYearlyBill changes the bill. The report is rebuilt only when a polygon exists.
func (s *Session) SetYearlyBill(bill float64) (model.AnalysisReport, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputs.YearlyBill = bill
	return s.maybeRecomputeLocked()
}

// SetLocation records the chosen place and the irradiance found for it.
// Pass a nil irradiance to use flat mode; notices describe upstream fallbacks
// and replace those from the previous location. It supersedes any selection
// still holding an older ticket.
func (s *Session) SetLocation(loc model.Location, irr model.Irradiance, notices ...model.Notice) (model.AnalysisReport, bool) {
	r, ok, _ := s.SetLocationWithTicket(s.LocationTicket(), loc, irr, notices...)
	return r, ok
}

// LocationTicket starts a location selection. Take the ticket before any slow
// lookup for the place, then hand it to SetLocationWithTicket.
func (s *Session) LocationTicket() uint64 {
	return s.locationSeq.Add(1)
}

// SetLocationWithTicket is SetLocation for a selection started with ticket.
// When a newer ticket has been issued since, nothing changes and applied is
// false. ok reports whether a report exists.
func (s *Session) SetLocationWithTicket(ticket uint64, loc model.Location, irr model.Irradiance, notices ...model.Notice) (report model.AnalysisReport, ok, applied bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket != s.locationSeq.Load() {
		return model.AnalysisReport{}, false, false
	}
	s.inputs.Location = loc
	s.inputs.Irradiance = irr
	s.inputs.Notices = append([]model.Notice(nil), notices...)
	report, ok = s.maybeRecomputeLocked()
	return report, ok, true
}

// Report returns a copy of the current report, if a polygon has been drawn.
func (s *Session) Report() (model.AnalysisReport, bool) {
	r := s.report.Load()
	if r == nil {
		return model.AnalysisReport{}, false
	}
	return r.Clone(), true
}

func (s *Session) maybeRecomputeLocked() (model.AnalysisReport, bool) {
	if !s.hasPolygon {
		return model.AnalysisReport{}, false
	}
	return s.recomputeLocked(), true
}

func (s *Session) recomputeLocked() model.AnalysisReport {
	r := s.est.Analyze(s.inputs)
	s.report.Store(&r)
	return r.Clone()
}
