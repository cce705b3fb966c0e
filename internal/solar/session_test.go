package solar

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rooftop-solar/internal/model"
)

func TestSessionLifecycle(t *testing.T) {
	s := NewSession(newTestEstimator(t))

	_, ok := s.Report()
	assert.False(t, ok, "no report before a polygon is drawn")

	_, ok = s.SetYearlyBill(60000)
	assert.False(t, ok)

	r := s.SetPolygon(model.RooftopPolygon{AreaM2: 100})
	assert.InDelta(t, 60000, r.Financial.ActualAnnualSavings, 1e-6, "bill entered earlier is applied")

	r, ok = s.SetYearlyBill(0)
	require.True(t, ok)
	assert.False(t, r.Financial.BillSupplied)
	assert.Equal(t, 109500.0, r.Financial.ActualAnnualSavings)

	// A new polygon replaces the previous one.
	r = s.SetPolygon(model.RooftopPolygon{AreaM2: 50})
	assert.InDelta(t, 5.0, r.Sizing.SystemSizeKW, 1e-12)

	up := model.Notice{Kind: model.NoticeUpstreamUnavailable, Message: "timeout"}
	r, ok = s.SetLocation(model.Location{DisplayName: "Pune"}, nil, up)
	require.True(t, ok)
	assert.Equal(t, "Pune", r.LocationLabel)
	assert.Contains(t, r.Notices, up)

	r, _ = s.SetLocation(model.Location{DisplayName: "Pune"}, model.FlatIrradiance(6))
	assert.NotContains(t, r.Notices, up, "notices belong to the location they were raised for")

	current, ok := s.Report()
	require.True(t, ok)
	assert.Equal(t, r, current)

	s.ClearPolygon()
	_, ok = s.Report()
	assert.False(t, ok)
}

func TestSessionReportIsACopy(t *testing.T) {
	s := NewSession(newTestEstimator(t))
	s.SetPolygon(model.NewRooftopPolygon([]model.LatLng{{Lat: 1}, {Lat: 2}, {Lat: 3}}, 10))

	r, _ := s.Report()
	r.Polygon.Vertices[0].Lat = 99

	again, _ := s.Report()
	assert.Equal(t, 1.0, again.Polygon.Vertices[0].Lat)
}

func TestSessionReadersNeverSeeMixedReports(t *testing.T) {
	s := NewSession(newTestEstimator(t))
	s.SetPolygon(model.RooftopPolygon{AreaM2: 100})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 1; i <= 200; i++ {
			s.SetYearlyBill(float64(i * 1000))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			r, ok := s.Report()
			if !ok {
				continue
			}
			f := r.Financial
			if f.BillSupplied {
				assert.InDelta(t, f.YearlyBill-f.ActualAnnualSavings, f.Comparison.WithSolar, 1e-6)
				assert.Equal(t, f.YearlyBill, f.Comparison.WithoutSolar)
			}
		}
	}()
	wg.Wait()
}

func TestSessionStaleLocationTicketIsDiscarded(t *testing.T) {
	s := NewSession(newTestEstimator(t))
	s.SetPolygon(model.RooftopPolygon{AreaM2: 100})

	older := s.LocationTicket()
	newer := s.LocationTicket()

	r, ok, applied := s.SetLocationWithTicket(newer, model.Location{DisplayName: "Nashik"}, model.FlatIrradiance(6))
	require.True(t, applied)
	require.True(t, ok)
	assert.Equal(t, "Nashik", r.LocationLabel)

	_, _, applied = s.SetLocationWithTicket(older, model.Location{DisplayName: "Pune"}, model.FlatIrradiance(4))
	assert.False(t, applied)

	current, _ := s.Report()
	assert.Equal(t, "Nashik", current.LocationLabel)

	// A plain SetLocation supersedes an outstanding ticket.
	pending := s.LocationTicket()
	s.SetLocation(model.Location{DisplayName: "Mumbai"}, nil)
	_, _, applied = s.SetLocationWithTicket(pending, model.Location{DisplayName: "Pune"}, nil)
	assert.False(t, applied)
}
