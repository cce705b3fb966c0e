package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const powerBody = `{"properties":{"parameter":{"ALLSKY_SFC_SW_DWN":{
	"JAN":5,"FEB":5,"MAR":5,"APR":5,"MAY":5,"JUN":5,"JUL":5,"AUG":5,"SEP":5,"OCT":5,"NOV":5,"DEC":-999,"ANN":5}}}}`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SOLAR_CONFIG", "")
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func configFor(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	return writeFile(t, "solar.yaml", fmt.Sprintf(`
services:
  nasa_power:
    base_url: %s
  locationiq:
    base_url: %s
    api_key: test-key
`, srv.URL, srv.URL))
}

func TestEstimateSummary(t *testing.T) {
	out, err := run(t, "estimate", "--area", "100", "--bill", "60000")
	require.NoError(t, err)
	assert.Contains(t, out, "System size:         10.00 kW")
	assert.Contains(t, out, "Annual output:       13,688 kWh")
	assert.Contains(t, out, "Actual savings:      60,000 / year")
	assert.Contains(t, out, "Payback period:      8.3 years")
}

func TestEstimateJSONAndCSV(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "monthly.csv")
	out, err := run(t, "estimate", "--area", "100", "--json", "--csv", csvPath, "--lat", "1", "--lon", "2", "--label", "Test roof")
	require.NoError(t, err)

	var got estimateOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 10.0, got.Report.Sizing.SystemSizeKW)
	assert.Equal(t, "Test roof", got.Report.LocationLabel)
	assert.Equal(t, "109,500", got.Figures.AnnualSavingsPotential)

	raw, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, 13, strings.Count(string(raw), "\n"))
}

func TestEstimateFromGeoJSON(t *testing.T) {
	p := writeFile(t, "roof.geojson", `{"type":"Polygon","coordinates":[[[0,0],[0.0001,0],[0.0001,0.0001],[0,0.0001],[0,0]]]}`)
	out, err := run(t, "estimate", "--geojson", p)
	require.NoError(t, err)
	assert.Contains(t, out, "Rooftop area:        123.92 m²")
}

func TestEstimateIrradianceFile(t *testing.T) {
	p := writeFile(t, "power.json", powerBody)
	out, err := run(t, "estimate", "--area", "100", "--irradiance-file", p)
	require.NoError(t, err)
	assert.Contains(t, out, "location data (1 months missing)")
	assert.Contains(t, out, "MISSING_IRRADIANCE (Dec)")
}

func TestEstimateLocationIrradiance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(powerBody))
	}))
	defer srv.Close()

	out, err := run(t, "--config", configFor(t, srv), "estimate", "--area", "100", "--lat", "18.5", "--lon", "73.8", "--location-irradiance")
	require.NoError(t, err)
	assert.Contains(t, out, "location data")
}

func TestEstimateLocationIrradianceAtNullIsland(t *testing.T) {
	var gotLat, gotLon string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLat, gotLon = r.URL.Query().Get("latitude"), r.URL.Query().Get("longitude")
		_, _ = w.Write([]byte(powerBody))
	}))
	defer srv.Close()

	out, err := run(t, "--config", configFor(t, srv), "estimate", "--area", "100", "--lat", "0", "--lon", "0", "--location-irradiance")
	require.NoError(t, err)
	assert.Contains(t, out, "location data")
	assert.Equal(t, "0.0000", gotLat)
	assert.Equal(t, "0.0000", gotLon)
}

func TestEstimateLocationIrradianceFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	out, err := run(t, "--config", configFor(t, srv), "estimate", "--area", "100", "--lat", "18.5", "--lon", "73.8", "--location-irradiance")
	require.NoError(t, err)
	assert.Contains(t, out, "flat 5.00 kWh/m²/day")
	assert.Contains(t, out, "UPSTREAM_UNAVAILABLE")
}

func TestEstimateFlagErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no area", []string{"estimate"}},
		{"area and geojson", []string{"estimate", "--area", "1", "--geojson", "x"}},
		{"lat without lon", []string{"estimate", "--area", "1", "--lat", "1"}},
		{"lookup without location", []string{"estimate", "--area", "1", "--location-irradiance"}},
		{"bad config", []string{"--config", "/does/not/exist.yaml", "estimate", "--area", "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestLocations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/autocomplete", r.URL.Path)
		assert.Equal(t, "Koregaon Park", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`[{"place_id":"1","lat":"18.5362","lon":"73.8940","display_name":"Koregaon Park, Pune"}]`))
	}))
	defer srv.Close()

	out, err := run(t, "--config", configFor(t, srv), "locations", "Koregaon", "Park")
	require.NoError(t, err)
	assert.Equal(t, "18.536200\t73.894000\tKoregaon Park, Pune\n", out)

	out, err = run(t, "--config", configFor(t, srv), "locations", "Ko")
	require.NoError(t, err)
	assert.Equal(t, "no matches\n", out)
}

func TestIrradiance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(powerBody))
	}))
	defer srv.Close()

	out, err := run(t, "--config", configFor(t, srv), "irradiance", "--lat", "18.5", "--lon", "73.8", "--area", "100")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 13)
	assert.Contains(t, lines[1], "Jan")
	assert.Contains(t, lines[1], "2,790")
	assert.Contains(t, lines[12], "Dec")
	assert.Contains(t, lines[12], "-")

	out, err = run(t, "--config", configFor(t, srv), "irradiance", "--lat", "18.5", "--lon", "73.8", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"1":5`)
}
