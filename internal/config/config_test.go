package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rooftop-solar/internal/model"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestDefaultMatchesModelDefaults(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	a, err := c.Assumptions.ToModel()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultAssumptions(), a)
	assert.Equal(t, "8080", c.Server.Port)
	assert.Equal(t, 3, c.Services.LocationIQ.MinQueryLength)
	assert.Equal(t, 400*time.Millisecond, c.Services.LocationIQ.Debounce)
	assert.Equal(t, "info", c.Logging.Level)
}

func TestLoadOverlaysFileValues(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "solar.yaml", `
assumptions:
  electricity_rate: 9.5
  cost_per_kw: 45000
services:
  locationiq:
    api_key: abc
    debounce: 250ms
server:
  port: "9090"
logging:
  level: debug
  pretty: true
`)

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 9.5, c.Assumptions.ElectricityRate)
	assert.Equal(t, 45000.0, c.Assumptions.CostPerKW)
	assert.Equal(t, 10.0, c.Assumptions.M2PerKW, "unset fields keep defaults")
	assert.Equal(t, "abc", c.Services.LocationIQ.APIKey)
	assert.Equal(t, 250*time.Millisecond, c.Services.LocationIQ.Debounce)
	assert.Equal(t, "9090", c.Server.Port)
	assert.True(t, c.Logging.Pretty)
}

func TestLoadAssumptionsFileRelativeToConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "coastal.yaml", `
assumptions:
  name: coastal
  flat_irradiance: 4.2
  performance_ratio: 0.8
`)
	p := writeFile(t, dir, "solar.yaml", `
assumptions_file: coastal.yaml
assumptions:
  performance_ratio: 0.7
`)

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "coastal", c.Assumptions.Name)
	assert.Equal(t, 4.2, c.Assumptions.FlatIrradiance)
	assert.Equal(t, 0.7, c.Assumptions.PerformanceRatio, "inline assumptions win over the file")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"performance ratio above one", "assumptions:\n  performance_ratio: 1.5\n"},
		{"negative rate", "assumptions:\n  electricity_rate: -1\n"},
		{"short weights", "assumptions:\n  seasonal_weights: [1, 1, 1]\n"},
		{"bad yaml", "assumptions: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeFile(t, t.TempDir(), "solar.yaml", tt.body)
			_, err := Load(p)
			assert.Error(t, err)
		})
	}
}

func TestLoadUncheckedSkipsValidation(t *testing.T) {
	p := writeFile(t, t.TempDir(), "solar.yaml", "assumptions:\n  performance_ratio: 1.5\n")
	c, err := LoadUnchecked(p)
	require.NoError(t, err)
	assert.Equal(t, 1.5, c.Assumptions.PerformanceRatio)
	assert.Empty(t, c.Server.Port)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("API_PORT", "7000")
	t.Setenv("LOCATIONIQ_API_KEY", "env-key")
	t.Setenv("LOG_LEVEL", "warn")

	c := Default()
	c.ApplyEnv()
	assert.Equal(t, "7000", c.Server.Port)
	assert.Equal(t, "env-key", c.Services.LocationIQ.APIKey)
	assert.Equal(t, "warn", c.Logging.Level)
}

func TestMergeAssumptions(t *testing.T) {
	base := DefaultAssumptionsConfig()
	out := MergeAssumptions(base, AssumptionsConfig{ElectricityRate: 12, DaysInMonth: []int{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}})

	assert.Equal(t, 12.0, out.ElectricityRate)
	assert.Equal(t, 29, out.DaysInMonth[1])
	assert.Equal(t, base.CostPerKW, out.CostPerKW)
	assert.Equal(t, 28, base.DaysInMonth[1], "base is not mutated")
}
