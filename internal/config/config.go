package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"rooftop-solar/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load model assumptions from a separate YAML file, resolved relative to the config file.
	// If both AssumptionsFile and Assumptions are provided, Assumptions overrides AssumptionsFile.
	AssumptionsFile string            `yaml:"assumptions_file"`
	Assumptions     AssumptionsConfig `yaml:"assumptions"`
	Services        ServicesConfig    `yaml:"services"`
	Server          ServerConfig      `yaml:"server"`
	Logging         LoggingConfig     `yaml:"logging"`
}

// AssumptionsConfig mirrors model.Assumptions. Zero fields take the defaults.
type AssumptionsConfig struct {
	Name             string    `yaml:"name"`
	M2PerKW          float64   `yaml:"m2_per_kw"`
	CostPerKW        float64   `yaml:"cost_per_kw"`
	ElectricityRate  float64   `yaml:"electricity_rate"`
	FlatIrradiance   float64   `yaml:"flat_irradiance"`
	PerformanceRatio float64   `yaml:"performance_ratio"`
	PanelEfficiency  float64   `yaml:"panel_efficiency"`
	LossFactor       float64   `yaml:"loss_factor"`
	CO2KgPerKWh      float64   `yaml:"co2_kg_per_kwh"`
	KgCO2PerTree     float64   `yaml:"kg_co2_per_tree"`
	SeasonalWeights  []float64 `yaml:"seasonal_weights"`
	DaysInMonth      []int     `yaml:"days_in_month"`
}

type ServicesConfig struct {
	NASAPower  NASAPowerConfig  `yaml:"nasa_power"`
	LocationIQ LocationIQConfig `yaml:"locationiq"`
}

type NASAPowerConfig struct {
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type LocationIQConfig struct {
	BaseURL        string        `yaml:"base_url"`
	APIKey         string        `yaml:"api_key"`
	Timeout        time.Duration `yaml:"timeout"`
	MinQueryLength int           `yaml:"min_query_length"`
	Limit          int           `yaml:"limit"`
	Debounce       time.Duration `yaml:"debounce"`
	CacheTTL       time.Duration `yaml:"cache_ttl"`
}

type ServerConfig struct {
	Port      string        `yaml:"port"`
	Env       string        `yaml:"env"`
	StaticDir string        `yaml:"static_dir"`
	ReportTTL time.Duration `yaml:"report_ttl"`
	// AllowedOrigins for CORS; empty allows any origin.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not apply defaults or validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	// If assumptions_file is set, load it and merge in any explicit overrides from c.Assumptions.
	if c.AssumptionsFile != "" {
		p := c.AssumptionsFile
		if !filepath.IsAbs(p) {
			// Prefer paths relative to the config file, fall back to the working directory.
			cand := filepath.Join(filepath.Dir(path), p)
			if _, err := os.Stat(cand); err == nil {
				p = cand
			}
		}
		loaded, err := LoadAssumptionsFile(p)
		if err != nil {
			return nil, err
		}
		c.Assumptions = MergeAssumptions(loaded, c.Assumptions)
	}
	return &c, nil
}

// ApplyEnv overlays environment variables onto the configuration.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("API_PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("API_ENV"); v != "" {
		c.Server.Env = v
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		c.Server.StaticDir = v
	}
	if v := os.Getenv("LOCATIONIQ_API_KEY"); v != "" {
		c.Services.LocationIQ.APIKey = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

func (c *Config) applyDefaults() {
	c.Assumptions = MergeAssumptions(DefaultAssumptionsConfig(), c.Assumptions)

	nasa := &c.Services.NASAPower
	if nasa.BaseURL == "" {
		nasa.BaseURL = "https://power.larc.nasa.gov"
	}
	if nasa.Timeout == 0 {
		nasa.Timeout = 30 * time.Second
	}
	if nasa.CacheTTL == 0 {
		nasa.CacheTTL = 24 * time.Hour
	}

	liq := &c.Services.LocationIQ
	if liq.BaseURL == "" {
		liq.BaseURL = "https://api.locationiq.com"
	}
	if liq.Timeout == 0 {
		liq.Timeout = 10 * time.Second
	}
	if liq.MinQueryLength == 0 {
		liq.MinQueryLength = 3
	}
	if liq.Limit == 0 {
		liq.Limit = 5
	}
	if liq.Debounce == 0 {
		liq.Debounce = 400 * time.Millisecond
	}
	if liq.CacheTTL == 0 {
		liq.CacheTTL = time.Hour
	}

	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.StaticDir == "" {
		c.Server.StaticDir = "./web/dist"
	}
	if c.Server.ReportTTL == 0 {
		c.Server.ReportTTL = time.Hour
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	params, err := c.Assumptions.ToModel()
	if err != nil {
		return fmt.Errorf("assumptions config invalid: %w", err)
	}
	if err := params.Validate(); err != nil {
		return fmt.Errorf("assumptions config invalid: %w", err)
	}
	if c.Services.NASAPower.Timeout < 0 || c.Services.LocationIQ.Timeout < 0 {
		return errors.New("service timeouts must be >= 0")
	}
	if c.Services.LocationIQ.MinQueryLength < 0 {
		return errors.New("locationiq.min_query_length must be >= 0")
	}
	if c.Server.ReportTTL < 0 {
		return errors.New("server.report_ttl must be >= 0")
	}
	return nil
}

// DefaultAssumptionsConfig is model.DefaultAssumptions in file form.
func DefaultAssumptionsConfig() AssumptionsConfig {
	d := model.DefaultAssumptions()
	return AssumptionsConfig{
		Name:             "default",
		M2PerKW:          d.M2PerKW,
		CostPerKW:        d.CostPerKW,
		ElectricityRate:  d.ElectricityRate,
		FlatIrradiance:   d.FlatIrradiance,
		PerformanceRatio: d.PerformanceRatio,
		PanelEfficiency:  d.PanelEfficiency,
		LossFactor:       d.LossFactor,
		CO2KgPerKWh:      d.CO2KgPerKWh,
		KgCO2PerTree:     d.KgCO2PerTree,
		SeasonalWeights:  d.SeasonalWeights[:],
		DaysInMonth:      d.DaysInMonth[:],
	}
}

// ToModel converts to model.Assumptions. Month series must have exactly 12 entries.
func (a AssumptionsConfig) ToModel() (model.Assumptions, error) {
	out := model.Assumptions{
		M2PerKW:          a.M2PerKW,
		CostPerKW:        a.CostPerKW,
		ElectricityRate:  a.ElectricityRate,
		FlatIrradiance:   a.FlatIrradiance,
		PerformanceRatio: a.PerformanceRatio,
		PanelEfficiency:  a.PanelEfficiency,
		LossFactor:       a.LossFactor,
		CO2KgPerKWh:      a.CO2KgPerKWh,
		KgCO2PerTree:     a.KgCO2PerTree,
	}
	if len(a.SeasonalWeights) != model.Months {
		return out, fmt.Errorf("seasonal_weights needs %d entries, got %d", model.Months, len(a.SeasonalWeights))
	}
	if len(a.DaysInMonth) != model.Months {
		return out, fmt.Errorf("days_in_month needs %d entries, got %d", model.Months, len(a.DaysInMonth))
	}
	copy(out.SeasonalWeights[:], a.SeasonalWeights)
	copy(out.DaysInMonth[:], a.DaysInMonth)
	return out, nil
}

type assumptionsFileWrapper struct {
	Assumptions AssumptionsConfig `yaml:"assumptions"`
}

// LoadAssumptionsFile reads a YAML file holding an `assumptions:` block.
func LoadAssumptionsFile(path string) (AssumptionsConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return AssumptionsConfig{}, err
	}
	var w assumptionsFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return AssumptionsConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return w.Assumptions, nil
}

// MergeAssumptions overlays non-zero fields from override onto base.
// This is used when loading an assumptions file and then applying overrides from the request.
func MergeAssumptions(base, override AssumptionsConfig) AssumptionsConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.M2PerKW != 0 {
		out.M2PerKW = override.M2PerKW
	}
	if override.CostPerKW != 0 {
		out.CostPerKW = override.CostPerKW
	}
	if override.ElectricityRate != 0 {
		out.ElectricityRate = override.ElectricityRate
	}
	if override.FlatIrradiance != 0 {
		out.FlatIrradiance = override.FlatIrradiance
	}
	if override.PerformanceRatio != 0 {
		out.PerformanceRatio = override.PerformanceRatio
	}
	if override.PanelEfficiency != 0 {
		out.PanelEfficiency = override.PanelEfficiency
	}
	if override.LossFactor != 0 {
		out.LossFactor = override.LossFactor
	}
	if override.CO2KgPerKWh != 0 {
		out.CO2KgPerKWh = override.CO2KgPerKWh
	}
	if override.KgCO2PerTree != 0 {
		out.KgCO2PerTree = override.KgCO2PerTree
	}
	if len(override.SeasonalWeights) > 0 {
		out.SeasonalWeights = append([]float64(nil), override.SeasonalWeights...)
	}
	if len(override.DaysInMonth) > 0 {
		out.DaysInMonth = append([]int(nil), override.DaysInMonth...)
	}
	return out
}
