package data

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"rooftop-solar/internal/model"
)

const (
	DefaultNASAPowerURL = "https://power.larc.nasa.gov"

	defaultNASAPowerTimeout = 30 * time.Second

	nasaPowerService = "nasa_power"
	powerParameter   = "ALLSKY_SFC_SW_DWN"
	// powerFillValue marks months POWER has no data for.
	powerFillValue = -999.0
)

var monthKeys = map[string]int{
	"JAN": 1, "FEB": 2, "MAR": 3, "APR": 4, "MAY": 5, "JUN": 6,
	"JUL": 7, "AUG": 8, "SEP": 9, "OCT": 10, "NOV": 11, "DEC": 12,
}

// NASAPowerClient fetches long-term monthly solar irradiance from the NASA
// POWER climatology API. Identical concurrent lookups share one request and
// successful results are cached.
type NASAPowerClient struct {
	BaseURL string
	Client  *http.Client

	cache  *Cache[model.SeriesIrradiance]
	flight singleflight.Group
	logger zerolog.Logger
}

// NewNASAPowerClient creates a client. If baseURL is empty, DefaultNASAPowerURL is used.
// A cacheTTL <= 0 disables caching.
func NewNASAPowerClient(baseURL string, timeout, cacheTTL time.Duration) *NASAPowerClient {
	if baseURL == "" {
		baseURL = DefaultNASAPowerURL
	}
	if timeout <= 0 {
		timeout = defaultNASAPowerTimeout
	}
	return &NASAPowerClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
		cache:   NewCache[model.SeriesIrradiance](cacheTTL),
		logger:  log.With().Str("component", nasaPowerService).Logger(),
	}
}

// MonthlyIrradiance returns average daily all-sky surface irradiance
// (kWh/m²/day) per calendar month at a point. Months POWER reports as fill
// values are missing from the series; a response with no months at all is an error.
func (c *NASAPowerClient) MonthlyIrradiance(ctx context.Context, lat, lon float64) (model.SeriesIrradiance, error) {
	if err := validateCoordinates(lat, lon); err != nil {
		return model.SeriesIrradiance{}, err
	}

	key := CacheKey(nasaPowerService, formatCoord(lat), formatCoord(lon))
	if cached, ok := c.cache.Get(key); ok {
		c.logger.Debug().Float64("lat", lat).Float64("lon", lon).Msg("cache hit")
		return cached, nil
	}

	// The shared fetch outlives any one caller; each caller still stops
	// waiting when its own context ends.
	ch := c.flight.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchTimeout())
		defer cancel()
		series, err := c.fetch(fetchCtx, lat, lon)
		if err != nil {
			return nil, err
		}
		c.cache.Set(key, series)
		return series, nil
	})
	select {
	case <-ctx.Done():
		return model.SeriesIrradiance{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return model.SeriesIrradiance{}, res.Err
		}
		if res.Shared {
			c.logger.Debug().Float64("lat", lat).Float64("lon", lon).Msg("shared in-flight lookup")
		}
		return res.Val.(model.SeriesIrradiance), nil
	}
}

func (c *NASAPowerClient) fetchTimeout() time.Duration {
	if c.Client != nil && c.Client.Timeout > 0 {
		return c.Client.Timeout
	}
	return defaultNASAPowerTimeout
}

func (c *NASAPowerClient) fetch(ctx context.Context, lat, lon float64) (model.SeriesIrradiance, error) {
	u, err := url.Parse(c.BaseURL + "/api/temporal/climatology/point")
	if err != nil {
		return model.SeriesIrradiance{}, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("community", "RE")
	q.Set("parameters", powerParameter)
	q.Set("latitude", formatCoord(lat))
	q.Set("longitude", formatCoord(lon))
	q.Set("format", "JSON")
	u.RawQuery = q.Encode()

	c.logger.Debug().Str("path", u.Path).Float64("lat", lat).Float64("lon", lon).Msg("request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return model.SeriesIrradiance{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.Warn().Err(err).Dur("duration", duration).Msg("request failed")
		return model.SeriesIrradiance{}, transportError(nasaPowerService, err)
	}
	defer resp.Body.Close()

	c.logger.Debug().Int("status", resp.StatusCode).Dur("duration", duration).Msg("response")
	if resp.StatusCode != http.StatusOK {
		return model.SeriesIrradiance{}, statusError(c.logger, nasaPowerService, resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.SeriesIrradiance{}, transportError(nasaPowerService, err)
	}
	series, err := ParseClimatology(body)
	if err != nil {
		c.logger.Warn().Err(err).Msg("unusable response")
		return model.SeriesIrradiance{}, err
	}
	c.logger.Debug().Int("months", len(series.Map())).Msg("success")
	return series, nil
}

type powerResponse struct {
	Properties struct {
		Parameter map[string]map[string]json.RawMessage `json:"parameter"`
	} `json:"properties"`
	Messages []string `json:"messages"`
}

// ParseClimatology extracts the monthly ALLSKY_SFC_SW_DWN block from a POWER
// climatology response. Month keys may be JAN..DEC or 1..12; the annual (ANN)
// entry is ignored. Fill values and unparsable entries are left missing.
func ParseClimatology(body []byte) (model.SeriesIrradiance, error) {
	var pr powerResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return model.SeriesIrradiance{}, &UpstreamError{
			Service: nasaPowerService,
			Code:    "DECODE_ERROR",
			Message: fmt.Sprintf("failed to decode response: %v", err),
			Err:     err,
		}
	}

	block := pr.Properties.Parameter[powerParameter]
	byMonth := make(map[int]float64, model.Months)
	for k, raw := range block {
		m, ok := monthNumber(k)
		if !ok {
			continue
		}
		v, ok := parsePowerValue(raw)
		if !ok {
			continue
		}
		byMonth[m] = v
	}

	series := model.NewSeriesIrradiance(byMonth)
	if len(series.Map()) == 0 {
		msg := "NASA POWER did not return monthly irradiance data"
		if len(pr.Messages) > 0 {
			msg += ": " + strings.Join(pr.Messages, "; ")
		}
		return model.SeriesIrradiance{}, &UpstreamError{Service: nasaPowerService, Code: "NO_DATA", Message: msg}
	}
	return series, nil
}

// DisplayEnergy is the raw monthly yield shown next to the irradiance table:
// irradiance × days × area × panel efficiency, before system losses.
func DisplayEnergy(series model.SeriesIrradiance, areaM2 float64, a model.Assumptions) [model.Months]float64 {
	var out [model.Months]float64
	for i := range out {
		v, ok := series.At(time.Month(i + 1))
		if !ok {
			continue
		}
		out[i] = v * float64(a.DaysInMonth[i]) * areaM2 * a.PanelEfficiency
	}
	return out
}

func monthNumber(key string) (int, bool) {
	k := strings.ToUpper(strings.TrimSpace(key))
	if m, ok := monthKeys[k]; ok {
		return m, true
	}
	m, err := strconv.Atoi(k)
	if err != nil || m < 1 || m > model.Months {
		return 0, false
	}
	return m, true
}

func parsePowerValue(raw json.RawMessage) (float64, bool) {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || v == powerFillValue {
		return 0, false
	}
	return v, true
}

func validateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", lat)
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", lon)
	}
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
