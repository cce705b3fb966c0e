package data

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"rooftop-solar/internal/model"
)

const (
	DefaultLocationIQURL = "https://api.locationiq.com"

	locationIQService = "locationiq"
)

// LocationIQClient looks up place suggestions with the LocationIQ autocomplete API.
type LocationIQClient struct {
	APIKey  string
	BaseURL string
	Client  *http.Client

	// Queries shorter than MinQueryLength runes return no suggestions without a request.
	MinQueryLength int
	Limit          int

	cache  *Cache[[]model.Location]
	logger zerolog.Logger
}

// NewLocationIQClient creates a client with a minimum query length of 3 and a
// limit of 5 suggestions. If baseURL is empty, DefaultLocationIQURL is used.
func NewLocationIQClient(apiKey, baseURL string, timeout, cacheTTL time.Duration) *LocationIQClient {
	if baseURL == "" {
		baseURL = DefaultLocationIQURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &LocationIQClient{
		APIKey:         apiKey,
		BaseURL:        strings.TrimRight(baseURL, "/"),
		Client:         &http.Client{Timeout: timeout},
		MinQueryLength: 3,
		Limit:          5,
		cache:          NewCache[[]model.Location](cacheTTL),
		logger:         log.With().Str("component", locationIQService).Logger(),
	}
}

type locationIQPlace struct {
	PlaceID     string `json:"place_id"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Autocomplete returns up to Limit places matching query.
// No match is an empty result, not an error.
func (c *LocationIQClient) Autocomplete(ctx context.Context, query string) ([]model.Location, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < c.MinQueryLength {
		return nil, nil
	}
	if err := c.validateAPIKey(); err != nil {
		return nil, err
	}

	key := CacheKey(locationIQService, strings.ToLower(query), strconv.Itoa(c.Limit))
	if cached, ok := c.cache.Get(key); ok {
		c.logger.Debug().Str("query", query).Msg("cache hit")
		return cloneLocations(cached), nil
	}

	u, err := url.Parse(c.BaseURL + "/v1/autocomplete")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("key", c.APIKey)
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(c.Limit))
	u.RawQuery = q.Encode()

	c.logger.Debug().Str("path", u.Path).Str("query", query).Msg("request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.Warn().Err(err).Dur("duration", duration).Msg("request failed")
		return nil, transportError(locationIQService, err)
	}
	defer resp.Body.Close()

	c.logger.Debug().Int("status", resp.StatusCode).Dur("duration", duration).Msg("response")
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		// LocationIQ answers 404 "Unable to geocode" when nothing matches.
		c.cache.Set(key, nil)
		return nil, nil
	default:
		return nil, statusError(c.logger, locationIQService, resp)
	}

	var places []locationIQPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, &UpstreamError{
			Service: locationIQService,
			Code:    "DECODE_ERROR",
			Message: fmt.Sprintf("failed to decode response: %v", err),
			Err:     err,
		}
	}

	out := make([]model.Location, 0, len(places))
	for _, p := range places {
		lat, errLat := strconv.ParseFloat(p.Lat, 64)
		lon, errLon := strconv.ParseFloat(p.Lon, 64)
		if errLat != nil || errLon != nil {
			c.logger.Debug().Str("place_id", p.PlaceID).Msg("skipping place without coordinates")
			continue
		}
		out = append(out, model.Location{Lat: lat, Lon: lon, DisplayName: p.DisplayName})
	}
	c.cache.Set(key, out)
	c.logger.Debug().Int("suggestions", len(out)).Msg("success")
	return cloneLocations(out), nil
}

func (c *LocationIQClient) validateAPIKey() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return &UpstreamError{
			Service: locationIQService,
			Code:    "MISSING_API_KEY",
			Message: "API key is required",
		}
	}
	return nil
}

func cloneLocations(in []model.Location) []model.Location {
	if in == nil {
		return nil
	}
	return append([]model.Location(nil), in...)
}
