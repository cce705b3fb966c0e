package data

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"rooftop-solar/internal/model"
)

// ErrSuperseded is returned by Searcher.Search when a newer query replaced it.
var ErrSuperseded = errors.New("search superseded by a newer query")

// UpstreamError represents a failure talking to NASA POWER or LocationIQ.
// It matches model.ErrUpstreamUnavailable under errors.Is.
type UpstreamError struct {
	Service    string
	StatusCode int
	Code       string
	Message    string
	RetryAfter string // For rate limit errors
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Service == "" {
		return e.Message
	}
	return e.Service + ": " + e.Message
}

func (e *UpstreamError) Unwrap() []error {
	if e.Err == nil {
		return []error{model.ErrUpstreamUnavailable}
	}
	return []error{model.ErrUpstreamUnavailable, e.Err}
}

// transportError wraps a failed round trip.
func transportError(service string, err error) *UpstreamError {
	return &UpstreamError{
		Service: service,
		Code:    "REQUEST_FAILED",
		Message: fmt.Sprintf("request failed: %v", err),
		Err:     err,
	}
}

// statusError maps a non-200 response to an UpstreamError and logs it.
func statusError(logger zerolog.Logger, service string, resp *http.Response) *UpstreamError {
	switch resp.StatusCode {
	case http.StatusForbidden:
		logger.Warn().Int("status", resp.StatusCode).Msg("forbidden: invalid API key or insufficient permissions")
		return &UpstreamError{
			Service:    service,
			StatusCode: resp.StatusCode,
			Code:       "INVALID_API_KEY",
			Message:    "Invalid API key or insufficient permissions",
		}
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		logger.Warn().Int("status", resp.StatusCode).Str("retry_after", retryAfter).Msg("rate limit exceeded")
		return &UpstreamError{
			Service:    service,
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("Rate limit exceeded. Retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	case http.StatusUnauthorized:
		logger.Warn().Int("status", resp.StatusCode).Msg("unauthorized: invalid API key")
		return &UpstreamError{
			Service:    service,
			StatusCode: resp.StatusCode,
			Code:       "UNAUTHORIZED",
			Message:    "Unauthorized: Invalid API key",
		}
	default:
		logger.Warn().Int("status", resp.StatusCode).Msg("upstream error")
		return &UpstreamError{
			Service:    service,
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("API returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}
}
