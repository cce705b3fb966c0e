package model

import "errors"

// NoticeKind classifies a locally absorbed failure.
// Keep these values stable; clients switch on them.
type NoticeKind string

const (
	NoticeInvalidArea         NoticeKind = "INVALID_AREA"
	NoticeMissingIrradiance   NoticeKind = "MISSING_IRRADIANCE"
	NoticeZeroSavings         NoticeKind = "ZERO_SAVINGS"
	NoticeUpstreamUnavailable NoticeKind = "UPSTREAM_UNAVAILABLE"
)

// Notice records a fallback the pipeline applied instead of failing.
// Month is 1..12 for per-month notices and 0 otherwise.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Month   int        `json:"month,omitempty"`
	Message string     `json:"message"`
}

// NoticeFromError maps a sentinel error to its notice kind.
func NoticeFromError(err error) Notice {
	kind := NoticeUpstreamUnavailable
	switch {
	case errors.Is(err, ErrInvalidArea):
		kind = NoticeInvalidArea
	case errors.Is(err, ErrMissingIrradiance):
		kind = NoticeMissingIrradiance
	case errors.Is(err, ErrZeroSavings):
		kind = NoticeZeroSavings
	}
	return Notice{Kind: kind, Message: err.Error()}
}
