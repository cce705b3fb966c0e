package model

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors shared by the estimation core and its collaborators.
// Compare with errors.Is.
var (
	// ErrInvalidArea is returned when a rooftop area is negative, NaN or infinite.
	ErrInvalidArea = constError("invalid rooftop area")

	// ErrMissingIrradiance marks a month whose irradiance value is absent or not a number.
	ErrMissingIrradiance = constError("missing irradiance")

	// ErrZeroSavings marks a payback computation with no savings to divide by.
	ErrZeroSavings = constError("zero annual savings")

	// ErrUpstreamUnavailable wraps failures of the location and irradiance services.
	ErrUpstreamUnavailable = constError("upstream service unavailable")

	// ErrInconsistentResults is returned when sub-results derive from different rooftops.
	ErrInconsistentResults = constError("inconsistent analysis results")
)
