package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxClassLength bounds class names accepted from configuration files.
const maxClassLength = 128

// ValidateClassName validates a class name used to tag the rendered tooltip.
// An empty name is allowed and means "no class". Non-empty names must be a
// single token: no whitespace, no control characters and no quotes, so that
// they can be emitted verbatim into class attributes.
func ValidateClassName(option, name string) error {
	if name == "" {
		return nil
	}

	if len(name) > maxClassLength {
		return New(ErrCodeInvalidClass, "%s too long (max %d characters)", option, maxClassLength)
	}

	for _, r := range name {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidClass, "%s must be a single class token: %q", option, name)
		}
	}

	if strings.ContainsAny(name, `"'<>&`) {
		return New(ErrCodeInvalidClass, "%s contains invalid characters: %q", option, name)
	}

	return nil
}

// ValidateSpacing validates the gap between target and tooltip.
// Spacing must be a finite, non-negative number.
func ValidateSpacing(spacing float64) error {
	if math.IsNaN(spacing) || math.IsInf(spacing, 0) {
		return New(ErrCodeInvalidSpacing, "spacing must be a finite number")
	}
	if spacing < 0 {
		return New(ErrCodeInvalidSpacing, "spacing must be non-negative, got %g", spacing)
	}
	return nil
}

// ValidateFinite validates that every named value is a finite number.
// It is used on geometry arriving from untrusted input (flags, HTTP bodies).
func ValidateFinite(name string, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidInput, "%s must contain finite numbers", name)
		}
	}
	return nil
}
