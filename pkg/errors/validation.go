package errors

import (
	"math"
	"time"
)

// ValidateThreshold checks that an overlap fraction lies in [0, 1].
// Zero is accepted and means "use the default".
func ValidateThreshold(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidThreshold, "%s must be a finite number", name)
	}
	if v < 0 || v > 1 {
		return New(ErrCodeInvalidThreshold, "%s must be within [0, 1], got %v", name, v)
	}
	return nil
}

// ValidateDuration checks that a duration is not negative.
// Zero is accepted and means "use the default".
func ValidateDuration(name string, d time.Duration) error {
	if d < 0 {
		return New(ErrCodeInvalidDuration, "%s cannot be negative, got %s", name, d)
	}
	return nil
}

// ValidateDistance checks that a pixel distance is finite and not negative.
func ValidateDistance(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return New(ErrCodeInvalidInput, "%s must be a finite, non-negative distance, got %v", name, v)
	}
	return nil
}

// ValidateIndex checks that 0 <= idx < n.
func ValidateIndex(idx, n int) error {
	if idx < 0 || idx >= n {
		return New(ErrCodeIndexOutOfRange, "index %d out of range [0, %d)", idx, n)
	}
	return nil
}

// ValidateInsertIndex checks that 0 <= idx <= n.
func ValidateInsertIndex(idx, n int) error {
	if idx < 0 || idx > n {
		return New(ErrCodeIndexOutOfRange, "insert index %d out of range [0, %d]", idx, n)
	}
	return nil
}
