package kernel

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter reports a kernel parameter outside its domain.
var ErrInvalidParameter = errors.New("kernel: invalid parameter")

func validateBandlimit(delta float64) error {
	if !(delta > 0) || isInf(delta) {
		return fmt.Errorf("%w: bandlimit must be finite and > 0: %g", ErrInvalidParameter, delta)
	}
	return nil
}

func validateHalfWidth(beta float64) error {
	if !(beta > 0) || isInf(beta) {
		return fmt.Errorf("%w: half-width must be finite and > 0: %g", ErrInvalidParameter, beta)
	}
	return nil
}

func validateDegree(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: degree must be >= 1: %d", ErrInvalidParameter, n)
	}
	return nil
}

// ValidateBandlimit reports whether delta is a usable continuous bandlimit.
func ValidateBandlimit(delta float64) error { return validateBandlimit(delta) }

// ValidateHalfWidth reports whether beta is a usable interval half-width.
func ValidateHalfWidth(beta float64) error { return validateHalfWidth(beta) }

// ValidateDegree reports whether n is a usable trigonometric degree.
func ValidateDegree(n int) error { return validateDegree(n) }
