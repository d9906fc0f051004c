// Package calculators provides closed-form financial, health and utility
// calculators. Unlike the amortization engine these reject out-of-domain
// input with an error wrapping ErrInvalidInput.
package calculators

import (
	"errors"
	"fmt"

	"github.com/iwvelando/loan-calculator/pkg/mathutil"
)

// ErrInvalidInput is wrapped by every input validation failure.
var ErrInvalidInput = errors.New("invalid input")

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func requirePositive(name string, value float64) error {
	if !mathutil.IsFinite(value) || value <= 0 {
		return invalid("%s must be a positive number, got %v", name, value)
	}
	return nil
}

func requireNonNegative(name string, value float64) error {
	if !mathutil.IsFinite(value) || value < 0 {
		return invalid("%s must not be negative, got %v", name, value)
	}
	return nil
}
