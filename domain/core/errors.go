package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// ErrValidation covers bad input ranges or types caught before any
	// model runs.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidGeometry marks physically impossible observing
	// geometry (elevation outside (0°, 90°], undefined airmass).
	ErrInvalidGeometry = errors.New("invalid observing geometry")

	// ErrInvalidEfficiency marks an efficiency or loss factor outside
	// the physical interval (0, 1].
	ErrInvalidEfficiency = errors.New("invalid efficiency factor")

	// ErrUnsupportedMode marks an observing-mode tag outside the
	// closed enumeration. Treated as a programmer/config error by
	// callers.
	ErrUnsupportedMode = errors.New("unsupported observing mode")

	// ErrDomain marks a derived quantity that left its valid
	// mathematical domain (non-positive transmission, bandwidth·time
	// ≤ 0, target sensitivity ≤ 0).
	ErrDomain = errors.New("quantity outside mathematical domain")

	// ErrNonConvergence is reserved for iterative inverse solvers. The
	// current radiometer relation inverts in closed form, so nothing
	// returns it yet; it stays defined so callers can already handle
	// the kind.
	ErrNonConvergence = errors.New("solver failed to converge")

	// ErrNotFound is returned by repositories for missing records.
	ErrNotFound = errors.New("resource not found")
)

// Error constructors with context

// NewGeometryError reports an invalid elevation or airmass input.
func NewGeometryError(field string, value float64, reason string) error {
	return fmt.Errorf("%w: %s=%g (%s)", ErrInvalidGeometry, field, value, reason)
}

// NewEfficiencyError reports an efficiency factor outside (0, 1].
func NewEfficiencyError(field string, value float64) error {
	return fmt.Errorf("%w: %s=%g must lie in (0, 1]", ErrInvalidEfficiency, field, value)
}

// NewModeError reports an observing-mode tag outside the closed set.
func NewModeError(tag string) error {
	return fmt.Errorf("%w: %q", ErrUnsupportedMode, tag)
}

// NewDomainError reports a derived quantity outside its valid domain.
func NewDomainError(quantity string, value float64, constraint string) error {
	return fmt.Errorf("%w: %s=%g violates %s", ErrDomain, quantity, value, constraint)
}

// Error checking helpers
func IsValidationError(err error) bool    { return errors.Is(err, ErrValidation) }
func IsGeometryError(err error) bool      { return errors.Is(err, ErrInvalidGeometry) }
func IsEfficiencyError(err error) bool    { return errors.Is(err, ErrInvalidEfficiency) }
func IsUnsupportedModeError(err error) bool { return errors.Is(err, ErrUnsupportedMode) }
func IsDomainError(err error) bool        { return errors.Is(err, ErrDomain) }
func IsNotFoundError(err error) bool      { return errors.Is(err, ErrNotFound) }
