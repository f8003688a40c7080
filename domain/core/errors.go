package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrNoFactors       = fmt.Errorf("%w: no factors given", ErrInvalidInput)
	ErrDuplicateFactor = fmt.Errorf("%w: duplicate factor name", ErrInvalidInput)
	ErrInvalidBounds   = fmt.Errorf("%w: bounds must be two finite numbers", ErrInvalidInput)
	ErrMissingLevels   = fmt.Errorf("%w: factor has no values", ErrInvalidInput)

	// Sampling errors
	ErrInvalidSampleSize = fmt.Errorf("%w: sample size and dimension must be positive", ErrInvalidInput)
	ErrUnknownSampler    = fmt.Errorf("%w: unknown sampler", ErrInvalidInput)

	// Shape errors
	ErrShapeMismatch = errors.New("matrix shape does not match factors")
	ErrTooManyRows   = errors.New("design exceeds row limit")
)

// Error constructors with context
func NewFactorError(factor string, err error) error {
	return fmt.Errorf("factor %q: %w", factor, err)
}

func NewShapeError(wantRows, gotRows int) error {
	return fmt.Errorf("%w: %d factors, %d matrix rows", ErrShapeMismatch, wantRows, gotRows)
}

// IsInputError reports whether err was caused by user input
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
