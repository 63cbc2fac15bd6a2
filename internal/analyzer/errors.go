package analyzer

import "errors"

var (
	ErrNoSamples     = errors.New("no samples found")
	ErrInvalidGrain  = errors.New("grain must be greater than zero")
	ErrInvalidBorder = errors.New("border must not be negative")
	ErrInvalidCell   = errors.New("cell size must be greater than zero")

	ErrInvalidRadius   = errors.New("path radius must be greater than zero")
	ErrInvalidWeight   = errors.New("heat weight must be a finite non-negative number")
	ErrHeatMapTooLarge = errors.New("heat map exceeds the pixel limit")
)
