package spectrum

import "github.com/pkg/errors"

var (
	// ErrConfiguration indicates invalid processing parameters.
	ErrConfiguration = errors.New("spectrum: invalid configuration")
	// ErrAlignment indicates that two series are not on the same wavelength grid.
	ErrAlignment = errors.New("spectrum: wavelength grids not aligned")
	// ErrRange indicates a wavelength query outside the series bounds.
	ErrRange = errors.New("spectrum: wavelength out of range")
	// ErrType indicates non-numeric input where a number is required.
	ErrType = errors.New("spectrum: invalid numeric value")
	// ErrShape indicates a series whose rows or axis violate its invariants.
	ErrShape = errors.New("spectrum: invalid shape")
)
