// Package spectrum holds the shared representation of spectrum collections
// and the pure transforms defined on them.
//
// A [Series] is an ordered wavelength axis plus one or more flux rows. Model
// spectra pair a series with an age [Axis]; observations pair it with a
// reddening [Axis]. Transforms such as [Series.Normalize] and the wavelength
// slicing helpers return new values and never alias the input. The only
// in-place operations are [Series.RestrictStart] and
// [Series.RestrictStartByInterpolationStep].
//
// Error kinds shared by all sub-packages:
//
//	ErrConfiguration  invalid parameters (step ratios, axis settings)
//	ErrAlignment      observation and model wavelength grids differ
//	ErrRange          wavelength query outside the series bounds
//	ErrType           non-numeric input where a number is required
//	ErrShape          series invariants violated (ragged rows, unsorted axis)
package spectrum
