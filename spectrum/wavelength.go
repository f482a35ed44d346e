package spectrum

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

const congruenceTolerance = 1e-8

// SearchWavelength returns the smallest index i with wavelength[i] >= w, or
// the axis length when every sample is below w.
func (s *Series) SearchWavelength(w float64) int {
	return sort.SearchFloat64s(s.Wavelength, w)
}

// WavelengthIndex maps a wavelength interval to index bounds (is, ie) with
// is the first index whose wavelength is >= start and ie the first index
// whose wavelength is >= end. Hence wavelength[is] >= start and
// wavelength[ie-1] < end; the inclusive slice is [is, ie+1).
func (s *Series) WavelengthIndex(start, end float64) (int, int, error) {
	if start > end {
		return 0, 0, errors.Wrapf(ErrRange, "start = %v is greater than end = %v", start, end)
	}

	w := len(s.Wavelength)
	if w == 0 {
		return 0, 0, errors.Wrap(ErrRange, "empty wavelength axis")
	}

	if start < s.Wavelength[0] {
		return 0, 0, errors.Wrapf(ErrRange, "minimum allowed = %v, given = %v", s.Wavelength[0], start)
	}

	if end > s.Wavelength[w-1] {
		return 0, 0, errors.Wrapf(ErrRange, "maximum allowed = %v, given = %v", s.Wavelength[w-1], end)
	}

	return s.SearchWavelength(start), s.SearchWavelength(end), nil
}

// WavelengthRange returns a copy of the wavelengths in [is, ie) as computed
// by WavelengthIndex.
func (s *Series) WavelengthRange(start, end float64) ([]float64, error) {
	is, ie, err := s.WavelengthIndex(start, end)
	if err != nil {
		return nil, err
	}

	return cloneRow(s.Wavelength[is:ie]), nil
}

// FluxRange returns a copy of every flux row restricted to the columns
// selected by WavelengthIndex.
func (s *Series) FluxRange(start, end float64) ([][]float64, error) {
	is, ie, err := s.WavelengthIndex(start, end)
	if err != nil {
		return nil, err
	}

	out := make([][]float64, len(s.Flux))
	for i, row := range s.Flux {
		out[i] = cloneRow(row[is:ie])
	}

	return out, nil
}

// SliceIndex returns a new series holding the samples in [start, end).
func (s *Series) SliceIndex(start, end int) (*Series, error) {
	w := len(s.Wavelength)
	if start < 0 || end > w || start >= end {
		return nil, errors.Wrapf(ErrRange, "index range [%d, %d) outside [0, %d)", start, end, w)
	}

	out := &Series{
		Name:       s.Name,
		Wavelength: cloneRow(s.Wavelength[start:end]),
		Flux:       make([][]float64, len(s.Flux)),
		step:       s.step,
	}
	for i, row := range s.Flux {
		out.Flux[i] = cloneRow(row[start:end])
	}

	return out, nil
}

// SetStart returns a new series starting at the first sample >= w.
func (s *Series) SetStart(w float64) (*Series, error) {
	return s.SliceIndex(s.SearchWavelength(w), len(s.Wavelength))
}

// SetEnd returns a new series ending at the first sample >= w (inclusive).
func (s *Series) SetEnd(w float64) (*Series, error) {
	return s.SliceIndex(0, min(s.SearchWavelength(w)+1, len(s.Wavelength)))
}

// SetRange returns a new series restricted to [start, end]; the sample
// at the end index is kept.
func (s *Series) SetRange(start, end float64) (*Series, error) {
	is, ie, err := s.WavelengthIndex(start, end)
	if err != nil {
		return nil, err
	}

	return s.SliceIndex(is, min(ie+1, len(s.Wavelength)))
}

// RestrictStart drops, in place, every sample below w. The series is left
// untouched if no sample is >= w.
func (s *Series) RestrictStart(w float64) error {
	idx := s.SearchWavelength(w)
	if idx >= len(s.Wavelength) {
		return errors.Wrapf(ErrRange, "no wavelength >= %v (maximum %v)", w, s.Wavelength[len(s.Wavelength)-1])
	}

	s.Wavelength = s.Wavelength[idx:]
	for i := range s.Flux {
		s.Flux[i] = s.Flux[i][idx:]
	}

	return nil
}

// RestrictStartByInterpolationStep aligns the series, in place, for an
// anchored resample at step interp: afterwards the kept first sample and
// every window centre of the anchored walk fall on wavelengths congruent
// to w modulo interp. The series starts one window stride before the first
// congruent wavelength found at or after index stride. It returns the new
// start wavelength.
func (s *Series) RestrictStartByInterpolationStep(interp, w float64) (float64, error) {
	stride, err := s.alignStride(interp)
	if err != nil {
		return 0, err
	}
	return s.RestrictStartCongruent(interp, w, stride)
}

// RestrictStartCongruent drops, in place, every sample before index i-lead,
// where i is the first index >= lead whose wavelength is congruent to w
// modulo period. It returns the new start wavelength.
func (s *Series) RestrictStartCongruent(period, w float64, lead int) (float64, error) {
	if !(period > 0) || lead < 0 {
		return 0, errors.Wrapf(ErrConfiguration, "congruence period %v with lead %d", period, lead)
	}

	for i := lead; i < len(s.Wavelength); i++ {
		r := math.Mod(w-s.Wavelength[i], period)
		if r < 0 {
			r += period
		}
		if r > congruenceTolerance && period-r > congruenceTolerance {
			continue
		}

		start := s.Wavelength[i-lead]
		if err := s.RestrictStart(start); err != nil {
			return 0, err
		}
		return start, nil
	}

	return 0, errors.Wrapf(ErrRange, "no wavelength congruent to %v modulo %v", w, period)
}

// alignStride returns the whole number of native samples per interp.
func (s *Series) alignStride(interp float64) (int, error) {
	native := s.Step()
	if !(interp > 0) || !(native > 0) || interp < native {
		return 0, errors.Wrapf(ErrConfiguration, "interpolation step %v with native step %v", interp, native)
	}

	ratio := interp / native
	rounded := math.Round(ratio)
	if math.Abs(ratio-rounded) > 1e-9*rounded {
		return 0, errors.Wrapf(ErrConfiguration, "alignment needs an integer step ratio, got %v", ratio)
	}
	return int(rounded), nil
}
