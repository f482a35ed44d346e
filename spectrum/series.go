package spectrum

import (
	"fmt"

	"github.com/pkg/errors"
)

// Series is an ordered wavelength axis with one or more flux rows.
// Row i of Flux is one spectrum variant sampled at Wavelength.
type Series struct {
	Name       string
	Wavelength []float64
	Flux       [][]float64

	step float64
}

// NewSeries validates and deep-copies wavelength and flux into a new Series.
func NewSeries(name string, wavelength []float64, flux [][]float64) (*Series, error) {
	s := &Series{
		Name:       name,
		Wavelength: cloneRow(wavelength),
		Flux:       cloneRows(flux),
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate checks the series invariants: at least two wavelength samples,
// a strictly increasing wavelength axis and exactly one column per
// wavelength in every flux row.
func (s *Series) Validate() error {
	if s == nil {
		return errors.Wrap(ErrShape, "nil series")
	}

	w := len(s.Wavelength)
	if w < 2 {
		return errors.Wrapf(ErrShape, "%s: need at least 2 wavelength samples, got %d", s.Name, w)
	}

	for i := 1; i < w; i++ {
		if !(s.Wavelength[i] > s.Wavelength[i-1]) {
			return errors.Wrapf(ErrShape, "%s: wavelength not strictly increasing at index %d (%v after %v)",
				s.Name, i, s.Wavelength[i], s.Wavelength[i-1])
		}
	}

	for i, row := range s.Flux {
		if len(row) != w {
			return errors.Wrapf(ErrShape, "%s: flux row %d has %d columns, want %d", s.Name, i, len(row), w)
		}
	}

	return nil
}

// NumRows returns the number of flux rows.
func (s *Series) NumRows() int {
	return len(s.Flux)
}

// NumWavelengths returns the number of wavelength samples.
func (s *Series) NumWavelengths() int {
	return len(s.Wavelength)
}

// Step returns the native sampling interval. An explicit override set by
// SetStep wins; otherwise the distance between the first two samples is used.
func (s *Series) Step() float64 {
	if s.step > 0 {
		return s.step
	}

	if len(s.Wavelength) < 2 {
		return 0
	}

	return s.Wavelength[1] - s.Wavelength[0]
}

// SetStep overrides the native sampling interval. Non-positive values clear
// the override.
func (s *Series) SetStep(step float64) {
	if step <= 0 {
		s.step = 0
		return
	}
	s.step = step
}

// Clone returns a deep copy of s.
func (s *Series) Clone() *Series {
	if s == nil {
		return nil
	}

	return &Series{
		Name:       s.Name,
		Wavelength: cloneRow(s.Wavelength),
		Flux:       cloneRows(s.Flux),
		step:       s.step,
	}
}

// WavelengthString renders the wavelength axis between the given indices,
// abbreviating axes longer than ten samples. end < 0 means "to the end".
func (s *Series) WavelengthString(start, end int) string {
	if end < 0 || end > len(s.Wavelength) {
		end = len(s.Wavelength)
	}
	if start < 0 {
		start = 0
	}
	if start > end {
		start = end
	}

	wl := s.Wavelength[start:end]
	if len(wl) <= 10 {
		return fmt.Sprint(wl)
	}

	return fmt.Sprintf("[%v, %v, %v, ..., %v]", wl[0], wl[1], wl[2], wl[len(wl)-1])
}

func cloneRow(row []float64) []float64 {
	if row == nil {
		return nil
	}
	out := make([]float64, len(row))
	copy(out, row)
	return out
}

func cloneRows(rows [][]float64) [][]float64 {
	if rows == nil {
		return nil
	}
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = cloneRow(r)
	}
	return out
}
