package spectrum

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-asad/internal/testutil"
)

func newTestSeries(t *testing.T) *Series {
	t.Helper()
	wl := testutil.Wavelengths(4000, 10, 10)
	s, err := NewSeries("test", wl, [][]float64{
		testutil.SineFlux(wl, 2, 1, 170),
		testutil.Ramp(10),
	})
	if err != nil {
		t.Fatalf("NewSeries() error = %v", err)
	}
	return s
}

func TestNewSeriesCopiesInput(t *testing.T) {
	wl := []float64{1, 2, 3}
	flux := [][]float64{{4, 5, 6}}

	s, err := NewSeries("copy", wl, flux)
	if err != nil {
		t.Fatalf("NewSeries() error = %v", err)
	}

	wl[0] = 100
	flux[0][0] = 100
	if s.Wavelength[0] != 1 || s.Flux[0][0] != 4 {
		t.Fatalf("series aliases its input: %v %v", s.Wavelength, s.Flux)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		wl   []float64
		flux [][]float64
	}{
		{name: "too short", wl: []float64{1}, flux: [][]float64{{1}}},
		{name: "not increasing", wl: []float64{1, 3, 2}, flux: [][]float64{{1, 1, 1}}},
		{name: "duplicate", wl: []float64{1, 1, 2}, flux: [][]float64{{1, 1, 1}}},
		{name: "ragged", wl: []float64{1, 2, 3}, flux: [][]float64{{1, 1, 1}, {1, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSeries(tt.name, tt.wl, tt.flux)
			if !errors.Is(err, ErrShape) {
				t.Fatalf("err = %v, want ErrShape", err)
			}
		})
	}
}

func TestStep(t *testing.T) {
	s := newTestSeries(t)
	if got := s.Step(); got != 10 {
		t.Fatalf("Step() = %v, want 10", got)
	}

	s.SetStep(3)
	if got := s.Step(); got != 3 {
		t.Fatalf("Step() after override = %v, want 3", got)
	}

	s.SetStep(0)
	if got := s.Step(); got != 10 {
		t.Fatalf("Step() after clearing = %v, want 10", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := newTestSeries(t)
	c := s.Clone()
	c.Flux[1][0] = -1
	c.Wavelength[0] = -1

	if s.Flux[1][0] != 0 || s.Wavelength[0] != 4000 {
		t.Fatal("Clone() shares storage with the original")
	}
}

func TestWavelengthString(t *testing.T) {
	s := newTestSeries(t)
	if got, want := s.WavelengthString(0, 3), "[4000 4010 4020]"; got != want {
		t.Fatalf("WavelengthString(0, 3) = %q, want %q", got, want)
	}

	wl := testutil.Wavelengths(1, 1, 20)
	long, err := NewSeries("long", wl, nil)
	if err != nil {
		t.Fatalf("NewSeries() error = %v", err)
	}
	if got, want := long.WavelengthString(0, -1), "[1, 2, 3, ..., 20]"; got != want {
		t.Fatalf("WavelengthString(0, -1) = %q, want %q", got, want)
	}
}
