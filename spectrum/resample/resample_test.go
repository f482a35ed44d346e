package resample

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-asad/internal/kernel"
	"github.com/cwbudde/algo-asad/internal/testutil"
	"github.com/cwbudde/algo-asad/spectrum"
)

func rampSeries(t *testing.T, n int) *spectrum.Series {
	t.Helper()
	s, err := spectrum.NewSeries("ramp", testutil.Ramp(n), [][]float64{testutil.Ramp(n), testutil.Fill(2, n)})
	if err != nil {
		t.Fatalf("NewSeries() error = %v", err)
	}
	return s
}

func newResampler(t *testing.T, opts ...Option) *Resampler {
	t.Helper()
	r, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r
}

func TestIdentityWhenStepUnchanged(t *testing.T) {
	s := rampSeries(t, 20)
	r := newResampler(t)

	out, err := r.Series(s, 1, ModeModel)
	if err != nil {
		t.Fatalf("Series() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, out.Wavelength, s.Wavelength, 0)
	testutil.RequireRowsNearlyEqual(t, out.Flux, s.Flux, 0)

	out.Flux[0][0] = -1
	if s.Flux[0][0] != 0 {
		t.Fatal("identity resample aliases the input")
	}
}

func TestModelWalk(t *testing.T) {
	s := rampSeries(t, 20)
	out, err := newResampler(t).Series(s, 2, ModeModel)
	if err != nil {
		t.Fatalf("Series() error = %v", err)
	}

	want := []float64{1, 3, 5, 7, 9, 11, 13, 15, 17}
	testutil.RequireSliceNearlyEqual(t, out.Wavelength, want, 1e-12)
	testutil.RequireSliceNearlyEqual(t, out.Flux[0], want, 1e-12)
	testutil.RequireSliceNearlyEqual(t, out.Flux[1], testutil.Fill(2, len(want)), 1e-12)

	if out.Step() != 2 {
		t.Fatalf("Step() = %v, want 2", out.Step())
	}
}

func TestAnchoredWalk(t *testing.T) {
	s := rampSeries(t, 20)
	out, err := newResampler(t).Series(s, 2, ModeAnchored)
	if err != nil {
		t.Fatalf("Series() error = %v", err)
	}

	want := []float64{0, 2, 4, 6, 8, 10, 12, 14}
	testutil.RequireSliceNearlyEqual(t, out.Wavelength, want, 1e-12)
	testutil.RequireSliceNearlyEqual(t, out.Flux[0], want, 1e-12)

	if out.Step() != 2 {
		t.Fatalf("Step() = %v, want override 2", out.Step())
	}
}

func TestConfigurationErrors(t *testing.T) {
	s := rampSeries(t, 20)
	r := newResampler(t)

	tests := []struct {
		name   string
		interp float64
	}{
		{name: "finer than native", interp: 0.5},
		{name: "zero", interp: 0},
		{name: "negative", interp: -3},
		{name: "fractional ratio", interp: 2.5},
		{name: "too coarse for length", interp: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Series(s, tt.interp, ModeModel); !errors.Is(err, spectrum.ErrConfiguration) {
				t.Fatalf("err = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestTruncationKeepsLegacyWalk(t *testing.T) {
	s := rampSeries(t, 20)
	out, err := newResampler(t, WithTruncation()).Series(s, 2.5, ModeModel)
	if err != nil {
		t.Fatalf("Series() error = %v", err)
	}

	// Windows of int(2*2.5-1) = 4 samples at offsets int(k*2.5).
	want := []float64{1.5, 3.5, 6.5, 8.5, 11.5, 13.5, 16.5}
	testutil.RequireSliceNearlyEqual(t, out.Flux[0], want, 1e-12)
}

func TestFloatingRatioIsSnapped(t *testing.T) {
	wl := make([]float64, 100)
	for i := range wl {
		wl[i] = 4000 + float64(i)*0.3
	}
	s, err := spectrum.NewSeries("fine", wl, [][]float64{testutil.Fill(1, 100)})
	if err != nil {
		t.Fatalf("NewSeries() error = %v", err)
	}

	out, err := newResampler(t).Series(s, 3, ModeModel)
	if err != nil {
		t.Fatalf("Series() error = %v", err)
	}
	if got := out.NumWavelengths(); got != 9 {
		t.Fatalf("NumWavelengths() = %d, want 9", got)
	}
}

func TestNativeStepOverride(t *testing.T) {
	s := rampSeries(t, 20)
	// Pretend the native step is 0.5: interp 1 is then a ratio of 2.
	out, err := newResampler(t, WithNativeStep(0.5)).Series(s, 1, ModeModel)
	if err != nil {
		t.Fatalf("Series() error = %v", err)
	}
	if got := out.NumWavelengths(); got != 9 {
		t.Fatalf("NumWavelengths() = %d, want 9", got)
	}
}

func TestModelAndObservationKeepAxes(t *testing.T) {
	r := newResampler(t)

	m := spectrum.NewModel(rampSeries(t, 20), spectrum.ExplicitAxis([]float64{7, 8}))
	mo, err := r.Model(m, 2)
	if err != nil {
		t.Fatalf("Model() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, mo.Ages(), []float64{7, 8}, 0)
	if mo.NumWavelengths() != 9 {
		t.Fatalf("model NumWavelengths() = %d, want 9", mo.NumWavelengths())
	}

	o := spectrum.NewObservation(rampSeries(t, 20), spectrum.LinearAxis(0, 0.01))
	oo, err := r.Observation(o, 2)
	if err != nil {
		t.Fatalf("Observation() error = %v", err)
	}
	if oo.NumWavelengths() != 8 || oo.Wavelength[0] != 0 {
		t.Fatalf("observation wavelength = %v", oo.Wavelength)
	}
	if oo.Reddening.Step != 0.01 {
		t.Fatalf("reddening axis lost: %#v", oo.Reddening)
	}
}

func TestOutputLenMatchesSeries(t *testing.T) {
	r := newResampler(t)
	s := rampSeries(t, 57)

	for _, mode := range []Mode{ModeModel, ModeAnchored} {
		for _, interp := range []float64{1, 2, 3, 4} {
			want, err := r.OutputLen(57, 1, interp, mode)
			if err != nil {
				t.Fatalf("OutputLen(%s, %v) error = %v", mode, interp, err)
			}
			out, err := r.Series(s, interp, mode)
			if err != nil {
				t.Fatalf("Series(%s, %v) error = %v", mode, interp, err)
			}
			if out.NumWavelengths() != want || len(out.Flux[0]) != want {
				t.Fatalf("%s interp=%v: len = %d, want %d", mode, interp, out.NumWavelengths(), want)
			}
		}
	}
}

func TestBackendsAgree(t *testing.T) {
	wl := testutil.Wavelengths(3000, 1, 300)
	s, err := spectrum.NewSeries("noise", wl, [][]float64{testutil.PositiveNoise(9, 0.5, 1, 300)})
	if err != nil {
		t.Fatalf("NewSeries() error = %v", err)
	}

	ref, err := newResampler(t, WithBackend("generic")).Series(s, 3, ModeAnchored)
	if err != nil {
		t.Fatalf("generic Series() error = %v", err)
	}

	for _, name := range kernel.Global.Names() {
		got, err := newResampler(t, WithBackend(name)).Series(s, 3, ModeAnchored)
		if err != nil {
			t.Fatalf("%s Series() error = %v", name, err)
		}
		testutil.RequireRowsNearlyEqual(t, got.Flux, ref.Flux, 0)
	}
}

func TestUnknownBackend(t *testing.T) {
	if _, err := New(WithBackend("quantum")); !errors.Is(err, spectrum.ErrConfiguration) {
		t.Fatalf("err = %v, want ErrConfiguration", err)
	}
}

func requireCongruent(t *testing.T, wl []float64, w, period float64) {
	t.Helper()
	for i, v := range wl {
		r := math.Mod(w-v, period)
		if r < 0 {
			r += period
		}
		if r > 1e-9 && period-r > 1e-9 {
			t.Fatalf("wavelength[%d] = %v not congruent to %v modulo %v", i, v, w, period)
		}
	}
}

func TestAlignThenResampleIsCongruent(t *testing.T) {
	wl := testutil.Wavelengths(4000, 1, 101)

	tests := []struct {
		mode      Mode
		wantStart float64
		wantFirst float64
	}{
		{ModeAnchored, 4001, 4001},
		{ModeModel, 4002, 4004},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			s, err := spectrum.NewSeries("grid", wl, [][]float64{testutil.Ramp(len(wl))})
			if err != nil {
				t.Fatalf("NewSeries() error = %v", err)
			}
			r := newResampler(t)

			start, err := r.Align(s, 3, 4010, tt.mode)
			if err != nil {
				t.Fatalf("Align() error = %v", err)
			}
			if start != tt.wantStart || s.Wavelength[0] != tt.wantStart {
				t.Fatalf("start = %v, first wavelength = %v, want %v", start, s.Wavelength[0], tt.wantStart)
			}

			out, err := r.Series(s, 3, tt.mode)
			if err != nil {
				t.Fatalf("Series() error = %v", err)
			}
			if out.Wavelength[0] != tt.wantFirst {
				t.Fatalf("out[0] = %v, want %v", out.Wavelength[0], tt.wantFirst)
			}
			requireCongruent(t, out.Wavelength, 4010, 3)
		})
	}
}

func TestAlignRejectsFractionalRatio(t *testing.T) {
	s := rampSeries(t, 40)
	r := newResampler(t, WithTruncation())

	before := s.NumWavelengths()
	if _, err := r.Align(s, 2.5, 7, ModeAnchored); !errors.Is(err, spectrum.ErrConfiguration) {
		t.Fatalf("err = %v, want ErrConfiguration", err)
	}
	if s.NumWavelengths() != before {
		t.Fatal("failed Align mutated the series")
	}
}
