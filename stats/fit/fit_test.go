package fit

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/cwbudde/algo-asad/internal/kernel"
	"github.com/cwbudde/algo-asad/internal/testutil"
	"github.com/cwbudde/algo-asad/spectrum"
)

func rows() ([]float64, []float64) {
	wl := testutil.Wavelengths(4000, 10, 128)
	return testutil.SineFlux(wl, 2, 0.5, 300), testutil.AbsorptionLine(wl, 2, 4600, 40, 0.8)
}

func TestChiSquaredKnownValue(t *testing.T) {
	got := ChiSquared([]float64{1, 2, 3}, []float64{1, 4, 6})
	if got != 13 {
		t.Fatalf("ChiSquared() = %v, want 13", got)
	}
}

func TestStatisticProperties(t *testing.T) {
	x, y := rows()

	tests := []struct {
		name string
		fn   Test
		max  float64
	}{
		{name: "chi-squared", fn: ChiSquared, max: math.Inf(1)},
		{name: "ks", fn: KolmogorovSmirnov, max: 1},
		{name: "xcorr", fn: CrossCorrelation, max: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(x, x); math.Abs(got) > 1e-12 {
				t.Fatalf("self score = %v, want 0", got)
			}

			xy, yx := tt.fn(x, y), tt.fn(y, x)
			if !(xy > 0) {
				t.Fatalf("score of distinct rows = %v, want > 0", xy)
			}
			if xy > tt.max {
				t.Fatalf("score = %v, above %v", xy, tt.max)
			}
			if math.Abs(xy-yx) > 1e-12*math.Max(1, xy) {
				t.Fatalf("not symmetric: %v vs %v", xy, yx)
			}
		})
	}
}

func TestKolmogorovSmirnovRange(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		x := testutil.PositiveNoise(seed, 0, 1, 50)
		y := testutil.PositiveNoise(seed+100, 0, 1, 50)
		if d := KolmogorovSmirnov(x, y); d < 0 || d > 1 {
			t.Fatalf("seed %d: KS = %v outside [0, 1]", seed, d)
		}
	}

	// All mass at opposite ends.
	if d := KolmogorovSmirnov([]float64{1, 0, 0}, []float64{0, 0, 1}); d != 1 {
		t.Fatalf("KS = %v, want 1", d)
	}
}

func TestKolmogorovSmirnovZeroTotal(t *testing.T) {
	if d := KolmogorovSmirnov([]float64{0, 0}, []float64{1, 1}); !math.IsNaN(d) {
		t.Fatalf("KS = %v, want NaN", d)
	}
}

func TestCrossCorrelationMatchesDirect(t *testing.T) {
	x, y := rows()

	fft, err := correlateFFT(x, y)
	if err != nil {
		t.Fatalf("correlateFFT() error = %v", err)
	}
	direct := correlateDirect(x, y)

	peak := func(v []float64) float64 {
		p := math.Inf(-1)
		for _, c := range v {
			p = math.Max(p, c)
		}
		return p
	}
	if d := math.Abs(peak(fft) - peak(direct)); d > 1e-9 {
		t.Fatalf("peak mismatch: fft %v, direct %v", peak(fft), peak(direct))
	}
}

func TestCrossCorrelationShift(t *testing.T) {
	x := make([]float64, 64)
	y := make([]float64, 64)
	x[10], y[20] = 1, 1

	if got := CrossCorrelation(x, y); math.Abs(got) > 1e-9 {
		t.Fatalf("shifted impulse score = %v, want 0", got)
	}
	if got := CrossCorrelation(x, make([]float64, 64)); got != 1 {
		t.Fatalf("zero row score = %v, want 1", got)
	}
}

func TestLengthMismatchPanics(t *testing.T) {
	for _, fn := range []Test{ChiSquared, KolmogorovSmirnov, CrossCorrelation} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()
			fn([]float64{1, 2}, []float64{1})
		}()
	}
}

func TestLookup(t *testing.T) {
	x, y := rows()

	for _, name := range []string{"chi-squared", "CHI2", " ks ", "xcorr", "kolmogorov-smirnov"} {
		fn, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q) error = %v", name, err)
		}
		_ = fn(x, y)
	}

	chi, err := Lookup(NameChiSquared, WithBackend("generic"))
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if got, want := chi(x, y), ChiSquared(x, y); got != want {
		t.Fatalf("generic backend chi-squared = %v, want %v", got, want)
	}

	if _, err := Lookup("anova"); !errors.Is(err, ErrUnknownTest) || !errors.Is(err, spectrum.ErrConfiguration) {
		t.Fatalf("err = %v, want ErrUnknownTest", err)
	}
	if _, err := Lookup(NameKS, WithBackend("quantum")); !errors.Is(err, spectrum.ErrConfiguration) {
		t.Fatalf("err = %v, want ErrConfiguration", err)
	}
}

func TestChiSquaredBitIdenticalAcrossBackends(t *testing.T) {
	x := testutil.PositiveNoise(7, 1, 0.3, 517)
	y := testutil.PositiveNoise(8, 1, 0.3, 517)
	want := ChiSquared(x, y)

	for _, name := range kernel.Global.Names() {
		chi, err := Lookup(NameChiSquared, WithBackend(name))
		if err != nil {
			t.Fatalf("Lookup(%s) error = %v", name, err)
		}
		if got := chi(x, y); got != want {
			t.Fatalf("%s: chi-squared = %v, want %v", name, got, want)
		}
	}
}

func TestNames(t *testing.T) {
	got := Names()
	want := []string{"chi-squared", "ks", "xcorr"}
	if !slices.Equal(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
}

func BenchmarkStatistics(b *testing.B) {
	x, y := rows()
	for _, name := range Names() {
		fn, _ := Lookup(name)
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = fn(x, y)
			}
		})
	}
}
