package kernel

import (
	"testing"

	"github.com/cwbudde/algo-asad/internal/testutil"
)

func TestBackendParity(t *testing.T) {
	ref, ok := Global.ByName("generic")
	if !ok {
		t.Fatal("generic backend missing")
	}

	for _, n := range []int{0, 1, 3, 8, 17, 1000, 4099} {
		x := testutil.PositiveNoise(int64(n)+1, 0, 2, n)
		y := testutil.PositiveNoise(int64(n)+2, 0, 2, n)

		wantMul := make([]float64, n)
		ref.Mul(wantMul, x, y)
		wantDist := ref.SquaredDistance(x, y)

		for _, b := range Global.ListEntries() {
			got := make([]float64, n)
			b.Mul(got, x, y)
			testutil.RequireSliceNearlyEqual(t, got, wantMul, 0)

			if d := b.SquaredDistance(x, y); d != wantDist {
				t.Fatalf("%s: SquaredDistance(n=%d) = %v, want %v", b.Name, n, d, wantDist)
			}
		}
	}
}

func TestSquaredDistanceKnownValue(t *testing.T) {
	for _, b := range Global.ListEntries() {
		if got := b.SquaredDistance([]float64{1, 2, 3}, []float64{1, 4, 0}); got != 13 {
			t.Fatalf("%s: SquaredDistance = %v, want 13", b.Name, got)
		}
	}
}

func TestWindowMean(t *testing.T) {
	src := testutil.Ramp(10)
	for _, b := range Global.ListEntries() {
		if got := b.WindowMean(src, 2, 5); got != 4 {
			t.Fatalf("%s: WindowMean = %v, want 4", b.Name, got)
		}
	}
}

func TestMulLengthMismatchPanics(t *testing.T) {
	ref, _ := Global.ByName("generic")
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for mismatched lengths")
		}
	}()
	ref.Mul(make([]float64, 2), []float64{1}, []float64{1, 2})
}

func BenchmarkSquaredDistance(b *testing.B) {
	x := testutil.PositiveNoise(1, 0, 1, 2048)
	y := testutil.PositiveNoise(2, 0, 1, 2048)

	for _, backend := range Global.ListEntries() {
		b.Run(backend.Name, func(b *testing.B) {
			b.SetBytes(int64(len(x) * 8 * 2))
			for i := 0; i < b.N; i++ {
				backend.SquaredDistance(x, y)
			}
		})
	}
}
