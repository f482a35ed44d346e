package testutil

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if diff := math.Abs(got[i] - want[i]); diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireRowsNearlyEqual is RequireSliceNearlyEqual applied to every row of
// a flux matrix.
func RequireRowsNearlyEqual(t *testing.T, got, want [][]float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("row count mismatch: got %d, want %d", len(got), len(want))
	}
	for r := range got {
		if len(got[r]) != len(want[r]) {
			t.Fatalf("row %d: length mismatch: got %d, want %d", r, len(got[r]), len(want[r]))
		}
		for i := range got[r] {
			if diff := math.Abs(got[r][i] - want[r][i]); diff > eps {
				t.Fatalf("row %d index %d: got %v, want %v (diff %v > eps %v)", r, i, got[r][i], want[r][i], diff, eps)
			}
		}
	}
}

// RequireFinite fails t if any element of any row is NaN or Inf.
func RequireFinite(t *testing.T, rows ...[]float64) {
	t.Helper()
	for r, row := range rows {
		for i, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("row %d index %d: non-finite value %v", r, i, v)
			}
		}
	}
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, errors.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		maxDiff = math.Max(maxDiff, math.Abs(a[i]-b[i]))
	}
	return maxDiff, nil
}
