package fit

import "math"

// Test scores how well y matches x. Lower is better.
type Test func(x, y []float64) float64

func checkLengths(name string, x, y []float64) {
	if len(x) != len(y) {
		panic("fit: " + name + " length mismatch")
	}
}

// ChiSquared returns the sum of squared differences between x and y.
func ChiSquared(x, y []float64) float64 {
	checkLengths("ChiSquared", x, y)

	var sum float64
	for i := range x {
		d := x[i] - y[i]
		// rounded product before the add (no FMA), matching the kernel backends
		sum += float64(d * d)
	}
	return sum
}

// KolmogorovSmirnov returns the two-sample KS statistic of the rows treated
// as frequency distributions: the largest absolute gap between their
// normalized cumulative sums. The result lies in [0, 1] for non-negative
// rows; a row summing to zero yields NaN.
func KolmogorovSmirnov(x, y []float64) float64 {
	checkLengths("KolmogorovSmirnov", x, y)
	if len(x) == 0 {
		return 0
	}

	var sx, sy float64
	for i := range x {
		sx += x[i]
		sy += y[i]
	}

	var cx, cy, d float64
	for i := range x {
		cx += x[i]
		cy += y[i]
		d = math.Max(d, math.Abs(cx/sx-cy/sy))
	}
	return d
}
