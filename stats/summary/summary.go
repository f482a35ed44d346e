// Package summary computes descriptive statistics of flux rows and
// residuals.
package summary

import "math"

// Stats holds descriptive statistics of one sample row.
type Stats struct {
	Length   int
	Mean     float64
	RMS      float64
	Min      float64
	MinPos   int
	Max      float64
	MaxPos   int
	MaxAbs   float64 // max(|max|, |min|)
	Range    float64 // max - min
	Variance float64 // population variance
	StdDev   float64
	Skewness float64
	Kurtosis float64 // excess kurtosis
}

// Accumulator collects statistics over one or more blocks of samples. It
// processes each sample individually, so feeding a row in blocks gives the
// same result as Calculate on the whole row.
type Accumulator struct {
	n      int
	mean   float64
	m2     float64
	m3     float64
	m4     float64
	sumSq  float64
	minVal float64
	minPos int
	maxVal float64
	maxPos int
}

// Update adds samples.
func (a *Accumulator) Update(samples []float64) {
	for _, x := range samples {
		a.n++
		ni := float64(a.n)

		// Welford update; M4 before M3 before M2.
		delta := x - a.mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(a.n-1)

		a.m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*a.m2 - 4*deltaN*a.m3
		a.m3 += term1*deltaN*(float64(a.n-1)-1) - 3*deltaN*a.m2
		a.m2 += term1
		a.mean += deltaN

		a.sumSq += x * x

		if a.n == 1 || x < a.minVal {
			a.minVal, a.minPos = x, a.n-1
		}
		if a.n == 1 || x > a.maxVal {
			a.maxVal, a.maxPos = x, a.n-1
		}
	}
}

// Result returns the statistics of every sample seen so far. An empty
// accumulator returns the zero Stats.
func (a *Accumulator) Result() Stats {
	if a.n == 0 {
		return Stats{}
	}

	nf := float64(a.n)
	variance := a.m2 / nf

	var skewness, kurtosis float64
	if variance > 0 {
		skewness = (a.m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (a.m4/nf)/(variance*variance) - 3
	}

	return Stats{
		Length:   a.n,
		Mean:     a.mean,
		RMS:      math.Sqrt(a.sumSq / nf),
		Min:      a.minVal,
		MinPos:   a.minPos,
		Max:      a.maxVal,
		MaxPos:   a.maxPos,
		MaxAbs:   math.Max(math.Abs(a.maxVal), math.Abs(a.minVal)),
		Range:    a.maxVal - a.minVal,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
		Skewness: skewness,
		Kurtosis: kurtosis,
	}
}

// Calculate returns the statistics of row.
func Calculate(row []float64) Stats {
	var a Accumulator
	a.Update(row)
	return a.Result()
}

// Difference returns a[i] - b[i]. It panics if the lengths differ.
func Difference(a, b []float64) []float64 {
	if len(a) != len(b) {
		panic("summary: Difference length mismatch")
	}
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}
