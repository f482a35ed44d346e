package testutil

import (
	"math"
	"math/rand"
)

// Wavelengths returns n evenly spaced wavelengths start, start+step, ...
func Wavelengths(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// SineFlux returns a positive sin-shaped continuum sampled at wl:
// offset + amplitude*sin(2*pi*wl/period).
func SineFlux(wl []float64, offset, amplitude, period float64) []float64 {
	out := make([]float64, len(wl))
	for i, w := range wl {
		out[i] = offset + amplitude*math.Sin(2*math.Pi*w/period)
	}
	return out
}

// AbsorptionLine returns a flat continuum of the given level with a
// Gaussian absorption dip of relative depth at center.
func AbsorptionLine(wl []float64, level, center, width, depth float64) []float64 {
	out := make([]float64, len(wl))
	for i, w := range wl {
		d := (w - center) / width
		out[i] = level * (1 - depth*math.Exp(-0.5*d*d))
	}
	return out
}

// PositiveNoise generates seeded uniform values in [base, base+amplitude).
func PositiveNoise(seed int64, base, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = base + rng.Float64()*amplitude
	}
	return out
}

// Ramp returns 0, 1, 2, ... n-1 as float64.
func Ramp(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

// Fill returns a slice of length n filled with value.
func Fill(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}
