package extinction

import "math"

// Rv is the ratio of total to selective extinction used by CCM and Factor.
const Rv = 3.2

// Law maps a wavelength in Ångström to the extinction coefficient Z.
type Law func(wavelength float64) float64

var (
	ccmX = [8]float64{1, 0.17699, -0.50447, -0.02427, 0.72085, 0.01979, -0.77530, 0.32999}
	ccmY = [8]float64{0, 1.41338, 2.28305, 1.07233, -5.38434, -0.62251, 5.30260, -2.09002}
)

// CCM evaluates the Cardelli, Clayton & Mathis optical polynomial at the
// given wavelength: a = 1/(λ·1e-4) - 1.82, Z = X(a) + Y(a)/Rv.
func CCM(wavelength float64) float64 {
	a := 1/(wavelength*1e-4) - 1.82
	return horner(ccmX[:], a) + horner(ccmY[:], a)/Rv
}

func horner(coeffs []float64, x float64) float64 {
	var acc float64
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc = acc*x + coeffs[i]
	}
	return acc
}

// Factor returns the multiplicative reddening correction 10^(0.4·Rv·z·r).
func Factor(z, r float64) float64 {
	return math.Pow(10, 0.4*Rv*z*r)
}

// Curve evaluates law at every wavelength.
func Curve(law Law, wavelength []float64) []float64 {
	out := make([]float64, len(wavelength))
	for i, w := range wavelength {
		out[i] = law(w)
	}
	return out
}
