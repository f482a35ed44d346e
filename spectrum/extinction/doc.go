// Package extinction applies interstellar reddening to observed spectra.
//
// An observation with a single flux row is expanded into one row per
// reddening value R. Each sample is scaled by 10^(0.4 * Rv * Z(λ) * R),
// where Z is the extinction law evaluated at the sample wavelength. The
// default law is the Cardelli, Clayton & Mathis (1989) optical/NIR
// polynomial with Rv = 3.2.
package extinction
