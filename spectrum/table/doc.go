// Package table reads and writes spectra as whitespace-separated text.
//
// A table has one line per wavelength sample: the wavelength in the first
// column followed by one flux column per spectrum variant. Blank lines and
// lines starting with '#' are ignored, except that a model table may start
// with a '#' line listing one age per flux column.
//
// ReadGalaxev reads the counted block layout of GALAXEV ASCII model dumps.
package table
