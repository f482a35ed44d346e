// Package fit provides goodness-of-fit statistics for comparing two spectra
// sampled on the same wavelength grid.
//
// Every statistic has the signature Test: it takes two equal-length flux
// rows and returns a non-negative score where lower means a better match.
// Passing rows of different length is a programming error and panics.
package fit
