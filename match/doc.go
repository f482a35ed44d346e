// Package match compares an observed spectrum against a grid of model
// spectra.
//
// An Engine is bound to one Observation (one flux row per reddening value)
// and one Model (one flux row per age). Compute evaluates a fit.Test for
// every (reddening, age) pair, then picks the best age per reddening row and
// the best row overall. Rows may be evaluated by a bounded worker pool; the
// reduction always scans the finished matrix in row-major order, so the
// result does not depend on the number of workers.
package match
