// Package resample converts spectra to a coarser wavelength step by boxcar
// averaging.
//
// For a native step s and a requested step interp the converter walks the
// input with stride sampleStep = interp/s and averages windows of
// nsample = 2*sampleStep - 1 consecutive samples, so neighboring windows
// overlap by one stride minus one sample.
//
// Two walk modes exist:
//
//	ModeModel     floor(W/sampleStep) - 1 outputs, windows start at 0
//	ModeAnchored  first sample kept verbatim, then floor(W/sampleStep) - 3
//	              outputs with windows starting one sample in
//
// Models use ModeModel, observations use ModeAnchored. The wavelength axis
// and every flux row go through the same walk.
//
// Step ratios within 1e-9 of an integer are snapped to it (3/0.3 is not
// exactly 10 in binary floating point). Truly fractional ratios are rejected
// with spectrum.ErrConfiguration unless WithTruncation is given, which keeps
// the historical behavior: window starts are truncated to int(k*ratio) and
// the window width to int(2*ratio - 1). That silently drops samples.
package resample
