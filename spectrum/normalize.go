package spectrum

// Normalize returns a copy of s with every flux row rescaled so the sample
// at the anchor index equals exactly 1. The anchor index is the first sample
// whose wavelength is >= wavelength. An anchor beyond the axis is a no-op.
//
// A zero anchor sample divides by zero and yields Inf/NaN like any IEEE
// division; the caller picks an anchor inside the emission region.
func (s *Series) Normalize(wavelength float64) *Series {
	out := s.Clone()

	idx := s.SearchWavelength(wavelength)
	if idx >= len(s.Wavelength) {
		return out
	}

	for _, row := range out.Flux {
		anchor := row[idx]
		for i := 0; i < idx; i++ {
			row[i] /= anchor
		}
		for i := idx + 1; i < len(row); i++ {
			row[i] /= anchor
		}
		row[idx] = 1
	}

	return out
}
