package spectrum

// Axis is a named physical parameter axis (age for models, reddening for
// observations). It is either an explicit value array or a linear
// (Start, Step) progression whose length is the owning series' row count.
type Axis struct {
	Start  float64
	Step   float64
	Values []float64
}

// LinearAxis returns an axis producing start, start+step, ...
func LinearAxis(start, step float64) Axis {
	return Axis{Start: start, Step: step}
}

// ExplicitAxis returns an axis backed by a copy of values.
func ExplicitAxis(values []float64) Axis {
	a := Axis{Values: cloneRow(values)}
	if len(values) > 0 {
		a.Start = values[0]
	}
	if len(values) > 1 {
		a.Step = values[1] - values[0]
	}
	return a
}

// IsExplicit reports whether the axis carries an explicit value array.
func (a Axis) IsExplicit() bool {
	return a.Values != nil
}

// Materialize returns n axis values. Explicit arrays are truncated to n;
// callers that need an exact length match check Len first.
func (a Axis) Materialize(n int) []float64 {
	if n <= 0 {
		return nil
	}

	if a.Values != nil {
		if len(a.Values) < n {
			n = len(a.Values)
		}
		return cloneRow(a.Values[:n])
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = a.Start + float64(i)*a.Step
	}
	return out
}

// At returns the i-th axis value. Linear axes are unbounded; explicit axes
// panic on an out-of-range index like a slice would.
func (a Axis) At(i int) float64 {
	if a.Values != nil {
		return a.Values[i]
	}
	return a.Start + float64(i)*a.Step
}

// Len returns the explicit array length, or -1 for a linear axis whose
// length follows the owning series.
func (a Axis) Len() int {
	if a.Values == nil {
		return -1
	}
	return len(a.Values)
}

// Fits reports whether the axis can index n rows.
func (a Axis) Fits(n int) bool {
	l := a.Len()
	return l < 0 || l == n
}

func (a Axis) clone() Axis {
	a.Values = cloneRow(a.Values)
	return a
}
