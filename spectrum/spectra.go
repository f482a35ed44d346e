package spectrum

// Defaults for the parameter axes when a loader does not supply them.
const (
	DefaultAgeStart       = 6.6
	DefaultAgeStep        = 0.05
	DefaultReddeningStart = 0.0
	DefaultReddeningStep  = 0.01
)

// Model is a grid of synthetic spectra, one flux row per age value.
type Model struct {
	*Series

	Age Axis
}

// NewModel pairs s with an age axis.
func NewModel(s *Series, age Axis) *Model {
	return &Model{Series: s, Age: age}
}

// Ages materializes one age value per flux row.
func (m *Model) Ages() []float64 {
	return m.Age.Materialize(m.NumRows())
}

// Clone returns a deep copy of m.
func (m *Model) Clone() *Model {
	return &Model{Series: m.Series.Clone(), Age: m.Age.clone()}
}

// WithSeries returns a model sharing m's age axis (copied) with s as data.
func (m *Model) WithSeries(s *Series) *Model {
	return &Model{Series: s, Age: m.Age.clone()}
}

// Normalize returns a copy of m normalized at the given anchor wavelength.
func (m *Model) Normalize(wavelength float64) *Model {
	return m.WithSeries(m.Series.Normalize(wavelength))
}

// Observation is an observed spectrum. It starts with a single flux row and
// is expanded into one row per reddening value by an extinction corrector.
type Observation struct {
	*Series

	Reddening Axis
}

// NewObservation pairs s with a reddening axis.
func NewObservation(s *Series, reddening Axis) *Observation {
	return &Observation{Series: s, Reddening: reddening}
}

// Reddenings materializes one reddening value per flux row.
func (o *Observation) Reddenings() []float64 {
	return o.Reddening.Materialize(o.NumRows())
}

// Clone returns a deep copy of o.
func (o *Observation) Clone() *Observation {
	return &Observation{Series: o.Series.Clone(), Reddening: o.Reddening.clone()}
}

// WithSeries returns an observation sharing o's reddening axis (copied)
// with s as data.
func (o *Observation) WithSeries(s *Series) *Observation {
	return &Observation{Series: s, Reddening: o.Reddening.clone()}
}

// Normalize returns a copy of o normalized at the given anchor wavelength.
func (o *Observation) Normalize(wavelength float64) *Observation {
	return o.WithSeries(o.Series.Normalize(wavelength))
}
