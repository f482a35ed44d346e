package extinction

import (
	"math"

	"github.com/cwbudde/algo-asad/internal/kernel"
	"github.com/cwbudde/algo-asad/spectrum"
	"github.com/pkg/errors"
)

const axisTolerance = 1e-9

// Axis returns start, start+step, ... up to and including end. The last
// value is kept when it overshoots end by less than 1e-9 steps.
func Axis(start, end, step float64) ([]float64, error) {
	if !(step > 0) || math.IsInf(step, 0) {
		return nil, errors.Wrapf(spectrum.ErrConfiguration, "extinction: invalid reddening step %v", step)
	}
	if math.IsNaN(start) || math.IsNaN(end) || end < start {
		return nil, errors.Wrapf(spectrum.ErrConfiguration, "extinction: reddening range [%v, %v] is empty", start, end)
	}

	n := int(math.Floor((end-start)/step+axisTolerance)) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out, nil
}

type config struct {
	law     Law
	backend string
}

// Option configures a Corrector.
type Option func(*config)

// WithLaw replaces the CCM extinction law.
func WithLaw(law Law) Option {
	return func(cfg *config) {
		if law != nil {
			cfg.law = law
		}
	}
}

// WithBackend selects the kernel backend used for the row multiplication.
func WithBackend(name string) Option {
	return func(cfg *config) {
		cfg.backend = name
	}
}

func defaultConfig() config {
	return config{law: CCM, backend: kernel.Auto}
}

// Corrector expands observations over a reddening range.
type Corrector struct {
	law     Law
	backend *kernel.Backend
}

// New returns a Corrector.
func New(opts ...Option) (*Corrector, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	backend, err := kernel.Global.Select(cfg.backend)
	if err != nil {
		return nil, err
	}

	return &Corrector{law: cfg.law, backend: backend}, nil
}

// Backend returns the name of the kernel backend in use.
func (c *Corrector) Backend() string {
	return c.backend.Name
}

// Expand returns a copy of o with one flux row per reddening value in
// [start, end] at the given step. o must hold exactly one flux row and only
// positive wavelengths. The result carries an explicit reddening axis.
func (c *Corrector) Expand(o *spectrum.Observation, start, end, step float64) (*spectrum.Observation, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.NumRows() != 1 {
		return nil, errors.Wrapf(spectrum.ErrConfiguration,
			"extinction: %s has %d flux rows, expansion needs exactly 1", o.Name, o.NumRows())
	}
	if o.Wavelength[0] <= 0 {
		return nil, errors.Wrapf(spectrum.ErrRange,
			"extinction: %s has non-positive wavelength %v", o.Name, o.Wavelength[0])
	}

	reddening, err := Axis(start, end, step)
	if err != nil {
		return nil, errors.WithMessage(err, o.Name)
	}

	z := Curve(c.law, o.Wavelength)
	src := o.Flux[0]
	factors := make([]float64, len(src))

	out := o.Clone()
	out.Flux = make([][]float64, len(reddening))
	for j, r := range reddening {
		for i, zi := range z {
			factors[i] = Factor(zi, r)
		}
		row := make([]float64, len(src))
		c.backend.Mul(row, factors, src)
		out.Flux[j] = row
	}
	out.Reddening = spectrum.ExplicitAxis(reddening)

	return out, nil
}
