package resample

import (
	"math"

	"github.com/cwbudde/algo-asad/internal/kernel"
	"github.com/cwbudde/algo-asad/spectrum"
	"github.com/pkg/errors"
)

const ratioTolerance = 1e-9

// Mode selects the window walk.
type Mode int

const (
	// ModeModel averages windows starting at the first sample.
	ModeModel Mode = iota
	// ModeAnchored keeps the first sample and starts the walk one sample in.
	ModeAnchored
)

func (m Mode) String() string {
	switch m {
	case ModeModel:
		return "model"
	case ModeAnchored:
		return "anchored"
	default:
		return "unknown"
	}
}

type config struct {
	nativeStep float64
	truncate   bool
	backend    string
}

// Option configures the resampler.
type Option func(*config)

// WithNativeStep overrides the native step of every input series. By
// default the series' own Step() is used.
func WithNativeStep(step float64) Option {
	return func(cfg *config) {
		if step > 0 {
			cfg.nativeStep = step
		}
	}
}

// WithTruncation accepts fractional step ratios and truncates window
// positions and widths instead of rejecting them.
func WithTruncation() Option {
	return func(cfg *config) {
		cfg.truncate = true
	}
}

// WithBackend selects the kernel backend by name ("auto", "generic",
// "vecmath").
func WithBackend(name string) Option {
	return func(cfg *config) {
		cfg.backend = name
	}
}

func defaultConfig() config {
	return config{backend: kernel.Auto}
}

// Resampler is a boxcar step-size converter. It is stateless after
// construction and safe for concurrent use.
type Resampler struct {
	nativeStep float64
	truncate   bool
	backend    *kernel.Backend
}

// New creates a Resampler.
func New(opts ...Option) (*Resampler, error) {
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

	return &Resampler{
		nativeStep: cfg.nativeStep,
		truncate:   cfg.truncate,
		backend:    backend,
	}, nil
}

// Backend returns the name of the kernel backend in use.
func (r *Resampler) Backend() string {
	return r.backend.Name
}

// plan is the resolved walk geometry for one conversion.
type plan struct {
	ratio   float64
	stride  int
	width   int
	count   int
	anchor  bool
	integer bool
}

func (p plan) offset(k int) int {
	if p.integer {
		return k * p.stride
	}
	return int(float64(k) * p.ratio)
}

func (r *Resampler) plan(w int, native, interp float64, mode Mode) (plan, error) {
	if !(native > 0) || math.IsInf(native, 0) {
		return plan{}, errors.Wrapf(spectrum.ErrConfiguration, "resample: invalid native step %v", native)
	}
	if !(interp > 0) || math.IsInf(interp, 0) {
		return plan{}, errors.Wrapf(spectrum.ErrConfiguration, "resample: invalid interpolation step %v", interp)
	}
	if interp < native {
		return plan{}, errors.Wrapf(spectrum.ErrConfiguration,
			"resample: interpolation step %v is finer than native step %v", interp, native)
	}

	p := plan{ratio: interp / native, anchor: mode == ModeAnchored}

	if rounded := math.Round(p.ratio); math.Abs(p.ratio-rounded) <= ratioTolerance*rounded {
		p.ratio = rounded
		p.integer = true
		p.stride = int(rounded)
		p.width = 2*p.stride - 1
	} else {
		if !r.truncate {
			return plan{}, errors.Wrapf(spectrum.ErrConfiguration,
				"resample: step ratio %v/%v = %v is not an integer", interp, native, p.ratio)
		}
		p.stride = int(p.ratio)
		p.width = int(2*p.ratio - 1)
	}

	blocks := int(float64(w) / p.ratio)
	if p.anchor {
		p.count = blocks - 3
	} else {
		p.count = blocks - 1
	}

	if p.count <= 0 {
		return plan{}, errors.Wrapf(spectrum.ErrConfiguration,
			"resample: %d samples too short for step ratio %v", w, p.ratio)
	}

	return p, nil
}

func sameStep(interp, native float64) bool {
	return interp == native || math.Abs(interp/native-1) <= ratioTolerance
}

// walk applies the plan to one row.
func (r *Resampler) walk(p plan, src []float64) []float64 {
	body := src
	out := make([]float64, 0, p.count+1)
	if p.anchor {
		out = append(out, src[0])
		body = src[1:]
	}

	for k := 0; k < p.count; k++ {
		out = append(out, r.backend.WindowMean(body, p.offset(k), p.width))
	}

	return out
}

// Series converts s to step interp. When interp equals the native step the
// result is an unchanged copy. The output step is interp.
func (r *Resampler) Series(s *spectrum.Series, interp float64, mode Mode) (*spectrum.Series, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	native := r.nativeStep
	if native <= 0 {
		native = s.Step()
	}

	if sameStep(interp, native) {
		return s.Clone(), nil
	}

	p, err := r.plan(s.NumWavelengths(), native, interp, mode)
	if err != nil {
		return nil, errors.WithMessage(err, s.Name)
	}

	out := &spectrum.Series{
		Name:       s.Name,
		Wavelength: r.walk(p, s.Wavelength),
		Flux:       make([][]float64, s.NumRows()),
	}
	for i, row := range s.Flux {
		out.Flux[i] = r.walk(p, row)
	}
	out.SetStep(interp)

	return out, nil
}

// Model converts every age row of m with the model walk.
func (r *Resampler) Model(m *spectrum.Model, interp float64) (*spectrum.Model, error) {
	s, err := r.Series(m.Series, interp, ModeModel)
	if err != nil {
		return nil, err
	}
	return m.WithSeries(s), nil
}

// Observation converts o with the anchored walk.
func (r *Resampler) Observation(o *spectrum.Observation, interp float64) (*spectrum.Observation, error) {
	s, err := r.Series(o.Series, interp, ModeAnchored)
	if err != nil {
		return nil, err
	}
	return o.WithSeries(s), nil
}

// Align trims s in place so that a later walk in the given mode at step
// interp centres every window (and, in anchored mode, the kept first
// sample) on a wavelength congruent to w modulo interp. It returns the new
// start wavelength. Fractional step ratios cannot be aligned.
func (r *Resampler) Align(s *spectrum.Series, interp, w float64, mode Mode) (float64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}

	native := r.nativeStep
	if native <= 0 {
		native = s.Step()
	}

	if sameStep(interp, native) {
		return s.RestrictStartCongruent(interp, w, 0)
	}

	p, err := r.plan(s.NumWavelengths(), native, interp, mode)
	if err != nil {
		return 0, errors.WithMessage(err, s.Name)
	}
	if !p.integer {
		return 0, errors.Wrapf(spectrum.ErrConfiguration,
			"resample: %s: cannot align fractional step ratio %v", s.Name, p.ratio)
	}

	// Anchored windows are centred at stride, 2*stride, ... from the start;
	// model windows at stride-1, 2*stride-1, ...
	lead := p.stride
	if mode == ModeModel {
		lead = p.stride - 1
	}
	return s.RestrictStartCongruent(interp, w, lead)
}

// OutputLen predicts the number of samples Series would produce for w input
// samples, or an error for invalid settings.
func (r *Resampler) OutputLen(w int, native, interp float64, mode Mode) (int, error) {
	if sameStep(interp, native) {
		return w, nil
	}

	p, err := r.plan(w, native, interp, mode)
	if err != nil {
		return 0, err
	}

	if p.anchor {
		return p.count + 1, nil
	}
	return p.count, nil
}
