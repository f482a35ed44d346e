package match

import (
	"math"
	"time"

	"github.com/cwbudde/algo-asad/internal/logging"
	"github.com/cwbudde/algo-asad/spectrum"
	"github.com/cwbudde/algo-asad/stats/fit"
	"github.com/cwbudde/algo-asad/stats/summary"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Engine owns one observation/model comparison. The zero value is an
// uninitialized engine; use Build, or Bind on a zero Engine.
//
// An Engine is not safe for concurrent use. The bound series are treated
// as read-only for as long as they are bound.
type Engine struct {
	cfg   config
	name  string
	obs   *spectrum.Observation
	model *spectrum.Model
	test  fit.Test

	state  State
	result *Result
}

// Build returns an engine bound to obs, model and test.
func Build(obs *spectrum.Observation, model *spectrum.Model, test fit.Test, opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	cfg.finalized()

	e := &Engine{cfg: cfg}
	if err := e.Bind(obs, model, test); err != nil {
		return nil, err
	}
	return e, nil
}

// Bind replaces the observation, model and test, discarding any previous
// result. On error the engine is unchanged.
func (e *Engine) Bind(obs *spectrum.Observation, model *spectrum.Model, test fit.Test) error {
	switch {
	case obs == nil || obs.Series == nil:
		return errors.Wrap(spectrum.ErrConfiguration, "match: nil observation")
	case model == nil || model.Series == nil:
		return errors.Wrap(spectrum.ErrConfiguration, "match: nil model")
	case test == nil:
		return errors.Wrap(spectrum.ErrConfiguration, "match: nil statistical test")
	}

	if e.cfg.log == nil {
		e.cfg = defaultConfig()
	}

	e.obs, e.model, e.test = obs, model, test
	e.name = e.cfg.name
	if e.name == "" {
		e.name = obs.Name + "_" + model.Name
	}
	e.state = StateBound
	e.result = nil
	return nil
}

// Name returns the comparison name.
func (e *Engine) Name() string { return e.name }

// State returns the lifecycle stage.
func (e *Engine) State() State { return e.state }

// Result returns the last computed result, or nil.
func (e *Engine) Result() *Result { return e.result }

func (e *Engine) check() error {
	if e.state == StateUninitialized {
		return ErrNotBound
	}

	if err := e.obs.Validate(); err != nil {
		return err
	}
	if err := e.model.Validate(); err != nil {
		return err
	}

	if wo, wm := e.obs.NumWavelengths(), e.model.NumWavelengths(); wo != wm {
		return errors.Wrapf(spectrum.ErrAlignment,
			"match: %s has %d wavelengths, model %s has %d", e.obs.Name, wo, e.model.Name, wm)
	}

	if e.obs.NumRows() == 0 || e.model.NumRows() == 0 {
		return errors.Wrapf(spectrum.ErrConfiguration,
			"match: %d observation rows, %d model rows", e.obs.NumRows(), e.model.NumRows())
	}
	if !e.obs.Reddening.Fits(e.obs.NumRows()) {
		return errors.Wrapf(spectrum.ErrConfiguration,
			"match: reddening axis has %d values for %d rows", e.obs.Reddening.Len(), e.obs.NumRows())
	}
	if !e.model.Age.Fits(e.model.NumRows()) {
		return errors.Wrapf(spectrum.ErrConfiguration,
			"match: age axis has %d values for %d rows", e.model.Age.Len(), e.model.NumRows())
	}

	return nil
}

// Compute evaluates the statistic matrix and the best match. It may be
// called again to recompute. If a precondition fails, no statistic is
// evaluated and the previous result is kept.
func (e *Engine) Compute() (*Result, error) {
	log := logging.OrNop(e.cfg.log).With(zap.String(logging.FieldName, e.name))
	if err := e.check(); err != nil {
		log.Debug("precondition failed",
			zap.Stringer(logging.FieldState, e.state),
			zap.NamedError(logging.FieldError, err))
		return nil, errors.WithMessage(err, e.name)
	}

	rows, cols := e.obs.NumRows(), e.model.NumRows()
	log.Debug("computing statistic matrix",
		zap.Int(logging.FieldRows, rows),
		zap.Int(logging.FieldColumns, cols),
		zap.Int(logging.FieldWavelengths, e.obs.NumWavelengths()),
		zap.Int(logging.FieldWorkers, e.cfg.workers))

	start := time.Now()
	stat := make([][]float64, rows)
	for r := range stat {
		stat[r] = make([]float64, cols)
	}

	if err := e.fill(stat); err != nil {
		return nil, errors.WithMessage(err, e.name)
	}

	chosen, minRow, minCol := reduce(stat)
	res := &Result{
		Name:           e.name,
		Stat:           stat,
		ChosenModel:    chosen,
		MinObservation: minRow,
		MinModel:       minCol,
		MinStat:        stat[minRow][minCol],
		MinAge:         e.model.Age.At(minCol),
		MinReddening:   e.obs.Reddening.At(minRow),
	}

	e.result = res
	e.state = StateComputed

	log.Info("computed best match",
		zap.Float64(logging.FieldMinStat, res.MinStat),
		zap.Float64(logging.FieldMinAge, res.MinAge),
		zap.Float64(logging.FieldMinReddening, res.MinReddening),
		zap.Stringer(logging.FieldState, e.state),
		zap.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))

	return res, nil
}

// fill writes every cell of stat exactly once.
func (e *Engine) fill(stat [][]float64) error {
	if e.cfg.workers < 2 || len(stat) < 2 {
		for r := range stat {
			e.fillRow(stat[r], r)
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(e.cfg.workers)
	for r := range stat {
		g.Go(func() error {
			e.fillRow(stat[r], r)
			return nil
		})
	}
	return g.Wait()
}

func (e *Engine) fillRow(dst []float64, r int) {
	x := e.obs.Flux[r]
	for a, y := range e.model.Flux {
		dst[a] = e.test(x, y)
	}
}

// ErrorRegion returns every cell whose statistic lies strictly within delta
// of the minimum, in row-major order.
func (e *Engine) ErrorRegion(delta float64) ([]Candidate, error) {
	if e.state != StateComputed {
		return nil, ErrNotComputed
	}
	if math.IsNaN(delta) || delta < 0 {
		return nil, errors.Wrapf(spectrum.ErrConfiguration, "match: invalid delta %v", delta)
	}

	res := e.result
	var out []Candidate
	for r, row := range res.Stat {
		for a, v := range row {
			if withinDelta(v, res.MinStat, delta) {
				out = append(out, Candidate{
					Reddening: e.obs.Reddening.At(r),
					Age:       e.model.Age.At(a),
					Stat:      v,
					Row:       r,
					Col:       a,
				})
			}
		}
	}

	e.cfg.log.Debug("error region",
		zap.String(logging.FieldName, e.name),
		zap.Float64(logging.FieldDelta, delta),
		zap.Int(logging.FieldCount, len(out)))

	return out, nil
}

// withinDelta reports |v-minimum| < delta. Cells equal to an infinite
// minimum count as distance zero.
func withinDelta(v, minimum, delta float64) bool {
	if v == minimum {
		return delta > 0
	}
	return math.Abs(v-minimum) < delta
}

// Residual returns model minus observation for the best match.
func (e *Engine) Residual() (*Residual, error) {
	if e.state != StateComputed {
		return nil, ErrNotComputed
	}

	diff := summary.Difference(e.model.Flux[e.result.MinModel], e.obs.Flux[e.result.MinObservation])
	return &Residual{
		Wavelength: append([]float64(nil), e.model.Wavelength...),
		Diff:       diff,
		Summary:    summary.Calculate(diff),
	}, nil
}
