package main

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-asad/internal/logging"
	"github.com/cwbudde/algo-asad/match"
	"github.com/cwbudde/algo-asad/spectrum"
	"github.com/cwbudde/algo-asad/spectrum/extinction"
	"github.com/cwbudde/algo-asad/spectrum/resample"
	"github.com/cwbudde/algo-asad/spectrum/table"
	"github.com/cwbudde/algo-asad/stats/fit"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// session carries the resolved configuration and the shared transforms of
// one command invocation.
type session struct {
	cfg       *Config
	log       *zap.Logger
	resampler *resample.Resampler
	corrector *extinction.Corrector
	test      fit.Test
}

func newSession(cfg *Config, log *zap.Logger) (*session, error) {
	log = logging.OrNop(log)

	var ropts []resample.Option
	ropts = append(ropts, resample.WithBackend(cfg.Backend))
	if cfg.Truncate {
		ropts = append(ropts, resample.WithTruncation())
	}
	r, err := resample.New(ropts...)
	if err != nil {
		return nil, err
	}

	c, err := extinction.New(extinction.WithBackend(cfg.Backend))
	if err != nil {
		return nil, err
	}

	test, err := fit.Lookup(cfg.Stat, fit.WithBackend(cfg.Backend))
	if err != nil {
		return nil, err
	}

	log.Debug("session ready",
		zap.String(logging.FieldBackend, r.Backend()),
		zap.String(logging.FieldStatistic, cfg.Stat),
		zap.Int(logging.FieldWorkers, cfg.Workers))

	return &session{cfg: cfg, log: log, resampler: r, corrector: c, test: test}, nil
}

// align trims series so the resampling walk of the given mode centres its
// windows on the configured grid.
func (s *session) align(series *spectrum.Series, mode resample.Mode) error {
	if s.cfg.Align <= 0 || s.cfg.Interp <= 0 {
		return nil
	}
	start, err := s.resampler.Align(series, s.cfg.Interp, s.cfg.Align, mode)
	if err != nil {
		return errors.WithMessage(err, series.Name)
	}
	s.log.Debug("aligned start wavelength",
		zap.String(logging.FieldName, series.Name),
		zap.Float64("start", start))
	return nil
}

// finish applies the common range and normalization.
func (s *session) finish(series *spectrum.Series) (*spectrum.Series, error) {
	if s.cfg.hasRange() {
		r, err := series.SetRange(s.cfg.WavelengthStart, s.cfg.WavelengthEnd)
		if err != nil {
			return nil, errors.WithMessage(err, series.Name)
		}
		series = r
	}
	if s.cfg.Normalize > 0 {
		series = series.Normalize(s.cfg.Normalize)
	}
	return series, nil
}

func (s *session) prepareModel(m *spectrum.Model) (*spectrum.Model, error) {
	m = m.Clone()
	if err := s.align(m.Series, resample.ModeModel); err != nil {
		return nil, err
	}

	if s.cfg.Interp > 0 {
		r, err := s.resampler.Model(m, s.cfg.Interp)
		if err != nil {
			return nil, err
		}
		m = r
	}

	series, err := s.finish(m.Series)
	if err != nil {
		return nil, err
	}
	return m.WithSeries(series), nil
}

func (s *session) prepareObservation(o *spectrum.Observation) (*spectrum.Observation, error) {
	o = o.Clone()
	if err := s.align(o.Series, resample.ModeAnchored); err != nil {
		return nil, err
	}

	if s.cfg.Interp > 0 {
		r, err := s.resampler.Observation(o, s.cfg.Interp)
		if err != nil {
			return nil, err
		}
		o = r
	}

	o, err := s.corrector.Expand(o, s.cfg.ReddeningStart, s.cfg.ReddeningEnd, s.cfg.ReddeningStep)
	if err != nil {
		return nil, err
	}

	series, err := s.finish(o.Series)
	if err != nil {
		return nil, err
	}
	return o.WithSeries(series), nil
}

// readModel reads the model at path in the configured format. A common
// wavelength range replaces the default GALAXEV clipping.
func (s *session) readModel(path string) (*spectrum.Model, error) {
	if s.cfg.ModelFormat == formatGalaxev {
		var opts []table.GalaxevOption
		if s.cfg.hasRange() {
			opts = append(opts, table.WithGalaxevWavelengthRange(s.cfg.WavelengthStart, s.cfg.WavelengthEnd))
		}
		return table.ReadGalaxevFile(path, opts...)
	}

	return table.ReadModelFile(path,
		table.WithAgeAxis(s.cfg.AgeStart, s.cfg.AgeStep),
		table.WithColumnStride(s.cfg.ColumnStride))
}

// load reads and prepares every model and observation file concurrently.
// Results keep the input order.
func (s *session) load(ctx context.Context, modelPaths, obsPaths []string) ([]*spectrum.Model, []*spectrum.Observation, error) {
	models := make([]*spectrum.Model, len(modelPaths))
	observations := make([]*spectrum.Observation, len(obsPaths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)

	for i, path := range modelPaths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := s.readModel(path)
			if err != nil {
				return err
			}
			m, err = s.prepareModel(m)
			if err != nil {
				return err
			}
			s.log.Info("model ready",
				zap.String(logging.FieldFile, path),
				zap.Int(logging.FieldRows, m.NumRows()),
				zap.Int(logging.FieldWavelengths, m.NumWavelengths()))
			models[i] = m
			return nil
		})
	}

	for i, path := range obsPaths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			o, err := table.ReadObservationFile(path)
			if err != nil {
				return err
			}
			o, err = s.prepareObservation(o)
			if err != nil {
				return err
			}
			s.log.Info("observation ready",
				zap.String(logging.FieldFile, path),
				zap.Int(logging.FieldRows, o.NumRows()),
				zap.Int(logging.FieldWavelengths, o.NumWavelengths()))
			observations[i] = o
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return models, observations, nil
}

// writePrepared stores every prepared series in dir as prepared_<name>.
// Existing files are never overwritten.
func (s *session) writePrepared(dir string, models []*spectrum.Model, observations []*spectrum.Observation) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create %s", dir)
	}

	write := func(name string, emit func(io.Writer) error) error {
		path := filepath.Join(dir, preparedPrefix+name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			return errors.Wrapf(err, "create %s", path)
		}
		if err := emit(f); err != nil {
			f.Close()
			return errors.Wrapf(err, "write %s", path)
		}
		if err := f.Close(); err != nil {
			return errors.Wrapf(err, "close %s", path)
		}
		s.log.Info("wrote prepared spectrum",
			zap.String(logging.FieldName, name),
			zap.String(logging.FieldFile, path))
		return nil
	}

	for _, m := range models {
		if err := write(m.Name, func(w io.Writer) error { return table.WriteModel(w, m) }); err != nil {
			return err
		}
	}
	for _, o := range observations {
		if err := write(o.Name, func(w io.Writer) error { return table.Write(w, o.Series) }); err != nil {
			return err
		}
	}
	return nil
}

// compare runs one engine per (model, observation) pair, model-major.
func (s *session) compare(models []*spectrum.Model, observations []*spectrum.Observation, each func(*match.Engine, *match.Result) error) error {
	for _, m := range models {
		for _, o := range observations {
			e, err := match.Build(o, m, s.test,
				match.WithWorkers(s.cfg.Workers),
				match.WithLogger(s.log))
			if err != nil {
				return err
			}
			res, err := e.Compute()
			if err != nil {
				return err
			}
			if err := each(e, res); err != nil {
				return err
			}
		}
	}
	return nil
}
