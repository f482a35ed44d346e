package table

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-asad/spectrum"
	"github.com/pkg/errors"
)

const maxLineBytes = 16 << 20

// grid is a parsed table in column-major order.
type grid struct {
	header  string
	columns [][]float64
}

func parse(r io.Reader, name string) (*grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLineBytes)

	g := &grid{}
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if strings.HasPrefix(text, "#") {
			if g.columns == nil && g.header == "" {
				g.header = strings.TrimSpace(strings.TrimLeft(text, "#"))
			}
			continue
		}

		fields := strings.Fields(text)
		if g.columns == nil {
			if len(fields) < 2 {
				return nil, errors.Wrapf(spectrum.ErrShape,
					"%s:%d: need a wavelength and at least one flux column, got %d fields", name, line, len(fields))
			}
			g.columns = make([][]float64, len(fields))
		}
		if len(fields) != len(g.columns) {
			return nil, errors.Wrapf(spectrum.ErrShape,
				"%s:%d: %d columns, want %d", name, line, len(fields), len(g.columns))
		}

		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, errors.Wrapf(spectrum.ErrType, "%s:%d: column %d: %q is not a number", name, line, i+1, f)
			}
			g.columns[i] = append(g.columns[i], v)
		}
	}

	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "%s: read", name)
	}
	if g.columns == nil {
		return nil, errors.Wrapf(spectrum.ErrShape, "%s: no data rows", name)
	}

	return g, nil
}

func (g *grid) series(name string, wl int, flux []int) (*spectrum.Series, error) {
	rows := make([][]float64, len(flux))
	for i, c := range flux {
		rows[i] = g.columns[c]
	}
	return spectrum.NewSeries(name, g.columns[wl], rows)
}

func (g *grid) fluxColumns(from, to int) []int {
	idx := make([]int, 0, to-from)
	for c := from; c < to; c++ {
		idx = append(idx, c)
	}
	return idx
}

// Read parses a table into a series named name.
func Read(r io.Reader, name string) (*spectrum.Series, error) {
	g, err := parse(r, name)
	if err != nil {
		return nil, err
	}
	return g.series(name, 0, g.fluxColumns(1, len(g.columns)))
}

// parseAges reads a space- or comma-separated age list.
func parseAges(header string) ([]float64, bool) {
	fields := strings.FieldsFunc(header, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, false
	}

	ages := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, false
		}
		ages[i] = v
	}
	return ages, true
}

type modelConfig struct {
	age    spectrum.Axis
	stride int
}

// ModelOption configures ReadModel.
type ModelOption func(*modelConfig)

// WithAgeAxis sets the age axis used when the table has no age header.
func WithAgeAxis(start, step float64) ModelOption {
	return func(cfg *modelConfig) {
		cfg.age = spectrum.LinearAxis(start, step)
	}
}

// WithColumnStride keeps every n-th flux column, starting with the first.
// Grids published with interleaved metallicities use a stride of 3.
func WithColumnStride(n int) ModelOption {
	return func(cfg *modelConfig) {
		if n > 0 {
			cfg.stride = n
		}
	}
}

// ReadModel parses a model grid. A leading '#' line holding one number per
// flux column becomes an explicit age axis; otherwise the configured linear
// axis (default start 6.6, step 0.05) is used.
func ReadModel(r io.Reader, name string, opts ...ModelOption) (*spectrum.Model, error) {
	cfg := modelConfig{
		age:    spectrum.LinearAxis(spectrum.DefaultAgeStart, spectrum.DefaultAgeStep),
		stride: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	g, err := parse(r, name)
	if err != nil {
		return nil, err
	}

	var flux []int
	for c := 1; c < len(g.columns); c += cfg.stride {
		flux = append(flux, c)
	}

	s, err := g.series(name, 0, flux)
	if err != nil {
		return nil, err
	}

	age := cfg.age
	if ages, ok := parseAges(g.header); ok {
		if cfg.stride > 1 && len(ages) == len(g.columns)-1 {
			kept := make([]float64, 0, len(flux))
			for _, c := range flux {
				kept = append(kept, ages[c-1])
			}
			ages = kept
		}
		if len(ages) != s.NumRows() {
			return nil, errors.Wrapf(spectrum.ErrShape,
				"%s: age header lists %d ages for %d flux columns", name, len(ages), s.NumRows())
		}
		age = spectrum.ExplicitAxis(ages)
	}

	return spectrum.NewModel(s, age), nil
}

// ReadObservation parses an observed spectrum with the default reddening
// axis (start 0, step 0.01).
func ReadObservation(r io.Reader, name string) (*spectrum.Observation, error) {
	s, err := Read(r, name)
	if err != nil {
		return nil, err
	}
	return spectrum.NewObservation(s, spectrum.LinearAxis(spectrum.DefaultReddeningStart, spectrum.DefaultReddeningStep)), nil
}

// ReadCombined parses a table holding an already expanded observation
// followed by a model: the observation wavelength, numObservation
// observation flux columns, the model wavelength and the model flux columns.
func ReadCombined(r io.Reader, name string, numObservation int) (*spectrum.Observation, *spectrum.Model, error) {
	if numObservation < 1 {
		return nil, nil, errors.Wrapf(spectrum.ErrConfiguration, "%s: need at least one observation column", name)
	}

	g, err := parse(r, name)
	if err != nil {
		return nil, nil, err
	}

	modelWL := numObservation + 1
	if len(g.columns) < modelWL+2 {
		return nil, nil, errors.Wrapf(spectrum.ErrShape,
			"%s: %d columns cannot hold %d observation columns and a model", name, len(g.columns), numObservation)
	}

	obsSeries, err := g.series(name, 0, g.fluxColumns(1, modelWL))
	if err != nil {
		return nil, nil, err
	}
	modelSeries, err := g.series(name, modelWL, g.fluxColumns(modelWL+1, len(g.columns)))
	if err != nil {
		return nil, nil, err
	}

	obs := spectrum.NewObservation(obsSeries, spectrum.LinearAxis(spectrum.DefaultReddeningStart, spectrum.DefaultReddeningStep))
	model := spectrum.NewModel(modelSeries, spectrum.LinearAxis(spectrum.DefaultAgeStart, spectrum.DefaultAgeStep))
	return obs, model, nil
}

func open(path string) (*os.File, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", errors.Wrapf(err, "open %s", path)
	}
	return f, filepath.Base(path), nil
}

// ReadFile reads the table at path. The series is named after the file.
func ReadFile(path string) (*spectrum.Series, error) {
	f, name, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f, name)
}

// ReadModelFile reads the model grid at path.
func ReadModelFile(path string, opts ...ModelOption) (*spectrum.Model, error) {
	f, name, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadModel(f, name, opts...)
}

// ReadObservationFile reads the observed spectrum at path.
func ReadObservationFile(path string) (*spectrum.Observation, error) {
	f, name, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadObservation(f, name)
}
