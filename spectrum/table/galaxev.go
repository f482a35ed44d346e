package table

import (
	"bufio"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-asad/spectrum"
	"github.com/pkg/errors"
)

// Clipping applied to GALAXEV grids built on the Padova isochrones.
const (
	GalaxevWavelengthStart = 3322.0
	GalaxevWavelengthEnd   = 9300.0
	GalaxevAgeStart        = 6.2
	GalaxevAgeEnd          = 10.1
)

const (
	galaxevAgeScale   = 100 // log10 ages are rounded to two digits
	galaxevSkipLines  = 6
	galaxevCountLimit = 1 << 24
)

type galaxevConfig struct {
	ageStart, ageEnd float64
	wlStart, wlEnd   float64
}

// GalaxevOption configures ReadGalaxev.
type GalaxevOption func(*galaxevConfig)

// WithGalaxevAgeRange keeps the ages from the first one >= start up to and
// including the first one >= end (log10 years).
func WithGalaxevAgeRange(start, end float64) GalaxevOption {
	return func(cfg *galaxevConfig) {
		cfg.ageStart, cfg.ageEnd = start, end
	}
}

// WithGalaxevWavelengthRange sets the wavelength range the grid is
// restricted to, with the same inclusive rule as Series.SetRange.
func WithGalaxevWavelengthRange(start, end float64) GalaxevOption {
	return func(cfg *galaxevConfig) {
		cfg.wlStart, cfg.wlEnd = start, end
	}
}

// galaxevReader walks the mixed line and token layout of a GALAXEV ASCII
// dump.
type galaxevReader struct {
	name string
	br   *bufio.Reader
	line int
}

func (g *galaxevReader) readLine() (string, error) {
	text, err := g.br.ReadString('\n')
	if err == io.EOF && text != "" {
		err = nil
	}
	if err == io.EOF {
		return "", errors.Wrapf(spectrum.ErrShape, "%s:%d: unexpected end of file", g.name, g.line)
	}
	if err != nil {
		return "", errors.Wrapf(err, "%s: read", g.name)
	}
	g.line++
	return text, nil
}

func (g *galaxevReader) floatLine() ([]float64, error) {
	text, err := g.readLine()
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(text)
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, errors.Wrapf(spectrum.ErrType, "%s:%d: %q is not a number", g.name, g.line, f)
		}
		out[i] = v
	}
	return out, nil
}

// block reads a count followed by that many values, continued over as many
// lines as needed.
func (g *galaxevReader) block(what string) ([]float64, error) {
	first, err := g.floatLine()
	if err != nil {
		return nil, err
	}
	if len(first) == 0 {
		return nil, errors.Wrapf(spectrum.ErrShape, "%s:%d: missing %s count", g.name, g.line, what)
	}
	n, err := count(first[0])
	if err != nil {
		return nil, errors.WithMessagef(err, "%s:%d: %s", g.name, g.line, what)
	}

	values := first[1:]
	for len(values) < n {
		more, err := g.floatLine()
		if err != nil {
			return nil, err
		}
		values = append(values, more...)
	}
	if len(values) != n {
		return nil, errors.Wrapf(spectrum.ErrShape, "%s:%d: %s block holds %d values, header says %d",
			g.name, g.line, what, len(values), n)
	}
	return values, nil
}

func count(v float64) (int, error) {
	if v < 0 || v > galaxevCountLimit || v != math.Trunc(v) {
		return 0, errors.Wrapf(spectrum.ErrShape, "invalid count %v", v)
	}
	return int(v), nil
}

type tokens struct {
	name string
	sc   *bufio.Scanner
}

func (t *tokens) float() (float64, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return 0, errors.Wrapf(err, "%s: read", t.name)
		}
		return 0, errors.Wrapf(spectrum.ErrShape, "%s: flux section ends early", t.name)
	}
	v, err := strconv.ParseFloat(t.sc.Text(), 64)
	if err != nil {
		return 0, errors.Wrapf(spectrum.ErrType, "%s: %q is not a number", t.name, t.sc.Text())
	}
	return v, nil
}

func (t *tokens) count() (int, error) {
	v, err := t.float()
	if err != nil {
		return 0, err
	}
	n, err := count(v)
	return n, errors.WithMessage(err, t.name)
}

// ReadGalaxev parses a GALAXEV ASCII model grid: a counted list of ages in
// years, six descriptive lines, a counted wavelength list, then for every
// age a counted flux list followed by a counted list of extra values that is
// skipped. Ages become log10 values rounded to two digits; spectra with a
// non-positive age are dropped. The grid is clipped to the configured age
// and wavelength ranges (Padova defaults).
func ReadGalaxev(r io.Reader, name string, opts ...GalaxevOption) (*spectrum.Model, error) {
	cfg := galaxevConfig{
		ageStart: GalaxevAgeStart,
		ageEnd:   GalaxevAgeEnd,
		wlStart:  GalaxevWavelengthStart,
		wlEnd:    GalaxevWavelengthEnd,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	g := &galaxevReader{name: name, br: bufio.NewReader(r)}

	years, err := g.block("age")
	if err != nil {
		return nil, err
	}
	for range galaxevSkipLines {
		if _, err := g.readLine(); err != nil {
			return nil, err
		}
	}
	wavelength, err := g.block("wavelength")
	if err != nil {
		return nil, err
	}

	sc := bufio.NewScanner(g.br)
	sc.Buffer(make([]byte, 0, 64<<10), maxLineBytes)
	sc.Split(bufio.ScanWords)
	tok := &tokens{name: name, sc: sc}

	var (
		ages []float64
		flux [][]float64
	)
	for i, year := range years {
		n, err := tok.count()
		if err != nil {
			return nil, err
		}
		if n != len(wavelength) {
			return nil, errors.Wrapf(spectrum.ErrShape,
				"%s: spectrum %d has %d samples for %d wavelengths", name, i, n, len(wavelength))
		}
		row := make([]float64, n)
		for j := range row {
			if row[j], err = tok.float(); err != nil {
				return nil, err
			}
		}

		extra, err := tok.count()
		if err != nil {
			return nil, err
		}
		for range extra {
			if _, err := tok.float(); err != nil {
				return nil, err
			}
		}

		if year <= 0 {
			continue
		}
		ages = append(ages, math.Round(math.Log10(year)*galaxevAgeScale)/galaxevAgeScale)
		flux = append(flux, row)
	}

	is := sort.SearchFloat64s(ages, cfg.ageStart)
	ie := min(sort.SearchFloat64s(ages, cfg.ageEnd)+1, len(ages))
	if is >= ie {
		return nil, errors.Wrapf(spectrum.ErrRange, "%s: no age in [%v, %v]", name, cfg.ageStart, cfg.ageEnd)
	}

	s, err := spectrum.NewSeries(name, wavelength, flux[is:ie])
	if err != nil {
		return nil, err
	}
	s, err = s.SetRange(cfg.wlStart, cfg.wlEnd)
	if err != nil {
		return nil, errors.WithMessage(err, name)
	}

	return spectrum.NewModel(s, spectrum.ExplicitAxis(ages[is:ie])), nil
}

// ReadGalaxevFile reads the GALAXEV grid at path.
func ReadGalaxevFile(path string, opts ...GalaxevOption) (*spectrum.Model, error) {
	f, name, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadGalaxev(f, name, opts...)
}
