package fit

import (
	"sort"
	"strings"

	"github.com/cwbudde/algo-asad/internal/kernel"
	"github.com/cwbudde/algo-asad/spectrum"
	"github.com/pkg/errors"
)

// Registered statistic names.
const (
	NameChiSquared       = "chi-squared"
	NameKS               = "ks"
	NameCrossCorrelation = "xcorr"
)

// ErrUnknownTest is returned by Lookup for names not in Names().
var ErrUnknownTest = errors.Wrap(spectrum.ErrConfiguration, "fit: unknown statistical test")

var builtin = map[string]func(b *kernel.Backend) Test{
	NameChiSquared: func(b *kernel.Backend) Test {
		if b == nil {
			return ChiSquared
		}
		return Test(b.SquaredDistance)
	},
	NameKS:               func(*kernel.Backend) Test { return KolmogorovSmirnov },
	NameCrossCorrelation: func(*kernel.Backend) Test { return CrossCorrelation },
}

var aliases = map[string]string{
	"chi2":               NameChiSquared,
	"chisquared":         NameChiSquared,
	"kolmogorov-smirnov": NameKS,
	"cross-correlation":  NameCrossCorrelation,
}

type config struct {
	backend string
}

// Option configures Lookup.
type Option func(*config)

// WithBackend runs chi-squared on the named kernel backend. Statistics
// without an accelerated kernel ignore it.
func WithBackend(name string) Option {
	return func(cfg *config) {
		cfg.backend = name
	}
}

// Names lists the registered statistic names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves a statistic by name. Names are case-insensitive and a few
// long-form aliases are accepted.
func Lookup(name string, opts ...Option) (Test, error) {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}

	build, ok := builtin[key]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownTest, "%q (available: %s)", name, strings.Join(Names(), ", "))
	}

	var backend *kernel.Backend
	if cfg.backend != "" {
		b, err := kernel.Global.Select(cfg.backend)
		if err != nil {
			return nil, err
		}
		backend = b
	}

	return build(backend), nil
}
