package main

import (
	"runtime"
	"slices"
	"strings"

	"github.com/cwbudde/algo-asad/internal/kernel"
	"github.com/cwbudde/algo-asad/spectrum"
	"github.com/cwbudde/algo-asad/stats/fit"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds every setting of a run. Values come from, in increasing
// precedence: defaults, the TOML file given by --config, ASAD_* environment
// variables and command line flags.
type Config struct {
	Models       []string `mapstructure:"model"`
	ModelFormat  string   `mapstructure:"model_format"`
	ColumnStride int      `mapstructure:"column_stride"`

	Interp   float64 `mapstructure:"interp"`
	Align    float64 `mapstructure:"align"`
	Truncate bool    `mapstructure:"truncate"`

	ReddeningStart float64 `mapstructure:"reddening_start"`
	ReddeningEnd   float64 `mapstructure:"reddening_end"`
	ReddeningStep  float64 `mapstructure:"reddening_step"`
	AgeStart       float64 `mapstructure:"age_start"`
	AgeStep        float64 `mapstructure:"age_step"`

	WavelengthStart float64 `mapstructure:"wavelength_start"`
	WavelengthEnd   float64 `mapstructure:"wavelength_end"`
	Normalize       float64 `mapstructure:"normalize"`

	Stat    string  `mapstructure:"stat"`
	Backend string  `mapstructure:"backend"`
	Workers int     `mapstructure:"workers"`
	Delta   float64 `mapstructure:"delta"`
	Output  string  `mapstructure:"output"`

	WritePrepared string `mapstructure:"write_prepared"`
}

const (
	defaultInterp       = 3.0
	defaultReddeningEnd = 0.5
	defaultDelta        = 1.0
	defaultColumnStride = 1
	envPrefix           = "ASAD"
	configFileFlag      = "config"
	configFileType      = "toml"

	formatTable   = "table"
	formatGalaxev = "galaxev"

	preparedPrefix = "prepared_"
)

// modelFormats lists the accepted --model-format values.
var modelFormats = []string{formatTable, formatGalaxev}

func defaultWorkers() int {
	return runtime.NumCPU()
}

// setDefaults registers the built-in defaults on v.
func setDefaults(v *viper.Viper) {
	v.SetDefault("model", []string{})
	v.SetDefault("model_format", formatTable)
	v.SetDefault("column_stride", defaultColumnStride)

	v.SetDefault("interp", defaultInterp)
	v.SetDefault("align", 0.0)
	v.SetDefault("truncate", false)

	v.SetDefault("reddening_start", spectrum.DefaultReddeningStart)
	v.SetDefault("reddening_end", defaultReddeningEnd)
	v.SetDefault("reddening_step", spectrum.DefaultReddeningStep)
	v.SetDefault("age_start", spectrum.DefaultAgeStart)
	v.SetDefault("age_step", spectrum.DefaultAgeStep)

	v.SetDefault("wavelength_start", 0.0)
	v.SetDefault("wavelength_end", 0.0)
	v.SetDefault("normalize", 0.0)

	v.SetDefault("stat", fit.NameChiSquared)
	v.SetDefault("backend", kernel.Auto)
	v.SetDefault("workers", defaultWorkers())
	v.SetDefault("delta", defaultDelta)
	v.SetDefault("output", "")
	v.SetDefault("write_prepared", "")
}

// newViper returns a viper instance with defaults and environment binding.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// bindFlags maps every dashed flag in fs onto its underscored config key.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Name == configFileFlag || f.Name == "verbose" || f.Name == "json-log" {
			return
		}
		key := strings.ReplaceAll(f.Name, "-", "_")
		if bindErr := v.BindPFlag(key, f); bindErr != nil {
			err = errors.Wrapf(bindErr, "bind flag --%s", f.Name)
		}
	})
	return err
}

// loadConfig resolves the configuration for a command.
func loadConfig(fs *pflag.FlagSet) (*Config, error) {
	v := newViper()
	if err := bindFlags(v, fs); err != nil {
		return nil, err
	}

	if f := fs.Lookup(configFileFlag); f != nil && f.Value.String() != "" {
		v.SetConfigFile(f.Value.String())
		v.SetConfigType(configFileType)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", f.Value.String())
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Workers < 1 {
		c.Workers = 1
	}
	if !slices.Contains(modelFormats, c.ModelFormat) {
		return errors.Wrapf(spectrum.ErrConfiguration, "unknown model format %q (want %s)",
			c.ModelFormat, strings.Join(modelFormats, ", "))
	}
	if c.ColumnStride < 1 {
		return errors.Wrapf(spectrum.ErrConfiguration, "column stride %d must be >= 1", c.ColumnStride)
	}
	if (c.WavelengthStart > 0) != (c.WavelengthEnd > 0) {
		return errors.Wrap(spectrum.ErrConfiguration, "wavelength start and end must be set together")
	}
	if c.WavelengthStart > 0 && c.WavelengthStart > c.WavelengthEnd {
		return errors.Wrapf(spectrum.ErrRange, "wavelength start %v after end %v", c.WavelengthStart, c.WavelengthEnd)
	}
	return nil
}

// hasRange reports whether a common wavelength range was requested.
func (c *Config) hasRange() bool {
	return c.WavelengthStart > 0 && c.WavelengthEnd > 0
}
