package match

import (
	"github.com/cwbudde/algo-asad/spectrum"
	"github.com/pkg/errors"
)

var (
	// ErrNotBound is returned when an operation needs an observation and a
	// model but the engine has none.
	ErrNotBound = errors.Wrap(spectrum.ErrConfiguration, "match: engine not bound")
	// ErrNotComputed is returned when results are requested before Compute.
	ErrNotComputed = errors.Wrap(spectrum.ErrConfiguration, "match: engine not computed")
)
