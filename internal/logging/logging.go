// Package logging builds the zap loggers used by the command line tools and
// defines the shared structured field names.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels for repeated -v flags.
const (
	VerbosityQuiet = 0 // warnings and errors only
	VerbosityInfo  = 1 // -v: progress per comparison
	VerbosityDebug = 2 // -vv: shapes, backends, timing
)

// VerbosityToLevel maps a -v count to a zap level.
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= VerbosityQuiet:
		return zapcore.WarnLevel
	case verbosity == VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// New returns a logger writing to w at the level implied by verbosity.
// JSON output uses the production encoder; otherwise a console encoder
// without timestamps is used.
func New(w io.Writer, verbosity int, json bool) *zap.Logger {
	var enc zapcore.Encoder
	if json {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		cfg.CallerKey = ""
		enc = zapcore.NewConsoleEncoder(cfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), VerbosityToLevel(verbosity))
	return zap.New(core)
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
