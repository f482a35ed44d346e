package match

import "go.uber.org/zap"

type config struct {
	workers int
	log     *zap.Logger
	name    string
}

// Option configures an Engine.
type Option func(*config)

// WithWorkers evaluates up to n reddening rows concurrently. Values below 2
// run sequentially.
func WithWorkers(n int) Option {
	return func(cfg *config) {
		cfg.workers = n
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(cfg *config) {
		cfg.log = l
	}
}

// WithName overrides the comparison name used in records and logs. The
// default is "<observation>_<model>".
func WithName(name string) Option {
	return func(cfg *config) {
		cfg.name = name
	}
}

func defaultConfig() config {
	return config{workers: 1, log: zap.NewNop()}
}

func (cfg *config) finalized() {
	if cfg.workers < 1 {
		cfg.workers = 1
	}
	if cfg.log == nil {
		cfg.log = zap.NewNop()
	}
}
