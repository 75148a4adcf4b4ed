package symgo

import (
	"github.com/hupe1980/symgo/rng"
	"github.com/hupe1980/symgo/trace"
)

type options struct {
	logger *Logger
	rng    *rng.RNG
	tracer *trace.Recorder
}

// Option configures searcher construction.
type Option func(*options)

// WithLogger sets the structured logger passed down to every policy that
// emits diagnostics. Defaults to a noop logger.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithRNG injects the random source shared by all probabilistic policies.
// Defaults to a source seeded from Config.Seed, so runs are reproducible
// by default.
func WithRNG(r *rng.RNG) Option {
	return func(o *options) {
		o.rng = r
	}
}

// WithTracer records scheduling and merge events to a trace recorder.
func WithTracer(t *trace.Recorder) Option {
	return func(o *options) {
		o.tracer = t
	}
}
