package doclink

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Option is a function that configures a Resolver instance.
type Option func(*Resolver)

// WithConfig sets the output layout. Empty Ext and SrcDir fall back to
// [DefaultExt] and [DefaultSrcDir].
func WithConfig(cfg Config) Option {
	return func(r *Resolver) {
		if cfg.Ext == "" {
			cfg.Ext = DefaultExt
		}

		if cfg.SrcDir == "" {
			cfg.SrcDir = DefaultSrcDir
		}

		r.cfg = cfg
	}
}

// WithBase sets the prefix of every cross-file link.
func WithBase(base string) Option {
	return func(r *Resolver) {
		r.cfg.Base = base
	}
}

// WithRegistry sets the symbol registry used for lookups.
func WithRegistry(reg Registry) Option {
	return func(r *Resolver) {
		r.registry = reg
	}
}

// WithLogger sets the logger. Unresolved references are logged at debug
// level. A nil logger discards output.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(r *Resolver) {
		if logger == nil {
			logger = discardLogger()
		}

		r.logger = logger
	}
}

// WithMetrics records resolution outcomes in m.
func WithMetrics(m *Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// WithWorkers bounds the parallelism of [Resolver.SubstituteAll]. Values
// below 1 are raised to 1.
func WithWorkers(n int) Option {
	return func(r *Resolver) {
		r.workers = max(n, 1)
	}
}

// WithContext sets the base context used for batch operations.
func WithContext(ctx context.Context) Option {
	return func(r *Resolver) {
		if ctx == nil {
			r.ctx = context.Background()
			return
		}

		r.ctx = ctx
	}
}

// SetOptions applies the given options to the [Resolver] instance.
//
// Note that applying options after the resolver is shared between goroutines
// is a data race.
func (r *Resolver) SetOptions(opts ...Option) {
	for _, opt := range opts {
		opt(r)
	}
}
