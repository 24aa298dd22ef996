package veneer

import "context"

// Option configures a metric at construction time.
type Option interface {
	apply(*options)
}

// options holds the construction configuration shared by all metric kinds.
type options struct {
	dimensions  []Dimension
	factory     Factory
	ctx         context.Context
	registry    *Registry
	displayUnit *TimeUnit
}

func defaultOptions() options {
	return options{}
}

// optionFunc wraps a function to implement Option.
type optionFunc func(*options)

// Compile-time check that optionFunc implements Option.
var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithDimensions attaches key/value dimensions to the metric. Pair order
// carries no identity meaning; see Dimension.
func WithDimensions(dims ...Dimension) Option {
	return optionFunc(func(o *options) {
		o.dimensions = append(o.dimensions, dims...)
	})
}

// WithFactory constructs the metric against f instead of any scoped or
// global factory.
func WithFactory(f Factory) Option {
	return optionFunc(func(o *options) {
		o.factory = f
	})
}

// WithContext resolves a scoped factory override from ctx, if one was bound
// with ContextWithFactory or ScopedFactory. An explicit WithFactory takes
// precedence.
func WithContext(ctx context.Context) Option {
	return optionFunc(func(o *options) {
		o.ctx = ctx
	})
}

// WithRegistry falls back to r instead of the process-wide registry when
// neither an explicit factory nor a scoped override applies. Useful for code
// composed with dependency injection.
func WithRegistry(r *Registry) Option {
	return optionFunc(func(o *options) {
		o.registry = r
	})
}

// WithDisplayUnit hints the unit timer backends should render durations in.
// It never changes recorded values, and has no effect on other metric kinds.
func WithDisplayUnit(unit TimeUnit) Option {
	return optionFunc(func(o *options) {
		o.displayUnit = &unit
	})
}

// resolveFactory picks the effective factory for a construction call:
// explicit factory, then scoped override, then registry. The choice is made
// exactly once; the metric keeps the resolved factory for its lifetime.
func (o *options) resolveFactory() fullFactory {
	if o.factory != nil {
		return complete(o.factory)
	}
	if o.ctx != nil {
		if f, ok := factoryFromContext(o.ctx); ok {
			return f
		}
	}
	if o.registry != nil {
		return o.registry.factory()
	}
	return defaultRegistry.factory()
}

// buildOptions applies opts to a fresh configuration and returns it along
// with a private copy of the dimensions, so later caller mutations of an
// option slice cannot reach into the metric.
func buildOptions(opts []Option) options {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	if len(cfg.dimensions) > 0 {
		cfg.dimensions = append([]Dimension(nil), cfg.dimensions...)
	}
	return cfg
}
