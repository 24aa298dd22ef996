package veneer

// Counter tracks a monotonically increasing integer value, such as a number
// of requests served. A Counter is immutable after construction and safe for
// concurrent use; every update delegates to the handler resolved at
// construction time.
type Counter struct {
	label      string
	dimensions []Dimension
	handler    CounterHandler
	handle     Handle
	factory    fullFactory
}

// NewCounter creates a counter bound to the effective factory: an explicit
// WithFactory, a WithContext scoped override, or the global registry, in
// that order.
func NewCounter(label string, opts ...Option) *Counter {
	cfg := buildOptions(opts)
	factory := cfg.resolveFactory()
	handler, handle := factory.MakeCounter(label, cfg.dimensions)
	return &Counter{
		label:      label,
		dimensions: cfg.dimensions,
		handler:    handler,
		handle:     handle,
		factory:    factory,
	}
}

// CounterWithHandler creates a counter bound directly to handler, bypassing
// factory resolution. Intended for tests; Destroy on such a counter is a
// no-op since no factory owns the handler.
func CounterWithHandler(label string, dimensions []Dimension, handler CounterHandler) *Counter {
	return &Counter{
		label:      label,
		dimensions: append([]Dimension(nil), dimensions...),
		handler:    handler,
	}
}

// Label returns the counter's identifying label.
func (c *Counter) Label() string {
	return c.label
}

// Dimensions returns a copy of the counter's dimensions.
func (c *Counter) Dimensions() []Dimension {
	return append([]Dimension(nil), c.dimensions...)
}

// Inc increments the counter by one.
func (c *Counter) Inc() {
	c.handler.Increment(1)
}

// Increment increments the counter by the given amount.
func (c *Counter) Increment(by int64) {
	c.handler.Increment(by)
}

// Reset returns the counter to zero.
func (c *Counter) Reset() {
	c.handler.Reset()
}

// Destroy hints to the owning factory that the counter's handler may be
// reclaimed. The counter must not be updated afterwards; a racing update is
// tolerated by backends but may be dropped.
func (c *Counter) Destroy() {
	if c.factory != nil {
		c.factory.DestroyCounter(c.handle)
	}
}
