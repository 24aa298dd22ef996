package veneer

// FloatingPointCounter tracks a monotonically increasing floating-point
// value. Backends without native floating-point support back it with an
// accumulating adapter over an integer counter, which carries fractional
// increments until they cross an integer boundary.
//
// NaN, infinite and non-positive increments are silently dropped by the
// default adapter; native backends are expected to do the same.
type FloatingPointCounter struct {
	label      string
	dimensions []Dimension
	handler    FloatingPointCounterHandler
	handle     Handle
	factory    fullFactory
}

// NewFloatingPointCounter creates a floating-point counter bound to the
// effective factory. See NewCounter for the resolution order.
func NewFloatingPointCounter(label string, opts ...Option) *FloatingPointCounter {
	cfg := buildOptions(opts)
	factory := cfg.resolveFactory()
	handler, handle := factory.MakeFloatingPointCounter(label, cfg.dimensions)
	return &FloatingPointCounter{
		label:      label,
		dimensions: cfg.dimensions,
		handler:    handler,
		handle:     handle,
		factory:    factory,
	}
}

// FloatingPointCounterWithHandler creates a floating-point counter bound
// directly to handler, bypassing factory resolution. Intended for tests;
// Destroy is a no-op.
func FloatingPointCounterWithHandler(label string, dimensions []Dimension, handler FloatingPointCounterHandler) *FloatingPointCounter {
	return &FloatingPointCounter{
		label:      label,
		dimensions: append([]Dimension(nil), dimensions...),
		handler:    handler,
	}
}

// Label returns the counter's identifying label.
func (c *FloatingPointCounter) Label() string {
	return c.label
}

// Dimensions returns a copy of the counter's dimensions.
func (c *FloatingPointCounter) Dimensions() []Dimension {
	return append([]Dimension(nil), c.dimensions...)
}

// Inc increments the counter by one.
func (c *FloatingPointCounter) Inc() {
	c.handler.Increment(1)
}

// Increment increments the counter by the given amount.
func (c *FloatingPointCounter) Increment(by float64) {
	c.handler.Increment(by)
}

// Reset returns the counter to zero.
func (c *FloatingPointCounter) Reset() {
	c.handler.Reset()
}

// Destroy hints to the owning factory that the handler may be reclaimed.
func (c *FloatingPointCounter) Destroy() {
	if c.factory != nil {
		c.factory.DestroyFloatingPointCounter(c.handle)
	}
}
