package veneer

// Meter tracks a value that moves up and down, such as in-flight requests.
// Backends without native meter support back it with an accumulating adapter
// over a last-value recorder.
//
// NaN, infinite and non-positive increment/decrement amounts are silently
// dropped by the default adapter; native backends are expected to do the
// same.
type Meter struct {
	label      string
	dimensions []Dimension
	handler    MeterHandler
	handle     Handle
	factory    fullFactory
}

// NewMeter creates a meter bound to the effective factory. See NewCounter
// for the resolution order.
func NewMeter(label string, opts ...Option) *Meter {
	cfg := buildOptions(opts)
	factory := cfg.resolveFactory()
	handler, handle := factory.MakeMeter(label, cfg.dimensions)
	return &Meter{
		label:      label,
		dimensions: cfg.dimensions,
		handler:    handler,
		handle:     handle,
		factory:    factory,
	}
}

// MeterWithHandler creates a meter bound directly to handler, bypassing
// factory resolution. Intended for tests; Destroy is a no-op.
func MeterWithHandler(label string, dimensions []Dimension, handler MeterHandler) *Meter {
	return &Meter{
		label:      label,
		dimensions: append([]Dimension(nil), dimensions...),
		handler:    handler,
	}
}

// Label returns the meter's identifying label.
func (m *Meter) Label() string {
	return m.label
}

// Dimensions returns a copy of the meter's dimensions.
func (m *Meter) Dimensions() []Dimension {
	return append([]Dimension(nil), m.dimensions...)
}

// Set replaces the current value.
func (m *Meter) Set(value float64) {
	m.handler.SetFloat(value)
}

// SetInt replaces the current value with an integer value.
func (m *Meter) SetInt(value int64) {
	m.handler.Set(value)
}

// Increment adds by to the current value.
func (m *Meter) Increment(by float64) {
	m.handler.Increment(by)
}

// Decrement subtracts by from the current value.
func (m *Meter) Decrement(by float64) {
	m.handler.Decrement(by)
}

// Destroy hints to the owning factory that the handler may be reclaimed.
func (m *Meter) Destroy() {
	if m.factory != nil {
		m.factory.DestroyMeter(m.handle)
	}
}
