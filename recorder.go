package veneer

// Recorder reports individual observations, such as response sizes, for the
// backend to aggregate into sums, minima, maxima or quantiles. Recording a
// value never adds to a running total.
type Recorder struct {
	label      string
	dimensions []Dimension
	handler    RecorderHandler
	handle     Handle
	factory    fullFactory
}

// NewRecorder creates an aggregating recorder bound to the effective
// factory. See NewCounter for the resolution order.
func NewRecorder(label string, opts ...Option) *Recorder {
	return newRecorder(label, true, opts)
}

func newRecorder(label string, aggregate bool, opts []Option) *Recorder {
	cfg := buildOptions(opts)
	factory := cfg.resolveFactory()
	handler, handle := factory.MakeRecorder(label, cfg.dimensions, aggregate)
	return &Recorder{
		label:      label,
		dimensions: cfg.dimensions,
		handler:    handler,
		handle:     handle,
		factory:    factory,
	}
}

// RecorderWithHandler creates a recorder bound directly to handler,
// bypassing factory resolution. Intended for tests; Destroy is a no-op.
func RecorderWithHandler(label string, dimensions []Dimension, handler RecorderHandler) *Recorder {
	return &Recorder{
		label:      label,
		dimensions: append([]Dimension(nil), dimensions...),
		handler:    handler,
	}
}

// Label returns the recorder's identifying label.
func (r *Recorder) Label() string {
	return r.label
}

// Dimensions returns a copy of the recorder's dimensions.
func (r *Recorder) Dimensions() []Dimension {
	return append([]Dimension(nil), r.dimensions...)
}

// Record reports a floating-point observation.
func (r *Recorder) Record(value float64) {
	r.handler.RecordFloat(value)
}

// RecordInt reports an integer observation.
func (r *Recorder) RecordInt(value int64) {
	r.handler.Record(value)
}

// Destroy hints to the owning factory that the handler may be reclaimed.
func (r *Recorder) Destroy() {
	if r.factory != nil {
		r.factory.DestroyRecorder(r.handle)
	}
}

// Gauge reports a current value, such as items in a queue. It is a Recorder
// constructed with aggregation disabled: the backend should keep the last
// reported value instead of treating observations as a statistical sample.
type Gauge struct {
	Recorder
}

// NewGauge creates a gauge bound to the effective factory. See NewCounter
// for the resolution order.
func NewGauge(label string, opts ...Option) *Gauge {
	return &Gauge{Recorder: *newRecorder(label, false, opts)}
}

// GaugeWithHandler creates a gauge bound directly to handler, bypassing
// factory resolution. Intended for tests; Destroy is a no-op.
func GaugeWithHandler(label string, dimensions []Dimension, handler RecorderHandler) *Gauge {
	return &Gauge{Recorder: *RecorderWithHandler(label, dimensions, handler)}
}
