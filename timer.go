package veneer

import (
	"math"
	"time"
)

// Timer records durations, always stored as nanoseconds. Convenience
// methods for coarser units convert with overflow detection: a duration
// whose nanosecond representation would overflow a signed 64-bit integer is
// clamped to math.MaxInt64 rather than wrapped.
type Timer struct {
	label      string
	dimensions []Dimension
	handler    TimerHandler
	handle     Handle
	factory    fullFactory
}

// NewTimer creates a timer bound to the effective factory. See NewCounter
// for the resolution order. A WithDisplayUnit option is forwarded to the
// handler once, at construction, if the backend supports display hints.
func NewTimer(label string, opts ...Option) *Timer {
	cfg := buildOptions(opts)
	factory := cfg.resolveFactory()
	handler, handle := factory.MakeTimer(label, cfg.dimensions)
	preferDisplayUnit(handler, cfg.displayUnit)
	return &Timer{
		label:      label,
		dimensions: cfg.dimensions,
		handler:    handler,
		handle:     handle,
		factory:    factory,
	}
}

// TimerWithHandler creates a timer bound directly to handler, bypassing
// factory resolution. Intended for tests; Destroy is a no-op.
func TimerWithHandler(label string, dimensions []Dimension, handler TimerHandler, opts ...Option) *Timer {
	cfg := buildOptions(opts)
	preferDisplayUnit(handler, cfg.displayUnit)
	return &Timer{
		label:      label,
		dimensions: append([]Dimension(nil), dimensions...),
		handler:    handler,
	}
}

func preferDisplayUnit(handler TimerHandler, unit *TimeUnit) {
	if unit == nil {
		return
	}
	if p, ok := handler.(TimerHandlerWithDisplayUnit); ok {
		p.PreferDisplayUnit(*unit)
	}
}

// Label returns the timer's identifying label.
func (t *Timer) Label() string {
	return t.label
}

// Dimensions returns a copy of the timer's dimensions.
func (t *Timer) Dimensions() []Dimension {
	return append([]Dimension(nil), t.dimensions...)
}

// RecordNanoseconds records a duration in nanoseconds.
func (t *Timer) RecordNanoseconds(duration int64) {
	t.handler.RecordNanoseconds(duration)
}

// RecordMicroseconds records a duration in microseconds.
func (t *Timer) RecordMicroseconds(duration int64) {
	t.handler.RecordNanoseconds(saturatingNanoseconds(duration, 1_000))
}

// RecordMilliseconds records a duration in milliseconds.
func (t *Timer) RecordMilliseconds(duration int64) {
	t.handler.RecordNanoseconds(saturatingNanoseconds(duration, 1_000_000))
}

// RecordSeconds records a duration in seconds.
func (t *Timer) RecordSeconds(duration int64) {
	t.handler.RecordNanoseconds(saturatingNanoseconds(duration, 1_000_000_000))
}

// Record records a time.Duration.
func (t *Timer) Record(d time.Duration) {
	t.handler.RecordNanoseconds(d.Nanoseconds())
}

// RecordSince records the time elapsed since start.
func (t *Timer) RecordSince(start time.Time) {
	t.Record(time.Since(start))
}

// Destroy hints to the owning factory that the handler may be reclaimed.
func (t *Timer) Destroy() {
	if t.factory != nil {
		t.factory.DestroyTimer(t.handle)
	}
}

// saturatingNanoseconds converts amount units of scale nanoseconds each into
// nanoseconds, clamping to math.MaxInt64 when the multiplication would
// overflow in either direction.
func saturatingNanoseconds(amount, scale int64) int64 {
	if amount > math.MaxInt64/scale || amount < math.MinInt64/scale {
		return math.MaxInt64
	}
	return amount * scale
}
