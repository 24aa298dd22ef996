// Package logmetrics provides a metrics factory that logs every update via
// zap. Useful as a development backend and as a multiplex sidecar next to a
// real exporter.
//
// The factory implements only the base metric kinds; floating-point
// counters and meters are supplied by the facade's default adapters.
package logmetrics

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/veneerhq/veneer"
)

// Factory implements veneer.Factory by logging updates at Debug level.
type Factory struct {
	logger *zap.Logger
	next   atomic.Uint64
}

// Compile-time check that Factory implements veneer.Factory.
var _ veneer.Factory = (*Factory)(nil)

// New creates a new logging factory. If logger is nil, a no-op logger is
// used.
func New(logger *zap.Logger) *Factory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Factory{logger: logger}
}

// metricLogger returns a logger carrying the metric's identity fields.
func (f *Factory) metricLogger(kind, label string, dims []veneer.Dimension) *zap.Logger {
	fields := make([]zap.Field, 0, 2+len(dims))
	fields = append(fields,
		zap.String("kind", kind),
		zap.String("label", label),
	)
	for _, d := range veneer.CanonicalDimensions(dims) {
		fields = append(fields, zap.String("dim_"+d.Key, d.Value))
	}
	return f.logger.With(fields...)
}

func (f *Factory) MakeCounter(label string, dims []veneer.Dimension) (veneer.CounterHandler, veneer.Handle) {
	handle := veneer.Handle(f.next.Add(1))
	return &counter{logger: f.metricLogger("counter", label, dims)}, handle
}

func (f *Factory) DestroyCounter(handle veneer.Handle) {
	f.logger.Debug("counter destroyed", zap.Uint64("handle", uint64(handle)))
}

func (f *Factory) MakeRecorder(label string, dims []veneer.Dimension, aggregate bool) (veneer.RecorderHandler, veneer.Handle) {
	kind := "recorder"
	if !aggregate {
		kind = "gauge"
	}
	handle := veneer.Handle(f.next.Add(1))
	return &recorder{logger: f.metricLogger(kind, label, dims)}, handle
}

func (f *Factory) DestroyRecorder(handle veneer.Handle) {
	f.logger.Debug("recorder destroyed", zap.Uint64("handle", uint64(handle)))
}

func (f *Factory) MakeTimer(label string, dims []veneer.Dimension) (veneer.TimerHandler, veneer.Handle) {
	handle := veneer.Handle(f.next.Add(1))
	return &timer{logger: f.metricLogger("timer", label, dims), unit: veneer.Nanoseconds}, handle
}

func (f *Factory) DestroyTimer(handle veneer.Handle) {
	f.logger.Debug("timer destroyed", zap.Uint64("handle", uint64(handle)))
}

type counter struct {
	logger *zap.Logger
}

func (c *counter) Increment(by int64) {
	c.logger.Debug("increment", zap.Int64("by", by))
}

func (c *counter) Reset() {
	c.logger.Debug("reset")
}

type recorder struct {
	logger *zap.Logger
}

func (r *recorder) Record(value int64) {
	r.logger.Debug("record", zap.Int64("value", value))
}

func (r *recorder) RecordFloat(value float64) {
	r.logger.Debug("record", zap.Float64("value", value))
}

type timer struct {
	logger *zap.Logger

	mu   sync.Mutex
	unit veneer.TimeUnit
}

var _ veneer.TimerHandlerWithDisplayUnit = (*timer)(nil)

func (t *timer) RecordNanoseconds(duration int64) {
	t.mu.Lock()
	unit := t.unit
	t.mu.Unlock()

	t.logger.Debug("record",
		zap.Int64("nanoseconds", duration),
		zap.Float64(unit.String(), float64(duration)/float64(unit.ScaleFromNanoseconds())),
	)
}

// PreferDisplayUnit changes how durations are rendered in log lines; the
// recorded nanosecond value is logged unchanged alongside.
func (t *timer) PreferDisplayUnit(unit veneer.TimeUnit) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.unit = unit
}
