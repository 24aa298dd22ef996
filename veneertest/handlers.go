package veneertest

import (
	"math"
	"sync"

	"github.com/veneerhq/veneer"
)

// TestCounter records every increment it receives.
type TestCounter struct {
	label      string
	dimensions []veneer.Dimension

	mu     sync.Mutex
	values []int64
	resets int
}

var _ veneer.CounterHandler = (*TestCounter)(nil)

func newTestCounter(label string, dims []veneer.Dimension) *TestCounter {
	return &TestCounter{label: label, dimensions: veneer.CanonicalDimensions(dims)}
}

func (c *TestCounter) Increment(by int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = append(c.values, by)
}

// Reset clears the recorded increments and counts the reset.
func (c *TestCounter) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = nil
	c.resets++
}

// Label returns the counter's label.
func (c *TestCounter) Label() string { return c.label }

// Dimensions returns the counter's canonical dimensions.
func (c *TestCounter) Dimensions() []veneer.Dimension {
	return append([]veneer.Dimension(nil), c.dimensions...)
}

// Values returns a copy of the individual increments since the last reset.
func (c *TestCounter) Values() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int64(nil), c.values...)
}

// Total returns the sum of increments since the last reset.
func (c *TestCounter) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total int64
	for _, v := range c.values {
		total += v
	}
	return total
}

// ResetCount returns how many times the counter was reset.
func (c *TestCounter) ResetCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resets
}

// TestFloatingPointCounter records every increment it receives. As a native
// handler it records values verbatim; the illegal-value filter belongs to
// the accumulating adapter used for backends without native support.
type TestFloatingPointCounter struct {
	label      string
	dimensions []veneer.Dimension

	mu     sync.Mutex
	values []float64
	resets int
}

var _ veneer.FloatingPointCounterHandler = (*TestFloatingPointCounter)(nil)

func newTestFloatingPointCounter(label string, dims []veneer.Dimension) *TestFloatingPointCounter {
	return &TestFloatingPointCounter{label: label, dimensions: veneer.CanonicalDimensions(dims)}
}

func (c *TestFloatingPointCounter) Increment(by float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = append(c.values, by)
}

// Reset clears the recorded increments and counts the reset.
func (c *TestFloatingPointCounter) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = nil
	c.resets++
}

// Label returns the counter's label.
func (c *TestFloatingPointCounter) Label() string { return c.label }

// Dimensions returns the counter's canonical dimensions.
func (c *TestFloatingPointCounter) Dimensions() []veneer.Dimension {
	return append([]veneer.Dimension(nil), c.dimensions...)
}

// Values returns a copy of the individual increments since the last reset.
func (c *TestFloatingPointCounter) Values() []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]float64(nil), c.values...)
}

// Total returns the sum of increments since the last reset.
func (c *TestFloatingPointCounter) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, v := range c.values {
		total += v
	}
	return total
}

// ResetCount returns how many times the counter was reset.
func (c *TestFloatingPointCounter) ResetCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resets
}

// TestRecorder records every observation it receives. The same type backs
// both recorders and gauges; Aggregate tells them apart.
type TestRecorder struct {
	label      string
	dimensions []veneer.Dimension
	aggregate  bool

	mu     sync.Mutex
	values []float64
}

var _ veneer.RecorderHandler = (*TestRecorder)(nil)

func newTestRecorder(label string, dims []veneer.Dimension, aggregate bool) *TestRecorder {
	return &TestRecorder{label: label, dimensions: veneer.CanonicalDimensions(dims), aggregate: aggregate}
}

func (r *TestRecorder) Record(value int64) {
	r.RecordFloat(float64(value))
}

func (r *TestRecorder) RecordFloat(value float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, value)
}

// Label returns the recorder's label.
func (r *TestRecorder) Label() string { return r.label }

// Dimensions returns the recorder's canonical dimensions.
func (r *TestRecorder) Dimensions() []veneer.Dimension {
	return append([]veneer.Dimension(nil), r.dimensions...)
}

// Aggregate reports whether the recorder was created as a statistical
// sample (true) or a last-value gauge (false).
func (r *TestRecorder) Aggregate() bool { return r.aggregate }

// Values returns a copy of the recorded observations.
func (r *TestRecorder) Values() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]float64(nil), r.values...)
}

// Last returns the most recent observation, or false if none was recorded.
func (r *TestRecorder) Last() (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.values) == 0 {
		return 0, false
	}
	return r.values[len(r.values)-1], true
}

// TestMeter records the sequence of values the meter passed through. It
// applies the same illegal-value filter as the default accumulating meter so
// both paths are observationally equivalent.
type TestMeter struct {
	label      string
	dimensions []veneer.Dimension

	mu     sync.Mutex
	values []float64
}

var _ veneer.MeterHandler = (*TestMeter)(nil)

func newTestMeter(label string, dims []veneer.Dimension) *TestMeter {
	return &TestMeter{label: label, dimensions: veneer.CanonicalDimensions(dims)}
}

func (m *TestMeter) Set(value int64) {
	m.SetFloat(float64(value))
}

func (m *TestMeter) SetFloat(value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = append(m.values, value)
}

func (m *TestMeter) Increment(by float64) {
	if math.IsNaN(by) || math.IsInf(by, 0) || by <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = append(m.values, m.current()+by)
}

func (m *TestMeter) Decrement(by float64) {
	if math.IsNaN(by) || math.IsInf(by, 0) || by <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = append(m.values, m.current()-by)
}

// current must be called with m.mu held.
func (m *TestMeter) current() float64 {
	if len(m.values) == 0 {
		return 0
	}
	return m.values[len(m.values)-1]
}

// Label returns the meter's label.
func (m *TestMeter) Label() string { return m.label }

// Dimensions returns the meter's canonical dimensions.
func (m *TestMeter) Dimensions() []veneer.Dimension {
	return append([]veneer.Dimension(nil), m.dimensions...)
}

// Values returns a copy of the sequence of values the meter passed through.
func (m *TestMeter) Values() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.values...)
}

// Last returns the meter's current value, or false if it was never set.
func (m *TestMeter) Last() (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.values) == 0 {
		return 0, false
	}
	return m.values[len(m.values)-1], true
}

// TestTimer records every duration it receives, in nanoseconds, plus any
// display-unit preference.
type TestTimer struct {
	label      string
	dimensions []veneer.Dimension

	mu          sync.Mutex
	durations   []int64
	displayUnit *veneer.TimeUnit
}

var _ veneer.TimerHandlerWithDisplayUnit = (*TestTimer)(nil)

func newTestTimer(label string, dims []veneer.Dimension) *TestTimer {
	return &TestTimer{label: label, dimensions: veneer.CanonicalDimensions(dims)}
}

func (t *TestTimer) RecordNanoseconds(duration int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.durations = append(t.durations, duration)
}

// PreferDisplayUnit stores the display hint; recorded values are untouched.
func (t *TestTimer) PreferDisplayUnit(unit veneer.TimeUnit) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.displayUnit = &unit
}

// Label returns the timer's label.
func (t *TestTimer) Label() string { return t.label }

// Dimensions returns the timer's canonical dimensions.
func (t *TestTimer) Dimensions() []veneer.Dimension {
	return append([]veneer.Dimension(nil), t.dimensions...)
}

// Durations returns a copy of the recorded durations in nanoseconds.
func (t *TestTimer) Durations() []int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]int64(nil), t.durations...)
}

// DisplayUnit returns the preferred display unit, or false if none was set.
func (t *TestTimer) DisplayUnit() (veneer.TimeUnit, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.displayUnit == nil {
		return veneer.TimeUnit{}, false
	}
	return *t.displayUnit, true
}
