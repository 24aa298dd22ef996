package veneer

import (
	"math"
	"sync"
)

// maxSplittableExponent is the binary exponent at which an increment can no
// longer be split into integer and fractional parts: any amount >= 2^63
// clamps to a single math.MaxInt64 increment. The boundary is a bit-exponent
// test, not a range comparison, so 2^63 itself clamps.
const maxSplittableExponent = 63

// accumulatingFloatCounter builds a floating-point counter on top of an
// integer counter handler. It carries the fractional part of increments in a
// remainder in [0,1) so that fractional increments summing to an integer
// boundary produce exactly one integer increment crossing that boundary.
type accumulatingFloatCounter struct {
	mu       sync.Mutex
	fraction float64
	counter  CounterHandler
}

var _ FloatingPointCounterHandler = (*accumulatingFloatCounter)(nil)

func newAccumulatingFloatCounter(counter CounterHandler) *accumulatingFloatCounter {
	return &accumulatingFloatCounter{counter: counter}
}

// Increment adds by to the counter. NaN, infinite and non-positive amounts
// are dropped: instrumentation must never fail the instrumented program, so
// illegal values are silently ignored rather than reported.
func (a *accumulatingFloatCounter) Increment(by float64) {
	if math.IsNaN(by) || math.IsInf(by, 0) || by <= 0 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	// Too large to split into integer and fraction: saturate the
	// underlying counter.
	if math.Ilogb(by) >= maxSplittableExponent {
		a.counter.Increment(math.MaxInt64)
		return
	}

	integer, fraction := math.Modf(by)
	increment := int64(integer)

	a.fraction += fraction
	if carry, remainder := math.Modf(a.fraction); carry > 0 {
		increment += int64(carry)
		a.fraction = remainder
	}

	if increment > 0 {
		a.counter.Increment(increment)
	}
}

// Reset zeroes the pending fraction and resets the underlying counter.
func (a *accumulatingFloatCounter) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fraction = 0
	a.counter.Reset()
}

// accumulatingMeter builds a meter on top of a last-value recorder handler.
// It keeps the running value and reports every new value to the recorder.
type accumulatingMeter struct {
	mu       sync.Mutex
	value    float64
	recorder RecorderHandler
}

var _ MeterHandler = (*accumulatingMeter)(nil)

func newAccumulatingMeter(recorder RecorderHandler) *accumulatingMeter {
	return &accumulatingMeter{recorder: recorder}
}

// Set replaces the current value.
func (a *accumulatingMeter) Set(value int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.value = float64(value)
	a.recorder.Record(value)
}

// SetFloat replaces the current value.
func (a *accumulatingMeter) SetFloat(value float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.value = value
	a.recorder.RecordFloat(value)
}

// Increment adds by to the current value. NaN, infinite and non-positive
// amounts are dropped, as for the floating-point counter.
func (a *accumulatingMeter) Increment(by float64) {
	if math.IsNaN(by) || math.IsInf(by, 0) || by <= 0 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.value += by
	a.recorder.RecordFloat(a.value)
}

// Decrement subtracts by from the current value, with the same illegal-value
// filter as Increment.
func (a *accumulatingMeter) Decrement(by float64) {
	if math.IsNaN(by) || math.IsInf(by, 0) || by <= 0 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.value -= by
	a.recorder.RecordFloat(a.value)
}
