package veneer

// Handler interfaces define the minimal per-kind contract a metrics backend
// must implement. Handlers are mutable objects owned by the backend; exactly
// one handler backs one metric object for its whole lifetime. Handler methods
// are fire-and-forget: they must not block indefinitely, return errors, or
// panic — updates are best-effort, side-effect-only operations.

// CounterHandler receives updates for a monotonic integer counter.
type CounterHandler interface {
	// Increment adds by to the counter.
	Increment(by int64)

	// Reset returns the counter to zero.
	Reset()
}

// FloatingPointCounterHandler receives updates for a monotonic
// floating-point counter.
//
// Backends are not required to implement this natively: a factory that only
// supports CounterHandler is completed with an accumulating adapter that
// carries the fractional part. See FloatingPointCounterFactory.
type FloatingPointCounterHandler interface {
	// Increment adds by to the counter.
	Increment(by float64)

	// Reset returns the counter to zero.
	Reset()
}

// RecorderHandler receives individual observations. Record reports a value,
// it does not add to a running total; a backend that aggregates (sum, min,
// max, quantiles) does so internally per call.
type RecorderHandler interface {
	// Record reports an integer observation.
	Record(value int64)

	// RecordFloat reports a floating-point observation.
	RecordFloat(value float64)
}

// MeterHandler receives updates for a value that can move up and down.
//
// Like FloatingPointCounterHandler, backends get a default implementation
// built on RecorderHandler unless they implement MeterFactory natively.
type MeterHandler interface {
	// Set replaces the current value with an integer value.
	Set(value int64)

	// SetFloat replaces the current value.
	SetFloat(value float64)

	// Increment adds by to the current value.
	Increment(by float64)

	// Decrement subtracts by from the current value.
	Decrement(by float64)
}

// TimerHandler receives recorded durations, always in nanoseconds.
type TimerHandler interface {
	// RecordNanoseconds reports a duration in nanoseconds.
	RecordNanoseconds(duration int64)
}

// TimerHandlerWithDisplayUnit is implemented by timer handlers that can
// render durations in a preferred unit. The preference is a display hint
// only; it must never change the recorded nanosecond value.
type TimerHandlerWithDisplayUnit interface {
	TimerHandler

	// PreferDisplayUnit hints the unit a backend should render durations in.
	PreferDisplayUnit(unit TimeUnit)
}
