package veneer

// Handle is an opaque token identifying a handler created by a factory. It
// is minted by the factory's Make call and passed back to the matching
// Destroy call; it is meaningful only to the factory that minted it.
type Handle uint64

// Factory is the contract a metrics backend implements: one make/destroy
// pair per base metric kind.
//
// Make calls must always succeed and return an immediately usable handler;
// there is no error channel. Destroy is a hint, not a command: stateless
// backends may ignore it, and backends holding per-handler resources must
// tolerate a trailing update racing with destruction without crashing, at
// worst dropping the update.
//
// Floating-point counters and meters are derived kinds: a factory that
// implements only the three base pairs is completed automatically with the
// accumulating adapters at registration time. Factories with genuinely
// native support implement FloatingPointCounterFactory and/or MeterFactory
// as well.
type Factory interface {
	// MakeCounter creates a counter handler for the given label and dimensions.
	MakeCounter(label string, dimensions []Dimension) (CounterHandler, Handle)

	// DestroyCounter hints that the handler behind the token may be reclaimed.
	DestroyCounter(handle Handle)

	// MakeRecorder creates a recorder handler. When aggregate is false the
	// backend should treat observations as a last-value gauge rather than a
	// statistical sample.
	MakeRecorder(label string, dimensions []Dimension, aggregate bool) (RecorderHandler, Handle)

	// DestroyRecorder hints that the handler behind the token may be reclaimed.
	DestroyRecorder(handle Handle)

	// MakeTimer creates a timer handler.
	MakeTimer(label string, dimensions []Dimension) (TimerHandler, Handle)

	// DestroyTimer hints that the handler behind the token may be reclaimed.
	DestroyTimer(handle Handle)
}

// FloatingPointCounterFactory is implemented by factories with native
// floating-point counter support.
type FloatingPointCounterFactory interface {
	MakeFloatingPointCounter(label string, dimensions []Dimension) (FloatingPointCounterHandler, Handle)
	DestroyFloatingPointCounter(handle Handle)
}

// MeterFactory is implemented by factories with native meter support.
type MeterFactory interface {
	MakeMeter(label string, dimensions []Dimension) (MeterHandler, Handle)
	DestroyMeter(handle Handle)
}

// fullFactory is the complete surface metric constructors work against:
// the base kinds plus the two derived kinds.
type fullFactory interface {
	Factory
	FloatingPointCounterFactory
	MeterFactory
}

// complete returns f widened to the full factory surface. Factories that
// lack native floating-point counter or meter support are wrapped so the
// derived kinds are built from the accumulating adapters over the base
// handlers. Applied once wherever a factory is registered or resolved, so
// user code and backends never deal with a partial surface.
func complete(f Factory) fullFactory {
	if ff, ok := f.(fullFactory); ok {
		return ff
	}
	return &completedFactory{base: f}
}

// completedFactory supplies default derived-kind support on top of a base
// factory, delegating to native implementations where the base has them.
type completedFactory struct {
	base Factory
}

var _ fullFactory = (*completedFactory)(nil)

func (c *completedFactory) MakeCounter(label string, dimensions []Dimension) (CounterHandler, Handle) {
	return c.base.MakeCounter(label, dimensions)
}

func (c *completedFactory) DestroyCounter(handle Handle) {
	c.base.DestroyCounter(handle)
}

func (c *completedFactory) MakeRecorder(label string, dimensions []Dimension, aggregate bool) (RecorderHandler, Handle) {
	return c.base.MakeRecorder(label, dimensions, aggregate)
}

func (c *completedFactory) DestroyRecorder(handle Handle) {
	c.base.DestroyRecorder(handle)
}

func (c *completedFactory) MakeTimer(label string, dimensions []Dimension) (TimerHandler, Handle) {
	return c.base.MakeTimer(label, dimensions)
}

func (c *completedFactory) DestroyTimer(handle Handle) {
	c.base.DestroyTimer(handle)
}

// MakeFloatingPointCounter returns the base factory's native handler when it
// has one, otherwise an accumulating adapter over a base counter. The handle
// is the base counter's handle, so destruction routes straight through.
func (c *completedFactory) MakeFloatingPointCounter(label string, dimensions []Dimension) (FloatingPointCounterHandler, Handle) {
	if native, ok := c.base.(FloatingPointCounterFactory); ok {
		return native.MakeFloatingPointCounter(label, dimensions)
	}
	counter, handle := c.base.MakeCounter(label, dimensions)
	return newAccumulatingFloatCounter(counter), handle
}

func (c *completedFactory) DestroyFloatingPointCounter(handle Handle) {
	if native, ok := c.base.(FloatingPointCounterFactory); ok {
		native.DestroyFloatingPointCounter(handle)
		return
	}
	c.base.DestroyCounter(handle)
}

// MakeMeter returns the base factory's native handler when it has one,
// otherwise an accumulating adapter over a last-value recorder.
func (c *completedFactory) MakeMeter(label string, dimensions []Dimension) (MeterHandler, Handle) {
	if native, ok := c.base.(MeterFactory); ok {
		return native.MakeMeter(label, dimensions)
	}
	recorder, handle := c.base.MakeRecorder(label, dimensions, false)
	return newAccumulatingMeter(recorder), handle
}

func (c *completedFactory) DestroyMeter(handle Handle) {
	if native, ok := c.base.(MeterFactory); ok {
		native.DestroyMeter(handle)
		return
	}
	c.base.DestroyRecorder(handle)
}
