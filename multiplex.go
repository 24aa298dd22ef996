package veneer

import "sync"

// multiplexFactory fans every make, update and destroy out to an ordered
// list of sub-factories.
type multiplexFactory struct {
	subs []fullFactory

	mu      sync.Mutex
	next    Handle
	handles map[Handle][]Handle
}

var _ fullFactory = (*multiplexFactory)(nil)

// NewMultiplexFactory returns a factory that forwards every operation to all
// of the given factories in order. Nil entries are filtered out; with a
// single remaining factory the wrapper is elided and that factory is
// returned directly, and with none the no-op factory is returned.
func NewMultiplexFactory(factories ...Factory) Factory {
	subs := make([]fullFactory, 0, len(factories))
	for _, f := range factories {
		if f != nil {
			subs = append(subs, complete(f))
		}
	}

	switch len(subs) {
	case 0:
		return sharedNoopFactory
	case 1:
		return subs[0]
	}

	return &multiplexFactory{
		subs:    subs,
		handles: make(map[Handle][]Handle),
	}
}

// register records the per-sub handles behind a freshly minted handle.
func (m *multiplexFactory) register(subHandles []Handle) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	m.handles[m.next] = subHandles
	return m.next
}

// release returns and forgets the per-sub handles for a minted handle.
// Unknown handles (double destroy) yield nil.
func (m *multiplexFactory) release(handle Handle) []Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	subHandles := m.handles[handle]
	delete(m.handles, handle)
	return subHandles
}

func (m *multiplexFactory) MakeCounter(label string, dimensions []Dimension) (CounterHandler, Handle) {
	fanout := &multiplexCounter{subs: make([]CounterHandler, len(m.subs))}
	subHandles := make([]Handle, len(m.subs))
	for i, sub := range m.subs {
		fanout.subs[i], subHandles[i] = sub.MakeCounter(label, dimensions)
	}
	return fanout, m.register(subHandles)
}

func (m *multiplexFactory) DestroyCounter(handle Handle) {
	for i, h := range m.release(handle) {
		m.subs[i].DestroyCounter(h)
	}
}

func (m *multiplexFactory) MakeFloatingPointCounter(label string, dimensions []Dimension) (FloatingPointCounterHandler, Handle) {
	fanout := &multiplexFloatCounter{subs: make([]FloatingPointCounterHandler, len(m.subs))}
	subHandles := make([]Handle, len(m.subs))
	for i, sub := range m.subs {
		fanout.subs[i], subHandles[i] = sub.MakeFloatingPointCounter(label, dimensions)
	}
	return fanout, m.register(subHandles)
}

func (m *multiplexFactory) DestroyFloatingPointCounter(handle Handle) {
	for i, h := range m.release(handle) {
		m.subs[i].DestroyFloatingPointCounter(h)
	}
}

func (m *multiplexFactory) MakeRecorder(label string, dimensions []Dimension, aggregate bool) (RecorderHandler, Handle) {
	fanout := &multiplexRecorder{subs: make([]RecorderHandler, len(m.subs))}
	subHandles := make([]Handle, len(m.subs))
	for i, sub := range m.subs {
		fanout.subs[i], subHandles[i] = sub.MakeRecorder(label, dimensions, aggregate)
	}
	return fanout, m.register(subHandles)
}

func (m *multiplexFactory) DestroyRecorder(handle Handle) {
	for i, h := range m.release(handle) {
		m.subs[i].DestroyRecorder(h)
	}
}

func (m *multiplexFactory) MakeMeter(label string, dimensions []Dimension) (MeterHandler, Handle) {
	fanout := &multiplexMeter{subs: make([]MeterHandler, len(m.subs))}
	subHandles := make([]Handle, len(m.subs))
	for i, sub := range m.subs {
		fanout.subs[i], subHandles[i] = sub.MakeMeter(label, dimensions)
	}
	return fanout, m.register(subHandles)
}

func (m *multiplexFactory) DestroyMeter(handle Handle) {
	for i, h := range m.release(handle) {
		m.subs[i].DestroyMeter(h)
	}
}

func (m *multiplexFactory) MakeTimer(label string, dimensions []Dimension) (TimerHandler, Handle) {
	fanout := &multiplexTimer{subs: make([]TimerHandler, len(m.subs))}
	subHandles := make([]Handle, len(m.subs))
	for i, sub := range m.subs {
		fanout.subs[i], subHandles[i] = sub.MakeTimer(label, dimensions)
	}
	return fanout, m.register(subHandles)
}

func (m *multiplexFactory) DestroyTimer(handle Handle) {
	for i, h := range m.release(handle) {
		m.subs[i].DestroyTimer(h)
	}
}

type multiplexCounter struct {
	subs []CounterHandler
}

func (c *multiplexCounter) Increment(by int64) {
	for _, sub := range c.subs {
		sub.Increment(by)
	}
}

func (c *multiplexCounter) Reset() {
	for _, sub := range c.subs {
		sub.Reset()
	}
}

type multiplexFloatCounter struct {
	subs []FloatingPointCounterHandler
}

func (c *multiplexFloatCounter) Increment(by float64) {
	for _, sub := range c.subs {
		sub.Increment(by)
	}
}

func (c *multiplexFloatCounter) Reset() {
	for _, sub := range c.subs {
		sub.Reset()
	}
}

type multiplexRecorder struct {
	subs []RecorderHandler
}

func (r *multiplexRecorder) Record(value int64) {
	for _, sub := range r.subs {
		sub.Record(value)
	}
}

func (r *multiplexRecorder) RecordFloat(value float64) {
	for _, sub := range r.subs {
		sub.RecordFloat(value)
	}
}

type multiplexMeter struct {
	subs []MeterHandler
}

func (m *multiplexMeter) Set(value int64) {
	for _, sub := range m.subs {
		sub.Set(value)
	}
}

func (m *multiplexMeter) SetFloat(value float64) {
	for _, sub := range m.subs {
		sub.SetFloat(value)
	}
}

func (m *multiplexMeter) Increment(by float64) {
	for _, sub := range m.subs {
		sub.Increment(by)
	}
}

func (m *multiplexMeter) Decrement(by float64) {
	for _, sub := range m.subs {
		sub.Decrement(by)
	}
}

type multiplexTimer struct {
	subs []TimerHandler
}

func (t *multiplexTimer) RecordNanoseconds(duration int64) {
	for _, sub := range t.subs {
		sub.RecordNanoseconds(duration)
	}
}

// PreferDisplayUnit forwards the hint to every sub-handler that accepts one.
func (t *multiplexTimer) PreferDisplayUnit(unit TimeUnit) {
	for _, sub := range t.subs {
		if p, ok := sub.(TimerHandlerWithDisplayUnit); ok {
			p.PreferDisplayUnit(unit)
		}
	}
}
