// Package cachedmetrics provides a factory decorator that deduplicates
// handlers by metric identity. Repeated construction of a metric with the
// same label and dimensions returns the same underlying handler, and the
// number of live handlers is bounded by an LRU cache, capping cardinality
// against label explosions.
//
// Destroy calls on the decorator are deliberately ignored: the cache owns
// handler lifetime, and the destroy contract is a hint. Underlying handlers
// are destroyed when evicted or when the decorator is closed.
//
// The decorator caches the base metric kinds only; floating-point counters
// and meters built by the facade's default adapters still share the cached
// base handler underneath, though each keeps its own fractional remainder.
package cachedmetrics

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/veneerhq/veneer"
)

// entry pairs a handler with the wrapped factory's handle so eviction can
// destroy through the wrapped factory.
type entry[H any] struct {
	handler H
	handle  veneer.Handle
}

// Factory deduplicates handlers created by a wrapped factory.
type Factory struct {
	wrapped veneer.Factory

	// mu serializes the check-then-create in the Make methods so two
	// concurrent constructions of the same metric cannot both reach the
	// wrapped factory.
	mu sync.Mutex

	counters  *lru.Cache[string, entry[veneer.CounterHandler]]
	recorders *lru.Cache[string, entry[veneer.RecorderHandler]]
	timers    *lru.Cache[string, entry[veneer.TimerHandler]]
}

// Compile-time check that Factory implements veneer.Factory.
var _ veneer.Factory = (*Factory)(nil)

// New creates a deduplicating decorator around wrapped, holding at most
// capacity handlers per metric kind.
func New(wrapped veneer.Factory, capacity int) (*Factory, error) {
	f := &Factory{wrapped: wrapped}

	var err error
	f.counters, err = lru.NewWithEvict(capacity, func(_ string, e entry[veneer.CounterHandler]) {
		wrapped.DestroyCounter(e.handle)
	})
	if err != nil {
		return nil, err
	}
	f.recorders, err = lru.NewWithEvict(capacity, func(_ string, e entry[veneer.RecorderHandler]) {
		wrapped.DestroyRecorder(e.handle)
	})
	if err != nil {
		return nil, err
	}
	f.timers, err = lru.NewWithEvict(capacity, func(_ string, e entry[veneer.TimerHandler]) {
		wrapped.DestroyTimer(e.handle)
	})
	if err != nil {
		return nil, err
	}

	return f, nil
}

func (f *Factory) MakeCounter(label string, dims []veneer.Dimension) (veneer.CounterHandler, veneer.Handle) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := veneer.DimensionsKey(label, dims)
	if e, ok := f.counters.Get(key); ok {
		return e.handler, e.handle
	}
	handler, handle := f.wrapped.MakeCounter(label, dims)
	f.counters.Add(key, entry[veneer.CounterHandler]{handler: handler, handle: handle})
	return handler, handle
}

// DestroyCounter is a no-op: the cache owns handler lifetime.
func (f *Factory) DestroyCounter(veneer.Handle) {}

func (f *Factory) MakeRecorder(label string, dims []veneer.Dimension, aggregate bool) (veneer.RecorderHandler, veneer.Handle) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Aggregating recorders and gauges are distinct metrics even under the
	// same label.
	key := veneer.DimensionsKey(label, dims)
	if aggregate {
		key = "agg:" + key
	}
	if e, ok := f.recorders.Get(key); ok {
		return e.handler, e.handle
	}
	handler, handle := f.wrapped.MakeRecorder(label, dims, aggregate)
	f.recorders.Add(key, entry[veneer.RecorderHandler]{handler: handler, handle: handle})
	return handler, handle
}

// DestroyRecorder is a no-op: the cache owns handler lifetime.
func (f *Factory) DestroyRecorder(veneer.Handle) {}

func (f *Factory) MakeTimer(label string, dims []veneer.Dimension) (veneer.TimerHandler, veneer.Handle) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := veneer.DimensionsKey(label, dims)
	if e, ok := f.timers.Get(key); ok {
		return e.handler, e.handle
	}
	handler, handle := f.wrapped.MakeTimer(label, dims)
	f.timers.Add(key, entry[veneer.TimerHandler]{handler: handler, handle: handle})
	return handler, handle
}

// DestroyTimer is a no-op: the cache owns handler lifetime.
func (f *Factory) DestroyTimer(veneer.Handle) {}

// Len returns the number of cached handlers across all kinds.
func (f *Factory) Len() int {
	return f.counters.Len() + f.recorders.Len() + f.timers.Len()
}

// Close destroys every cached handler through the wrapped factory.
func (f *Factory) Close() error {
	f.counters.Purge()
	f.recorders.Purge()
	f.timers.Purge()
	return nil
}
