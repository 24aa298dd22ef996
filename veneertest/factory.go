// Package veneertest provides a recording metrics factory for tests: every
// handler it creates stores the updates it receives, keyed by label and
// dimensions, so assertions can fetch them back after the code under test
// has run.
package veneertest

import (
	"errors"
	"fmt"
	"sync"

	"github.com/veneerhq/veneer"
)

// Lookup errors returned by the typed accessors. These are the only
// recoverable errors in the whole system: the production core never fails.
var (
	// ErrMetricMissing indicates no handler was ever created for the label
	// and dimension combination.
	ErrMetricMissing = errors.New("veneertest: metric missing")

	// ErrWrongMetricKind indicates a handler exists for the label and
	// dimensions but is not the requested kind.
	ErrWrongMetricKind = errors.New("veneertest: wrong metric kind")
)

// Factory is a recording backend. It implements the base factory contract
// plus native floating-point counter and meter support, stores every created
// handler keyed by (label, canonical dimensions), reuses the stored handler
// when the same metric is constructed again, and removes the entry on
// destroy — so destroying and recreating a metric yields a genuinely new
// handler.
type Factory struct {
	mu       sync.Mutex
	next     veneer.Handle
	metrics  map[string]*record
	byHandle map[veneer.Handle]string
}

type record struct {
	handler any
	handle  veneer.Handle
}

// Interface checks: base contract plus both native derived kinds.
var (
	_ veneer.Factory                     = (*Factory)(nil)
	_ veneer.FloatingPointCounterFactory = (*Factory)(nil)
	_ veneer.MeterFactory                = (*Factory)(nil)
)

// NewFactory creates an empty recording factory.
func NewFactory() *Factory {
	return &Factory{
		metrics:  make(map[string]*record),
		byHandle: make(map[veneer.Handle]string),
	}
}

// lookupOrStore returns the stored handler for the key when match accepts
// it, otherwise stores the handler built by create. A stored handler of a
// different kind is replaced: the last make wins, mirroring mapping
// semantics for duplicate keys.
func (f *Factory) lookupOrStore(label string, dims []veneer.Dimension, match func(any) bool, create func() any) (any, veneer.Handle) {
	key := veneer.DimensionsKey(label, dims)

	f.mu.Lock()
	defer f.mu.Unlock()

	if rec, ok := f.metrics[key]; ok && match(rec.handler) {
		return rec.handler, rec.handle
	}

	f.next++
	rec := &record{handler: create(), handle: f.next}
	f.metrics[key] = rec
	f.byHandle[rec.handle] = key
	return rec.handler, rec.handle
}

// destroy removes the entry behind the handle. Unknown handles are ignored,
// tolerating double destroys and destroys racing with replacement.
func (f *Factory) destroy(handle veneer.Handle) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key, ok := f.byHandle[handle]
	if !ok {
		return
	}
	delete(f.byHandle, handle)
	if rec, ok := f.metrics[key]; ok && rec.handle == handle {
		delete(f.metrics, key)
	}
}

// lookup fetches the stored handler for a label and dimension set.
func (f *Factory) lookup(label string, dims []veneer.Dimension) (any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.metrics[veneer.DimensionsKey(label, dims)]
	if !ok {
		return nil, false
	}
	return rec.handler, true
}

func (f *Factory) MakeCounter(label string, dims []veneer.Dimension) (veneer.CounterHandler, veneer.Handle) {
	h, handle := f.lookupOrStore(label, dims,
		func(h any) bool { _, ok := h.(*TestCounter); return ok },
		func() any { return newTestCounter(label, dims) },
	)
	return h.(*TestCounter), handle
}

func (f *Factory) DestroyCounter(handle veneer.Handle) {
	f.destroy(handle)
}

func (f *Factory) MakeFloatingPointCounter(label string, dims []veneer.Dimension) (veneer.FloatingPointCounterHandler, veneer.Handle) {
	h, handle := f.lookupOrStore(label, dims,
		func(h any) bool { _, ok := h.(*TestFloatingPointCounter); return ok },
		func() any { return newTestFloatingPointCounter(label, dims) },
	)
	return h.(*TestFloatingPointCounter), handle
}

func (f *Factory) DestroyFloatingPointCounter(handle veneer.Handle) {
	f.destroy(handle)
}

func (f *Factory) MakeRecorder(label string, dims []veneer.Dimension, aggregate bool) (veneer.RecorderHandler, veneer.Handle) {
	h, handle := f.lookupOrStore(label, dims,
		func(h any) bool { r, ok := h.(*TestRecorder); return ok && r.aggregate == aggregate },
		func() any { return newTestRecorder(label, dims, aggregate) },
	)
	return h.(*TestRecorder), handle
}

func (f *Factory) DestroyRecorder(handle veneer.Handle) {
	f.destroy(handle)
}

func (f *Factory) MakeMeter(label string, dims []veneer.Dimension) (veneer.MeterHandler, veneer.Handle) {
	h, handle := f.lookupOrStore(label, dims,
		func(h any) bool { _, ok := h.(*TestMeter); return ok },
		func() any { return newTestMeter(label, dims) },
	)
	return h.(*TestMeter), handle
}

func (f *Factory) DestroyMeter(handle veneer.Handle) {
	f.destroy(handle)
}

func (f *Factory) MakeTimer(label string, dims []veneer.Dimension) (veneer.TimerHandler, veneer.Handle) {
	h, handle := f.lookupOrStore(label, dims,
		func(h any) bool { _, ok := h.(*TestTimer); return ok },
		func() any { return newTestTimer(label, dims) },
	)
	return h.(*TestTimer), handle
}

func (f *Factory) DestroyTimer(handle veneer.Handle) {
	f.destroy(handle)
}

// Len returns the number of live (not destroyed) metrics.
func (f *Factory) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.metrics)
}

// Counter fetches the recorded counter for the label and dimensions.
func (f *Factory) Counter(label string, dims ...veneer.Dimension) (*TestCounter, error) {
	h, ok := f.lookup(label, dims)
	if !ok {
		return nil, fmt.Errorf("%w: counter %q", ErrMetricMissing, label)
	}
	c, ok := h.(*TestCounter)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %T, want *TestCounter", ErrWrongMetricKind, label, h)
	}
	return c, nil
}

// FloatingPointCounter fetches the recorded floating-point counter for the
// label and dimensions.
func (f *Factory) FloatingPointCounter(label string, dims ...veneer.Dimension) (*TestFloatingPointCounter, error) {
	h, ok := f.lookup(label, dims)
	if !ok {
		return nil, fmt.Errorf("%w: floating-point counter %q", ErrMetricMissing, label)
	}
	c, ok := h.(*TestFloatingPointCounter)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %T, want *TestFloatingPointCounter", ErrWrongMetricKind, label, h)
	}
	return c, nil
}

// Recorder fetches the recorded aggregating recorder for the label and
// dimensions.
func (f *Factory) Recorder(label string, dims ...veneer.Dimension) (*TestRecorder, error) {
	return f.recorder(label, dims, true)
}

// Gauge fetches the recorded gauge — a recorder created with aggregation
// disabled — for the label and dimensions.
func (f *Factory) Gauge(label string, dims ...veneer.Dimension) (*TestRecorder, error) {
	return f.recorder(label, dims, false)
}

func (f *Factory) recorder(label string, dims []veneer.Dimension, aggregate bool) (*TestRecorder, error) {
	h, ok := f.lookup(label, dims)
	if !ok {
		return nil, fmt.Errorf("%w: recorder %q", ErrMetricMissing, label)
	}
	r, ok := h.(*TestRecorder)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %T, want *TestRecorder", ErrWrongMetricKind, label, h)
	}
	if r.aggregate != aggregate {
		return nil, fmt.Errorf("%w: %q aggregate = %v, want %v", ErrWrongMetricKind, label, r.aggregate, aggregate)
	}
	return r, nil
}

// Meter fetches the recorded meter for the label and dimensions.
func (f *Factory) Meter(label string, dims ...veneer.Dimension) (*TestMeter, error) {
	h, ok := f.lookup(label, dims)
	if !ok {
		return nil, fmt.Errorf("%w: meter %q", ErrMetricMissing, label)
	}
	m, ok := h.(*TestMeter)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %T, want *TestMeter", ErrWrongMetricKind, label, h)
	}
	return m, nil
}

// Timer fetches the recorded timer for the label and dimensions.
func (f *Factory) Timer(label string, dims ...veneer.Dimension) (*TestTimer, error) {
	h, ok := f.lookup(label, dims)
	if !ok {
		return nil, fmt.Errorf("%w: timer %q", ErrMetricMissing, label)
	}
	t, ok := h.(*TestTimer)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %T, want *TestTimer", ErrWrongMetricKind, label, h)
	}
	return t, nil
}
