package cachedmetrics

import (
	"errors"
	"testing"

	"github.com/veneerhq/veneer"
	"github.com/veneerhq/veneer/veneertest"
)

func TestNewRejectsNonPositiveCapacity(t *testing.T) {
	if _, err := New(veneertest.NewFactory(), 0); err == nil {
		t.Error("New(wrapped, 0) returned nil error")
	}
}

func TestDeduplicatesByIdentity(t *testing.T) {
	wrapped := veneertest.NewFactory()
	f, err := New(wrapped, 8)
	if err != nil {
		t.Fatal(err)
	}

	h1, handle1 := f.MakeCounter("hits", []veneer.Dimension{veneer.Dim("a", "1"), veneer.Dim("b", "2")})
	h2, handle2 := f.MakeCounter("hits", []veneer.Dimension{veneer.Dim("b", "2"), veneer.Dim("a", "1")})

	if h1 != h2 {
		t.Error("equivalent identities produced distinct handlers")
	}
	if handle1 != handle2 {
		t.Errorf("handles differ: %d vs %d", handle1, handle2)
	}
	if got := wrapped.Len(); got != 1 {
		t.Errorf("wrapped Len() = %d, want 1", got)
	}
	if got := f.Len(); got != 1 {
		t.Errorf("cache Len() = %d, want 1", got)
	}
}

func TestRecorderAndGaugeAreDistinct(t *testing.T) {
	wrapped := veneertest.NewFactory()
	f, err := New(wrapped, 8)
	if err != nil {
		t.Fatal(err)
	}

	f.MakeRecorder("sample", nil, true)
	f.MakeRecorder("sample", nil, false)

	if got := f.Len(); got != 2 {
		t.Errorf("cache Len() = %d, want 2", got)
	}
}

func TestEvictionDestroysThroughWrapped(t *testing.T) {
	wrapped := veneertest.NewFactory()
	f, err := New(wrapped, 1)
	if err != nil {
		t.Fatal(err)
	}

	f.MakeCounter("first", nil)
	f.MakeCounter("second", nil)

	if got := wrapped.Len(); got != 1 {
		t.Errorf("wrapped Len() = %d, want 1", got)
	}
	if _, err := wrapped.Counter("first"); !errors.Is(err, veneertest.ErrMetricMissing) {
		t.Errorf("evicted counter err = %v, want ErrMetricMissing", err)
	}
	if _, err := wrapped.Counter("second"); err != nil {
		t.Errorf("live counter: %v", err)
	}
}

func TestDestroyIsIgnored(t *testing.T) {
	wrapped := veneertest.NewFactory()
	f, err := New(wrapped, 8)
	if err != nil {
		t.Fatal(err)
	}

	h1, handle := f.MakeCounter("hits", nil)
	f.DestroyCounter(handle)

	if _, err := wrapped.Counter("hits"); err != nil {
		t.Errorf("counter gone after decorator destroy: %v", err)
	}

	// The cached handler stays live for the next construction.
	h2, _ := f.MakeCounter("hits", nil)
	if h1 != h2 {
		t.Error("destroy dropped the cached handler")
	}
}

func TestCloseDestroysAll(t *testing.T) {
	wrapped := veneertest.NewFactory()
	f, err := New(wrapped, 8)
	if err != nil {
		t.Fatal(err)
	}

	f.MakeCounter("a", nil)
	f.MakeRecorder("b", nil, true)
	f.MakeTimer("c", nil)

	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := wrapped.Len(); got != 0 {
		t.Errorf("wrapped Len() after Close = %d, want 0", got)
	}
	if got := f.Len(); got != 0 {
		t.Errorf("cache Len() after Close = %d, want 0", got)
	}
}

func TestWorksAsFacadeBackend(t *testing.T) {
	wrapped := veneertest.NewFactory()
	f, err := New(wrapped, 8)
	if err != nil {
		t.Fatal(err)
	}

	// Two independently constructed counters share one backend handler.
	c1 := veneer.NewCounter("hits", veneer.WithFactory(f))
	c2 := veneer.NewCounter("hits", veneer.WithFactory(f))
	c1.Increment(2)
	c2.Increment(3)

	counter, err := wrapped.Counter("hits")
	if err != nil {
		t.Fatalf("Counter: %v", err)
	}
	if got := counter.Total(); got != 5 {
		t.Errorf("Total() = %d, want 5", got)
	}
}
