package veneer

import (
	"context"
	"errors"
	"testing"
)

func TestContextWithFactoryRoundTrip(t *testing.T) {
	f := &captureFactory{}
	ctx := ContextWithFactory(context.Background(), f)

	scoped, ok := FactoryFromContext(ctx)
	if !ok {
		t.Fatal("no factory bound to context")
	}
	scoped.MakeCounter("hits", nil)
	if got := f.counterMakes(); got != 1 {
		t.Errorf("counter makes = %d, want 1", got)
	}
}

func TestContextWithFactoryNil(t *testing.T) {
	ctx := context.Background()
	if got := ContextWithFactory(ctx, nil); got != ctx {
		t.Error("ContextWithFactory(ctx, nil) returned a new context")
	}
	if _, ok := FactoryFromContext(ctx); ok {
		t.Error("bare context reports a bound factory")
	}
}

func TestScopedFactoryBindsForCallback(t *testing.T) {
	f := &captureFactory{}

	err := ScopedFactory(context.Background(), f, func(ctx context.Context) error {
		counter := NewCounter("jobs", WithContext(ctx))
		counter.Increment(2)
		return nil
	})
	if err != nil {
		t.Fatalf("ScopedFactory returned %v", err)
	}

	if len(f.counters) != 1 {
		t.Fatalf("counter makes = %d, want 1", len(f.counters))
	}
	if got, want := f.counters[0].recorded(), []int64{2}; !equalInt64s(got, want) {
		t.Errorf("increments = %v, want %v", got, want)
	}
}

func TestScopedFactoryReturnsCallbackError(t *testing.T) {
	sentinel := errors.New("boom")
	err := ScopedFactory(context.Background(), &captureFactory{}, func(context.Context) error {
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Errorf("err = %v, want %v", err, sentinel)
	}
}

func TestFactoryResolutionPriority(t *testing.T) {
	explicit := &captureFactory{}
	scoped := &captureFactory{}
	fallback := &captureFactory{}

	reg := NewRegistry()
	reg.BootstrapForTesting(fallback)
	ctx := ContextWithFactory(context.Background(), scoped)

	// Explicit factory beats the scoped override and the registry.
	NewCounter("a", WithFactory(explicit), WithContext(ctx), WithRegistry(reg))
	if explicit.counterMakes() != 1 || scoped.counterMakes() != 0 || fallback.counterMakes() != 0 {
		t.Errorf("explicit tier: makes = %d/%d/%d, want 1/0/0",
			explicit.counterMakes(), scoped.counterMakes(), fallback.counterMakes())
	}

	// Scoped override beats the registry.
	NewCounter("b", WithContext(ctx), WithRegistry(reg))
	if scoped.counterMakes() != 1 || fallback.counterMakes() != 0 {
		t.Errorf("scoped tier: makes = %d/%d, want 1/0",
			scoped.counterMakes(), fallback.counterMakes())
	}

	// A context without a binding falls through to the registry.
	NewCounter("c", WithContext(context.Background()), WithRegistry(reg))
	if fallback.counterMakes() != 1 {
		t.Errorf("registry tier: makes = %d, want 1", fallback.counterMakes())
	}
}

func TestParallelScopesStayIsolated(t *testing.T) {
	f1 := &captureFactory{}
	f2 := &captureFactory{}
	ctx1 := ContextWithFactory(context.Background(), f1)
	ctx2 := ContextWithFactory(context.Background(), f2)

	done := make(chan struct{}, 2)
	go func() {
		defer func() { done <- struct{}{} }()
		NewCounter("jobs", WithContext(ctx1)).Increment(1)
	}()
	go func() {
		defer func() { done <- struct{}{} }()
		NewCounter("jobs", WithContext(ctx2)).Increment(10)
	}()
	<-done
	<-done

	if got, want := f1.counters[0].total(), int64(1); got != want {
		t.Errorf("first scope total = %d, want %d", got, want)
	}
	if got, want := f2.counters[0].total(), int64(10); got != want {
		t.Errorf("second scope total = %d, want %d", got, want)
	}
}

func TestFactoryResolvedOnceAtConstruction(t *testing.T) {
	before := &captureFactory{}
	after := &captureFactory{}

	ctx := ContextWithFactory(context.Background(), before)
	counter := NewCounter("jobs", WithContext(ctx))

	// Re-binding the scope never moves an existing metric.
	_ = ContextWithFactory(ctx, after)
	counter.Increment(3)
	counter.Destroy()

	if got, want := before.counters[0].recorded(), []int64{3}; !equalInt64s(got, want) {
		t.Errorf("original factory increments = %v, want %v", got, want)
	}
	if len(before.counterDestroys) != 1 {
		t.Errorf("original factory destroys = %v, want one", before.counterDestroys)
	}
	if after.counterMakes() != 0 {
		t.Errorf("re-bound factory makes = %d, want 0", after.counterMakes())
	}
}
