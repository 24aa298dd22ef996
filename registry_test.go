package veneer

import (
	"sync"
	"testing"
)

func TestRegistryDefaultsToNoop(t *testing.T) {
	r := NewRegistry()
	if got := r.Factory(); got != NewNoopFactory() {
		t.Errorf("fresh registry factory = %v, want the no-op factory", got)
	}
}

func TestRegistryBootstrapOnce(t *testing.T) {
	r := NewRegistry()
	r.Bootstrap(&captureFactory{})

	defer func() {
		if recover() == nil {
			t.Error("second Bootstrap did not panic")
		}
	}()
	r.Bootstrap(&captureFactory{})
}

func TestRegistryBootstrapNilInstallsNoop(t *testing.T) {
	r := NewRegistry()
	r.Bootstrap(nil)
	if got := r.Factory(); got != NewNoopFactory() {
		t.Errorf("factory after Bootstrap(nil) = %v, want the no-op factory", got)
	}
}

func TestRegistryBootstrapInstallsFactory(t *testing.T) {
	r := NewRegistry()
	f := &captureFactory{}
	r.Bootstrap(f)

	r.Factory().MakeCounter("hits", nil)
	if got := f.counterMakes(); got != 1 {
		t.Errorf("counter makes = %d, want 1", got)
	}
}

func TestRegistryBootstrapForTestingRepeatsAndRearms(t *testing.T) {
	r := NewRegistry()
	r.BootstrapForTesting(&captureFactory{})
	r.BootstrapForTesting(&captureFactory{})

	// Still armed for one real bootstrap after any number of testing swaps.
	r.Bootstrap(&captureFactory{})

	defer func() {
		if recover() == nil {
			t.Error("Bootstrap after Bootstrap did not panic")
		}
	}()
	r.Bootstrap(&captureFactory{})
}

func TestRegistryConcurrentReads(t *testing.T) {
	r := NewRegistry()
	f := &captureFactory{}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				r.Factory().MakeCounter("hits", nil)
			}
		}()
	}
	r.BootstrapForTesting(f)
	wg.Wait()

	// After the swap every new make reaches f.
	r.Factory().MakeCounter("final", nil)
	if f.counterMakes() == 0 {
		t.Error("installed factory never received a make")
	}
}
