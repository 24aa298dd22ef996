package veneer

import "sync"

// Registry holds the factory metrics are constructed against when no
// explicit or scoped factory applies. It starts with the no-op factory and
// moves to a real backend exactly once via Bootstrap.
//
// A Registry is safe for concurrent use: construction-time reads from many
// goroutines run concurrently, serialized only against the single bootstrap
// write.
//
// Most programs use the package-level Bootstrap and never touch a Registry
// directly; the type exists so that code composed with dependency injection
// can carry its own registry instead of the process-wide one.
type Registry struct {
	mu           sync.RWMutex
	current      fullFactory
	bootstrapped bool
}

// NewRegistry returns a registry holding the no-op factory.
func NewRegistry() *Registry {
	return &Registry{current: sharedNoopFactory}
}

// Bootstrap installs f as the registry's factory. It may be called at most
// once per registry: a second call panics rather than silently switching
// backends mid-run. Passing nil installs the no-op factory.
func (r *Registry) Bootstrap(f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.bootstrapped {
		panic("veneer: Bootstrap called twice; a metrics backend must be installed at most once per process")
	}
	r.bootstrapped = true
	r.install(f)
}

// BootstrapForTesting installs f without the once-only rule, so test
// setup/teardown can swap backends repeatedly. It also re-arms Bootstrap.
func (r *Registry) BootstrapForTesting(f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bootstrapped = false
	r.install(f)
}

// install must be called with r.mu held for writing.
func (r *Registry) install(f Factory) {
	if f == nil {
		r.current = sharedNoopFactory
		return
	}
	r.current = complete(f)
}

// Factory returns the currently installed factory.
func (r *Registry) Factory() Factory {
	return r.factory()
}

func (r *Registry) factory() fullFactory {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}
