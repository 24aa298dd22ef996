// Package veneer is a vendor-neutral metrics instrumentation facade:
// application and library code creates and updates counters, gauges, meters,
// recorders and timers against a thin API, while aggregation, storage and
// export are deferred to a pluggable backend installed once at startup.
//
// Example usage:
//
//	func main() {
//	    veneer.Bootstrap(myBackendFactory)
//
//	    requests := veneer.NewCounter("requests_total",
//	        veneer.WithDimensions(veneer.Dim("route", "/search")),
//	    )
//	    requests.Inc()
//
//	    latency := veneer.NewTimer("request_latency")
//	    start := time.Now()
//	    handle(req)
//	    latency.RecordSince(start)
//	}
//
// Backends implement the Factory interface; see NewNoopFactory and
// NewMultiplexFactory for reference implementations, and the veneertest
// package for a recording factory to assert against in tests.
package veneer

// defaultRegistry is the process-wide registry behind the package-level
// bootstrap functions. Library code should not reach for it directly: metric
// constructors resolve it only as the last step of the explicit-factory >
// scoped-override > global priority chain.
var defaultRegistry = NewRegistry()

// Bootstrap installs f as the process-wide metrics backend. It must be
// called at most once, before metrics are constructed; a second call panics.
// Metrics constructed before Bootstrap are bound to the no-op factory and
// stay no-ops: handlers are resolved at construction time, never swapped.
func Bootstrap(f Factory) {
	defaultRegistry.Bootstrap(f)
}

// BootstrapForTesting installs f as the process-wide backend without the
// once-only rule. Intended for test setup/teardown only.
func BootstrapForTesting(f Factory) {
	defaultRegistry.BootstrapForTesting(f)
}

// CurrentFactory returns the process-wide factory: the bootstrapped backend,
// or the no-op factory before Bootstrap.
func CurrentFactory() Factory {
	return defaultRegistry.Factory()
}
