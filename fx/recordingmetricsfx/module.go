// Package recordingmetricsfx provides an fx module that installs a
// recording metrics backend. Useful for testing: the concrete
// *veneertest.Factory is exposed so tests can assert on recorded updates.
package recordingmetricsfx

import (
	"go.uber.org/fx"

	"github.com/veneerhq/veneer"
	"github.com/veneerhq/veneer/veneertest"
)

// Module provides a recording factory and installs it as the process-wide
// backend through the test bootstrap entry point, which may run repeatedly
// across fx apps in one test binary.
var Module = fx.Module("recordingmetrics",
	fx.Provide(
		newFactory,
		asFactory,
	),
	fx.Invoke(bootstrap),
)

func newFactory() *veneertest.Factory {
	return veneertest.NewFactory()
}

func asFactory(f *veneertest.Factory) veneer.Factory {
	return f
}

func bootstrap(f veneer.Factory) {
	veneer.BootstrapForTesting(f)
}
