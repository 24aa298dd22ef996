// Package sysmetricsfx provides an fx module that polls process resource
// usage into gauges for the lifetime of the application.
package sysmetricsfx

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/veneerhq/veneer"
	"github.com/veneerhq/veneer/sysmetrics"
)

// Config holds configuration for the resource-usage poller.
type Config struct {
	// Interval is the polling interval. Default is sysmetrics.DefaultInterval.
	Interval time.Duration

	// Labels names the reported gauges. Zero value means
	// sysmetrics.DefaultLabels.
	Labels *sysmetrics.Labels

	// Factory creates the gauges. Nil means the bootstrapped global factory.
	Factory veneer.Factory
}

// Module polls process resource usage while the application runs.
// Requires a *zap.Logger and a Config to be provided.
var Module = fx.Module("sysmetrics",
	fx.Provide(newPoller),
	fx.Invoke(func(*sysmetrics.Poller) {}),
)

// Params holds dependencies for creating the poller.
type Params struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Lifecycle fx.Lifecycle
}

func newPoller(p Params) *sysmetrics.Poller {
	opts := []sysmetrics.Option{
		sysmetrics.WithLogger(p.Logger.Named("sysmetrics")),
	}
	if p.Config.Interval > 0 {
		opts = append(opts, sysmetrics.WithInterval(p.Config.Interval))
	}
	if p.Config.Labels != nil {
		opts = append(opts, sysmetrics.WithLabels(*p.Config.Labels))
	}
	if p.Config.Factory != nil {
		opts = append(opts, sysmetrics.WithFactory(p.Config.Factory))
	}

	poller := sysmetrics.New(opts...)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			poller.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			poller.Stop()
			return nil
		},
	})

	return poller
}
