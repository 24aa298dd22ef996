package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/veneerhq/veneer/logmetrics"
	"github.com/veneerhq/veneer/sysmetrics"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll process resource usage into logged gauges",
	Long: `Poll this process's resource usage from /proc on a fixed interval and
report each field through a gauge backed by the logging factory, until
interrupted.`,
	RunE: runWatch,
}

var watchInterval time.Duration

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 2*time.Second, "polling interval")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	pollerLogger := zap.NewNop()
	if verbose {
		pollerLogger = logger.Named("sysmetrics")
	}

	poller := sysmetrics.New(
		sysmetrics.WithInterval(watchInterval),
		sysmetrics.WithFactory(logmetrics.New(logger.Named("metrics"))),
		sysmetrics.WithLogger(pollerLogger),
	)

	poller.Start()
	defer poller.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	return nil
}
