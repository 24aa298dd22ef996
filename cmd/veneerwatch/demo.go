package main

import (
	"context"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/veneerhq/veneer"
	"github.com/veneerhq/veneer/logmetrics"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Emit synthetic metric traffic through the logging backend",
	Long: `Emit synthetic counter, floating-point counter, meter and timer updates
through the logging backend at a fixed rate, until interrupted.

The floating-point counter takes fractional increments, so the log lines
show the accumulating adapter forwarding whole increments to the integer
counter only when a boundary is crossed.`,
	RunE: runDemo,
}

var demoRate int

func init() {
	demoCmd.Flags().IntVar(&demoRate, "rate", 4, "updates per second")
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	factory := logmetrics.New(logger.Named("metrics"))

	requests := veneer.NewCounter("demo_requests_total",
		veneer.WithFactory(factory),
		veneer.WithDimensions(veneer.Dim("source", "demo")),
	)
	bytesOut := veneer.NewFloatingPointCounter("demo_kilobytes_out",
		veneer.WithFactory(factory),
	)
	inflight := veneer.NewMeter("demo_inflight",
		veneer.WithFactory(factory),
	)
	latency := veneer.NewTimer("demo_latency",
		veneer.WithFactory(factory),
		veneer.WithDisplayUnit(veneer.Milliseconds),
	)
	defer func() {
		requests.Destroy()
		bytesOut.Destroy()
		inflight.Destroy()
		latency.Destroy()
	}()

	if demoRate <= 0 {
		demoRate = 1
	}
	ticker := time.NewTicker(time.Second / time.Duration(demoRate))
	defer ticker.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		select {
		case <-ticker.C:
			requests.Inc()
			bytesOut.Increment(rand.Float64() * 3)
			inflight.Increment(1)
			latency.Record(time.Duration(rand.Intn(250)) * time.Millisecond)
			inflight.Decrement(1)
		case <-ctx.Done():
			return nil
		}
	}
}
