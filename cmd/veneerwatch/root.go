package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags.
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "veneerwatch",
	Short: "Stream veneer metric updates to the terminal",
	Long: `Veneerwatch exercises the veneer metrics facade against the logging
backend, printing every metric update as a structured log line.

Examples:
  # Watch this process's resource usage gauges
  veneerwatch watch --interval 2s

  # Emit synthetic counter/timer/meter traffic
  veneerwatch demo --rate 10`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
}

// newLogger builds a development logger for the subcommands. Metric updates
// are logged at debug level, so the logging backend always gets a debug
// logger; --verbose additionally surfaces internal poller logs.
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	return cfg.Build()
}
