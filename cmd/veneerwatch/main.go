// Package main provides the veneerwatch CLI for exercising the veneer
// metrics facade: it streams metric updates to the terminal through the
// logging backend.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
