// Package main is the entry point for the janus CLI.
//
// The binary delegates all functionality to the internal/cli package,
// which defines cobra commands for managing the local development
// stack and recording Hyperliquid market data.
//
// Build-time variables (version, commit, date) are injected via
// ldflags during release builds. During development they default to
// "dev", "none", and "unknown" respectively.
package main

import (
	"github.com/janus-labs/janus/internal/cli"
)

// version, commit, and date are set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Inject build-time version info into the CLI package, keeping
	// main.go decoupled from the CLI framework.
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
