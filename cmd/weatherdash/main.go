// Package main is the entry point for the weatherdash launcher.
//
// Run with no arguments, the binary prepares the weather dashboard's Python
// virtual environment and replaces itself with the dashboard process. All
// functionality lives in internal/cli.
//
// Build-time variables (version, commit, date) are injected via ldflags
// during release builds. During development they default to "dev",
// "none", and "unknown".
package main

import (
	"github.com/shinji-kodama/weatherdash/internal/cli"
)

// version, commit, and date are set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	cli.Execute(cli.NewRootCommand())
}
