// Package main is the entry point for the Fractis CLI.
package main

import (
	"os"

	"github.com/fractis/fractis/internal/cli"
)

// Build metadata, stamped at link time via -ldflags.
//
//nolint:gochecknoglobals // Set by the linker
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	cli.SetBuildInfo(cli.BuildInfo{Version: version, Commit: commit, Date: date})

	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
