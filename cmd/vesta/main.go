// Command vesta is the entry point for the vesta port scanner CLI.
package main

import (
	"github.com/Zilvh/Vesta-Sries/cmd/cli"
)

// Build information - set by ldflags during build.
var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

func main() {
	cli.SetVersion(version, commit, buildTime)
	cli.Execute()
}
