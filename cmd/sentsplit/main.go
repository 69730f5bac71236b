// Command sentsplit splits text into bounded-length segments, either once
// from the command line or as an HTTP or MCP service.
package main

import (
	"fmt"
	"os"

	"github.com/jamesainslie/go-sentsplit/cmd/sentsplit/commands"
)

// Version information (set by ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersion(version, commit, date)

	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
