// Command examprep runs the extraction pipeline and video recommendations
// from the terminal, without the HTTP server or database.
package main

import (
	"os"

	"github.com/Shimizu-Technology/exam-prep-api/internal/cli"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	cli.Version = Version
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
