// Package main is the entry point for the gavel API server.
package main

import (
	"os"

	"github.com/hansardlab/gavel/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
