// Package main is the entry point for the tasklog CLI/TUI.
package main

import (
	"os"

	"github.com/watchfire-io/tasklog/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
