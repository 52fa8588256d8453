// Package main provides the entry point for the patidx CLI.
package main

import (
	"os"

	"github.com/layeddie/patidx/cmd/patidx/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
