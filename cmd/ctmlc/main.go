// Package main provides the ctmlc command.
package main

import (
	"os"

	"github.com/leapstack-labs/ctmlc/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
