// Package main is the entry point for the factoryopt CLI.
package main

import (
	"os"

	"factoryopt/cmd/factoryopt/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
