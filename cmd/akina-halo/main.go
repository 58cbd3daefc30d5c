// Package main is the entry point for the akina-halo application.
package main

import (
	"os"

	"github.com/hmwm/akina-halo/cmd/akina-halo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
