// autobase16 - a base16 colour scheme picker
//
// autobase16 selects sixteen colours from a pool of candidates and renders
// them into base16 templates.
package main

import (
	"os"

	"github.com/jmylchreest/autobase16/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
