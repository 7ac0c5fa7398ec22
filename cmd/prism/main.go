package main

import (
	"os"

	"github.com/vivmac33/marketprism/cmd/prism/commands"
)

// main is the entry point for the Prism CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
