package main

import (
	"os"

	"github.com/duedil-labs/duedil/cmd/duedil/commands"
)

// main is the entry point for the duedil CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
