package main

import (
	"os"

	"github.com/xieerduoyishengzhidi/pentosh-brain/cmd/brain/commands"
)

// main is the entry point for the pentosh-brain CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
