// Package main is the entry point for the snowline CLI.
package main

import (
	"os"

	"github.com/snowline/snowline/cmd/snowline/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
