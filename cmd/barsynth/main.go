package main

import (
	"os"

	"github.com/rustyeddy/barsynth/cmd/barsynth/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
