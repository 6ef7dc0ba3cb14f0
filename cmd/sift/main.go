package main

import (
	"os"

	"github.com/sift-dev/sift/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
