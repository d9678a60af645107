package main

import (
	"os"

	"seedvault/cmd/seedvault/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
