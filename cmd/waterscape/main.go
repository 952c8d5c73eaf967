package main

import (
	"os"

	"github.com/dylankamski/waterscape/cmd/waterscape/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
