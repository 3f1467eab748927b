package main

import (
	"os"

	"github.com/abhisek/spellbound/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
