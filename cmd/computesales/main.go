package main

import (
	"os"

	"github.com/iliyamo/hotel-reservation/cmd/computesales/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
