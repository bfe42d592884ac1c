package main

import (
	"os"

	"github.com/rustyeddy/simbot/cmd/simbot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
