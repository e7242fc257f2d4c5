package main

import (
	"os"

	"github.com/nodelens/nodelens/cmd/nodelens"
)

func main() {
	if err := nodelens.Execute(); err != nil {
		os.Exit(1)
	}
}
