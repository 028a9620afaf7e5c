package main

import (
	"os"

	"github.com/rtzll/ytorg/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
