package main

import (
	"os"

	"github.com/hostsnap/hostsnap/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
