package main

import (
	"os"

	"github.com/bnema/doctowatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
