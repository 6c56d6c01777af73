package main

import (
	"os"

	"github.com/dlyog/dl-creator-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
