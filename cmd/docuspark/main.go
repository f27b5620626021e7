package main

import (
	"os"

	"github.com/anjali642004/docuspark-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
