package main

import (
	"os"

	"github.com/cogai-labs/goldenthread/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
