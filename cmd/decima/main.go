package main

import (
	"os"

	"github.com/logicossoftware/go-decima/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
