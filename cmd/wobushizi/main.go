package main

import (
	"os"

	"go_5_wobushizi/internal/cli"
)

func main() {
	if err := cli.New().Execute(); err != nil {
		os.Exit(1)
	}
}
