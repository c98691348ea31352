package main

import (
	"os"

	"github.com/voltdesk/voltdesk/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
