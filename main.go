package main

import (
	"os"

	"github.com/fieldline/dayboard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
