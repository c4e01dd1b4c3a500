package main

import (
	"errors"
	"log"
	"os"

	"github.com/computerscienceiscool/tracestack/pkg/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		log.Fatalf("Error: %v", err)
	}
}
