package main

import (
	"log"
	"os"

	"github.com/sadopc/tideline/internal/cli"
)

func main() {
	f, err := cli.SetupLogging()
	if err != nil {
		log.Fatalf("error opening debug log: %v", err)
	}
	defer f.Close()

	if err := cli.New().Execute(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("error: %v", err)
	}
}
