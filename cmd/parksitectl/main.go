// Package main is the entry point for the parksitectl CLI.
package main

import (
	"os"

	"github.com/kailas-cloud/parksite/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
