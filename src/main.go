package main

import (
	"fmt"
	"os"

	"github.com/fachschaft/dms/src/cmd"
)

func main() {
	if err := InitCLI(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
