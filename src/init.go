package main

import (
	"fmt"
	"os"

	"github.com/fachschaft/dms/src/paths"
)

// InitCLI prepares the CLI environment: directories first, then the
// log file inside them.
func InitCLI() error {
	if err := paths.EnsureDirs(); err != nil {
		return fmt.Errorf("init directories: %w", err)
	}

	if err := InitLogging(); err != nil {
		// Non-fatal, diagnostics just go nowhere
		fmt.Fprintf(os.Stderr, "Warning: could not initialize log file: %v\n", err)
	}

	return nil
}
