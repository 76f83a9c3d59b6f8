// =============================================================================
// POS to IIF Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the POS to IIF Converter CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   pos2iif convert       - Convert POS export files in the input directory
//   pos2iif serve         - Run the HTTP upload/convert/download service
//   pos2iif validate      - Validate the configuration without processing
//   pos2iif version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core conversion logic (not for external import)
//   - pkg/           : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/retailops/pos-iif-converter/cmd"
)

func main() {
	cmd.Execute()
}
