// =============================================================================
// POS to IIF Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (pos2iif)
//   ├── convertCmd (pos2iif convert)
//   ├── serveCmd (pos2iif serve)
//   ├── validateCmd (pos2iif validate)
//   └── versionCmd (pos2iif version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose logging when set to true.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pos2iif",
	Short: "POS to IIF Converter - Transform POS sales exports into QuickBooks IIF imports",
	Long: `POS to IIF Converter turns point-of-sale transaction exports (XLSX or CSV)
into QuickBooks-compatible IIF ledger imports: one INVOICE or CREDIT MEMO per
bill, with itemized split lines.

Voided line items are netted against their matching sales before anything is
emitted, transaction dates with the export's '.' time separators are repaired,
and bill totals are computed from the surviving lines.

Example Usage:
  pos2iif convert                      # Convert all files in the input directory
  pos2iif convert --config ./my.yaml   # Use a custom configuration file
  pos2iif serve                        # Run the HTTP upload service
  pos2iif validate                     # Validate configuration without processing`,

	Run: func(cmd *cobra.Command, args []string) {
		// No subcommand: print the help message.
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags are available to this command and all subcommands.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file (default is config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
