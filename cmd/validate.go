// =============================================================================
// POS to IIF Converter - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which loads the configuration and
// reports the effective settings without converting anything. Useful before
// pointing the batch command at a directory of real exports.
//
// COMMAND USAGE:
//   pos2iif validate
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/retailops/pos-iif-converter/internal/config"
)

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration without processing",
	Long:  `Load the configuration file, apply defaults, validate it, and print the effective settings.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		fmt.Println("Configuration OK")
		fmt.Printf("Input directory:      %s\n", cfg.InputDir)
		fmt.Printf("Output directory:     %s\n", cfg.OutputDir)
		fmt.Printf("Archive directory:    %s\n", cfg.ArchiveDir)
		fmt.Printf("AR account:           %s\n", cfg.Ledger.ARAccount)
		fmt.Printf("Revenue account:      %s\n", cfg.Ledger.RevenueAccount)
		fmt.Printf("Customer name:        %s\n", cfg.Ledger.CustomerName)
		fmt.Printf("Cancellation policy:  %s\n", cfg.Ledger.CancellationPolicy)
		fmt.Printf("Return credit memos:  %v\n", cfg.Ledger.ReturnsAsCreditMemos())
		fmt.Printf("Listen address:       %s\n", cfg.Server.ListenAddr)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
