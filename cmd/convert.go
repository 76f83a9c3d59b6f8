// =============================================================================
// POS to IIF Converter - Convert Command
// =============================================================================
//
// This file defines the 'convert' command, the main batch command for turning
// POS export files into IIF files.
//
// COMMAND USAGE:
//   pos2iif convert [flags]
//
// FLAGS:
//   --dry-run     : Parse and convert without writing output files
//   --single      : Process only a single file (specify with --file)
//   --file        : Path to a specific file to process (used with --single)
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Discover export files in the input directory
//   3. Convert each file (concurrently, one goroutine per file)
//   4. Archive successfully processed inputs
//   5. Print a summary and write an error log if anything failed
//
// Errors in one file never affect the processing of others.
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/retailops/pos-iif-converter/internal/config"
	"github.com/retailops/pos-iif-converter/internal/converter"
	"github.com/retailops/pos-iif-converter/internal/tableparser"
	"github.com/retailops/pos-iif-converter/pkg/utils"
)

// dryRun converts without writing output files.
var dryRun bool

// singleFile indicates whether to process only a single file.
var singleFile bool

// filePath is the path to a specific file to process (used with --single).
var filePath string

// convertCmd represents the 'convert' command.
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert POS export files to QuickBooks IIF",
	Long: `The convert command scans the input directory for POS export files (.xlsx,
.csv) and converts each one to a QuickBooks IIF import file.

Files are processed concurrently and independently. On success the generated
IIF is placed in the output directory and the input is moved to the archive
directory. On failure the input stays put, the error is logged, and the other
files carry on.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert()
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Parse and convert without writing output files",
	)

	convertCmd.Flags().BoolVar(
		&singleFile,
		"single",
		false,
		"Process only a single file (use with --file)",
	)

	convertCmd.Flags().StringVar(
		&filePath,
		"file",
		"",
		"Path to a specific file to process (used with --single)",
	)
}

// runConvert orchestrates the batch conversion.
func runConvert() error {
	startTime := time.Now()
	logger := converter.NewLogger(verbose)

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fm := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.ArchiveDir)
	if err := fm.EnsureDirectories(); err != nil {
		return err
	}

	// =========================================================================
	// DISCOVER INPUT FILES
	// =========================================================================

	var inputFiles []string
	if singleFile {
		if filePath == "" {
			return fmt.Errorf("--single requires --file")
		}
		inputFiles = []string{filePath}
	} else {
		inputFiles, err = fm.DiscoverInputFiles()
		if err != nil {
			return err
		}
	}

	if len(inputFiles) == 0 {
		fmt.Println("No export files found in the input directory.")
		return nil
	}

	fmt.Printf("Found %d file(s) to process\n", len(inputFiles))

	// =========================================================================
	// PROCESS FILES CONCURRENTLY
	// =========================================================================
	// One goroutine per file; results are collected over a buffered channel.

	var wg sync.WaitGroup
	results := make(chan converter.Result, len(inputFiles))

	for _, file := range inputFiles {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			if dryRun {
				results <- dryRunFile(path, cfg)
				return
			}
			results <- converter.NewFile(path, cfg, logger).Run()
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// =========================================================================
	// COLLECT RESULTS
	// =========================================================================

	var successCount, errorCount int
	var errors []string

	for result := range results {
		if result.Success {
			successCount++
			fmt.Printf("  ok   %s -> %s (%d bills, %d skipped)\n",
				filepath.Base(result.FilePath), result.OutputFile,
				result.Stats.BillsEmitted, result.Stats.BillsSkipped)

			if !dryRun {
				if err := fm.ArchiveInput(result.FilePath); err != nil {
					logger.Warn("%v", err)
				}
			}
		} else {
			errorCount++
			errors = append(errors, fmt.Sprintf("%s: %v", filepath.Base(result.FilePath), result.Error))
			fmt.Printf("  FAIL %s: %v\n", filepath.Base(result.FilePath), result.Error)
		}
	}

	// =========================================================================
	// SUMMARY
	// =========================================================================

	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Total files:     %d\n", len(inputFiles))
	fmt.Printf("Successful:      %d\n", successCount)
	fmt.Printf("Errors:          %d\n", errorCount)
	fmt.Printf("Time elapsed:    %s\n", time.Since(startTime))

	if errorCount > 0 && !dryRun {
		if logPath, err := fm.WriteErrorLog(errors); err == nil {
			fmt.Printf("Errors logged to %s\n", logPath)
		}
	}

	return nil
}

// dryRunFile converts a file in memory without writing anything.
func dryRunFile(path string, cfg *config.Config) converter.Result {
	result := converter.Result{FilePath: path}

	table, err := tableparser.Parse(path)
	if err != nil {
		result.Error = fmt.Errorf("failed to decode input: %w", err)
		return result
	}

	_, stats, err := converter.Convert(table, cfg.Ledger)
	result.Stats = stats
	if err != nil {
		result.Error = err
		return result
	}

	result.Success = true
	result.OutputFile = "(dry run)"
	return result
}
