// =============================================================================
// POS to IIF Converter - Conversion Pipeline
// =============================================================================
//
// This module wires the conversion stages together. The core is a pure
// function: a decoded table goes in, the IIF document comes out. All file
// handling lives in FileConverter, which the batch command runs once per
// input file.
//
// CONVERSION PIPELINE:
//   1. Normalize headers and row types
//   2. Build typed line items (fails fast on structural problems)
//   3. Reconcile voids against sales per (bill, item code) key
//   4. Group surviving rows into bills, classify, derive dates
//   5. Serialize bills to IIF
//
// Each file is processed independently; FileConverter holds no shared state
// and is safe to run concurrently across files.
//
// =============================================================================

package converter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/retailops/pos-iif-converter/internal/config"
	"github.com/retailops/pos-iif-converter/internal/iifwriter"
	"github.com/retailops/pos-iif-converter/internal/tableparser"
	"github.com/retailops/pos-iif-converter/internal/types"
)

// =============================================================================
// STATS AND RESULTS
// =============================================================================

// Stats describes what one conversion did.
type Stats struct {
	// RowsRead is the number of data rows in the input table.
	RowsRead int

	// BillsEmitted is the number of transactions written to the IIF output.
	BillsEmitted int

	// BillsSkipped counts bills dropped for unparseable dates or excluded
	// return-only bills.
	BillsSkipped int

	// LinesEmitted is the number of SPL records written.
	LinesEmitted int

	// Elapsed is the conversion wall time.
	Elapsed time.Duration
}

// Result is the outcome of processing a single input file.
type Result struct {
	// RunID uniquely identifies this conversion run in logs and summaries.
	RunID uuid.UUID

	// FilePath is the input file that was processed.
	FilePath string

	// OutputFile is the generated IIF file. Empty if processing failed.
	OutputFile string

	// Success indicates whether processing succeeded.
	Success bool

	// Error holds the failure, nil on success.
	Error error

	// Stats contains processing statistics.
	Stats Stats
}

// =============================================================================
// CORE CONVERSION
// =============================================================================

// Convert runs the full pipeline on an in-memory table and returns the IIF
// document. It performs no I/O and holds no state between calls: callers in a
// service context can invoke it per request without coordination.
func Convert(t *types.Table, rules config.LedgerRules) (string, Stats, error) {
	start := time.Now()
	stats := Stats{RowsRead: len(t.Rows)}

	NormalizeTable(t)

	items, err := BuildLineItems(t)
	if err != nil {
		return "", stats, fmt.Errorf("invalid input table: %w", err)
	}

	reconciled := Reconcile(items, rules.CancellationPolicy)

	bills, skipped := BuildBills(reconciled, rules)
	stats.BillsEmitted = len(bills)
	stats.BillsSkipped = skipped
	for _, b := range bills {
		stats.LinesEmitted += len(b.Lines)
	}

	doc := iifwriter.Render(bills, rules)
	stats.Elapsed = time.Since(start)
	return doc, stats, nil
}

// =============================================================================
// PER-FILE CONVERTER
// =============================================================================

// FileConverter converts a single POS export file to an IIF file on disk.
type FileConverter struct {
	inputPath string
	cfg       *config.Config
	logger    Logger
}

// NewFile creates a FileConverter for one input file.
func NewFile(inputPath string, cfg *config.Config, logger Logger) *FileConverter {
	if logger == nil {
		logger = NewLogger(false)
	}
	return &FileConverter{inputPath: inputPath, cfg: cfg, logger: logger}
}

// Run executes the conversion for the file and writes the output.
func (c *FileConverter) Run() Result {
	result := Result{
		RunID:    uuid.New(),
		FilePath: c.inputPath,
	}

	c.logger.Info("processing %s (run %s)", c.inputPath, result.RunID)

	table, err := tableparser.Parse(c.inputPath)
	if err != nil {
		result.Error = fmt.Errorf("failed to decode input: %w", err)
		return result
	}

	doc, stats, err := Convert(table, c.cfg.Ledger)
	result.Stats = stats
	if err != nil {
		result.Error = err
		return result
	}

	c.logger.Debug("%d rows -> %d bills (%d skipped)",
		stats.RowsRead, stats.BillsEmitted, stats.BillsSkipped)

	outputPath := filepath.Join(c.cfg.OutputDir, c.outputFileName(result.RunID))
	if err := os.WriteFile(outputPath, []byte(doc), 0644); err != nil {
		result.Error = fmt.Errorf("failed to write output: %w", err)
		return result
	}

	result.OutputFile = outputPath
	result.Success = true
	c.logger.Info("wrote %s", outputPath)
	return result
}

// outputFileName derives the output name from the input base name plus a
// short run ID, so repeated conversions of the same export never collide.
func (c *FileConverter) outputFileName(runID uuid.UUID) string {
	base := filepath.Base(c.inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s_%s.iif", base, runID.String()[:8])
}

// =============================================================================
// LOGGER
// =============================================================================

// Logger is the logging interface carried through the pipeline.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// NewLogger returns the default stderr logger. Debug output is emitted only
// when verbose is true.
func NewLogger(verbose bool) Logger {
	return &defaultLogger{verbose: verbose}
}

type defaultLogger struct {
	verbose bool
}

func (l *defaultLogger) Debug(msg string, args ...interface{}) {
	if l.verbose {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+msg+"\n", args...)
	}
}

func (l *defaultLogger) Info(msg string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "[INFO] "+msg+"\n", args...)
}

func (l *defaultLogger) Warn(msg string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "[WARN] "+msg+"\n", args...)
}

func (l *defaultLogger) Error(msg string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "[ERROR] "+msg+"\n", args...)
}
