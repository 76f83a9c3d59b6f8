// =============================================================================
// POS to IIF Converter - Table Parser Module
// =============================================================================
//
// This module decodes POS export files into the neutral Table structure the
// conversion core consumes. Two input flavors are supported:
//   - XLSX: the native export format of the POS (first sheet, first row is
//     the header row)
//   - CSV:  exports that went through a spreadsheet save-as
//
// The parser is deliberately tolerant: rows may have fewer cells than there
// are headers (missing cells read as empty), fully blank rows are skipped,
// and headers keep their raw text here — whitespace trimming is the row
// normalizer's job.
//
// =============================================================================

package tableparser

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/retailops/pos-iif-converter/internal/types"
)

// Parse decodes the file at path into a Table, dispatching on the extension.
func Parse(path string) (*types.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return ParseReader(f, filepath.Base(path))
}

// ParseReader decodes an export from a reader. The filename decides the
// format; this is the entry point for uploaded files, where only a name and
// a stream exist.
func ParseReader(r io.Reader, filename string) (*types.Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return parseXLSX(r, filename)
	case ".csv":
		return parseCSV(r, filename)
	default:
		return nil, fmt.Errorf("unsupported file type %q (expected .xlsx or .csv)", filepath.Ext(filename))
	}
}

// =============================================================================
// XLSX
// =============================================================================

// parseXLSX reads the first sheet of an XLSX workbook. The first row is the
// header row; everything after is data.
func parseXLSX(r io.Reader, filename string) (*types.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	return buildTable(rows[0], rows[1:], filename), nil
}

// =============================================================================
// CSV
// =============================================================================

// parseCSV reads a comma-delimited export. The reader is configured the same
// way for every file: variable field counts and lazy quotes, because POS
// exports are not strict CSV.
func parseCSV(r io.Reader, filename string) (*types.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	return buildTable(records[0], records[1:], filename), nil
}

// =============================================================================
// TABLE CONSTRUCTION
// =============================================================================

// buildTable converts raw header and data rows into a Table. Blank rows are
// dropped; short rows are padded with empty cells.
func buildTable(header []string, data [][]string, filename string) *types.Table {
	headers := make([]string, len(header))
	copy(headers, header)

	table := &types.Table{
		Headers:    headers,
		SourceFile: filename,
	}

	for _, raw := range data {
		if isRowEmpty(raw) {
			continue
		}
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(raw) {
				row[h] = raw[i]
			} else {
				row[h] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
