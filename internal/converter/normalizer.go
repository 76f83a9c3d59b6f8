// =============================================================================
// POS to IIF Converter - Row Normalizer
// =============================================================================
//
// This module turns the raw string-keyed table into typed line items. It does
// two jobs:
//   1. Normalization: trim incidental whitespace from column headers and
//      canonicalize the Type value (trimmed, lowercased) on every row.
//   2. Typed record construction: populate a LineItem per row, failing fast
//      with a MissingFieldError when a required column is absent or a numeric
//      value cannot be parsed.
//
// Normalization is idempotent: running it on already-normalized input is a
// no-op.
//
// =============================================================================

package converter

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/retailops/pos-iif-converter/internal/types"
)

// NormalizeTable trims every column header and canonicalizes the Type value
// on every row, in place. Cell values under renamed headers are re-keyed so
// lookups by the canonical header names succeed.
func NormalizeTable(t *types.Table) {
	for i, h := range t.Headers {
		t.Headers[i] = strings.TrimSpace(h)
	}

	for _, row := range t.Rows {
		for key, value := range row {
			trimmed := strings.TrimSpace(key)
			if trimmed != key {
				delete(row, key)
				row[trimmed] = value
			}
		}
		if raw, ok := row[types.ColType]; ok {
			row[types.ColType] = strings.ToLower(strings.TrimSpace(raw))
		}
	}
}

// BuildLineItems converts a normalized table into typed line items. Required
// columns are Bill#, Code, Type, Trans Date, Till#, Description and Total;
// Qty is optional and defaults to 1 when absent or blank. A missing column or
// a non-numeric Total aborts the conversion.
func BuildLineItems(t *types.Table) ([]types.LineItem, error) {
	required := []string{
		types.ColBill, types.ColCode, types.ColType, types.ColTransDate,
		types.ColTill, types.ColDescription, types.ColTotal,
	}
	have := make(map[string]bool, len(t.Headers))
	for _, h := range t.Headers {
		have[h] = true
	}
	for _, col := range required {
		if !have[col] {
			return nil, &MissingFieldError{Column: col}
		}
	}

	items := make([]types.LineItem, 0, len(t.Rows))
	for i, row := range t.Rows {
		total, err := parseAmount(row[types.ColTotal])
		if err != nil {
			return nil, &MissingFieldError{
				Column: types.ColTotal,
				Row:    i + 1,
				Reason: "value " + strings.TrimSpace(row[types.ColTotal]) + " is not numeric",
			}
		}

		qty, err := parseQuantity(row[types.ColQty])
		if err != nil {
			return nil, &MissingFieldError{
				Column: types.ColQty,
				Row:    i + 1,
				Reason: "value " + strings.TrimSpace(row[types.ColQty]) + " is not numeric",
			}
		}

		items = append(items, types.LineItem{
			BillNumber:         strings.TrimSpace(row[types.ColBill]),
			ItemCode:           strings.TrimSpace(row[types.ColCode]),
			TransactionType:    row[types.ColType],
			TransactionDateRaw: row[types.ColTransDate],
			TillNumber:         strings.TrimSpace(row[types.ColTill]),
			Description:        strings.TrimSpace(row[types.ColDescription]),
			Quantity:           qty,
			Total:              total,
			RowIndex:           i,
		})
	}

	return items, nil
}

// parseAmount parses a required monetary value.
func parseAmount(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(raw))
}

// parseQuantity parses the optional Qty cell. Absent or blank means 1: the
// export omits the quantity on single-unit lines.
func parseQuantity(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.NewFromInt(1), nil
	}
	return decimal.NewFromString(raw)
}
