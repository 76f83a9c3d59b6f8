// =============================================================================
// POS to IIF Converter - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - tableparser
//   - converter
//   - iifwriter
//   - server
//
// =============================================================================

package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// INPUT TABLE
// =============================================================================

// Table is the decoded tabular input handed to the conversion core.
// It is produced by the tableparser package from an XLSX or CSV export.
type Table struct {
	// Headers contains the column headers, in file order.
	// Headers are trimmed of surrounding whitespace when the table is built.
	Headers []string

	// Rows contains the data rows as maps of header -> cell value.
	Rows []map[string]string

	// SourceFile is the path or name of the source file, for error messages.
	SourceFile string
}

// Required column headers in the POS export.
const (
	ColBill        = "Bill#"
	ColCode        = "Code"
	ColType        = "Type"
	ColTransDate   = "Trans Date"
	ColTill        = "Till#"
	ColDescription = "Description"
	ColTotal       = "Total"
	ColQty         = "Qty" // optional, defaults to 1
)

// Transaction type values after normalization (trimmed, lowercased).
const (
	TypeSale   = "sale"
	TypeVoid   = "void"
	TypeReturn = "return"
)

// =============================================================================
// LINE ITEMS
// =============================================================================

// LineItem is a single typed row from the POS export. It is populated once by
// the row normalizer; downstream stages never touch the raw string-keyed maps.
type LineItem struct {
	// BillNumber groups rows into one output transaction.
	BillNumber string

	// ItemCode identifies the product or service sold.
	ItemCode string

	// TransactionType is the normalized row type: "sale", "void", "return",
	// or any other value passed through as-is.
	TransactionType string

	// TransactionDateRaw is the unparsed timestamp from the export.
	// The POS emits times with '.' separators, e.g. "2024-01-05 10.30.00".
	TransactionDateRaw string

	// TillNumber identifies the register, informational only.
	TillNumber string

	// Description is the free-text item description.
	Description string

	// Quantity defaults to 1 when the Qty column is absent or blank.
	Quantity decimal.Decimal

	// Total is the signed line amount, sale-positive on input.
	Total decimal.Decimal

	// RowIndex is the zero-based position of the row in the input table.
	// Used to keep serialization order stable.
	RowIndex int
}

// Key returns the reconciliation key for this row. Rows sharing a key are
// candidates for sale/void cancellation; rows with different keys never
// interact.
func (li LineItem) Key() ReconKey {
	return ReconKey{Bill: li.BillNumber, Code: li.ItemCode}
}

// ReconKey is the (bill, item code) pair that scopes void reconciliation.
type ReconKey struct {
	Bill string
	Code string
}

// =============================================================================
// BILLS
// =============================================================================

// Kind is the ledger transaction kind emitted for a bill.
type Kind string

const (
	KindInvoice    Kind = "INVOICE"
	KindCreditMemo Kind = "CREDIT MEMO"
)

// Bill is one output transaction: all surviving line items for a single bill
// number, with the derived fields needed by the IIF serializer.
type Bill struct {
	// BillNumber is the grouping identifier from the export.
	BillNumber string

	// Date is the parsed transaction date of the bill's first row.
	Date time.Time

	// Till is the register identifier of the bill's first row.
	Till string

	// DocNumber is the derived document number, e.g. "INV05/07".
	DocNumber string

	// Kind is INVOICE or CREDIT MEMO.
	Kind Kind

	// TotalAmount is the bill total. For CREDIT MEMO bills this is the
	// negated raw sum so a return shows as a credit.
	TotalAmount decimal.Decimal

	// Lines are the member line items, in input row order.
	Lines []LineItem
}
