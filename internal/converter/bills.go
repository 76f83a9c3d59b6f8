// =============================================================================
// POS to IIF Converter - Bill Grouping and Classification
// =============================================================================
//
// This module partitions reconciled line items into bills (one output
// transaction per distinct bill number), normalizes each bill's transaction
// date, and classifies the bill as INVOICE or CREDIT MEMO.
//
// DATE HANDLING:
//   The POS emits timestamps with '.' as the time separator, e.g.
//   "2024-01-05 10.30.00". The first two dots are repaired to ':' before
//   parsing. A bill whose repaired date still fails to parse is silently
//   skipped; a bad date is a data-quality issue local to that bill, not a
//   reason to fail the run.
//
// CLASSIFICATION:
//   A bill whose rows are all returns becomes a CREDIT MEMO with its total
//   negated, so the return shows as a credit. Everything else is an INVOICE
//   with the raw signed sum. Return-only handling can be disabled via
//   configuration, in which case such bills are dropped.
//
// =============================================================================

package converter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/retailops/pos-iif-converter/internal/config"
	"github.com/retailops/pos-iif-converter/internal/types"
)

// transDateLayouts are the timestamp layouts accepted after dot repair.
// The export normally uses the first; the rest cover exports that passed
// through spreadsheet round-trips.
var transDateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006-01-02T15:04:05",
	"01/02/2006 15:04:05",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
}

// ParseTransactionDate repairs and parses a raw POS timestamp. The first two
// '.' occurrences are replaced with ':' to undo the export's time-separator
// quirk, then the result is tried against the known layouts.
func ParseTransactionDate(raw string) (time.Time, error) {
	cleaned := strings.Replace(strings.TrimSpace(raw), ".", ":", 2)
	for _, layout := range transDateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized transaction date %q", raw)
}

// BuildBills partitions reconciled line items by bill number, in order of
// first occurrence, and derives each bill's date, kind, document number and
// total. Bills with unparseable dates (and return-only bills when credit
// memos are disabled) are skipped; the count of skipped bills is returned
// alongside the result.
func BuildBills(items []types.LineItem, rules config.LedgerRules) ([]types.Bill, int) {
	groups := make(map[string][]types.LineItem)
	var order []string

	for _, item := range items {
		if _, seen := groups[item.BillNumber]; !seen {
			order = append(order, item.BillNumber)
		}
		groups[item.BillNumber] = append(groups[item.BillNumber], item)
	}

	var bills []types.Bill
	skipped := 0

	for _, billNo := range order {
		lines := groups[billNo]

		date, err := ParseTransactionDate(lines[0].TransactionDateRaw)
		if err != nil {
			skipped++
			continue
		}

		kind, total := classify(lines, rules)
		if kind == "" {
			skipped++
			continue
		}

		bills = append(bills, types.Bill{
			BillNumber:  billNo,
			Date:        date,
			Till:        lines[0].TillNumber,
			DocNumber:   docNumber(date, billNo, rules.DocNumberPad),
			Kind:        kind,
			TotalAmount: total,
			Lines:       lines,
		})
	}

	return bills, skipped
}

// classify determines the transaction kind and total for a bill. An empty
// kind means the bill is excluded from the output.
func classify(lines []types.LineItem, rules config.LedgerRules) (types.Kind, decimal.Decimal) {
	total := decimal.Zero
	allReturns := true
	for _, l := range lines {
		total = total.Add(l.Total)
		if l.TransactionType != types.TypeReturn {
			allReturns = false
		}
	}

	if allReturns {
		if !rules.ReturnsAsCreditMemos() {
			return "", decimal.Zero
		}
		return types.KindCreditMemo, total.Neg()
	}
	return types.KindInvoice, total
}

// docNumber derives the document number, e.g. "INV05/07" for bill 7 on the
// 5th. Numeric bill numbers are zero-padded to the configured width;
// non-numeric ones are used verbatim.
func docNumber(date time.Time, billNo string, pad int) string {
	billPart := billNo
	if n, err := strconv.Atoi(billNo); err == nil {
		billPart = fmt.Sprintf("%0*d", pad, n)
	}
	return fmt.Sprintf("INV%02d/%s", date.Day(), billPart)
}
