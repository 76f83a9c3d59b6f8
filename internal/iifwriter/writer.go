// =============================================================================
// POS to IIF Converter - IIF Writer Module
// =============================================================================
//
// This module renders bills into the QuickBooks IIF import format: a
// tab-delimited text document with newline-terminated records.
//
// DOCUMENT STRUCTURE:
//   The document opens with three fixed header records declaring the column
//   schema for the transaction, split and terminator record kinds:
//
//     !TRNS	TRNSTYPE	DATE	ACCNT	NAME	MEMO	AMOUNT	DOCNUM
//     !SPL	TRNSTYPE	DATE	ACCNT	NAME	MEMO	AMOUNT	QNTY	INVITEM
//     !ENDTRNS
//
//   Each bill then contributes one block, never interleaved with another:
//
//     TRNS	INVOICE	02/03/2024	Accounts Receivable	Walk In	Till 1 Bill 7	10.00	INV03/07
//     SPL	INVOICE	02/03/2024	Sales Revenue	Walk In	Widget A1	-10.00	1	Widget
//     ENDTRNS
//
// SIGN CONVENTION:
//   Every split amount is the inverse of its line's contribution to the TRNS
//   amount, so TRNS plus its SPL records always sums to zero. For an INVOICE
//   the splits are negated line totals; for a CREDIT MEMO the TRNS amount is
//   already negated, so the splits carry the raw line totals.
//
// FIELD LIMITS:
//   QuickBooks caps item names at 31 characters. INVITEM values are truncated
//   (by character, never mid-rune), not padded.
//
// =============================================================================

package iifwriter

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/retailops/pos-iif-converter/internal/config"
	"github.com/retailops/pos-iif-converter/internal/types"
)

// Fixed schema declarations at the top of every document.
const (
	headerTRNS    = "!TRNS\tTRNSTYPE\tDATE\tACCNT\tNAME\tMEMO\tAMOUNT\tDOCNUM\n"
	headerSPL     = "!SPL\tTRNSTYPE\tDATE\tACCNT\tNAME\tMEMO\tAMOUNT\tQNTY\tINVITEM\n"
	headerENDTRNS = "!ENDTRNS\n"
)

// itemNameLimit is the QuickBooks INVITEM length cap.
const itemNameLimit = 31

// dateLayout is the IIF date format.
const dateLayout = "01/02/2006"

// Render serializes bills into a complete IIF document. Bills appear in the
// order given, which the grouper guarantees is first-occurrence order of the
// bill numbers in the reconciled input.
func Render(bills []types.Bill, rules config.LedgerRules) string {
	var b strings.Builder

	b.WriteString(headerTRNS)
	b.WriteString(headerSPL)
	b.WriteString(headerENDTRNS)

	for _, bill := range bills {
		writeBill(&b, bill, rules)
	}

	return b.String()
}

// writeBill emits one TRNS record, one SPL record per line item, and the
// ENDTRNS terminator.
func writeBill(b *strings.Builder, bill types.Bill, rules config.LedgerRules) {
	date := bill.Date.Format(dateLayout)
	memo := "Till " + bill.Till + " Bill " + bill.BillNumber

	writeRecord(b,
		"TRNS",
		string(bill.Kind),
		date,
		rules.ARAccount,
		rules.CustomerName,
		memo,
		bill.TotalAmount.StringFixed(2),
		bill.DocNumber,
	)

	for _, line := range bill.Lines {
		writeRecord(b,
			"SPL",
			string(bill.Kind),
			date,
			rules.RevenueAccount,
			rules.CustomerName,
			strings.TrimSpace(line.Description+" "+line.ItemCode),
			splitAmount(line.Total, bill.Kind).StringFixed(2),
			line.Quantity.String(),
			truncateItemName(line.Description),
		)
	}

	b.WriteString("ENDTRNS\n")
}

// writeRecord writes one tab-delimited, newline-terminated record.
func writeRecord(b *strings.Builder, fields ...string) {
	b.WriteString(strings.Join(fields, "\t"))
	b.WriteByte('\n')
}

// splitAmount flips the sign of a line total so the split offsets the TRNS
// record. CREDIT MEMO totals are already negated at the bill level, so their
// splits keep the raw line total.
func splitAmount(total decimal.Decimal, kind types.Kind) decimal.Decimal {
	if kind == types.KindCreditMemo {
		return total
	}
	return total.Neg()
}

// truncateItemName caps an item name at the INVITEM limit, counting
// characters rather than bytes.
func truncateItemName(name string) string {
	runes := []rune(name)
	if len(runes) <= itemNameLimit {
		return name
	}
	return string(runes[:itemNameLimit])
}
