package iifwriter

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/retailops/pos-iif-converter/internal/config"
	"github.com/retailops/pos-iif-converter/internal/types"
)

func testRules() config.LedgerRules {
	return config.Default().Ledger
}

func testBill(kind types.Kind, total string, lines ...types.LineItem) types.Bill {
	return types.Bill{
		BillNumber:  "7",
		Date:        time.Date(2024, 2, 3, 9, 0, 0, 0, time.UTC),
		Till:        "1",
		DocNumber:   "INV03/07",
		Kind:        kind,
		TotalAmount: decimal.RequireFromString(total),
		Lines:       lines,
	}
}

func testLine(code, desc, qty, total string) types.LineItem {
	return types.LineItem{
		BillNumber:  "7",
		ItemCode:    code,
		Description: desc,
		Quantity:    decimal.RequireFromString(qty),
		Total:       decimal.RequireFromString(total),
	}
}

func TestRenderHeaderBlock(t *testing.T) {
	doc := Render(nil, testRules())

	want := "!TRNS\tTRNSTYPE\tDATE\tACCNT\tNAME\tMEMO\tAMOUNT\tDOCNUM\n" +
		"!SPL\tTRNSTYPE\tDATE\tACCNT\tNAME\tMEMO\tAMOUNT\tQNTY\tINVITEM\n" +
		"!ENDTRNS\n"

	if doc != want {
		t.Errorf("empty render:\ngot:\n%q\nwant:\n%q", doc, want)
	}
}

func TestRenderInvoiceBlock(t *testing.T) {
	bill := testBill(types.KindInvoice, "12.50",
		testLine("A1", "Widget", "1", "10.00"),
		testLine("B2", "Gadget", "1", "2.50"),
	)

	doc := Render([]types.Bill{bill}, testRules())
	lines := strings.Split(strings.TrimSuffix(doc, "\n"), "\n")

	if len(lines) != 7 {
		t.Fatalf("got %d records, want 7:\n%s", len(lines), doc)
	}

	wantTRNS := "TRNS\tINVOICE\t02/03/2024\tAccounts Receivable\tWalk In\tTill 1 Bill 7\t12.50\tINV03/07"
	if lines[3] != wantTRNS {
		t.Errorf("TRNS record:\ngot:  %q\nwant: %q", lines[3], wantTRNS)
	}

	wantSPL := "SPL\tINVOICE\t02/03/2024\tSales Revenue\tWalk In\tWidget A1\t-10.00\t1\tWidget"
	if lines[4] != wantSPL {
		t.Errorf("SPL record:\ngot:  %q\nwant: %q", lines[4], wantSPL)
	}

	if lines[6] != "ENDTRNS" {
		t.Errorf("terminator: got %q", lines[6])
	}
}

// The TRNS amount plus its SPL amounts must sum to zero, for both kinds.
func TestRenderSplitAmountsBalance(t *testing.T) {
	tests := []struct {
		name string
		bill types.Bill
	}{
		{
			name: "invoice",
			bill: testBill(types.KindInvoice, "12.50",
				testLine("A1", "Widget", "1", "10.00"),
				testLine("B2", "Gadget", "1", "2.50"),
			),
		},
		{
			name: "credit memo",
			bill: testBill(types.KindCreditMemo, "-12.50",
				testLine("A1", "Widget", "1", "10.00"),
				testLine("B2", "Gadget", "1", "2.50"),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Render([]types.Bill{tt.bill}, testRules())

			sum := decimal.Zero
			for _, record := range strings.Split(doc, "\n") {
				fields := strings.Split(record, "\t")
				if fields[0] != "TRNS" && fields[0] != "SPL" {
					continue
				}
				amt := decimal.RequireFromString(fields[6])
				sum = sum.Add(amt)
			}

			if !sum.IsZero() {
				t.Errorf("TRNS + SPL amounts sum to %s, want 0:\n%s", sum, doc)
			}
		})
	}
}

func TestRenderItemNameTruncation(t *testing.T) {
	tests := []struct {
		name     string
		desc     string
		wantItem string
	}{
		{
			name:     "short name unmodified",
			desc:     "Widget",
			wantItem: "Widget",
		},
		{
			name:     "long name capped at 31 characters",
			desc:     strings.Repeat("x", 40),
			wantItem: strings.Repeat("x", 31),
		},
		{
			name:     "exactly 31 characters unmodified",
			desc:     strings.Repeat("y", 31),
			wantItem: strings.Repeat("y", 31),
		},
		{
			name:     "multibyte names truncated by character",
			desc:     strings.Repeat("ü", 40),
			wantItem: strings.Repeat("ü", 31),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bill := testBill(types.KindInvoice, "10.00", testLine("A1", tt.desc, "1", "10.00"))
			doc := Render([]types.Bill{bill}, testRules())

			var spl string
			for _, record := range strings.Split(doc, "\n") {
				if strings.HasPrefix(record, "SPL\t") {
					spl = record
				}
			}
			fields := strings.Split(spl, "\t")
			if got := fields[len(fields)-1]; got != tt.wantItem {
				t.Errorf("INVITEM: got %q (%d chars), want %q", got, len([]rune(got)), tt.wantItem)
			}
		})
	}
}

func TestRenderBlocksNotInterleaved(t *testing.T) {
	bills := []types.Bill{
		testBill(types.KindInvoice, "10.00", testLine("A1", "Widget", "1", "10.00")),
		testBill(types.KindInvoice, "5.00", testLine("B2", "Gadget", "1", "5.00")),
	}

	doc := Render(bills, testRules())
	records := strings.Split(strings.TrimSuffix(doc, "\n"), "\n")[3:] // skip headers

	// Expect strict TRNS, SPL..., ENDTRNS sequences.
	state := "TRNS"
	for i, record := range records {
		tag := strings.Split(record, "\t")[0]
		switch state {
		case "TRNS":
			if tag != "TRNS" {
				t.Fatalf("record %d: got %q, want a TRNS record", i, tag)
			}
			state = "SPL"
		case "SPL":
			if tag == "ENDTRNS" {
				state = "TRNS"
			} else if tag != "SPL" {
				t.Fatalf("record %d: got %q inside a transaction block", i, tag)
			}
		}
	}
	if state != "TRNS" {
		t.Error("document ended inside a transaction block")
	}
}

func TestRenderCustomAccounts(t *testing.T) {
	rules := testRules()
	rules.ARAccount = "Debtors"
	rules.RevenueAccount = "POS Income"
	rules.CustomerName = "Counter Sale"

	bill := testBill(types.KindInvoice, "10.00", testLine("A1", "Widget", "1", "10.00"))
	doc := Render([]types.Bill{bill}, rules)

	for _, want := range []string{"\tDebtors\t", "\tPOS Income\t", "\tCounter Sale\t"} {
		if !strings.Contains(doc, want) {
			t.Errorf("configured value %q missing from output:\n%s", want, doc)
		}
	}
}
