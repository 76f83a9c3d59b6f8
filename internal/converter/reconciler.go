// =============================================================================
// POS to IIF Converter - Void Reconciler
// =============================================================================
//
// This module nets void rows against sale rows. The POS export records a void
// as a separate row with the same bill number and item code as the sale it
// cancels, so cancellation is scoped to the (bill, item code) key: rows with
// different keys never interact.
//
// Three policies are supported (see config.CancellationPolicy):
//
//   quantity  net = sum(sale qty) - sum(void qty). A surviving key collapses
//             into a single line carrying the net quantity and a prorated
//             total; a fully or over-voided key produces nothing.
//   count     keep = count(sales) - count(voids). The earliest `keep` sale
//             rows survive unchanged, no proration.
//   none      every sale row survives unchanged, void rows are dropped.
//
// Rows whose type is neither "sale" nor "void" (returns, adjustments) are
// excluded from the netting group and always pass through unchanged.
//
// A key with voids but no matching sale yields nothing: there is no sale row
// to take the descriptive fields from.
//
// =============================================================================

package converter

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/retailops/pos-iif-converter/internal/config"
	"github.com/retailops/pos-iif-converter/internal/types"
)

// keyGroup collects the rows sharing one reconciliation key, split by type.
type keyGroup struct {
	sales []types.LineItem
	voids []types.LineItem
}

// Reconcile applies the configured cancellation policy and returns the
// surviving line items, ordered by original row position.
func Reconcile(items []types.LineItem, policy string) []types.LineItem {
	groups := make(map[types.ReconKey]*keyGroup)
	var out []types.LineItem

	for _, item := range items {
		switch item.TransactionType {
		case types.TypeSale, types.TypeVoid:
			g := groups[item.Key()]
			if g == nil {
				g = &keyGroup{}
				groups[item.Key()] = g
			}
			if item.TransactionType == types.TypeSale {
				g.sales = append(g.sales, item)
			} else {
				g.voids = append(g.voids, item)
			}
		default:
			// Returns and any other type bypass netting entirely.
			out = append(out, item)
		}
	}

	for _, g := range groups {
		out = append(out, reconcileKey(g, policy)...)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].RowIndex < out[j].RowIndex })
	return out
}

// reconcileKey nets one key group under the given policy.
func reconcileKey(g *keyGroup, policy string) []types.LineItem {
	if len(g.sales) == 0 {
		// Over-void with no sale row to base fields on.
		return nil
	}

	switch policy {
	case config.PolicyCount:
		keep := len(g.sales) - len(g.voids)
		if keep <= 0 {
			return nil
		}
		return g.sales[:keep]

	case config.PolicyNone:
		return g.sales

	default: // config.PolicyQuantity
		return netQuantities(g)
	}
}

// netQuantities nets summed quantities for a key and, when anything survives,
// emits a single line based on the first sale row. The total is prorated at
// the average sale unit price: (sum of sale totals / sum of sale quantities)
// times the net quantity.
func netQuantities(g *keyGroup) []types.LineItem {
	saleQty := decimal.Zero
	saleTotal := decimal.Zero
	for _, s := range g.sales {
		saleQty = saleQty.Add(s.Quantity)
		saleTotal = saleTotal.Add(s.Total)
	}

	voidQty := decimal.Zero
	for _, v := range g.voids {
		voidQty = voidQty.Add(v.Quantity)
	}

	net := saleQty.Sub(voidQty)
	if net.Sign() <= 0 {
		return nil
	}

	line := g.sales[0]
	line.Quantity = net
	if saleQty.Sign() != 0 {
		line.Total = saleTotal.Div(saleQty).Mul(net)
	}
	return []types.LineItem{line}
}
