package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	cartapp "github.com/dwikikusuma/cartsim/internal/cart/app"
	catalogdomain "github.com/dwikikusuma/cartsim/internal/catalog/domain"
	"github.com/dwikikusuma/cartsim/internal/pricing"
)

func money(d decimal.Decimal) string { return "$" + d.String() }

func renderCatalog(w io.Writer, products []catalogdomain.Product) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPRODUCT\tPRICE\tSTOCK")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", p.ID, p.Name, money(p.UnitPrice), p.Stock)
	}
	tw.Flush()
}

func renderCart(w io.Writer, snap cartapp.Snapshot, policy pricing.Policy) {
	if snap.Empty() {
		fmt.Fprintln(w, "Cart is empty")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPRODUCT\tPRICE\tQTY\tTOTAL")
	for _, l := range snap.Lines {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", l.ProductID, l.Name, money(l.UnitPrice), l.Quantity, money(l.Total()))
	}
	tw.Flush()
	renderTotals(w, snap.Totals, policy)
}

func renderTotals(w io.Writer, t pricing.Result, p pricing.Policy) {
	fmt.Fprintf(w, "Subtotal: %s\n", money(t.Subtotal))
	fmt.Fprintf(w, "Discount: %s\n", money(t.Discount))
	fmt.Fprintf(w, "Total: %s\n", money(t.Total))

	if t.Discount.IsZero() {
		fmt.Fprintf(w, "Spend over %s to get %s%% off\n", money(p.Threshold), p.Rate.Shift(2).String())
	}
}
