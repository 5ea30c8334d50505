// Package pricing computes cart totals. Everything here is pure.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/cartsim/internal/cart/domain"
)

// Policy grants Rate off the subtotal, rounded to a whole unit, once the
// subtotal strictly exceeds Threshold.
type Policy struct {
	Threshold decimal.Decimal
	Rate      decimal.Decimal
}

var DefaultPolicy = Policy{
	Threshold: decimal.NewFromInt(500),
	Rate:      decimal.RequireFromString("0.08"),
}

type Result struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

func ComputeTotals(lines []domain.Line) Result {
	return DefaultPolicy.Compute(lines)
}

func (p Policy) Compute(lines []domain.Line) Result {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Total())
	}

	discount := p.Discount(subtotal)
	return Result{
		Subtotal: subtotal,
		Discount: discount,
		Total:    subtotal.Sub(discount),
	}
}

// Discount rounds half away from zero, which for positive subtotals is
// round-half-up.
func (p Policy) Discount(subtotal decimal.Decimal) decimal.Decimal {
	if !subtotal.GreaterThan(p.Threshold) {
		return decimal.Zero
	}
	return subtotal.Mul(p.Rate).Round(0)
}
