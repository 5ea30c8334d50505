package domain

import "github.com/shopspring/decimal"

// Line is one cart entry. Name and UnitPrice are copied from the catalog when
// the product is first added and are not refreshed afterwards.
type Line struct {
	ProductID int64
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Clone returns a copy that shares nothing with lines.
func Clone(lines []Line) []Line {
	if lines == nil {
		return []Line{}
	}
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}

func IndexOf(lines []Line, productID int64) int {
	for i, l := range lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}
