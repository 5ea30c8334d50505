package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrInvalidProduct = errors.New("invalid product")

// Product is immutable once loaded. Stock is a static ceiling for cart
// quantities, not a pool that checkout draws down.
type Product struct {
	ID        int64
	Name      string
	UnitPrice decimal.Decimal
	Stock     int
}

func (p Product) Validate() error {
	if p.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: product %d has negative price %s", ErrInvalidProduct, p.ID, p.UnitPrice)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: product %d has negative stock %d", ErrInvalidProduct, p.ID, p.Stock)
	}
	return nil
}
