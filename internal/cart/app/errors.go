package app

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrPersistence       = errors.New("cart persistence failed")
)

// QuantityError rejects an explicit quantity outside [1, Max]. Max is the
// live catalog stock at the time of the request.
type QuantityError struct {
	ProductID int64
	Requested int
	Max       int
}

func (e *QuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %d for product %d: max stock %d", e.Requested, e.ProductID, e.Max)
}

func (e *QuantityError) Is(target error) bool {
	return target == ErrInvalidQuantity
}
