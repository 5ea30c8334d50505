package gateway

import (
	"errors"
	"net/http"

	cartapp "github.com/dwikikusuma/cartsim/internal/cart/app"
	checkoutapp "github.com/dwikikusuma/cartsim/internal/checkout/app"
)

var ErrBadRequest = errors.New("bad request")

// httpStatusFromError maps core errors onto a status and a stable code. The
// order matters: a rejected quantity joined with a persistence failure is
// still reported as a rejected quantity.
func httpStatusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "INVALID_ARGUMENT"
	case errors.Is(err, cartapp.ErrProductNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, cartapp.ErrInvalidQuantity):
		return http.StatusUnprocessableEntity, "INVALID_QUANTITY"
	case errors.Is(err, cartapp.ErrInsufficientStock):
		return http.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, checkoutapp.ErrEmptyCart):
		return http.StatusConflict, "EMPTY_CART"
	case errors.Is(err, cartapp.ErrPersistence), errors.Is(err, checkoutapp.ErrDelivery):
		return http.StatusServiceUnavailable, "UNAVAILABLE"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

// persistenceOnly reports whether the in-memory operation succeeded and only
// the slot write failed.
func persistenceOnly(err error) bool {
	if !errors.Is(err, cartapp.ErrPersistence) {
		return false
	}
	status, _ := httpStatusFromError(err)
	return status == http.StatusServiceUnavailable
}
