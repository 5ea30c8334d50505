package gateway

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	cartapp "github.com/dwikikusuma/cartsim/internal/cart/app"
	catalogdomain "github.com/dwikikusuma/cartsim/internal/catalog/domain"
)

type APIError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	MaxStock *int   `json:"max_stock,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func respondError(c *gin.Context, err error) {
	status, code := httpStatusFromError(err)
	apiErr := APIError{Code: code, Message: err.Error()}

	var qe *cartapp.QuantityError
	if errors.As(err, &qe) {
		maxStock := qe.Max
		apiErr.MaxStock = &maxStock
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: apiErr})
}

type productDTO struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Stock     int             `json:"stock"`
}

type catalogDTO struct {
	Loaded   bool         `json:"loaded"`
	Products []productDTO `json:"products"`
}

func toCatalogDTO(loaded bool, products []catalogdomain.Product) catalogDTO {
	out := catalogDTO{Loaded: loaded, Products: make([]productDTO, len(products))}
	for i, p := range products {
		out.Products[i] = productDTO{ID: p.ID, Name: p.Name, UnitPrice: p.UnitPrice, Stock: p.Stock}
	}
	return out
}

type lineDTO struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type cartDTO struct {
	Lines    []lineDTO       `json:"lines"`
	Count    int             `json:"count"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

func toCartDTO(s cartapp.Snapshot) cartDTO {
	out := cartDTO{
		Lines:    make([]lineDTO, len(s.Lines)),
		Count:    len(s.Lines),
		Subtotal: s.Totals.Subtotal,
		Discount: s.Totals.Discount,
		Total:    s.Totals.Total,
	}
	for i, l := range s.Lines {
		out.Lines[i] = lineDTO{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			LineTotal: l.Total(),
		}
	}
	return out
}

func respondCart(c *gin.Context, s cartapp.Snapshot) {
	c.JSON(http.StatusOK, toCartDTO(s))
}
