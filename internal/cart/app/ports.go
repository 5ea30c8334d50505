package app

import (
	"context"

	"github.com/dwikikusuma/cartsim/internal/cart/domain"
	catalogdomain "github.com/dwikikusuma/cartsim/internal/catalog/domain"
)

type Catalog interface {
	FindByID(id int64) (catalogdomain.Product, bool)
}

type CartRepo interface {
	Save(ctx context.Context, lines []domain.Line) error
}
