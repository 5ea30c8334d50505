package app

import (
	"context"

	"github.com/dwikikusuma/cartsim/internal/catalog/domain"
)

// Source yields one catalog document's products. Name identifies the source
// in logs and errors (a path or URL).
type Source interface {
	Fetch(ctx context.Context) ([]domain.Product, error)
	Name() string
}
