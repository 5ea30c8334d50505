package source

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/dwikikusuma/cartsim/internal/catalog/domain"
)

type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// record accepts both the Spanish field names used by the product data files and
// their English equivalents.
type record struct {
	ID     *int64   `json:"id" yaml:"id"`
	Nombre string   `json:"nombre" yaml:"nombre"`
	Name   string   `json:"name" yaml:"name"`
	Precio *float64 `json:"precio" yaml:"precio"`
	Price  *float64 `json:"price" yaml:"price"`
	Stock  int      `json:"stock" yaml:"stock"`
}

func (r record) toDomain(i int) (domain.Product, error) {
	if r.ID == nil {
		return domain.Product{}, errors.Errorf("record %d: missing id", i)
	}

	name := r.Nombre
	if name == "" {
		name = r.Name
	}
	if strings.TrimSpace(name) == "" {
		return domain.Product{}, errors.Errorf("record %d: missing name", i)
	}

	price := r.Precio
	if price == nil {
		price = r.Price
	}
	if price == nil {
		return domain.Product{}, errors.Errorf("record %d: missing price", i)
	}

	return domain.Product{
		ID:        *r.ID,
		Name:      name,
		UnitPrice: decimal.NewFromFloat(*price),
		Stock:     r.Stock,
	}, nil
}

// Decode parses a catalog document: an array of product records.
func Decode(data []byte, format Format) ([]domain.Product, error) {
	var records []record
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &records)
	default:
		err = json.Unmarshal(data, &records)
	}
	if err != nil {
		return nil, errors.Wrap(err, "parse catalog")
	}

	products := make([]domain.Product, 0, len(records))
	for i, r := range records {
		p, err := r.toDomain(i)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

// FormatFor picks the decoder from a path or URL extension, defaulting to JSON.
func FormatFor(name string) Format {
	lower := strings.ToLower(name)
	if i := strings.IndexAny(lower, "?#"); i >= 0 {
		lower = lower[:i]
	}
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return FormatYAML
	}
	return FormatJSON
}
