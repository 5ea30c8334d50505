package app

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dwikikusuma/cartsim/internal/catalog/domain"
)

type fakeSource struct {
	name     string
	products []domain.Product
	err      error
}

func (f fakeSource) Fetch(context.Context) ([]domain.Product, error) { return f.products, f.err }
func (f fakeSource) Name() string                                    { return f.name }

func product(id int64, name string, price int64, stock int) domain.Product {
	return domain.Product{ID: id, Name: name, UnitPrice: decimal.NewFromInt(price), Stock: stock}
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("single source", func(t *testing.T) {
		store := NewStore(nil)
		err := store.Load(ctx, fakeSource{name: "a", products: []domain.Product{product(1, "Widget", 100, 5)}})

		require.NoError(t, err)
		assert.True(t, store.Loaded())
		p, ok := store.FindByID(1)
		require.True(t, ok)
		assert.Equal(t, "Widget", p.Name)
		assert.Equal(t, 5, p.Stock)

		_, ok = store.FindByID(2)
		assert.False(t, ok)
	})

	t.Run("sources merged in argument order", func(t *testing.T) {
		store := NewStore(nil)
		err := store.Load(ctx,
			fakeSource{name: "a", products: []domain.Product{product(2, "B", 1, 1)}},
			fakeSource{name: "b", products: []domain.Product{product(1, "A", 1, 1), product(3, "C", 1, 1)}},
		)

		require.NoError(t, err)
		list := store.List()
		require.Len(t, list, 3)
		assert.Equal(t, []int64{2, 1, 3}, []int64{list[0].ID, list[1].ID, list[2].ID})
	})

	t.Run("fetch failure leaves catalog empty", func(t *testing.T) {
		store := NewStore(nil)
		require.NoError(t, store.Load(ctx, fakeSource{name: "ok", products: []domain.Product{product(1, "A", 1, 1)}}))

		err := store.Load(ctx,
			fakeSource{name: "ok", products: []domain.Product{product(1, "A", 1, 1)}},
			fakeSource{name: "down", err: errors.New("connection refused")},
		)

		assert.ErrorIs(t, err, ErrLoad)
		assert.Contains(t, err.Error(), "down")
		assert.False(t, store.Loaded())
		assert.Empty(t, store.List())
		_, ok := store.FindByID(1)
		assert.False(t, ok)
	})

	t.Run("duplicate id", func(t *testing.T) {
		store := NewStore(nil)
		err := store.Load(ctx,
			fakeSource{name: "a", products: []domain.Product{product(1, "A", 1, 1)}},
			fakeSource{name: "b", products: []domain.Product{product(1, "A again", 1, 1)}},
		)

		assert.ErrorIs(t, err, ErrLoad)
		assert.ErrorIs(t, err, ErrDuplicateProduct)
		assert.Empty(t, store.List())
	})

	t.Run("negative stock", func(t *testing.T) {
		store := NewStore(nil)
		err := store.Load(ctx, fakeSource{name: "a", products: []domain.Product{product(1, "A", 1, -1)}})

		assert.ErrorIs(t, err, ErrLoad)
		assert.ErrorIs(t, err, domain.ErrInvalidProduct)
	})

	t.Run("no sources", func(t *testing.T) {
		err := NewStore(nil).Load(ctx)
		assert.ErrorIs(t, err, ErrLoad)
		assert.ErrorIs(t, err, ErrNoSources)
	})
}

func TestListReturnsCopy(t *testing.T) {
	store := NewStore(nil)
	require.NoError(t, store.Load(context.Background(), fakeSource{name: "a", products: []domain.Product{product(1, "A", 1, 1)}}))

	list := store.List()
	list[0].Name = "mutated"

	p, _ := store.FindByID(1)
	assert.Equal(t, "A", p.Name)
}

func TestLoadFailuresAreLogged(t *testing.T) {
	ctx := context.Background()
	cases := map[string][]Source{
		"fetch":     {fakeSource{name: "a", err: errors.New("offline")}},
		"duplicate": {fakeSource{name: "a", products: []domain.Product{product(1, "A", 1, 1), product(1, "B", 1, 1)}}},
		"invalid":   {fakeSource{name: "a", products: []domain.Product{product(1, "A", 1, -1)}}},
	}
	for name, sources := range cases {
		t.Run(name, func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			store := NewStore(zap.New(core))

			err := store.Load(ctx, sources...)

			require.ErrorIs(t, err, ErrLoad)
			assert.Equal(t, 1, logs.FilterMessage("catalog unavailable").Len())
			assert.False(t, store.Loaded())
		})
	}
}
