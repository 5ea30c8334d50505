package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartapp "github.com/dwikikusuma/cartsim/internal/cart/app"
	"github.com/dwikikusuma/cartsim/internal/cart/infra/storage"
	catalogapp "github.com/dwikikusuma/cartsim/internal/catalog/app"
	catalogdomain "github.com/dwikikusuma/cartsim/internal/catalog/domain"
	checkoutapp "github.com/dwikikusuma/cartsim/internal/checkout/app"
	"github.com/dwikikusuma/cartsim/internal/pricing"
	"github.com/dwikikusuma/cartsim/pkg/kv"
)

type staticSource []catalogdomain.Product

func (s staticSource) Fetch(context.Context) ([]catalogdomain.Product, error) { return s, nil }
func (s staticSource) Name() string                                          { return "static" }

type fixture struct {
	router *gin.Engine
	ledger *cartapp.Ledger
	store  kv.Store
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := catalogapp.NewStore(nil)
	require.NoError(t, catalog.Load(context.Background(), staticSource{
		{ID: 1, Name: "Widget", UnitPrice: decimal.NewFromInt(200), Stock: 3},
		{ID: 2, Name: "Gadget", UnitPrice: decimal.RequireFromString("19.99"), Stock: 1},
	}))

	store := kv.NewMemoryStore()
	ledger := cartapp.NewLedger(catalog, storage.NewCartRepo(store, nil), nil, pricing.DefaultPolicy, nil)
	checkout := checkoutapp.NewService(ledger, nil, nil)

	h := NewHandler(catalog, ledger, checkout, nil)
	h.now = func() time.Time { return time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC) }
	return fixture{router: NewRouter(h), ledger: ledger, store: store}
}

func (f fixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) cartDTO {
	t.Helper()
	var out cartDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) APIError {
	t.Helper()
	var out ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out.Error
}

func TestHealthAndProducts(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodGet, "/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var out catalogDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.Loaded)
	require.Len(t, out.Products, 2)
	assert.Equal(t, "19.99", out.Products[1].UnitPrice.String())
}

func TestAddUntilOutOfStock(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 3; i++ {
		rec := f.do(http.MethodPost, "/cart/items/1", "")
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := f.do(http.MethodPost, "/cart/items/1", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "INSUFFICIENT_STOCK", decodeError(t, rec).Code)

	cart := decodeCart(t, f.do(http.MethodGet, "/cart", ""))
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 3, cart.Lines[0].Quantity)
	assert.Equal(t, "600", cart.Subtotal.String())
	assert.Equal(t, "48", cart.Discount.String())
	assert.Equal(t, "552", cart.Total.String())
}

func TestAddUnknownProduct(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/cart/items/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(http.MethodPost, "/cart/items/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetQuantity(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusOK, f.do(http.MethodPost, "/cart/items/1", "").Code)

	rec := f.do(http.MethodPut, "/cart/items/1", `{"quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decodeCart(t, rec).Lines[0].Quantity)

	rec = f.do(http.MethodPut, "/cart/items/1", `{"quantity":10}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	apiErr := decodeError(t, rec)
	assert.Equal(t, "INVALID_QUANTITY", apiErr.Code)
	require.NotNil(t, apiErr.MaxStock)
	assert.Equal(t, 3, *apiErr.MaxStock)

	rec = f.do(http.MethodPut, "/cart/items/1", `{"quantity":0}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = f.do(http.MethodPut, "/cart/items/1", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, 2, f.ledger.Lines()[0].Quantity)
}

func TestRemoveIsIdempotent(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusOK, f.do(http.MethodPost, "/cart/items/2", "").Code)

	for i := 0; i < 2; i++ {
		rec := f.do(http.MethodDelete, "/cart/items/2", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, decodeCart(t, rec).Lines)
	}
}

func TestClearCart(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusOK, f.do(http.MethodPost, "/cart/items/1", "").Code)

	rec := f.do(http.MethodDelete, "/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, decodeCart(t, rec).Count)

	b, err := f.store.Get(context.Background(), storage.SlotKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(b))
}

func TestCheckout(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/checkout", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "EMPTY_CART", decodeError(t, rec).Code)

	require.Equal(t, http.StatusOK, f.do(http.MethodPost, "/cart/items/2", "").Code)

	rec = f.do(http.MethodPost, "/checkout", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="ticket_compra.txt"`, rec.Header().Get("Content-Disposition"))
	assert.NotEmpty(t, rec.Header().Get("X-Receipt-ID"))
	assert.Contains(t, rec.Body.String(), "Gadget x1 - $19.99\n")
	assert.Contains(t, rec.Body.String(), "Date: 1/2/2026, 3:04:05 PM\n")

	assert.Zero(t, f.ledger.Len())
}
