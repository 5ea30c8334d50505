package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	cartapp "github.com/dwikikusuma/cartsim/internal/cart/app"
	catalogdomain "github.com/dwikikusuma/cartsim/internal/catalog/domain"
	checkoutdomain "github.com/dwikikusuma/cartsim/internal/checkout/domain"
)

type Catalog interface {
	List() []catalogdomain.Product
	Loaded() bool
}

type Cart interface {
	AddItem(ctx context.Context, productID int64) error
	RemoveItem(ctx context.Context, productID int64) error
	SetQuantity(ctx context.Context, productID int64, quantity int) error
	Clear(ctx context.Context) error
	Snapshot() cartapp.Snapshot
}

type Checkout interface {
	Checkout(ctx context.Context, now time.Time) (checkoutdomain.Receipt, error)
}

const persistedHeader = "X-Cart-Persisted"

type Handler struct {
	catalog  Catalog
	cart     Cart
	checkout Checkout
	log      *zap.Logger
	now      func() time.Time
}

func NewHandler(catalog Catalog, cart Cart, checkout Checkout, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		catalog:  catalog,
		cart:     cart,
		checkout: checkout,
		log:      log.Named("gateway"),
		now:      time.Now,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h *Handler) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, toCatalogDTO(h.catalog.Loaded(), h.catalog.List()))
}

func (h *Handler) GetCart(c *gin.Context) {
	respondCart(c, h.cart.Snapshot())
}

func (h *Handler) AddItem(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}
	h.mutate(c, h.cart.AddItem(c.Request.Context(), id))
}

func (h *Handler) RemoveItem(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}
	h.mutate(c, h.cart.RemoveItem(c.Request.Context(), id))
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *Handler) SetQuantity(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}
	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	h.mutate(c, h.cart.SetQuantity(c.Request.Context(), id, *req.Quantity))
}

func (h *Handler) ClearCart(c *gin.Context) {
	h.mutate(c, h.cart.Clear(c.Request.Context()))
}

// Checkout answers with the ticket as a download.
func (h *Handler) Checkout(c *gin.Context) {
	r, err := h.checkout.Checkout(c.Request.Context(), h.now())
	if err != nil && r.ID == uuid.Nil {
		respondError(c, err)
		return
	}
	if err != nil {
		h.log.Warn("checkout completed but cart not cleared", zap.Error(err))
		c.Header(persistedHeader, "false")
	}

	c.Header("X-Receipt-ID", r.ID.String())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, r.FileName))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(r.Text))
}

// mutate answers with the current cart. A failed slot write alone does not
// fail the request since the in-memory change stands.
func (h *Handler) mutate(c *gin.Context, err error) {
	if err != nil && !persistenceOnly(err) {
		respondError(c, err)
		return
	}
	if err != nil {
		h.log.Warn("cart change not persisted", zap.Error(err))
		c.Header(persistedHeader, "false")
	}
	respondCart(c, h.cart.Snapshot())
}

func (h *Handler) productID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, fmt.Errorf("%w: product id %q", ErrBadRequest, c.Param("id")))
		return 0, false
	}
	return id, true
}
