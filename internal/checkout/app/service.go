package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	cartapp "github.com/dwikikusuma/cartsim/internal/cart/app"
	"github.com/dwikikusuma/cartsim/internal/checkout/domain"
	"github.com/dwikikusuma/cartsim/internal/receipt"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
	ErrDelivery  = errors.New("receipt delivery failed")
)

// Cart is the ledger as checkout sees it. Totals come from its snapshot so
// the receipt always matches what the cart displayed.
type Cart interface {
	Snapshot() cartapp.Snapshot
	Clear(ctx context.Context) error
}

type ReceiptSink interface {
	Deliver(ctx context.Context, r domain.Receipt) error
}

type Option func(*Service)

func WithLocale(locale receipt.Locale) Option {
	return func(s *Service) { s.formatter = receipt.NewFormatter(locale) }
}

func WithIDs(newID func() uuid.UUID) Option {
	return func(s *Service) { s.newID = newID }
}

type Service struct {
	cart Cart
	sink ReceiptSink
	log  *zap.Logger

	formatter receipt.Formatter
	newID     func() uuid.UUID

	mu sync.Mutex
}

func NewService(cart Cart, sink ReceiptSink, log *zap.Logger, opts ...Option) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{
		cart:      cart,
		sink:      sink,
		log:       log.Named("checkout"),
		formatter: receipt.NewFormatter(receipt.English),
		newID:     uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Checkout formats and delivers a receipt, then empties the cart. A delivery
// failure leaves the cart untouched. When only the final clear fails the
// receipt is still returned along with the error.
func (s *Service) Checkout(ctx context.Context, now time.Time) (domain.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.cart.Snapshot()
	if snap.Empty() {
		return domain.Receipt{}, ErrEmptyCart
	}

	r := domain.Receipt{
		ID:       s.newID(),
		FileName: receipt.FileName,
		Text:     s.formatter.Format(snap.Lines, snap.Totals, now),
		IssuedAt: now,
		Totals:   snap.Totals,
	}

	if s.sink != nil {
		if err := s.sink.Deliver(ctx, r); err != nil {
			s.log.Error("receipt not delivered", zap.Stringer("receipt_id", r.ID), zap.Error(err))
			return domain.Receipt{}, fmt.Errorf("%w: %w", ErrDelivery, err)
		}
	}

	s.log.Info("checkout completed",
		zap.Stringer("receipt_id", r.ID),
		zap.Int("lines", len(snap.Lines)),
		zap.String("total", snap.Totals.Total.String()),
	)

	if err := s.cart.Clear(ctx); err != nil {
		return r, err
	}
	return r, nil
}
