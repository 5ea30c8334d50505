package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/dwikikusuma/cartsim/internal/cart/domain"
	"github.com/dwikikusuma/cartsim/internal/pricing"
)

// Snapshot is an immutable view of the cart handed to subscribers.
type Snapshot struct {
	Lines  []domain.Line
	Totals pricing.Result
}

func (s Snapshot) Empty() bool { return len(s.Lines) == 0 }

// Ledger owns the cart lines. Every operation that reaches persistence saves
// the whole cart and then notifies subscribers, in that order.
type Ledger struct {
	catalog Catalog
	repo    CartRepo
	policy  pricing.Policy
	log     *zap.Logger

	mu      sync.Mutex
	lines   []domain.Line
	subs    map[int]func(Snapshot)
	nextSub int
}

// NewLedger starts from initial, typically the cart restored from storage.
// Every snapshot is priced with policy.
func NewLedger(catalog Catalog, repo CartRepo, initial []domain.Line, policy pricing.Policy, log *zap.Logger) *Ledger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Ledger{
		catalog: catalog,
		repo:    repo,
		policy:  policy,
		log:     log.Named("ledger"),
		lines:   domain.Clone(initial),
		subs:    make(map[int]func(Snapshot)),
	}
}

func (l *Ledger) AddItem(ctx context.Context, productID int64) error {
	return l.apply(ctx, func() (bool, error) {
		product, ok := l.catalog.FindByID(productID)
		if !ok {
			return false, fmt.Errorf("%w: %d", ErrProductNotFound, productID)
		}

		i := domain.IndexOf(l.lines, productID)
		current := 0
		if i >= 0 {
			current = l.lines[i].Quantity
		}
		if current+1 > product.Stock {
			return false, fmt.Errorf("%w: product %d", ErrInsufficientStock, productID)
		}

		if i >= 0 {
			l.lines[i].Quantity++
		} else {
			l.lines = append(l.lines, domain.Line{
				ProductID: product.ID,
				Name:      product.Name,
				UnitPrice: product.UnitPrice,
				Quantity:  1,
			})
		}
		l.log.Debug("item added", zap.Int64("product_id", productID), zap.Int("quantity", current+1))
		return true, nil
	})
}

// RemoveItem is a no-op for products that are not in the cart; the cart is
// saved either way.
func (l *Ledger) RemoveItem(ctx context.Context, productID int64) error {
	return l.apply(ctx, func() (bool, error) {
		if i := domain.IndexOf(l.lines, productID); i >= 0 {
			l.lines = append(l.lines[:i], l.lines[i+1:]...)
			l.log.Debug("item removed", zap.Int64("product_id", productID))
		}
		return true, nil
	})
}

// SetQuantity validates against the live catalog stock, not the line
// snapshot. A rejected quantity still saves and notifies so front ends redraw
// the unchanged value. Setting a quantity for a product that is not in the
// cart does nothing.
func (l *Ledger) SetQuantity(ctx context.Context, productID int64, quantity int) error {
	return l.apply(ctx, func() (bool, error) {
		product, ok := l.catalog.FindByID(productID)
		if !ok {
			return false, fmt.Errorf("%w: %d", ErrProductNotFound, productID)
		}
		if quantity < 1 || quantity > product.Stock {
			return true, &QuantityError{ProductID: productID, Requested: quantity, Max: product.Stock}
		}

		if i := domain.IndexOf(l.lines, productID); i >= 0 {
			l.lines[i].Quantity = quantity
			l.log.Debug("quantity set", zap.Int64("product_id", productID), zap.Int("quantity", quantity))
		}
		return true, nil
	})
}

func (l *Ledger) Clear(ctx context.Context) error {
	return l.apply(ctx, func() (bool, error) {
		l.lines = []domain.Line{}
		l.log.Debug("cart cleared")
		return true, nil
	})
}

func (l *Ledger) Lines() []domain.Line {
	l.mu.Lock()
	defer l.mu.Unlock()
	return domain.Clone(l.lines)
}

func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lines)
}

func (l *Ledger) Policy() pricing.Policy { return l.policy }

func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// Subscribe registers fn for change notifications. Callbacks run on the
// mutating goroutine after the ledger lock is released.
func (l *Ledger) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.nextSub
	l.nextSub++
	l.subs[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.subs, id)
	}
}

// apply runs op under the lock. When op asks to persist, the resulting cart
// is saved and subscribers are notified whatever op returned.
func (l *Ledger) apply(ctx context.Context, op func() (persist bool, err error)) error {
	l.mu.Lock()
	persist, opErr := op()
	if !persist {
		l.mu.Unlock()
		return opErr
	}

	var saveErr error
	if err := l.repo.Save(ctx, domain.Clone(l.lines)); err != nil {
		saveErr = fmt.Errorf("%w: %w", ErrPersistence, err)
		l.log.Warn("cart not persisted", zap.Error(err))
	}

	snap := l.snapshotLocked()
	subs := make([]func(Snapshot), 0, len(l.subs))
	for _, fn := range l.subs {
		subs = append(subs, fn)
	}
	l.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}

	switch {
	case opErr == nil:
		return saveErr
	case saveErr == nil:
		return opErr
	default:
		return errors.Join(opErr, saveErr)
	}
}

func (l *Ledger) snapshotLocked() Snapshot {
	lines := domain.Clone(l.lines)
	return Snapshot{Lines: lines, Totals: l.policy.Compute(lines)}
}
