package sink

import (
	"context"

	"github.com/dwikikusuma/cartsim/internal/checkout/app"
	"github.com/dwikikusuma/cartsim/internal/checkout/domain"
)

// Chain delivers to each sink in order and stops at the first failure.
type Chain []app.ReceiptSink

func (c Chain) Deliver(ctx context.Context, r domain.Receipt) error {
	for _, s := range c {
		if err := s.Deliver(ctx, r); err != nil {
			return err
		}
	}
	return nil
}
