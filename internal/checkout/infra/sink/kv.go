package sink

import (
	"context"

	"github.com/pkg/errors"

	"github.com/dwikikusuma/cartsim/internal/checkout/domain"
	"github.com/dwikikusuma/cartsim/pkg/kv"
)

const keyPrefix = "receipt:"

func Key(r domain.Receipt) string { return keyPrefix + r.ID.String() }

// KV archives receipt text in the same store that holds the cart slot.
type KV struct {
	store kv.Store
}

func NewKV(store kv.Store) *KV {
	return &KV{store: store}
}

func (k *KV) Deliver(ctx context.Context, r domain.Receipt) error {
	return errors.Wrapf(k.store.Set(ctx, Key(r), []byte(r.Text)), "archive receipt %s", r.ID)
}
