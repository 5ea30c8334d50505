package sink

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/cartsim/internal/checkout/domain"
	"github.com/dwikikusuma/cartsim/pkg/kv"
)

func sample() domain.Receipt {
	return domain.Receipt{
		ID:       uuid.MustParse("0b8a2a5e-9c1f-4f7e-8d3a-2f6e1c0a9b44"),
		FileName: "ticket_compra.txt",
		Text:     "PURCHASE RECEIPT\n",
	}
}

func TestFileWritesTicket(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "receipts")
	f := NewFile(dir)

	require.NoError(t, f.Deliver(context.Background(), sample()))

	b, err := os.ReadFile(filepath.Join(dir, "ticket_compra.txt"))
	require.NoError(t, err)
	assert.Equal(t, "PURCHASE RECEIPT\n", string(b))
}

func TestFileOverwrites(t *testing.T) {
	f := NewFile(t.TempDir())
	r := sample()
	require.NoError(t, f.Deliver(context.Background(), r))

	r.Text = "second\n"
	require.NoError(t, f.Deliver(context.Background(), r))

	b, err := os.ReadFile(f.Path(r))
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(b))
}

func TestKVArchives(t *testing.T) {
	store := kv.NewMemoryStore()
	r := sample()

	require.NoError(t, NewKV(store).Deliver(context.Background(), r))

	b, err := store.Get(context.Background(), "receipt:0b8a2a5e-9c1f-4f7e-8d3a-2f6e1c0a9b44")
	require.NoError(t, err)
	assert.Equal(t, r.Text, string(b))
}

type failing struct{ err error }

func (f failing) Deliver(context.Context, domain.Receipt) error { return f.err }

func TestChainStopsAtFirstFailure(t *testing.T) {
	store := kv.NewMemoryStore()
	boom := errors.New("boom")

	err := Chain{failing{boom}, NewKV(store)}.Deliver(context.Background(), sample())

	require.ErrorIs(t, err, boom)
	_, err = store.Get(context.Background(), Key(sample()))
	assert.ErrorIs(t, err, kv.ErrNotFound)
}
