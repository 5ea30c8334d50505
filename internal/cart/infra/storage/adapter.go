package storage

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dwikikusuma/cartsim/internal/cart/domain"
	"github.com/dwikikusuma/cartsim/pkg/kv"
)

// SlotKey names the persisted cart. The suffix is the schema version; bump it
// when the record layout changes so older data is never misread.
const SlotKey = "simulador_carrito_v3"

type record struct {
	ID       *int64      `json:"id"`
	Nombre   string      `json:"nombre"`
	Precio   json.Number `json:"precio"`
	Cantidad int         `json:"cantidad"`
}

// legacyRecord carries the English field names some older writers used.
type legacyRecord struct {
	Name      string      `json:"name"`
	UnitPrice json.Number `json:"unitPrice"`
	Quantity  int         `json:"quantity"`
}

type CartRepo struct {
	store kv.Store
	key   string
	log   *zap.Logger
}

func NewCartRepo(store kv.Store, log *zap.Logger) *CartRepo {
	if log == nil {
		log = zap.NewNop()
	}
	return &CartRepo{store: store, key: SlotKey, log: log.Named("cart_storage")}
}

func (r *CartRepo) Save(ctx context.Context, lines []domain.Line) error {
	data, err := Encode(lines)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, r.key, data)
}

// Load never fails: a missing, unreadable or malformed slot restores an empty
// cart.
func (r *CartRepo) Load(ctx context.Context) []domain.Line {
	data, err := r.store.Get(ctx, r.key)
	if errors.Is(err, kv.ErrNotFound) {
		return []domain.Line{}
	}
	if err != nil {
		r.log.Warn("cart slot unreadable, starting empty", zap.Error(err))
		return []domain.Line{}
	}

	lines, dropped, err := Decode(data)
	if err != nil {
		r.log.Warn("cart slot malformed, starting empty", zap.Error(err))
		return []domain.Line{}
	}
	if dropped > 0 {
		r.log.Warn("invalid cart records dropped", zap.Int("dropped", dropped))
	}
	return lines
}

func Encode(lines []domain.Line) ([]byte, error) {
	records := make([]record, 0, len(lines))
	for _, l := range lines {
		id := l.ProductID
		records = append(records, record{
			ID:       &id,
			Nombre:   l.Name,
			Precio:   json.Number(l.UnitPrice.String()),
			Cantidad: l.Quantity,
		})
	}
	data, err := json.Marshal(records)
	return data, errors.Wrap(err, "encode cart")
}

// Decode parses a persisted cart. Records without an id, with a quantity below
// one, an unparseable price or a repeated product id are skipped and counted.
func Decode(data []byte) (lines []domain.Line, dropped int, err error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, 0, errors.Wrap(err, "decode cart")
	}

	lines = make([]domain.Line, 0, len(raws))
	seen := make(map[int64]bool, len(raws))
	for _, raw := range raws {
		line, ok := decodeRecord(raw)
		if !ok || seen[line.ProductID] {
			dropped++
			continue
		}
		seen[line.ProductID] = true
		lines = append(lines, line)
	}
	return lines, dropped, nil
}

func decodeRecord(raw json.RawMessage) (domain.Line, bool) {
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil || rec.ID == nil {
		return domain.Line{}, false
	}
	var legacy legacyRecord
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return domain.Line{}, false
	}

	name, price, qty := rec.Nombre, rec.Precio, rec.Cantidad
	if name == "" {
		name = legacy.Name
	}
	if price == "" {
		price = legacy.UnitPrice
	}
	if qty == 0 {
		qty = legacy.Quantity
	}
	if qty < 1 {
		return domain.Line{}, false
	}

	unitPrice, err := decimal.NewFromString(price.String())
	if err != nil || unitPrice.IsNegative() {
		return domain.Line{}, false
	}

	return domain.Line{
		ProductID: *rec.ID,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  qty,
	}, true
}
