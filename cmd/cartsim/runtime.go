package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	cartapp "github.com/dwikikusuma/cartsim/internal/cart/app"
	"github.com/dwikikusuma/cartsim/internal/cart/infra/storage"
	catalogapp "github.com/dwikikusuma/cartsim/internal/catalog/app"
	"github.com/dwikikusuma/cartsim/internal/catalog/infra/source"
	checkoutapp "github.com/dwikikusuma/cartsim/internal/checkout/app"
	"github.com/dwikikusuma/cartsim/internal/checkout/infra/sink"
	"github.com/dwikikusuma/cartsim/internal/pricing"
	"github.com/dwikikusuma/cartsim/internal/receipt"
	"github.com/dwikikusuma/cartsim/pkg/config"
	"github.com/dwikikusuma/cartsim/pkg/kv"
)

type runtime struct {
	cfg config.Config
	log *zap.Logger

	store    kv.Store
	catalog  *catalogapp.Store
	ledger   *cartapp.Ledger
	checkout *checkoutapp.Service
	tickets  *sink.File

	catalogErr error
}

// bootstrap wires the application. Only a bad store driver name is fatal: an
// unreachable store degrades to memory and an unavailable catalog leaves the
// cart viewable.
func bootstrap(ctx context.Context, cfg config.Config, log *zap.Logger) (*runtime, error) {
	store, err := kv.Open(ctx, kv.Options{
		Driver:    cfg.StoreDriver,
		Dir:       cfg.StoreDir,
		DSN:       cfg.StoreDSN,
		RedisAddr: cfg.RedisAddr,
	})
	if errors.Is(err, kv.ErrUnknownDriver) {
		return nil, fmt.Errorf("%w: %q", err, cfg.StoreDriver)
	}
	if err != nil {
		log.Warn("store unavailable, cart will not survive restarts",
			zap.String("driver", cfg.StoreDriver), zap.Error(err))
		store = kv.NewMemoryStore()
	}

	catalog := catalogapp.NewStore(log)
	sources := make([]catalogapp.Source, 0, len(cfg.CatalogSources))
	for _, loc := range cfg.CatalogSources {
		sources = append(sources, source.For(loc, cfg.CatalogTimeout))
	}
	catalogErr := catalog.Load(ctx, sources...)

	repo := storage.NewCartRepo(store, log)
	ledger := cartapp.NewLedger(catalog, repo, repo.Load(ctx), pricing.DefaultPolicy, log)

	tickets := sink.NewFile(cfg.ReceiptDir)
	checkout := checkoutapp.NewService(ledger, sink.Chain{tickets, sink.NewKV(store)}, log,
		checkoutapp.WithLocale(receipt.LocaleFor(cfg.ReceiptLocale)),
	)

	return &runtime{
		cfg:        cfg,
		log:        log,
		store:      store,
		catalog:    catalog,
		ledger:     ledger,
		checkout:   checkout,
		tickets:    tickets,
		catalogErr: catalogErr,
	}, nil
}

func (r *runtime) close() error {
	_ = r.log.Sync()
	return r.store.Close()
}
