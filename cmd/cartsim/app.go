package main

import (
	"github.com/urfave/cli/v2"

	"github.com/dwikikusuma/cartsim/pkg/config"
	"github.com/dwikikusuma/cartsim/pkg/logger"
)

// cliState carries the configuration and, once a command's Before has run,
// the wired runtime.
type cliState struct {
	cfg config.Config
	rt  *runtime
}

// newApp builds the CLI. Flag defaults come from cfg, so flags override the
// environment.
func newApp(cfg config.Config) *cli.App {
	s := &cliState{cfg: cfg}

	app := &cli.App{
		Name:  "cartsim",
		Usage: "shopping cart simulator",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "catalog", Usage: "catalog file paths or URLs", Value: cli.NewStringSlice(cfg.CatalogSources...)},
			&cli.DurationFlag{Name: "catalog-timeout", Value: cfg.CatalogTimeout},
			&cli.StringFlag{Name: "store", Usage: "file, sqlite, postgres, redis or memory", Value: cfg.StoreDriver},
			&cli.StringFlag{Name: "store-dir", Value: cfg.StoreDir},
			&cli.StringFlag{Name: "store-dsn", Value: cfg.StoreDSN},
			&cli.StringFlag{Name: "redis-addr", Value: cfg.RedisAddr},
			&cli.StringFlag{Name: "receipt-dir", Value: cfg.ReceiptDir},
			&cli.StringFlag{Name: "locale", Usage: "receipt language (en, es)", Value: cfg.ReceiptLocale},
			&cli.StringFlag{Name: "log-level", Value: cfg.LogLevel},
			&cli.BoolFlag{Name: "log-source", Usage: "annotate log lines with the caller", Value: cfg.LogSource},
		},
		After: s.after,
		Commands: []*cli.Command{
			{Name: "catalog", Usage: "list products", Action: s.listCatalog},
			{Name: "cart", Usage: "show the cart and its totals", Action: s.showCart},
			{Name: "add", Usage: "add one unit of a product", ArgsUsage: "<product-id>", Action: s.addItem},
			{Name: "remove", Usage: "remove a product from the cart", ArgsUsage: "<product-id>", Action: s.removeItem},
			{Name: "set", Usage: "set the quantity of a cart line", ArgsUsage: "<product-id> <quantity>", Action: s.setQuantity},
			{
				Name:   "clear",
				Usage:  "empty the cart",
				Flags:  []cli.Flag{&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "skip confirmation"}},
				Action: s.clearCart,
			},
			{Name: "checkout", Usage: "complete the purchase and save the ticket", Action: s.checkout},
			{
				Name:   "serve",
				Usage:  "serve the cart over HTTP",
				Flags:  []cli.Flag{&cli.IntFlag{Name: "port", Value: cfg.HTTPPort}},
				Action: s.serve,
			},
		},
	}

	// Wiring runs per command, after help handling, so help never touches the
	// store or the catalog.
	for _, cmd := range app.Commands {
		cmd.Before = s.before
	}
	return app
}

func (s *cliState) before(c *cli.Context) error {
	s.cfg.CatalogSources = c.StringSlice("catalog")
	s.cfg.CatalogTimeout = c.Duration("catalog-timeout")
	s.cfg.StoreDriver = c.String("store")
	s.cfg.StoreDir = c.String("store-dir")
	s.cfg.StoreDSN = c.String("store-dsn")
	s.cfg.RedisAddr = c.String("redis-addr")
	s.cfg.ReceiptDir = c.String("receipt-dir")
	s.cfg.ReceiptLocale = c.String("locale")
	s.cfg.LogLevel = c.String("log-level")
	s.cfg.LogSource = c.Bool("log-source")

	log := logger.New(logger.Options{
		Service:   "cartsim",
		Env:       s.cfg.AppEnv,
		Level:     s.cfg.LogLevel,
		AddSource: s.cfg.LogSource,
	})

	rt, err := bootstrap(c.Context, s.cfg, log)
	if err != nil {
		return err
	}
	s.rt = rt
	return nil
}

func (s *cliState) after(*cli.Context) error {
	if s.rt == nil {
		return nil
	}
	err := s.rt.close()
	s.rt = nil
	return err
}
