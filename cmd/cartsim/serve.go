package main

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	cartapp "github.com/dwikikusuma/cartsim/internal/cart/app"
	"github.com/dwikikusuma/cartsim/internal/gateway"
	"github.com/dwikikusuma/cartsim/pkg/shutdown"
)

func (s *cliState) serve(c *cli.Context) error {
	rt := s.rt
	log := rt.log

	if rt.cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := shutdown.WithSignals(c.Context, log)
	defer cancel()

	unsubscribe := rt.ledger.Subscribe(func(snap cartapp.Snapshot) {
		log.Debug("cart changed", zap.Int("lines", len(snap.Lines)), zap.String("total", snap.Totals.Total.String()))
	})
	defer unsubscribe()

	h := gateway.NewHandler(rt.catalog, rt.ledger, rt.checkout, log)
	addr := fmt.Sprintf(":%d", c.Int("port"))
	server := &http.Server{
		Addr:              addr,
		Handler:           gateway.NewRouter(h),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var (
		wg       sync.WaitGroup
		serveErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", zap.Error(err))
			serveErr = err
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", zap.Error(err))
	}

	wg.Wait()
	log.Info("bye")
	return serveErr
}
