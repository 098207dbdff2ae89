package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	cartcheckout "github.com/vitwit/cartcheckout"
	"github.com/vitwit/cartcheckout/feed"
	"github.com/vitwit/cartcheckout/httpapi"
	"github.com/vitwit/cartcheckout/logger"
	"github.com/vitwit/cartcheckout/metrics"
	"github.com/vitwit/cartcheckout/pricing"
	"github.com/vitwit/cartcheckout/types"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered views over HTTP, optionally fed from Kafka",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTP.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides http.addr")
	return cmd
}

func serve(ctx context.Context, cfg *types.CheckoutConfig) error {
	log := logger.NewZapLogger(cfg.LogLevel)
	var rec metrics.Recorder = metrics.NoopRecorder{}
	if cfg.EnableMetrics {
		rec = metrics.NewPrometheusRecorder()
	}

	checkout := cartcheckout.New(cfg,
		cartcheckout.WithLogger(log),
		cartcheckout.WithMetrics(rec),
		cartcheckout.WithConverter(pricing.NewStaticRates(cfg.USDRates)),
	)

	var snapshots httpapi.SnapshotSource
	errCh := make(chan error, 2)

	if cfg.Feed.Enabled {
		consumer, err := feed.NewConsumer(cfg.Feed, func(ctx context.Context, key string, tx *types.Transaction) {
			view := checkout.Preview(ctx, cartcheckout.Input{Key: key, Transaction: tx})
			log.Info("checkout snapshot", map[string]any{"checkout": key, "phase": view.Phase.String()})
		}, log, rec)
		if err != nil {
			return err
		}
		defer consumer.Close()
		snapshots = consumer.Store()

		go func() {
			errCh <- consumer.Run(ctx)
		}()
	}

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      httpapi.NewServer(checkout, snapshots, log).Handler(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		log.Info("checkout view server listening", map[string]any{"addr": cfg.HTTP.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			log.Error("checkout view server stopped", map[string]any{"err": err.Error()})
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
