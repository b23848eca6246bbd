package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/lknik/infoop-exposure-matrix/internal/handler"
	"github.com/lknik/infoop-exposure-matrix/internal/metrics"
	"github.com/lknik/infoop-exposure-matrix/internal/middleware"
	"github.com/lknik/infoop-exposure-matrix/internal/router"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap(ctx, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	logger := middleware.Logger
	metrics.Register(prometheus.DefaultRegisterer, rt.pool)

	limiters := router.DefaultLimiters()
	defer limiters.Stop()

	svcs := rt.services
	app := fiber.New(fiber.Config{
		AppName:      "FIMI Exposure Matrix API",
		ServerHeader: "fimi",
	})
	router.Setup(app, &router.Handlers{
		Health:    handler.NewHealthHandler(rt.pool, rt.cache.Client(), svcs.Registry.Len()),
		Taxonomy:  handler.NewTaxonomyHandler(svcs.Registry),
		Operation: handler.NewOperationHandler(svcs.Operations, svcs.Classification),
		Channel:   handler.NewChannelHandler(svcs.Channels, svcs.Classification),
		Indicator: handler.NewIndicatorHandler(svcs.Evidence),
		Link:      handler.NewLinkHandler(svcs.Links),
		Classify:  handler.NewClassifyHandler(svcs.Classification),
		Export:    handler.NewExportHandler(svcs.Exports),
		Metrics:   handler.MetricsHandler(prometheus.DefaultGatherer),
	}, limiters, rt.cfg.CORSOrigins)

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("port", rt.cfg.Port).
			Str("env", rt.cfg.Environment).
			Str("storage", rt.cfg.StorageDriver).
			Msg("FIMI API starting")
		errCh <- app.Listen(":" + rt.cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}
