package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sartorproj/goseason/analysis"
	"github.com/sartorproj/goseason/config"
	"github.com/sartorproj/goseason/server"
	"github.com/sartorproj/goseason/telemetry"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides GOSEASON_ADDR)")
	return cmd
}

func serve(parent context.Context, cfg *config.Config) error {
	logger := cfg.NewLogger()

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:  cfg.ServiceName,
		Endpoint:     cfg.OTLPEndpoint,
		Insecure:     true,
		SamplingRate: cfg.SamplingRate,
	})
	if err != nil {
		return err
	}
	if tp.Enabled() {
		logger.WithField("endpoint", cfg.OTLPEndpoint).Info("Tracing enabled")
	}

	analyzer := analysis.New(
		analysis.WithLogger(logger),
		analysis.WithTracerProvider(tp),
	)
	srv := server.New(analyzer, logger, server.Options{
		MaxUploadBytes: cfg.MaxUploadBytes,
		RateLimit:      cfg.RateLimitRPS,
		RateBurst:      cfg.RateLimitBurst,
		TracerProvider: tp,
	})

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.Addr).Info("Starting server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.WithError(err).Error("Server failed")
			return err
		}
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server shutdown failed")
	}
	if err := tp.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("Tracer shutdown failed")
	}
	logger.Info("Server stopped")
	return nil
}
