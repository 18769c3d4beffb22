package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/askdeskhq/askdesk"
	"github.com/askdeskhq/askdesk/internal/adapters/httpapi"
	"github.com/askdeskhq/askdesk/internal/logging"
	"github.com/askdeskhq/askdesk/pkg/dialog"
	"github.com/askdeskhq/askdesk/pkg/observability"
	"github.com/askdeskhq/askdesk/pkg/persistence/middleware"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Starts the inquiry board as a JSON API over HTTP. Operator capability is granted per request via the X-Operator-Token header.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		if listen, _ := cmd.Flags().GetString("listen"); cmd.Flags().Changed("listen") {
			cfg.Listen = listen
		}

		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		logger := logging.New(level)

		store, closeStore, err := openStore(cfg)
		if err != nil {
			fmt.Printf("Error opening store: %v\n", err)
			os.Exit(1)
		}
		defer closeStore()

		reg := prometheus.NewRegistry()
		wrapped := middleware.Chain(store,
			middleware.NewLoggingMiddleware(logger),
			middleware.NewMetricsMiddleware(reg),
		)
		collector := observability.NewCollector(reg)

		board := askdesk.New(wrapped, dialog.Answers{},
			askdesk.WithLogger(logger),
			askdesk.WithLifecycleHooks(collector.Hooks()),
		)

		mux := http.NewServeMux()
		mux.Handle("/", httpapi.NewHandler(board, cfg.OperatorToken, logger))
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

		srv := &http.Server{
			Addr:    cfg.Listen,
			Handler: mux,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("askdesk server listening", "address", srv.Addr, "backend", cfg.Store.Backend)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("shutdown started", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("forcing server close failed", "err", err)
				}
			}
			logger.Info("askdesk server stopped")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("listen", "l", ":8080", "Address to listen on")
}
