package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	kestrelhttp "github.com/aretw0/kestrel/pkg/adapters/http"
	"github.com/aretw0/kestrel/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

// serveCmd exposes the kernel over HTTP, with Prometheus metrics on a
// separate listener.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the kernel over HTTP with Prometheus metrics",
	Run: func(cmd *cobra.Command, args []string) {
		promRegistry := prometheus.NewRegistry()
		collector := observability.NewCollector(promRegistry)

		k, cfg, err := setup(cmd, collector.Hooks())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		handler, err := kestrelhttp.NewHandler(k)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		api := &http.Server{Addr: cfg.HTTP.Listen, Handler: handler}
		metrics := &http.Server{Addr: cfg.HTTP.MetricsListen, Handler: promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{})}

		errCh := make(chan error, 2)
		go func() {
			fmt.Printf("kestrel API listening on %s\n", cfg.HTTP.Listen)
			errCh <- api.ListenAndServe()
		}()
		go func() {
			fmt.Printf("metrics listening on %s\n", cfg.HTTP.MetricsListen)
			errCh <- metrics.ListenAndServe()
		}()

		select {
		case <-ctx.Done():
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				fmt.Printf("Error: %v\n", err)
			}
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = api.Shutdown(shutdownCtx)
		_ = metrics.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
