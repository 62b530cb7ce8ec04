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

	"github.com/aretw0/crapsim"
	"github.com/aretw0/crapsim/internal/cli"
	httpAdapter "github.com/aretw0/crapsim/pkg/adapters/http"
	"github.com/aretw0/crapsim/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves scenario runs and stored reports over HTTP, with Prometheus
metrics on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := settings.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}
		debug, _ := cmd.Flags().GetBool("debug")

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := observability.NewMetrics(reg)

		sim, closeFn, err := cli.NewSimulator(storeOptions(cmd), logger, debug, crapsim.WithHooks(metrics.Hooks()))
		if err != nil {
			return err
		}
		defer closeFn()

		srv := &http.Server{
			Addr: addr,
			Handler: httpAdapter.NewHandler(sim,
				httpAdapter.WithLogger(logger),
				httpAdapter.WithMaxTrials(settings.MaxTrials),
				httpAdapter.WithMetrics(reg),
			),
			ReadHeaderTimeout: 10 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("crapsim server listening", "address", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case <-ctx.Done():
			logger.Info("shutdown signal received")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("graceful shutdown did not complete", "timeout", 5*time.Second, "error", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			logger.Info("crapsim server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on (overrides CRAPSIM_ADDR)")
}
