package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gowst/internal/server"
)

const shutdownTimeout = 10 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP analysis API",
	Long: `Serve the stress analysis, orientation sweeps and stored scenarios
over HTTP as JSON.

Endpoints:
  GET    /healthz
  GET    /metrics                       Prometheus metrics
  POST   /v1/analysis/stress            ?normalize=true to scale by S1'
  POST   /v1/analysis/polar/{mode}      mode: tensile | breakout
  GET    /v1/scenarios
  POST   /v1/scenarios
  GET    /v1/scenarios/{id}
  PUT    /v1/scenarios/{id}
  DELETE /v1/scenarios/{id}

Examples:
  gowst serve
  gowst serve --addr 127.0.0.1:9090
  GOWST_DB=/tmp/gowst.db gowst serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := appConfig.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := server.NewMetrics(reg)

	h := server.New(store, metrics, logger, server.WithSweepWorkers(appConfig.Sweep.Workers))
	srv := server.NewHTTPServer(addr, server.NewRouter(h, reg, logger), appConfig.Server.ReadHeaderTimeout)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr, "database", appConfig.Database.Path)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
