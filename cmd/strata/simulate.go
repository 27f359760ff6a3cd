package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	httpAdapter "github.com/aretw0/strata/pkg/adapters/http"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Serve local stand-ins for the geometry API and the reframe service",
	Long: `Starts an HTTP server answering the borehole geometry and reframe endpoints,
so that the converters can be exercised offline:

  strata simulate --table boreholes.yaml --port 8080
  strata convert depth bh-1 12.5 --geometry-url http://localhost:8080

Prometheus metrics of the process are served on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		tablePath, _ := cmd.Flags().GetString("table")

		table := httpAdapter.SimulatorTable{}
		if tablePath != "" {
			var err error
			table, err = httpAdapter.LoadSimulatorTable(tablePath)
			if err != nil {
				return err
			}
		}

		reg := newRegistry()

		srv := &http.Server{
			Addr: ":" + port,
			Handler: httpAdapter.NewSimulatorHandler(table,
				httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
			),
			ReadHeaderTimeout: 5 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("Simulator listening", "address", srv.Addr, "boreholes", len(table.Boreholes))
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)
		case <-cmd.Context().Done():
			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("graceful shutdown did not complete: %w", err)
			}
			logger.Info("Simulator stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	simulateCmd.Flags().String("table", "", "Borehole table (YAML or JSON) with elevation and inclination per borehole")
}
