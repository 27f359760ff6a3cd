package main

import (
	"log"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/aretw0/strata/pkg/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts Strata as an MCP Server on Standard Input/Output.
This allows AI agents to complete depth columns and inspect the casings of the dataset as tools.

With --metrics-addr, column and conversion metrics are served over HTTP on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		metricsAddr, _ := cmd.Flags().GetString("metrics-addr")

		var reg prometheus.Registerer
		if metricsAddr != "" {
			r := newRegistry()
			_, stop, err := serveMetrics(metricsAddr, r)
			if err != nil {
				return err
			}
			defer stop()
			reg = r
		}

		engine, cleanup, err := engineFromFlags(cmd, reg)
		if err != nil {
			return err
		}
		defer cleanup()

		srv := mcp.NewServer(engine)

		// Ensure logs don't corrupt JSON-RPC on Stdout
		log.SetOutput(os.Stderr)
		logger.Info("Starting Strata MCP Server (Stdio)...")
		return srv.ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
}
