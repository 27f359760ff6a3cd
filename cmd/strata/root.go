package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/internal/cli"
	"github.com/aretw0/strata/internal/config"
	"github.com/aretw0/strata/internal/logging"
)

var (
	appConfig config.Config
	logger    = logging.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "strata",
	Short: "Strata reconciles the depth intervals of boreholes",
	Long: `Strata completes borehole layer columns (sorting, overlap flags, gap synthesis)
and converts depths (MD / MASL) and Swiss coordinates (LV95 / LV03) through external services.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
		}
		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		appConfig = cfg
		logger = logging.New(level)
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", "", "Directory containing the borehole dataset (overrides config)")
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("format", cli.FormatAuto, "Output format: auto, markdown, json")
	rootCmd.PersistentFlags().String("geometry-url", "", "Base URL of the borehole geometry API (overrides config)")
	rootCmd.PersistentFlags().String("transform-url", "", "Base URL of the reframe service (overrides config)")
}

// engineFromFlags builds the engine for a command from the loaded config and the flags.
func engineFromFlags(cmd *cobra.Command, reg prometheus.Registerer) (*strata.Engine, func(), error) {
	dir, _ := cmd.Flags().GetString("dir")
	geometryURL, _ := cmd.Flags().GetString("geometry-url")
	transformURL, _ := cmd.Flags().GetString("transform-url")

	return cli.NewEngine(cmd.Context(), appConfig, cli.EngineOptions{
		Dataset:      dir,
		GeometryURL:  geometryURL,
		TransformURL: transformURL,
		Registerer:   reg,
	}, logger)
}

func render(cmd *cobra.Command, markdown string, value any) error {
	format, _ := cmd.Flags().GetString("format")
	return cli.Print(cmd.OutOrStdout(), format, markdown, value)
}
