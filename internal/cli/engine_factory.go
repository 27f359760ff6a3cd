package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/internal/config"
	fileAdapter "github.com/aretw0/strata/pkg/adapters/file"
	httpAdapter "github.com/aretw0/strata/pkg/adapters/http"
	"github.com/aretw0/strata/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/strata/pkg/adapters/redis"
	"github.com/aretw0/strata/pkg/observability"
	"github.com/aretw0/strata/pkg/ports"
)

// EngineOptions carries the CLI overrides applied on top of the configuration file.
type EngineOptions struct {
	Dataset      string
	GeometryURL  string
	TransformURL string
	Registerer   prometheus.Registerer
}

// NewEngine initializes a Strata engine with standard CLI conventions:
// services are only wired when their base URL is known, and the depth cache
// follows the cache section of the configuration.
// The returned cleanup releases the cache connection.
func NewEngine(ctx context.Context, cfg config.Config, opts EngineOptions, logger *slog.Logger) (*strata.Engine, func(), error) {
	cleanup := func() {}

	dataset := cfg.Dataset
	if opts.Dataset != "" {
		dataset = opts.Dataset
	}

	columnOpts, err := cfg.ColumnOptions()
	if err != nil {
		return nil, cleanup, err
	}
	engineOpts := []strata.Option{
		strata.WithLogger(logger),
		strata.WithColumnOptions(columnOpts...),
	}

	if opts.Registerer != nil {
		metrics, err := observability.NewMetrics(opts.Registerer)
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to register metrics: %w", err)
		}
		engineOpts = append(engineOpts, strata.WithRecorder(metrics))
	}

	geometryURL := firstNonEmpty(opts.GeometryURL, cfg.Geometry.BaseURL)
	if geometryURL != "" {
		engineOpts = append(engineOpts, strata.WithGeometry(httpAdapter.NewGeometryClient(geometryURL,
			httpAdapter.WithTimeout(cfg.Geometry.TimeoutDuration()),
			httpAdapter.WithLogger(logger),
		)))

		cache, closeCache, err := newDepthCache(ctx, cfg, logger)
		if err != nil {
			return nil, cleanup, err
		}
		cleanup = closeCache
		engineOpts = append(engineOpts, strata.WithCache(cache))
	}

	transformURL := firstNonEmpty(opts.TransformURL, cfg.Transform.BaseURL)
	if transformURL != "" {
		engineOpts = append(engineOpts, strata.WithTransformer(httpAdapter.NewTransformClient(transformURL,
			httpAdapter.WithTimeout(cfg.Transform.TimeoutDuration()),
			httpAdapter.WithLogger(logger),
		)))
	}

	engine, err := strata.New(dataset, engineOpts...)
	if err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, cleanup, nil
}

func newDepthCache(ctx context.Context, cfg config.Config, logger *slog.Logger) (ports.DepthCache, func(), error) {
	r := cfg.Cache.Redis
	if r.Addr == "" {
		if cfg.Cache.Dir != "" {
			logger.Debug("Depth cache backed by files", "dir", cfg.Cache.Dir)
			return fileAdapter.New(cfg.Cache.Dir), func() {}, nil
		}
		return memory.NewDepthCache(), func() {}, nil
	}

	cache := redisAdapter.New(r.Addr, r.Password, r.DB, redisAdapter.WithTTL(cfg.Cache.TTLDuration()))
	if err := cache.Ping(ctx); err != nil {
		_ = cache.Close()
		return nil, func() {}, fmt.Errorf("failed to connect to redis at %s: %w", r.Addr, err)
	}
	logger.Debug("Depth cache backed by redis", "addr", r.Addr, "db", r.DB)
	return cache, func() {
		if err := cache.Close(); err != nil {
			logger.Warn("Failed to close redis cache", "error", err)
		}
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
