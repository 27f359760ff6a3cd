package convert

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/ports"
)

// CachingGeometry memoises the results of another GeometryService.
// Cache failures are logged and never fail a conversion.
type CachingGeometry struct {
	inner  ports.GeometryService
	cache  ports.DepthCache
	logger *slog.Logger
}

var _ ports.GeometryService = (*CachingGeometry)(nil)

// NewCachingGeometry wraps inner with cache.
func NewCachingGeometry(inner ports.GeometryService, cache ports.DepthCache, opts ...Option) *CachingGeometry {
	o := newOptions(opts)
	return &CachingGeometry{inner: inner, cache: cache, logger: o.logger}
}

// ConvertDepth implements ports.GeometryService.
func (g *CachingGeometry) ConvertDepth(ctx context.Context, boreholeID string, value float64, from domain.VerticalReference) (float64, error) {
	key := ports.DepthKey{BoreholeID: boreholeID, From: from, Value: value}

	cached, err := g.cache.Get(ctx, key)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		g.logger.Warn("Depth cache read failed", "borehole_id", boreholeID, "error", err)
	}

	converted, err := g.inner.ConvertDepth(ctx, boreholeID, value, from)
	if err != nil {
		return 0, err
	}
	if err := g.cache.Set(ctx, key, converted); err != nil {
		g.logger.Warn("Depth cache write failed", "borehole_id", boreholeID, "error", err)
	}
	return converted, nil
}

// Invalidate drops the cached conversions of a borehole.
func (g *CachingGeometry) Invalidate(ctx context.Context, boreholeID string) error {
	return g.cache.Invalidate(ctx, boreholeID)
}
