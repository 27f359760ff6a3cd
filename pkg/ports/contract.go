package ports

import (
	"context"
	"testing"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDepthCacheContract verifies that a DepthCache implementation behaves as the port requires.
func RunDepthCacheContract(t *testing.T, cache DepthCache) {
	ctx := context.Background()
	key := DepthKey{BoreholeID: "contract-borehole", From: domain.MeasuredDepth, Value: 12.5}

	t.Run("Miss", func(t *testing.T) {
		_, err := cache.Get(ctx, DepthKey{BoreholeID: "contract-borehole", From: domain.MeasuredDepth, Value: -1})
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("Set and Get", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, key, 487.25))

		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, 487.25, got)
	})

	t.Run("Direction is part of the key", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, key, 487.25))

		other := key
		other.From = domain.MetersAboveSeaLevel
		_, err := cache.Get(ctx, other)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("Invalidate", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, key, 487.25))
		untouched := DepthKey{BoreholeID: "contract-other", From: domain.MeasuredDepth, Value: 1}
		require.NoError(t, cache.Set(ctx, untouched, 2))

		require.NoError(t, cache.Invalidate(ctx, key.BoreholeID))

		_, err := cache.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss, "Get after Invalidate should miss")

		got, err := cache.Get(ctx, untouched)
		require.NoError(t, err)
		assert.Equal(t, 2.0, got)
	})
}
