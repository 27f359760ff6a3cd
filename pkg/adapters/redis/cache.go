package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// DepthCache implements ports.DepthCache using Redis.
// Conversions of one borehole live in a single hash, so invalidation is one DEL.
type DepthCache struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

var _ ports.DepthCache = (*DepthCache)(nil)

type Option func(*DepthCache)

// WithTTL sets the expiration of a borehole's cached conversions.
// The TTL is refreshed on every write.
func WithTTL(ttl time.Duration) Option {
	return func(c *DepthCache) {
		c.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(c *DepthCache) {
		c.prefix = prefix
	}
}

// New creates a new Redis cache with options.
func New(address, password string, db int, opts ...Option) *DepthCache {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis cache from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *DepthCache {
	cache := &DepthCache{
		client: client,
		prefix: "strata:depth:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

func (c *DepthCache) key(boreholeID string) string {
	return c.prefix + boreholeID
}

// Get returns the cached conversion.
func (c *DepthCache) Get(ctx context.Context, key ports.DepthKey) (float64, error) {
	val, err := c.client.HGet(ctx, c.key(key.BoreholeID), key.Field()).Result()
	if err != nil {
		if err == backend.Nil {
			return 0, domain.ErrCacheMiss
		}
		return 0, fmt.Errorf("failed to get from redis: %w", err)
	}

	v, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse cached depth %q: %w", val, err)
	}
	return v, nil
}

// Set stores a conversion and refreshes the TTL of the borehole's hash.
func (c *DepthCache) Set(ctx context.Context, key ports.DepthKey, value float64) error {
	hashKey := c.key(key.BoreholeID)

	pipe := c.client.Pipeline()
	pipe.HSet(ctx, hashKey, key.Field(), strconv.FormatFloat(value, 'g', -1, 64))
	if c.ttl > 0 {
		pipe.Expire(ctx, hashKey, c.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Invalidate drops every conversion of a borehole.
func (c *DepthCache) Invalidate(ctx context.Context, boreholeID string) error {
	if err := c.client.Del(ctx, c.key(boreholeID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate borehole %s: %w", boreholeID, err)
	}
	return nil
}

// Close closes the redis client.
func (c *DepthCache) Close() error {
	return c.client.Close()
}

// Ping checks the connection to the server.
func (c *DepthCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
