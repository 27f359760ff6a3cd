package memory

import (
	"context"
	"sync"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/ports"
)

// DepthCache implements ports.DepthCache in memory.
// Safe for concurrent use. Entries never expire.
type DepthCache struct {
	data map[string]map[string]float64 // BoreholeID -> DepthKey.Field() -> value
	mu   sync.RWMutex
}

var _ ports.DepthCache = (*DepthCache)(nil)

// NewDepthCache creates a new in-memory cache.
func NewDepthCache() *DepthCache {
	return &DepthCache{
		data: make(map[string]map[string]float64),
	}
}

// Get returns the cached conversion.
func (c *DepthCache) Get(ctx context.Context, key ports.DepthKey) (float64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.data[key.BoreholeID][key.Field()]
	if !ok {
		return 0, domain.ErrCacheMiss
	}
	return v, nil
}

// Set stores a conversion.
func (c *DepthCache) Set(ctx context.Context, key ports.DepthKey, value float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, ok := c.data[key.BoreholeID]
	if !ok {
		entries = make(map[string]float64)
		c.data[key.BoreholeID] = entries
	}
	entries[key.Field()] = value
	return nil
}

// Invalidate drops every conversion of a borehole.
func (c *DepthCache) Invalidate(ctx context.Context, boreholeID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, boreholeID)
	return nil
}

// Len returns the number of cached conversions.
func (c *DepthCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, entries := range c.data {
		n += len(entries)
	}
	return n
}
