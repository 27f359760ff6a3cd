package file

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/ports"
)

// DepthCache implements ports.DepthCache on the local filesystem.
// Each borehole is one JSON file mapping cache fields ("md:12.5") to values,
// so the cache survives CLI invocations.
type DepthCache struct {
	BasePath string
	mu       sync.Mutex
}

var _ ports.DepthCache = (*DepthCache)(nil)

// New creates a new DepthCache with the given base path.
// If basePath is empty, it defaults to ".strata/cache".
func New(basePath string) *DepthCache {
	if basePath == "" {
		basePath = filepath.Join(".strata", "cache")
	}
	return &DepthCache{BasePath: basePath}
}

func (c *DepthCache) path(boreholeID string) string {
	return filepath.Join(c.BasePath, url.PathEscape(boreholeID)+".json")
}

func (c *DepthCache) read(boreholeID string) (map[string]float64, error) {
	data, err := os.ReadFile(c.path(boreholeID))
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]float64{}, nil
		}
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	entries := map[string]float64{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache file of %s: %w", boreholeID, err)
	}
	return entries, nil
}

// Get implements ports.DepthCache.
func (c *DepthCache) Get(ctx context.Context, key ports.DepthKey) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := c.read(key.BoreholeID)
	if err != nil {
		return 0, err
	}
	v, ok := entries[key.Field()]
	if !ok {
		return 0, domain.ErrCacheMiss
	}
	return v, nil
}

// Set implements ports.DepthCache. The file is replaced atomically.
func (c *DepthCache) Set(ctx context.Context, key ports.DepthKey, value float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := c.read(key.BoreholeID)
	if err != nil {
		return err
	}
	entries[key.Field()] = value
	return c.write(key.BoreholeID, entries)
}

func (c *DepthCache) write(boreholeID string, entries map[string]float64) error {
	if err := os.MkdirAll(c.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure cache directory: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache entries: %w", err)
	}

	// Same directory as the destination so that the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(c.BasePath, "tmp-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Cannot rename an open file on Windows
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, c.path(boreholeID)); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Invalidate implements ports.DepthCache.
func (c *DepthCache) Invalidate(ctx context.Context, boreholeID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := os.Remove(c.path(boreholeID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete cache file: %w", err)
	}
	return nil
}
