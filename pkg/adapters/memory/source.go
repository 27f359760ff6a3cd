package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/ports"
)

// Source implements ports.BoreholeSource using an in-memory map.
// Safe for concurrent use.
type Source struct {
	boreholes map[string]*domain.Borehole
	mu        sync.RWMutex
}

var _ ports.BoreholeSource = (*Source)(nil)

// NewSource creates a source holding the given boreholes.
func NewSource(boreholes ...*domain.Borehole) (*Source, error) {
	s := &Source{boreholes: make(map[string]*domain.Borehole)}
	for _, b := range boreholes {
		if err := s.Put(b); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Put adds or replaces a borehole.
func (s *Source) Put(b *domain.Borehole) error {
	if b == nil || b.ID == "" {
		return fmt.Errorf("borehole missing ID")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boreholes[b.ID] = clone(b)
	return nil
}

// ListBoreholes returns the IDs in lexical order.
func (s *Source) ListBoreholes(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.boreholes))
	for id := range s.boreholes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// LoadBorehole returns a copy of the borehole so callers can't mutate the source.
func (s *Source) LoadBorehole(ctx context.Context, id string) (*domain.Borehole, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.boreholes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrBoreholeNotFound, id)
	}
	return clone(b), nil
}

// clone copies the borehole down to its interval slices. Payloads are shared.
func clone(b *domain.Borehole) *domain.Borehole {
	c := *b
	c.Layers = make(map[domain.LayerKind][]domain.Interval, len(b.Layers))
	for k, layers := range b.Layers {
		c.Layers[k] = append([]domain.Interval(nil), layers...)
	}
	c.Casings = make([]domain.Casing, len(b.Casings))
	for i, casing := range b.Casings {
		casing.Elements = append([]domain.Interval(nil), casing.Elements...)
		c.Casings[i] = casing
	}
	return &c
}
