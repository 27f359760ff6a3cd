package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/ports"
)

// BoreholeSourceContractTest is a reusable test suite that verifies if an adapter complies with ports.BoreholeSource.
// expected maps borehole IDs to the number of lithology layers the adapter must return.
func BoreholeSourceContractTest(t *testing.T, source ports.BoreholeSource, expected map[string]int) {
	t.Helper()
	ctx := context.Background()

	t.Run("LoadBorehole_Success", func(t *testing.T) {
		for id, layers := range expected {
			b, err := source.LoadBorehole(ctx, id)
			if err != nil {
				t.Fatalf("unexpected error loading borehole %s: %v", id, err)
			}
			if b.ID != id {
				t.Errorf("id mismatch: got %q, want %q", b.ID, id)
			}
			if got := len(b.Layers[domain.KindLithology]); got != layers {
				t.Errorf("lithology layers for %s: got %d, want %d", id, got, layers)
			}
		}
	})

	t.Run("LoadBorehole_NotFound", func(t *testing.T) {
		_, err := source.LoadBorehole(ctx, "non-existent-borehole")
		if !errors.Is(err, domain.ErrBoreholeNotFound) {
			t.Errorf("expected ErrBoreholeNotFound, got %v", err)
		}
	})

	t.Run("ListBoreholes", func(t *testing.T) {
		ids, err := source.ListBoreholes(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing boreholes: %v", err)
		}
		if len(ids) != len(expected) {
			t.Errorf("expected %d boreholes, got %d", len(expected), len(ids))
		}
		lookup := make(map[string]bool)
		for _, id := range ids {
			lookup[id] = true
		}
		for id := range expected {
			if !lookup[id] {
				t.Errorf("borehole %s missing from list", id)
			}
		}
	})
}
