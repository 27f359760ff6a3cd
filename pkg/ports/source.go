package ports

import (
	"context"

	"github.com/aretw0/strata/pkg/domain"
)

// BoreholeSource reads the depth-bearing records of boreholes.
// The engine never writes through this port; records are owned by the CRUD layer.
type BoreholeSource interface {
	// ListBoreholes returns the IDs of the available boreholes.
	ListBoreholes(ctx context.Context) ([]string, error)

	// LoadBorehole returns one borehole.
	// Returns domain.ErrBoreholeNotFound if the borehole does not exist.
	LoadBorehole(ctx context.Context, id string) (*domain.Borehole, error)
}
