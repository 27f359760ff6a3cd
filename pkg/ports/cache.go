package ports

import (
	"context"
	"strconv"

	"github.com/aretw0/strata/pkg/domain"
)

// DepthKey identifies one geometry conversion.
type DepthKey struct {
	BoreholeID string
	From       domain.VerticalReference
	Value      float64
}

// Field returns the key of the conversion inside its borehole namespace.
func (k DepthKey) Field() string {
	return string(k.From) + ":" + strconv.FormatFloat(k.Value, 'g', -1, 64)
}

// DepthCache memoises geometry conversions.
type DepthCache interface {
	// Get returns the cached result.
	// Returns domain.ErrCacheMiss if nothing is stored for key.
	Get(ctx context.Context, key DepthKey) (float64, error)

	// Set stores the result of a conversion.
	Set(ctx context.Context, key DepthKey, value float64) error

	// Invalidate drops every cached conversion of a borehole (e.g. after its geometry changed).
	Invalidate(ctx context.Context, boreholeID string) error
}
