package ports

import (
	"context"

	"github.com/aretw0/strata/pkg/domain"
)

// GeometryService converts depths along the geometry of a specific borehole.
// Implementations may be slow and may fail; callers must not assume ordering of concurrent calls.
type GeometryService interface {
	// ConvertDepth converts value, expressed in from, into from.Other().
	ConvertDepth(ctx context.Context, boreholeID string, value float64, from domain.VerticalReference) (float64, error)
}

// GeometryFunc adapts a function to GeometryService.
type GeometryFunc func(ctx context.Context, boreholeID string, value float64, from domain.VerticalReference) (float64, error)

// ConvertDepth calls f.
func (f GeometryFunc) ConvertDepth(ctx context.Context, boreholeID string, value float64, from domain.VerticalReference) (float64, error) {
	return f(ctx, boreholeID, value, from)
}

// CoordinateTransformer converts planar coordinates between reference systems.
type CoordinateTransformer interface {
	// Transform converts c, expressed in from, into the counterpart system of from.
	Transform(ctx context.Context, from domain.ReferenceSystem, c domain.Coordinate) (domain.Coordinate, error)
}

// TransformFunc adapts a function to CoordinateTransformer.
type TransformFunc func(ctx context.Context, from domain.ReferenceSystem, c domain.Coordinate) (domain.Coordinate, error)

// Transform calls f.
func (f TransformFunc) Transform(ctx context.Context, from domain.ReferenceSystem, c domain.Coordinate) (domain.Coordinate, error) {
	return f(ctx, from, c)
}
