package domain

import (
	"fmt"
	"strconv"
)

// VerticalReference identifies the vertical axis a depth value is expressed in.
type VerticalReference string

const (
	MeasuredDepth       VerticalReference = "md"   // Along the borehole path from the surface
	MetersAboveSeaLevel VerticalReference = "masl" // Elevation
)

// Other returns the opposite vertical reference.
func (r VerticalReference) Other() VerticalReference {
	if r == MeasuredDepth {
		return MetersAboveSeaLevel
	}
	return MeasuredDepth
}

// Validate reports ErrUnknownVerticalReference for unsupported values.
func (r VerticalReference) Validate() error {
	switch r {
	case MeasuredDepth, MetersAboveSeaLevel:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownVerticalReference, string(r))
}

// DepthValue is a scalar tagged with the vertical reference it originates from.
type DepthValue struct {
	Value     float64           `json:"value"`
	Reference VerticalReference `json:"reference"`
	// Precision is the number of decimals used when displaying Value.
	Precision int `json:"precision"`
}

// String formats the value with its display precision.
func (d DepthValue) String() string {
	return strconv.FormatFloat(d.Value, 'f', d.Precision, 64)
}
