package domain

import "fmt"

// LayerKind identifies a family of intervals recorded for a borehole.
type LayerKind string

const (
	KindLithology               LayerKind = "lithology"
	KindLithologicalDescription LayerKind = "lithological_description"
	KindFaciesDescription       LayerKind = "facies_description"
	KindBackfill                LayerKind = "backfill"
	KindInstrumentation         LayerKind = "instrumentation"
)

// LayerKinds lists the supported kinds in display order.
var LayerKinds = []LayerKind{
	KindLithology,
	KindLithologicalDescription,
	KindFaciesDescription,
	KindBackfill,
	KindInstrumentation,
}

// ParseLayerKind validates a textual layer kind.
func ParseLayerKind(s string) (LayerKind, error) {
	for _, k := range LayerKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLayerKind, s)
}

// Casing is a completion casing made of depth-bounded elements.
type Casing struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Elements []Interval `json:"elements"`
}

// Borehole is the read model of a borehole as seen by the engine.
type Borehole struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Elevation is the reference elevation (MASL) of the borehole head.
	Elevation *float64 `json:"elevation,omitempty"`
	// TotalDepth is the measured depth of the borehole bottom.
	TotalDepth *float64                 `json:"total_depth,omitempty"`
	Layers     map[LayerKind][]Interval `json:"layers"`
	Casings    []Casing                 `json:"casings,omitempty"`
}

// Range returns the reference range a column of this borehole must cover:
// from the surface to the total depth when known.
func (b *Borehole) Range() DepthRange {
	return DepthRange{Start: Float(0), End: b.TotalDepth}
}
