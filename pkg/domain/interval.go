package domain

import "strconv"

// RenderHints are the rendering-relevant attributes of an Interval.
// Synthesized gaps inherit them from a neighbouring real interval.
type RenderHints struct {
	// Unconsolidated marks loose-rock layers (drawn with a different pattern).
	Unconsolidated bool `json:"unconsolidated,omitempty" mapstructure:"unconsolidated"`
	// Kind is a free classification used by renderers (e.g. "pipe", "filter").
	Kind string `json:"kind,omitempty" mapstructure:"kind"`
}

// Interval is a depth-bounded record on the borehole axis.
// FromDepth and ToDepth are nullable; upstream data does not guarantee FromDepth <= ToDepth.
type Interval struct {
	ID        string      `json:"id"`
	ParentID  string      `json:"parent_id,omitempty"`
	FromDepth *float64    `json:"from_depth"`
	ToDepth   *float64    `json:"to_depth"`
	IsGap     bool        `json:"is_gap"`
	Hints     RenderHints `json:"hints"`
	// Payload is opaque to the engine.
	Payload any `json:"payload,omitempty"`
}

// Bounds returns the nullable depth bounds of the interval.
func (i Interval) Bounds() (from, to *float64) {
	return i.FromDepth, i.ToDepth
}

// Span returns both bounds and reports whether they are set.
func (i Interval) Span() (from, to float64, ok bool) {
	if i.FromDepth == nil || i.ToDepth == nil {
		return 0, 0, false
	}
	return *i.FromDepth, *i.ToDepth, true
}

// NewGap builds a synthetic gap interval covering [from, to].
func NewGap(parentID string, from, to float64, hints RenderHints) Interval {
	return Interval{
		ID:        GapID(from, to),
		ParentID:  parentID,
		FromDepth: Float(from),
		ToDepth:   Float(to),
		IsGap:     true,
		Hints:     hints,
	}
}

// GapID derives the deterministic identifier of a gap covering [from, to].
func GapID(from, to float64) string {
	return "gap:" + strconv.FormatFloat(from, 'f', -1, 64) + "-" + strconv.FormatFloat(to, 'f', -1, 64)
}

// LayerDepth carries the overlap diagnostics of one normalized, non-gap interval.
type LayerDepth struct {
	FromDepth         *float64 `json:"from_depth"`
	ToDepth           *float64 `json:"to_depth"`
	SourceID          string   `json:"source_id"`
	HasFromDepthError bool     `json:"has_from_depth_error"`
	HasToDepthError   bool     `json:"has_to_depth_error"`
	// IsInverted flags FromDepth > ToDepth.
	IsInverted bool `json:"is_inverted"`
	// HasOpenBound flags a nil FromDepth or ToDepth.
	HasOpenBound bool `json:"has_open_bound"`
}

// HasError reports whether any diagnostic is set.
func (d LayerDepth) HasError() bool {
	return d.HasFromDepthError || d.HasToDepthError || d.IsInverted || d.HasOpenBound
}

// Envelope is the min/max depth implied by a set of child elements.
type Envelope struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// IsEmpty reports whether neither bound is known.
func (e Envelope) IsEmpty() bool {
	return e.Min == nil && e.Max == nil
}

// Range converts the envelope into a reference range.
func (e Envelope) Range() DepthRange {
	return DepthRange{Start: e.Min, End: e.Max}
}

// DepthRange is the extent a column must cover. Either bound may be absent.
type DepthRange struct {
	Start *float64 `json:"start"`
	End   *float64 `json:"end"`
}

// NewDepthRange builds a fully bounded range.
func NewDepthRange(start, end float64) DepthRange {
	return DepthRange{Start: Float(start), End: Float(end)}
}

// Bounded reports whether both bounds are set.
func (r DepthRange) Bounded() bool {
	return r.Start != nil && r.End != nil
}

// Float returns a pointer to v. It is the idiomatic way to build nullable depths.
func Float(v float64) *float64 {
	return &v
}
