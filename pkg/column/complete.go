package column

import (
	"fmt"

	"github.com/aretw0/strata/pkg/domain"
)

// Column is a completed, gap-free sequence of intervals.
type Column struct {
	// Layers alternates real intervals and synthesized gaps, ordered by depth.
	Layers []domain.Interval `json:"layers"`
	// Depths holds the overlap diagnostics of the real intervals, in Layers order.
	Depths []domain.LayerDepth `json:"depths"`
	// Envelope is the extent of the real intervals.
	Envelope domain.Envelope `json:"envelope"`
}

// Complete normalizes intervals and fills the gaps of the result.
func Complete(intervals []domain.Interval, opts ...Option) Column {
	n := Normalize(intervals, opts...)
	return Column{
		Layers:   SynthesizeGaps(n.Intervals, opts...),
		Depths:   n.Depths,
		Envelope: EnvelopeOf(n.Intervals),
	}
}

// Gaps returns the synthesized intervals of the column.
func (c Column) Gaps() []domain.Interval {
	var gaps []domain.Interval
	for _, l := range c.Layers {
		if l.IsGap {
			gaps = append(gaps, l)
		}
	}
	return gaps
}

// HasOverlaps reports whether any interval is flagged: an adjacent pair overlaps,
// or an interval is inverted or has an open bound.
func (c Column) HasOverlaps() bool {
	for _, d := range c.Depths {
		if d.HasError() {
			return true
		}
	}
	return false
}

// CheckCoverage verifies that layers tile r: consecutive spans touch, the first
// starts at r.Start and the last ends at r.End (absent bounds are not checked).
// It returns an error wrapping domain.ErrIncompleteCoverage on the first violation.
func CheckCoverage(layers []domain.Interval, r domain.DepthRange, opts ...Option) error {
	cfg := newConfig(opts)
	differs := func(a, b float64) bool { return cfg.before(a, b) || cfg.before(b, a) }

	if len(layers) == 0 {
		if r.Bounded() && cfg.before(*r.Start, *r.End) {
			return fmt.Errorf("%w: nothing covers [%v, %v]", domain.ErrIncompleteCoverage, *r.Start, *r.End)
		}
		return nil
	}

	var prevTo float64
	for i, l := range layers {
		from, to, ok := l.Span()
		if !ok {
			return fmt.Errorf("%w: layer %q has an open bound", domain.ErrIncompleteCoverage, l.ID)
		}
		if i == 0 && r.Start != nil && differs(from, *r.Start) {
			return fmt.Errorf("%w: column starts at %v, expected %v", domain.ErrIncompleteCoverage, from, *r.Start)
		}
		if i > 0 && differs(from, prevTo) {
			return fmt.Errorf("%w: layer %q starts at %v after %v", domain.ErrIncompleteCoverage, l.ID, from, prevTo)
		}
		prevTo = to
	}
	if r.End != nil && differs(prevTo, *r.End) {
		return fmt.Errorf("%w: column ends at %v, expected %v", domain.ErrIncompleteCoverage, prevTo, *r.End)
	}
	return nil
}
