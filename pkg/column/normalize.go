package column

import (
	"sort"

	"github.com/aretw0/strata/pkg/domain"
)

// Normalized is the output of Normalize.
// Depths[i] holds the diagnostics of Intervals[i].
type Normalized struct {
	Intervals []domain.Interval   `json:"intervals"`
	Depths    []domain.LayerDepth `json:"depths"`
}

// Normalize sorts intervals by start depth and flags overlaps between adjacent pairs.
//
// Intervals with a nil start depth sort after all bounded ones. Any nil bound
// is flagged with HasOpenBound. Gap intervals in
// the input are dropped, so a completed column can be normalized again. Only
// neighbours are compared: an interval overlapping a non-adjacent one is not flagged.
// The input slice is not modified.
func Normalize(intervals []domain.Interval, opts ...Option) Normalized {
	cfg := newConfig(opts)

	sorted := make([]domain.Interval, 0, len(intervals))
	for _, iv := range intervals {
		if iv.IsGap {
			continue
		}
		sorted = append(sorted, iv)
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return cfg.less(sorted[i], sorted[j])
	})

	depths := make([]domain.LayerDepth, len(sorted))
	for i, cur := range sorted {
		d := domain.LayerDepth{
			FromDepth: cur.FromDepth,
			ToDepth:   cur.ToDepth,
			SourceID:  cur.ID,
		}
		d.IsInverted = cfg.beforePtr(cur.ToDepth, cur.FromDepth)
		d.HasOpenBound = cur.FromDepth == nil || cur.ToDepth == nil
		if i > 0 {
			d.HasFromDepthError = cfg.beforePtr(cur.FromDepth, sorted[i-1].ToDepth)
		}
		if i < len(sorted)-1 {
			d.HasToDepthError = cfg.beforePtr(sorted[i+1].FromDepth, cur.ToDepth)
		}
		depths[i] = d
	}

	return Normalized{Intervals: sorted, Depths: depths}
}

// LayerDepths returns only the diagnostics of Normalize.
func LayerDepths(intervals []domain.Interval, opts ...Option) []domain.LayerDepth {
	return Normalize(intervals, opts...).Depths
}

func (c config) less(a, b domain.Interval) bool {
	if r, ok := compareNullable(a.FromDepth, b.FromDepth); ok {
		return r < 0
	}
	if c.tieBreak == TieByToDepth {
		if r, ok := compareNullable(a.ToDepth, b.ToDepth); ok {
			return r < 0
		}
	}
	return false
}

// compareNullable orders nil after every number. ok is false when a and b are equal.
func compareNullable(a, b *float64) (int, bool) {
	switch {
	case a == nil && b == nil:
		return 0, false
	case a == nil:
		return 1, true
	case b == nil:
		return -1, true
	case *a < *b:
		return -1, true
	case *a > *b:
		return 1, true
	}
	return 0, false
}
