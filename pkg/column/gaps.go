package column

import "github.com/aretw0/strata/pkg/domain"

// SynthesizeGaps inserts gap pseudo-intervals into a normalized, sorted list so that
// it covers the reference range without holes.
//
// Without a range the covered extent is the span of the first and last interval.
// Touching intervals (to == next from) are contiguous and get no gap between them.
// Comparisons involving a nil bound never produce a gap. Intervals with a nil start
// depth cannot be placed: they follow the completed column, after the trailing gap.
//
// An empty list yields a single gap only for a bounded range of positive width;
// a zero-width or inverted range has nothing to cover and yields an empty list.
func SynthesizeGaps(sorted []domain.Interval, opts ...Option) []domain.Interval {
	cfg := newConfig(opts)
	start, end := cfg.rng.Start, cfg.rng.End

	placed, unplaced := splitUnplaced(sorted)

	parentID := cfg.parentID
	if len(sorted) > 0 && sorted[0].ParentID != "" {
		parentID = sorted[0].ParentID
	}

	if len(placed) == 0 {
		out := make([]domain.Interval, 0, len(unplaced)+1)
		if cfg.rng.Bounded() && cfg.before(*start, *end) {
			out = append(out, domain.NewGap(parentID, *start, *end, cfg.hints(nil, nil)))
		}
		return append(out, unplaced...)
	}

	n := len(placed)
	out := make([]domain.Interval, 0, 2*n+1+len(unplaced))

	first := placed[0]
	if cfg.beforePtr(start, first.FromDepth) {
		out = append(out, domain.NewGap(parentID, *start, *first.FromDepth, cfg.hints(nil, &first)))
	}

	for i := range placed {
		cur := placed[i]
		out = append(out, cur)
		if i == n-1 {
			break
		}
		next := placed[i+1]
		if cfg.beforePtr(cur.ToDepth, next.FromDepth) {
			out = append(out, domain.NewGap(parentID, *cur.ToDepth, *next.FromDepth, cfg.hints(&cur, &next)))
		}
	}

	last := placed[n-1]
	if cfg.beforePtr(last.ToDepth, end) {
		out = append(out, domain.NewGap(parentID, *last.ToDepth, *end, cfg.hints(&last, nil)))
	}

	return append(out, unplaced...)
}

// splitUnplaced separates the trailing run of intervals without a start depth.
// Normalize sorts them after every bounded interval.
func splitUnplaced(sorted []domain.Interval) (placed, unplaced []domain.Interval) {
	i := len(sorted)
	for i > 0 && sorted[i-1].FromDepth == nil {
		i--
	}
	return sorted[:i], sorted[i:]
}

// hints picks the RenderHints of a gap between prev and next (either may be nil).
func (c config) hints(prev, next *domain.Interval) domain.RenderHints {
	var src *domain.Interval
	switch c.inheritance {
	case InheritPreceding:
		src = firstNonNil(prev, next)
	case InheritFollowing:
		src = firstNonNil(next, prev)
	default:
		return domain.RenderHints{}
	}
	if src == nil {
		return domain.RenderHints{}
	}
	return src.Hints
}

func firstNonNil(a, b *domain.Interval) *domain.Interval {
	if a != nil {
		return a
	}
	return b
}
