package column

import "github.com/aretw0/strata/pkg/domain"

// ExtractEnvelope reduces items to the smallest non-nil start and the largest non-nil end.
// A nil bound is skipped, never read as zero. Empty or all-nil input yields {nil, nil}.
// Min <= Max holds when every item has both bounds and from <= to. Inverted or
// half-open items can break it.
func ExtractEnvelope[T any](items []T, bounds func(T) (from, to *float64)) domain.Envelope {
	var env domain.Envelope
	for _, item := range items {
		from, to := bounds(item)
		if from != nil && (env.Min == nil || *from < *env.Min) {
			env.Min = domain.Float(*from)
		}
		if to != nil && (env.Max == nil || *to > *env.Max) {
			env.Max = domain.Float(*to)
		}
	}
	return env
}

// EnvelopeOf is ExtractEnvelope over intervals.
func EnvelopeOf(intervals []domain.Interval) domain.Envelope {
	return ExtractEnvelope(intervals, domain.Interval.Bounds)
}

// CasingIntervals reduces every casing to one interval spanning the envelope of its elements.
// Casings without any bounded element keep nil bounds.
func CasingIntervals(casings []domain.Casing) []domain.Interval {
	out := make([]domain.Interval, 0, len(casings))
	for _, c := range casings {
		env := EnvelopeOf(c.Elements)
		out = append(out, domain.Interval{
			ID:        c.ID,
			FromDepth: env.Min,
			ToDepth:   env.Max,
			Hints:     domain.RenderHints{Kind: "casing"},
			Payload:   c,
		})
	}
	return out
}
