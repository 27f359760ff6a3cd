package column

import (
	"fmt"

	"github.com/aretw0/strata/pkg/domain"
)

// InheritancePolicy selects the neighbour a synthesized gap copies its RenderHints from.
type InheritancePolicy int

const (
	// InheritPreceding copies the nearest preceding real interval,
	// falling back to the following one at the start of the column.
	InheritPreceding InheritancePolicy = iota
	// InheritFollowing copies the nearest following real interval,
	// falling back to the preceding one at the end of the column.
	InheritFollowing
	// InheritNone leaves gap hints empty.
	InheritNone
)

var inheritanceNames = map[string]InheritancePolicy{
	"preceding": InheritPreceding,
	"following": InheritFollowing,
	"none":      InheritNone,
}

// ParseInheritance reads a policy name ("preceding", "following", "none").
func ParseInheritance(s string) (InheritancePolicy, error) {
	if s == "" {
		return InheritPreceding, nil
	}
	p, ok := inheritanceNames[s]
	if !ok {
		return 0, fmt.Errorf("unknown inheritance policy %q", s)
	}
	return p, nil
}

// TieBreak orders intervals sharing the same start depth.
type TieBreak int

const (
	// TieByInputOrder keeps the original input order (stable sort).
	TieByInputOrder TieBreak = iota
	// TieByToDepth puts the interval ending first before the others.
	TieByToDepth
)

// ParseTieBreak reads a tie-break name ("input", "to_depth").
func ParseTieBreak(s string) (TieBreak, error) {
	switch s {
	case "", "input":
		return TieByInputOrder, nil
	case "to_depth":
		return TieByToDepth, nil
	}
	return 0, fmt.Errorf("unknown tie-break %q", s)
}

type config struct {
	rng         domain.DepthRange
	parentID    string
	inheritance InheritancePolicy
	tieBreak    TieBreak
	tolerance   float64
}

// Option configures Normalize, SynthesizeGaps and Complete.
type Option func(*config)

// WithRange sets the reference range [start, end] the column must cover.
func WithRange(start, end float64) Option {
	return func(c *config) {
		c.rng = domain.NewDepthRange(start, end)
	}
}

// WithDepthRange sets a reference range whose bounds may be absent.
// A missing start skips the leading gap, a missing end the trailing one.
func WithDepthRange(r domain.DepthRange) Option {
	return func(c *config) {
		c.rng = r
	}
}

// WithParent sets the parent ID of synthesized gaps when the column has no real interval to copy it from.
func WithParent(id string) Option {
	return func(c *config) {
		c.parentID = id
	}
}

// WithInheritance sets the hint inheritance policy of gaps.
func WithInheritance(p InheritancePolicy) Option {
	return func(c *config) {
		c.inheritance = p
	}
}

// WithTieBreak sets the ordering of intervals sharing a start depth.
func WithTieBreak(t TieBreak) Option {
	return func(c *config) {
		c.tieBreak = t
	}
}

// WithTolerance treats depths closer than eps as equal when flagging overlaps and inserting gaps.
func WithTolerance(eps float64) Option {
	return func(c *config) {
		if eps > 0 {
			c.tolerance = eps
		}
	}
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// before reports a < b beyond the configured tolerance.
func (c config) before(a, b float64) bool {
	return a < b-c.tolerance
}

// beforePtr is before with nil operands never comparing.
func (c config) beforePtr(a, b *float64) bool {
	if a == nil || b == nil {
		return false
	}
	return c.before(*a, *b)
}
