package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/strata/pkg/column"
	"github.com/aretw0/strata/pkg/convert"
	"github.com/aretw0/strata/pkg/domain"
)

// ColumnMarkdown formats a completed column as a markdown table.
// Flagged bounds are suffixed with "!".
func ColumnMarkdown(title string, col *column.Column) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", title)
	b.WriteString("| # | ID | From (m) | To (m) | Kind |\n")
	b.WriteString("|---|----|---------:|-------:|------|\n")

	depths := col.Depths
	for i, l := range col.Layers {
		from, to := bound(l.FromDepth), bound(l.ToDepth)
		kind := l.Hints.Kind
		if l.IsGap {
			kind = "_gap_"
		} else if len(depths) > 0 {
			d := depths[0]
			depths = depths[1:]
			if d.HasFromDepthError || d.IsInverted || d.FromDepth == nil {
				from += " !"
			}
			if d.HasToDepthError || d.IsInverted || d.ToDepth == nil {
				to += " !"
			}
		}
		if l.Hints.Unconsolidated {
			kind += " (unconsolidated)"
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n", i+1, l.ID, from, to, kind)
	}

	if col.Envelope.IsEmpty() {
		b.WriteString("\nNo layers recorded.\n")
	} else {
		fmt.Fprintf(&b, "\nEnvelope: %s to %s m", bound(col.Envelope.Min), bound(col.Envelope.Max))
		if col.HasOverlaps() {
			b.WriteString(" (overlapping bounds flagged with !)")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// ElevationMarkdown formats an elevation column as a markdown table.
func ElevationMarkdown(title string, layers []convert.ElevationLayer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", title)
	b.WriteString("| ID | Top (m a.s.l.) | Bottom (m a.s.l.) |\n")
	b.WriteString("|----|---------------:|------------------:|\n")
	for _, l := range layers {
		id := l.Interval.ID
		if l.Interval.IsGap {
			id = "_gap_"
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", id, depthValue(l.Top), depthValue(l.Bottom))
	}
	return b.String()
}

func bound(v *float64) string {
	if v == nil {
		return "?"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func depthValue(v *domain.DepthValue) string {
	if v == nil {
		return "?"
	}
	return v.String()
}
