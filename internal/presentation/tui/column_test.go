package tui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/strata/pkg/column"
	"github.com/aretw0/strata/pkg/convert"
	"github.com/aretw0/strata/pkg/domain"
)

func TestColumnMarkdown(t *testing.T) {
	col := column.Complete([]domain.Interval{
		{ID: "a", FromDepth: domain.Float(0), ToDepth: domain.Float(12), Hints: domain.RenderHints{Kind: "lithology"}},
		{ID: "b", FromDepth: domain.Float(10), ToDepth: domain.Float(20), Hints: domain.RenderHints{Kind: "lithology", Unconsolidated: true}},
	}, column.WithRange(0, 25))

	md := ColumnMarkdown("Lithology", &col)

	assert.Contains(t, md, "## Lithology")
	assert.Contains(t, md, "| 1 | a | 0 | 12 ! | lithology |")
	assert.Contains(t, md, "| 2 | b | 10 ! | 20 | lithology (unconsolidated) |")
	assert.Contains(t, md, "| 3 | gap:20-25 | 20 | 25 | _gap_ (unconsolidated) |")
	assert.Contains(t, md, "Envelope: 0 to 20 m (overlapping bounds flagged with !)")
}

func TestColumnMarkdown_Empty(t *testing.T) {
	col := column.Complete(nil)
	assert.Contains(t, ColumnMarkdown("Backfill", &col), "No layers recorded.")
}

func TestElevationMarkdown(t *testing.T) {
	md := ElevationMarkdown("Elevation", []convert.ElevationLayer{
		{
			Interval: domain.Interval{ID: "a"},
			Top:      &domain.DepthValue{Value: 500, Reference: domain.MetersAboveSeaLevel, Precision: 1},
		},
	})
	assert.Contains(t, md, "| a | 500.0 | ? |")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "v1.2.3")
	assert.Contains(t, buf.String(), "v1.2.3")
}
