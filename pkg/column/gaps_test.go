package column_test

import (
	"math/rand"
	"testing"

	"github.com/aretw0/strata/pkg/column"
	"github.com/aretw0/strata/pkg/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type span struct {
	From, To float64
	Gap      bool
}

func spans(t *testing.T, layers []domain.Interval) []span {
	t.Helper()
	out := make([]span, len(layers))
	for i, l := range layers {
		from, to, ok := l.Span()
		require.True(t, ok, "layer %s has an open bound", l.ID)
		out[i] = span{From: from, To: to, Gap: l.IsGap}
	}
	return out
}

func TestSynthesizeGaps_LeadingAndInnerGaps(t *testing.T) {
	layers := column.SynthesizeGaps([]domain.Interval{iv("a", 20, 50), iv("b", 60, 100)}, column.WithRange(0, 100))

	want := []span{
		{0, 20, true},
		{20, 50, false},
		{50, 60, true},
		{60, 100, false},
	}
	if diff := cmp.Diff(want, spans(t, layers)); diff != "" {
		t.Errorf("unexpected column (-want +got):\n%s", diff)
	}
}

func TestSynthesizeGaps_EmptyWithRange(t *testing.T) {
	layers := column.SynthesizeGaps(nil, column.WithRange(10, 30), column.WithParent("b1"))

	require.Len(t, layers, 1)
	assert.True(t, layers[0].IsGap)
	assert.Equal(t, "b1", layers[0].ParentID)
	assert.Equal(t, []span{{10, 30, true}}, spans(t, layers))
}

func TestSynthesizeGaps_EmptyWithoutRange(t *testing.T) {
	layers := column.SynthesizeGaps(nil)
	assert.NotNil(t, layers)
	assert.Empty(t, layers)
}

func TestSynthesizeGaps_TouchingIntervalsAreContiguous(t *testing.T) {
	layers := column.SynthesizeGaps([]domain.Interval{iv("a", 0, 10), iv("b", 10, 20)})
	assert.Len(t, layers, 2)
	assert.Empty(t, column.Column{Layers: layers}.Gaps())
}

func TestSynthesizeGaps_TrailingGap(t *testing.T) {
	layers := column.SynthesizeGaps([]domain.Interval{iv("a", 0, 10)}, column.WithRange(0, 25))
	assert.Equal(t, []span{{0, 10, false}, {10, 25, true}}, spans(t, layers))
}

func TestSynthesizeGaps_PartialRange(t *testing.T) {
	end := domain.DepthRange{End: domain.Float(40)}
	layers := column.SynthesizeGaps([]domain.Interval{iv("a", 5, 10)}, column.WithDepthRange(end))
	assert.Equal(t, []span{{5, 10, false}, {10, 40, true}}, spans(t, layers))
}

func TestSynthesizeGaps_GapMetadata(t *testing.T) {
	layers := column.SynthesizeGaps([]domain.Interval{iv("a", 20, 50)}, column.WithRange(0, 50))

	gap := layers[0]
	assert.True(t, gap.IsGap)
	assert.Nil(t, gap.Payload)
	assert.Equal(t, "b1", gap.ParentID)
	assert.Equal(t, "gap:0-20", gap.ID)
}

func TestSynthesizeGaps_Inheritance(t *testing.T) {
	loose := iv("loose", 10, 20)
	loose.Hints = domain.RenderHints{Unconsolidated: true}
	rock := iv("rock", 30, 40)
	rock.Hints = domain.RenderHints{Kind: "rock"}
	input := []domain.Interval{loose, rock}

	tests := []struct {
		name    string
		policy  column.InheritancePolicy
		leading domain.RenderHints
		inner   domain.RenderHints
		tail    domain.RenderHints
	}{
		{"preceding", column.InheritPreceding, loose.Hints, loose.Hints, rock.Hints},
		{"following", column.InheritFollowing, loose.Hints, rock.Hints, rock.Hints},
		{"none", column.InheritNone, domain.RenderHints{}, domain.RenderHints{}, domain.RenderHints{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layers := column.SynthesizeGaps(input, column.WithRange(0, 50), column.WithInheritance(tt.policy))
			require.Len(t, layers, 5)
			assert.Equal(t, tt.leading, layers[0].Hints, "leading gap")
			assert.Equal(t, tt.inner, layers[2].Hints, "inner gap")
			assert.Equal(t, tt.tail, layers[4].Hints, "trailing gap")
		})
	}
}

func TestSynthesizeGaps_NullBoundsNeverGap(t *testing.T) {
	open := domain.Interval{ID: "open", FromDepth: domain.Float(10)}
	layers := column.SynthesizeGaps([]domain.Interval{iv("a", 0, 5), open}, column.WithRange(0, 50))

	// a..open gets a gap, open has no end so no trailing gap.
	require.Len(t, layers, 3)
	assert.True(t, layers[1].IsGap)
	assert.Equal(t, "open", layers[2].ID)
}

func TestComplete_TilesRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 300; round++ {
		// Random non-overlapping intervals inside [0, 500].
		var input []domain.Interval
		depth := float64(rng.Intn(20))
		for depth < 480 && rng.Intn(10) > 0 {
			length := float64(1 + rng.Intn(40))
			if depth+length > 500 {
				break
			}
			input = append(input, iv("x", depth, depth+length))
			depth += length + float64(rng.Intn(3)*rng.Intn(15))
		}
		rng.Shuffle(len(input), func(i, j int) { input[i], input[j] = input[j], input[i] })

		col := column.Complete(input, column.WithRange(0, 500))

		require.NoError(t, column.CheckCoverage(col.Layers, domain.NewDepthRange(0, 500)), "round %d", round)
		assert.Len(t, col.Layers, len(input)+len(col.Gaps()))
		assert.False(t, col.HasOverlaps())
	}
}

func TestCheckCoverage_ReportsHoles(t *testing.T) {
	layers := []domain.Interval{iv("a", 0, 10), iv("b", 12, 20)}
	err := column.CheckCoverage(layers, domain.NewDepthRange(0, 20))
	assert.ErrorIs(t, err, domain.ErrIncompleteCoverage)

	err = column.CheckCoverage(layers[:1], domain.NewDepthRange(0, 20))
	assert.ErrorIs(t, err, domain.ErrIncompleteCoverage)

	assert.ErrorIs(t, column.CheckCoverage(nil, domain.NewDepthRange(0, 1)), domain.ErrIncompleteCoverage)
	assert.NoError(t, column.CheckCoverage(nil, domain.DepthRange{}))
}

func TestComplete_IsIdempotent(t *testing.T) {
	first := column.Complete([]domain.Interval{iv("a", 20, 50), iv("b", 60, 100)}, column.WithRange(0, 100))
	second := column.Complete(first.Layers, column.WithRange(0, 100))

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("recomputation differs (-first +second):\n%s", diff)
	}
}

func TestComplete_OpenStartFollowsColumn(t *testing.T) {
	unknown := domain.Interval{ID: "x"}
	col := column.Complete([]domain.Interval{iv("a", 0, 10), unknown, iv("b", 20, 30)}, column.WithRange(0, 100))

	want := []string{"a", "gap:10-20", "b", "gap:30-100", "x"}
	assert.Equal(t, want, ids(col.Layers))

	require.Len(t, col.Depths, 3)
	assert.Equal(t, "x", col.Depths[2].SourceID)
	assert.True(t, col.Depths[2].HasOpenBound)
	assert.True(t, col.HasOverlaps())

	// The placed layers tile the range.
	require.NoError(t, column.CheckCoverage(col.Layers[:4], domain.NewDepthRange(0, 100)))
}

func TestComplete_OnlyOpenStarts(t *testing.T) {
	col := column.Complete([]domain.Interval{{ID: "x", ToDepth: domain.Float(5)}}, column.WithRange(0, 50))
	assert.Equal(t, []string{"gap:0-50", "x"}, ids(col.Layers))
}

func TestSynthesizeGaps_EmptyRangeHasNothingToCover(t *testing.T) {
	assert.Empty(t, column.SynthesizeGaps(nil, column.WithRange(10, 10)))
	assert.Empty(t, column.SynthesizeGaps(nil, column.WithRange(30, 10)))
}
