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

func iv(id string, from, to float64) domain.Interval {
	return domain.Interval{ID: id, ParentID: "b1", FromDepth: domain.Float(from), ToDepth: domain.Float(to)}
}

func ids(intervals []domain.Interval) []string {
	out := make([]string, len(intervals))
	for i, l := range intervals {
		out[i] = l.ID
	}
	return out
}

func TestNormalize_FlagsAdjacentOverlap(t *testing.T) {
	n := column.Normalize([]domain.Interval{iv("a", 0, 50), iv("b", 40, 80)})

	require.Len(t, n.Depths, 2)
	assert.False(t, n.Depths[0].HasFromDepthError)
	assert.True(t, n.Depths[0].HasToDepthError, "50 > 40")
	assert.True(t, n.Depths[1].HasFromDepthError, "40 < 50")
	assert.False(t, n.Depths[1].HasToDepthError)
}

func TestNormalize_SortsAndKeepsContiguousClean(t *testing.T) {
	n := column.Normalize([]domain.Interval{iv("c", 20, 30), iv("a", 0, 10), iv("b", 10, 20)})

	assert.Equal(t, []string{"a", "b", "c"}, ids(n.Intervals))
	for _, d := range n.Depths {
		assert.False(t, d.HasError(), d.SourceID)
	}
}

func TestNormalize_DoesNotDetectNonAdjacentOverlap(t *testing.T) {
	// a swallows c, but only neighbours are compared.
	n := column.Normalize([]domain.Interval{iv("a", 0, 100), iv("b", 10, 20), iv("c", 30, 40)})

	assert.True(t, n.Depths[0].HasToDepthError)
	assert.True(t, n.Depths[1].HasFromDepthError)
	assert.False(t, n.Depths[2].HasFromDepthError)
}

func TestNormalize_InvertedIntervalIsFlagged(t *testing.T) {
	n := column.Normalize([]domain.Interval{iv("a", 30, 10)})
	assert.True(t, n.Depths[0].IsInverted)
}

func TestNormalize_NullStartSortsLast(t *testing.T) {
	open := domain.Interval{ID: "open", ToDepth: domain.Float(5)}
	n := column.Normalize([]domain.Interval{open, iv("a", 0, 10)})

	assert.Equal(t, []string{"a", "open"}, ids(n.Intervals))
	assert.False(t, n.Depths[1].HasFromDepthError, "nil bounds never compare")
	assert.True(t, n.Depths[1].HasOpenBound)
	assert.False(t, n.Depths[0].HasOpenBound)
}

func TestNormalize_TieBreak(t *testing.T) {
	input := []domain.Interval{iv("long", 0, 20), iv("short", 0, 5)}

	stable := column.Normalize(input)
	assert.Equal(t, []string{"long", "short"}, ids(stable.Intervals))

	byTo := column.Normalize(input, column.WithTieBreak(column.TieByToDepth))
	assert.Equal(t, []string{"short", "long"}, ids(byTo.Intervals))
}

func TestNormalize_DropsGapsAndKeepsInput(t *testing.T) {
	input := []domain.Interval{iv("b", 10, 20), domain.NewGap("b1", 0, 10, domain.RenderHints{}), iv("a", 0, 10)}
	before := append([]domain.Interval(nil), input...)

	n := column.Normalize(input)

	assert.Equal(t, []string{"a", "b"}, ids(n.Intervals))
	if diff := cmp.Diff(before, input); diff != "" {
		t.Errorf("input mutated (-want +got):\n%s", diff)
	}
}

func TestNormalize_Tolerance(t *testing.T) {
	input := []domain.Interval{iv("a", 0, 10.0000001), iv("b", 10, 20)}

	strict := column.Normalize(input)
	assert.True(t, strict.Depths[1].HasFromDepthError)

	tolerant := column.Normalize(input, column.WithTolerance(1e-6))
	assert.False(t, tolerant.Depths[1].HasFromDepthError)
}

func TestNormalize_OutputIsNonDecreasing(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 200; round++ {
		var input []domain.Interval
		for i := 0; i < rng.Intn(12); i++ {
			from := float64(rng.Intn(100))
			input = append(input, iv("x", from, from+float64(rng.Intn(30))-5))
		}

		n := column.Normalize(input)
		for i := 1; i < len(n.Intervals); i++ {
			require.LessOrEqual(t, *n.Intervals[i-1].FromDepth, *n.Intervals[i].FromDepth)
		}
	}
}
