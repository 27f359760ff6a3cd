package convert_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/strata/pkg/convert"
	"github.com/aretw0/strata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepthConverter_Applies(t *testing.T) {
	c := convert.NewDepthConverter("b1", &linearGeometry{})

	res, err := c.Edit(context.Background(), domain.MeasuredDepth, "12.50")
	require.NoError(t, err)

	assert.Equal(t, convert.OutcomeApplied, res.Outcome)
	require.NotNil(t, res.Value)
	assert.Equal(t, domain.MetersAboveSeaLevel, res.Value.Reference)
	assert.Equal(t, 2, res.Value.Precision)
	assert.Equal(t, "12.50", c.Value(domain.MeasuredDepth))
	assert.Equal(t, "487.50", c.Value(domain.MetersAboveSeaLevel))
}

func TestDepthConverter_RoundTrip(t *testing.T) {
	ctx := context.Background()
	geo := &linearGeometry{}

	for _, input := range []string{"0", "12.5", "133.75", "1.333"} {
		there, err := convert.ConvertDepth(ctx, geo, "b1", domain.MeasuredDepth, input)
		require.NoError(t, err)
		back, err := convert.ConvertDepth(ctx, geo, "b1", domain.MetersAboveSeaLevel, there.String())
		require.NoError(t, err)

		original, decimals, err := convert.ParseNumber(input)
		require.NoError(t, err)
		assert.Equal(t, domain.MeasuredDepth, back.Reference)
		assert.InDelta(t, original, back.Value, 0.5/pow10(decimals), "input %s", input)
	}
}

func pow10(n int) float64 {
	p := 1.0
	for i := 0; i < n; i++ {
		p *= 10
	}
	return p
}

func TestDepthConverter_UnparsableClearsTarget(t *testing.T) {
	c := convert.NewDepthConverter("b1", &linearGeometry{})
	c.Load("10", "490")

	res, err := c.Edit(context.Background(), domain.MeasuredDepth, "ten")
	require.NoError(t, err)

	assert.Equal(t, convert.OutcomeCleared, res.Outcome)
	assert.Equal(t, "ten", c.Value(domain.MeasuredDepth))
	assert.Equal(t, "", c.Value(domain.MetersAboveSeaLevel))
}

func TestDepthConverter_FailureLeavesTarget(t *testing.T) {
	c := convert.NewDepthConverter("b1", failingGeometry{})
	c.Load("10", "490")

	res, err := c.Edit(context.Background(), domain.MeasuredDepth, "11")

	assert.ErrorIs(t, err, domain.ErrConversionFailed)
	assert.ErrorIs(t, err, errServiceDown)
	assert.Equal(t, convert.OutcomeFailed, res.Outcome)
	assert.Equal(t, "490", c.Value(domain.MetersAboveSeaLevel))
}

func TestDepthConverter_UnknownReference(t *testing.T) {
	c := convert.NewDepthConverter("b1", &linearGeometry{})
	_, err := c.Edit(context.Background(), domain.VerticalReference("tvd"), "1")
	assert.ErrorIs(t, err, domain.ErrUnknownVerticalReference)
}

func TestDepthConverter_OutOfOrderResponses(t *testing.T) {
	ctx := context.Background()
	geo := newGatedGeometry()
	c := convert.NewDepthConverter("b1", geo)

	var wg sync.WaitGroup
	defer wg.Wait()

	first := async(&wg, func() convert.DepthResult {
		res, _ := c.Edit(ctx, domain.MeasuredDepth, "10")
		return res
	})
	call1 := <-geo.calls

	second := async(&wg, func() convert.DepthResult {
		res, _ := c.Edit(ctx, domain.MeasuredDepth, "20")
		return res
	})
	call2 := <-geo.calls

	// The newer request answers first.
	call2.reply <- headElevation - call2.value
	assert.Equal(t, convert.OutcomeApplied, (<-second).Outcome)
	assert.Equal(t, "480", c.Value(domain.MetersAboveSeaLevel))

	// The older one arrives late and must not overwrite.
	call1.reply <- headElevation - call1.value
	assert.Equal(t, convert.OutcomeStale, (<-first).Outcome)
	assert.Equal(t, "480", c.Value(domain.MetersAboveSeaLevel))
	assert.Equal(t, "20", c.Value(domain.MeasuredDepth))
}

func TestDepthConverter_SupersededByEditWhileInFlight(t *testing.T) {
	ctx := context.Background()
	geo := newGatedGeometry()
	c := convert.NewDepthConverter("b1", geo)

	var wg sync.WaitGroup
	defer wg.Wait()

	pending := async(&wg, func() convert.DepthResult {
		res, _ := c.Edit(ctx, domain.MeasuredDepth, "10")
		return res
	})
	call := <-geo.calls

	// The source becomes unparsable while the request is in flight.
	res, err := c.Edit(ctx, domain.MeasuredDepth, "")
	require.NoError(t, err)
	assert.Equal(t, convert.OutcomeCleared, res.Outcome)

	call.reply <- 490
	assert.Equal(t, convert.OutcomeStale, (<-pending).Outcome)
	assert.Equal(t, "", c.Value(domain.MetersAboveSeaLevel))
}

func TestDepthConverter_TargetEditedWhileInFlight(t *testing.T) {
	ctx := context.Background()
	geo := newGatedGeometry()
	c := convert.NewDepthConverter("b1", geo)

	var wg sync.WaitGroup
	defer wg.Wait()

	pending := async(&wg, func() convert.DepthResult {
		res, _ := c.Edit(ctx, domain.MeasuredDepth, "10")
		return res
	})
	call := <-geo.calls

	c.Load("10", "123")

	call.reply <- 490
	assert.Equal(t, convert.OutcomeStale, (<-pending).Outcome)
	assert.Equal(t, "123", c.Value(domain.MetersAboveSeaLevel))
}
