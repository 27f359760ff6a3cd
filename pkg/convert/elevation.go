package convert

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/ports"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of parallel geometry requests of ToElevation.
const DefaultConcurrency = 4

// ElevationLayer is an interval with its bounds expressed in meters above sea level.
type ElevationLayer struct {
	Interval domain.Interval    `json:"interval"`
	Top      *domain.DepthValue `json:"top"`
	Bottom   *domain.DepthValue `json:"bottom"`
}

// ToElevation converts the measured-depth bounds of layers into MASL.
// Each distinct depth is requested once; at most limit requests run at a time
// (DefaultConcurrency when limit <= 0). The first failure cancels the rest.
func ToElevation(ctx context.Context, geometry ports.GeometryService, boreholeID string, layers []domain.Interval, limit int) ([]ElevationLayer, error) {
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	depths := make(map[float64]struct{})
	for _, l := range layers {
		for _, d := range []*float64{l.FromDepth, l.ToDepth} {
			if d != nil {
				depths[*d] = struct{}{}
			}
		}
	}

	var mu sync.Mutex
	converted := make(map[float64]domain.DepthValue, len(depths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for d := range depths {
		g.Go(func() error {
			v, err := geometry.ConvertDepth(gctx, boreholeID, d, domain.MeasuredDepth)
			if err != nil {
				return fmt.Errorf("%w: depth %v of borehole %s: %w", domain.ErrConversionFailed, d, boreholeID, err)
			}
			decimals := Decimals(strconv.FormatFloat(d, 'f', -1, 64))
			mu.Lock()
			converted[d] = domain.DepthValue{
				Value:     Round(v, decimals),
				Reference: domain.MetersAboveSeaLevel,
				Precision: decimals,
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	lookup := func(d *float64) *domain.DepthValue {
		if d == nil {
			return nil
		}
		v := converted[*d]
		return &v
	}

	out := make([]ElevationLayer, len(layers))
	for i, l := range layers {
		out[i] = ElevationLayer{Interval: l, Top: lookup(l.FromDepth), Bottom: lookup(l.ToDepth)}
	}
	return out, nil
}
