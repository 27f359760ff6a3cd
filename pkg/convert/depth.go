package convert

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/ports"
)

// DepthResult reports the effect of one DepthConverter.Edit.
type DepthResult struct {
	Outcome Outcome
	// Value is the converted value, set when Outcome is OutcomeApplied or OutcomeStale.
	Value *domain.DepthValue
}

// DepthConverter keeps the measured-depth and elevation fields of one borehole in sync.
type DepthConverter struct {
	boreholeID string
	geometry   ports.GeometryService
	logger     *slog.Logger
	recorder   ports.Recorder

	mu     sync.Mutex
	fields map[domain.VerticalReference]*field
}

// NewDepthConverter creates a converter for the given borehole.
func NewDepthConverter(boreholeID string, geometry ports.GeometryService, opts ...Option) *DepthConverter {
	o := newOptions(opts)
	return &DepthConverter{
		boreholeID: boreholeID,
		geometry:   geometry,
		logger:     o.logger.With("borehole_id", boreholeID),
		recorder:   o.recorder,
		fields: map[domain.VerticalReference]*field{
			domain.MeasuredDepth:       {},
			domain.MetersAboveSeaLevel: {},
		},
	}
}

// Value returns the current text of the field for ref.
func (c *DepthConverter) Value(ref domain.VerticalReference) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.fields[ref]; ok {
		return f.value
	}
	return ""
}

// Load sets both fields from persisted values without converting.
// Conversions in flight when Load is called are dropped.
func (c *DepthConverter) Load(md, masl string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fields[domain.MeasuredDepth].set(md)
	c.fields[domain.MetersAboveSeaLevel].set(masl)
}

// Edit records a user edit of the field for ref and converts it into the other field.
//
// Unparsable input clears the other field. A service failure leaves it untouched
// and returns an error wrapping domain.ErrConversionFailed; nothing is retried.
// If either field was written while the service call was in flight the result
// is dropped (OutcomeStale).
func (c *DepthConverter) Edit(ctx context.Context, ref domain.VerticalReference, input string) (DepthResult, error) {
	if err := ref.Validate(); err != nil {
		return DepthResult{}, err
	}
	start := time.Now()

	c.mu.Lock()
	src, dst := c.fields[ref], c.fields[ref.Other()]
	src.set(input)
	value, decimals, err := ParseNumber(input)
	if err != nil {
		dst.set("")
		c.mu.Unlock()
		c.logger.Debug("Depth not computable, target cleared", "reference", ref, "input", input)
		c.recorder.ObserveConversion("depth", string(OutcomeCleared), time.Since(start))
		return DepthResult{Outcome: OutcomeCleared}, nil
	}
	srcGen, dstGen := src.gen, dst.gen
	c.mu.Unlock()

	converted, err := c.geometry.ConvertDepth(ctx, c.boreholeID, value, ref)
	if err != nil {
		c.logger.Warn("Depth conversion failed", "reference", ref, "value", value, "error", err)
		c.recorder.ObserveConversion("depth", string(OutcomeFailed), time.Since(start))
		return DepthResult{Outcome: OutcomeFailed}, fmt.Errorf("%w: %s %v of borehole %s: %w", domain.ErrConversionFailed, ref, value, c.boreholeID, err)
	}

	result := &domain.DepthValue{
		Value:     Round(converted, decimals),
		Reference: ref.Other(),
		Precision: decimals,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if src.gen != srcGen || dst.gen != dstGen {
		c.logger.Debug("Depth conversion superseded, result dropped", "reference", ref, "value", value)
		c.recorder.ObserveConversion("depth", string(OutcomeStale), time.Since(start))
		return DepthResult{Outcome: OutcomeStale, Value: result}, nil
	}
	dst.set(result.String())
	c.recorder.ObserveConversion("depth", string(OutcomeApplied), time.Since(start))
	return DepthResult{Outcome: OutcomeApplied, Value: result}, nil
}

// ConvertDepth converts a single typed value without any field bookkeeping.
// The result is rounded to the precision of input.
func ConvertDepth(ctx context.Context, geometry ports.GeometryService, boreholeID string, from domain.VerticalReference, input string) (domain.DepthValue, error) {
	if err := from.Validate(); err != nil {
		return domain.DepthValue{}, err
	}
	value, decimals, err := ParseNumber(input)
	if err != nil {
		return domain.DepthValue{}, err
	}
	converted, err := geometry.ConvertDepth(ctx, boreholeID, value, from)
	if err != nil {
		return domain.DepthValue{}, fmt.Errorf("%w: %w", domain.ErrConversionFailed, err)
	}
	return domain.DepthValue{
		Value:     Round(converted, decimals),
		Reference: from.Other(),
		Precision: decimals,
	}, nil
}
