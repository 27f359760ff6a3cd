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

// CoordinateResult reports the effect of one CoordinateReconciler.Edit.
type CoordinateResult struct {
	Outcome Outcome
	// Coordinate is the converted pair, set when Outcome is OutcomeApplied or OutcomeStale.
	Coordinate *domain.Coordinate
	// Precision is the number of decimals the converted pair is displayed with.
	Precision int
}

type coordinateFields map[domain.Axis]*field

// CoordinateReconciler keeps the LV95 and LV03 coordinate fields of a location in sync.
// Only the active reference system is edited; the other one is derived.
type CoordinateReconciler struct {
	transformer ports.CoordinateTransformer
	logger      *slog.Logger
	recorder    ports.Recorder

	mu     sync.Mutex
	active domain.ReferenceSystem
	fields map[domain.ReferenceSystem]coordinateFields
}

// NewCoordinateReconciler creates a reconciler editing the active system.
func NewCoordinateReconciler(transformer ports.CoordinateTransformer, active domain.ReferenceSystem, opts ...Option) (*CoordinateReconciler, error) {
	if _, err := domain.LookupReferenceSystem(active); err != nil {
		return nil, err
	}
	o := newOptions(opts)
	r := &CoordinateReconciler{
		transformer: transformer,
		logger:      o.logger,
		recorder:    o.recorder,
		active:      active,
		fields:      make(map[domain.ReferenceSystem]coordinateFields),
	}
	for _, rs := range domain.ReferenceSystems() {
		r.fields[rs] = coordinateFields{domain.Easting: {}, domain.Northing: {}}
	}
	return r, nil
}

// Active returns the reference system the user edits.
func (r *CoordinateReconciler) Active() domain.ReferenceSystem {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Value returns the current text of one coordinate field.
func (r *CoordinateReconciler) Value(rs domain.ReferenceSystem, axis domain.Axis) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.fields[rs][axis]; ok {
		return f.value
	}
	return ""
}

// Load sets the fields of rs from persisted values without converting.
func (r *CoordinateReconciler) Load(rs domain.ReferenceSystem, easting, northing string) error {
	if _, err := domain.LookupReferenceSystem(rs); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fields[rs][domain.Easting].set(easting)
	r.fields[rs][domain.Northing].set(northing)
	return nil
}

// SwitchReferenceSystem makes rs the edited system and resets every field to "".
// Conversions in flight are dropped.
func (r *CoordinateReconciler) SwitchReferenceSystem(rs domain.ReferenceSystem) error {
	if _, err := domain.LookupReferenceSystem(rs); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = rs
	for _, fs := range r.fields {
		for _, f := range fs {
			f.set("")
		}
	}
	return nil
}

// Edit records a user edit of one coordinate of the active system and, when both
// coordinates are numbers inside the bounding box of that system, converts the
// pair into the counterpart system.
//
// Out-of-range pairs are rejected before any call and no other field changes.
// The converted pair is displayed with as many decimals as the most precise input.
func (r *CoordinateReconciler) Edit(ctx context.Context, axis domain.Axis, input string) (CoordinateResult, error) {
	if axis != domain.Easting && axis != domain.Northing {
		return CoordinateResult{}, fmt.Errorf("unknown axis %q", axis)
	}
	start := time.Now()

	r.mu.Lock()
	from := r.active
	sys, err := domain.LookupReferenceSystem(from)
	if err != nil {
		r.mu.Unlock()
		return CoordinateResult{}, err
	}
	src, dst := r.fields[from], r.fields[sys.Counterpart]
	src[axis].set(input)

	easting, eDecimals, errE := ParseNumber(src[domain.Easting].value)
	northing, nDecimals, errN := ParseNumber(src[domain.Northing].value)
	if errE != nil || errN != nil {
		r.mu.Unlock()
		r.recorder.ObserveConversion("coordinate", string(OutcomeIncomplete), time.Since(start))
		return CoordinateResult{Outcome: OutcomeIncomplete}, nil
	}

	c := domain.Coordinate{Easting: easting, Northing: northing}
	if !sys.Contains(c) {
		r.mu.Unlock()
		r.logger.Debug("Coordinate out of bounds, not converted", "system", from, "easting", easting, "northing", northing)
		r.recorder.ObserveConversion("coordinate", string(OutcomeRejected), time.Since(start))
		return CoordinateResult{Outcome: OutcomeRejected}, nil
	}
	gens := snapshot(src, dst)
	r.mu.Unlock()

	precision := max(eDecimals, nDecimals)

	converted, err := r.transformer.Transform(ctx, from, c)
	if err != nil {
		r.logger.Warn("Coordinate transformation failed", "system", from, "error", err)
		r.recorder.ObserveConversion("coordinate", string(OutcomeFailed), time.Since(start))
		return CoordinateResult{Outcome: OutcomeFailed}, fmt.Errorf("%w: %s to %s: %w", domain.ErrConversionFailed, from, sys.Counterpart, err)
	}
	converted.Easting = Round(converted.Easting, precision)
	converted.Northing = Round(converted.Northing, precision)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active != from || snapshot(src, dst) != gens {
		r.logger.Debug("Coordinate conversion superseded, result dropped", "system", from)
		r.recorder.ObserveConversion("coordinate", string(OutcomeStale), time.Since(start))
		return CoordinateResult{Outcome: OutcomeStale, Coordinate: &converted, Precision: precision}, nil
	}
	dst[domain.Easting].set(Format(converted.Easting, precision))
	dst[domain.Northing].set(Format(converted.Northing, precision))
	r.recorder.ObserveConversion("coordinate", string(OutcomeApplied), time.Since(start))
	return CoordinateResult{Outcome: OutcomeApplied, Coordinate: &converted, Precision: precision}, nil
}

func snapshot(src, dst coordinateFields) [4]uint64 {
	return [4]uint64{
		src[domain.Easting].gen, src[domain.Northing].gen,
		dst[domain.Easting].gen, dst[domain.Northing].gen,
	}
}
