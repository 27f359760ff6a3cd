package strata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	loamAdapter "github.com/aretw0/strata/pkg/adapters/loam"
	"github.com/aretw0/strata/pkg/column"
	"github.com/aretw0/strata/pkg/convert"
	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/ports"
)

// ErrNotConfigured is returned when an operation needs a service the engine was built without.
var ErrNotConfigured = errors.New("service not configured")

// Engine is the high-level entry point for the Strata library.
// It reads boreholes from a source and hands out completed columns and converters.
type Engine struct {
	source      ports.BoreholeSource
	geometry    ports.GeometryService
	transformer ports.CoordinateTransformer
	cache       ports.DepthCache
	recorder    ports.Recorder
	logger      *slog.Logger
	columnOpts  []column.Option
	concurrency int
	Name        string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithSource injects a custom BoreholeSource, bypassing the default Loam initialization.
func WithSource(s ports.BoreholeSource) Option {
	return func(e *Engine) {
		e.source = s
	}
}

// WithGeometry sets the service used for depth conversions.
func WithGeometry(g ports.GeometryService) Option {
	return func(e *Engine) {
		e.geometry = g
	}
}

// WithTransformer sets the service used for coordinate conversions.
func WithTransformer(t ports.CoordinateTransformer) Option {
	return func(e *Engine) {
		e.transformer = t
	}
}

// WithCache puts a depth cache in front of the geometry service.
func WithCache(c ports.DepthCache) Option {
	return func(e *Engine) {
		e.cache = c
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r ports.Recorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithColumnOptions sets options applied to every column built by the engine
// (inheritance policy, tie-break, tolerance).
func WithColumnOptions(opts ...column.Option) Option {
	return func(e *Engine) {
		e.columnOpts = append(e.columnOpts, opts...)
	}
}

// WithConcurrency bounds the number of parallel geometry calls of ElevationColumn.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		e.concurrency = n
	}
}

// New initializes a new Strata Engine.
// By default, it reads a Loam dataset at the given path.
// If WithSource is provided, datasetPath can be empty and Loam is skipped.
func New(datasetPath string, opts ...Option) (*Engine, error) {
	eng := &Engine{concurrency: convert.DefaultConcurrency}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.source == nil {
		if datasetPath == "" {
			return nil, fmt.Errorf("datasetPath is required when no custom source is provided")
		}
		src, err := loamAdapter.Open(datasetPath)
		if err != nil {
			return nil, err
		}
		eng.source = src
	}
	if datasetPath != "" {
		eng.Name = filepath.Base(datasetPath)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("dataset", eng.Name)
	}
	if eng.recorder == nil {
		eng.recorder = ports.NopRecorder{}
	}

	if eng.geometry != nil && eng.cache != nil {
		eng.geometry = convert.NewCachingGeometry(eng.geometry, eng.cache, eng.convertOptions()...)
	}

	return eng, nil
}

func (e *Engine) convertOptions() []convert.Option {
	return []convert.Option{convert.WithLogger(e.logger), convert.WithRecorder(e.recorder)}
}

// Boreholes lists the IDs of the boreholes of the dataset.
func (e *Engine) Boreholes(ctx context.Context) ([]string, error) {
	return e.source.ListBoreholes(ctx)
}

// Borehole loads one borehole.
func (e *Engine) Borehole(ctx context.Context, id string) (*domain.Borehole, error) {
	return e.source.LoadBorehole(ctx, id)
}

// Column returns the completed column of one layer kind of a borehole, covering
// the borehole range [0, total depth].
func (e *Engine) Column(ctx context.Context, boreholeID string, kind domain.LayerKind) (*column.Column, error) {
	if _, err := domain.ParseLayerKind(string(kind)); err != nil {
		return nil, err
	}
	b, err := e.source.LoadBorehole(ctx, boreholeID)
	if err != nil {
		return nil, err
	}
	return e.complete(b, string(kind), b.Layers[kind]), nil
}

// CasingColumn returns the column of the casings of a borehole, each casing
// spanning the envelope of its elements.
func (e *Engine) CasingColumn(ctx context.Context, boreholeID string) (*column.Column, error) {
	b, err := e.source.LoadBorehole(ctx, boreholeID)
	if err != nil {
		return nil, err
	}
	return e.complete(b, "casing", column.CasingIntervals(b.Casings)), nil
}

func (e *Engine) complete(b *domain.Borehole, kind string, intervals []domain.Interval) *column.Column {
	opts := append([]column.Option{
		column.WithParent(b.ID),
		column.WithDepthRange(b.Range()),
	}, e.columnOpts...)

	col := column.Complete(intervals, opts...)

	flagged := 0
	for _, d := range col.Depths {
		if d.HasError() {
			flagged++
		}
	}
	gaps := len(col.Gaps())
	e.recorder.ObserveColumn(kind, len(col.Layers)-gaps, gaps, flagged)
	e.logger.Debug("Column completed", "borehole_id", b.ID, "kind", kind, "layers", len(col.Layers), "gaps", gaps, "flagged", flagged)
	return &col
}

// ElevationColumn returns the column of one layer kind with its bounds converted to MASL.
func (e *Engine) ElevationColumn(ctx context.Context, boreholeID string, kind domain.LayerKind) ([]convert.ElevationLayer, error) {
	if e.geometry == nil {
		return nil, fmt.Errorf("elevation column: geometry %w", ErrNotConfigured)
	}
	col, err := e.Column(ctx, boreholeID, kind)
	if err != nil {
		return nil, err
	}
	return convert.ToElevation(ctx, e.geometry, boreholeID, col.Layers, e.concurrency)
}

// DepthConverter returns a converter keeping the MD and MASL fields of a borehole in sync.
func (e *Engine) DepthConverter(boreholeID string) (*convert.DepthConverter, error) {
	if e.geometry == nil {
		return nil, fmt.Errorf("depth converter: geometry %w", ErrNotConfigured)
	}
	return convert.NewDepthConverter(boreholeID, e.geometry, e.convertOptions()...), nil
}

// ConvertDepth converts a single textual depth to the other vertical reference.
func (e *Engine) ConvertDepth(ctx context.Context, boreholeID string, from domain.VerticalReference, input string) (domain.DepthValue, error) {
	if e.geometry == nil {
		return domain.DepthValue{}, fmt.Errorf("convert depth: geometry %w", ErrNotConfigured)
	}
	return convert.ConvertDepth(ctx, e.geometry, boreholeID, from, input)
}

// CoordinateReconciler returns a reconciler with rs as the active reference system.
func (e *Engine) CoordinateReconciler(rs domain.ReferenceSystem) (*convert.CoordinateReconciler, error) {
	if e.transformer == nil {
		return nil, fmt.Errorf("coordinate reconciler: transformer %w", ErrNotConfigured)
	}
	return convert.NewCoordinateReconciler(e.transformer, rs, e.convertOptions()...)
}

// InvalidateDepths drops the cached conversions of a borehole, e.g. after its geometry changed.
func (e *Engine) InvalidateDepths(ctx context.Context, boreholeID string) error {
	if c, ok := e.geometry.(*convert.CachingGeometry); ok {
		return c.Invalidate(ctx, boreholeID)
	}
	return nil
}
