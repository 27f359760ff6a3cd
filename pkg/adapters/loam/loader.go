package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/loam"
	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/ports"
)

// Source adapts a Loam repository of borehole documents to ports.BoreholeSource.
type Source struct {
	Repo *loam.TypedRepository[BoreholeMetadata]
}

var _ ports.BoreholeSource = (*Source)(nil)

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[BoreholeMetadata]) *Source {
	return &Source{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at dir and wraps it.
func Open(dir string) (*Source, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dataset path: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", absPath, err)
	}
	return New(loam.NewTypedRepository[BoreholeMetadata](repo)), nil
}

// LoadBorehole implements ports.BoreholeSource.
// The ID may be given with or without the document extension.
func (s *Source) LoadBorehole(ctx context.Context, id string) (*domain.Borehole, error) {
	doc, err := s.Repo.Get(ctx, id)
	if err == nil {
		return toBorehole(doc.ID, doc.Data)
	}

	// Documents whose metadata ID differs from their file name are only
	// reachable by scanning.
	docs, listErr := s.Repo.List(ctx)
	if listErr != nil {
		return nil, fmt.Errorf("loam get failed for %s: %w", id, err)
	}
	want := trimExtension(id)
	for _, d := range docs {
		if documentID(d.ID, d.Data) == want {
			return toBorehole(d.ID, d.Data)
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrBoreholeNotFound, id)
}

// ListBoreholes implements ports.BoreholeSource.
func (s *Source) ListBoreholes(ctx context.Context) ([]string, error) {
	docs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	ids := make([]string, 0, len(docs))

	for _, doc := range docs {
		id := documentID(doc.ID, doc.Data)

		// Collision Detection
		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func documentID(docID string, meta BoreholeMetadata) string {
	rawID := meta.ID
	if rawID == "" {
		rawID = docID
	}
	return trimExtension(rawID)
}

func toBorehole(docID string, meta BoreholeMetadata) (*domain.Borehole, error) {
	id := documentID(docID, meta)
	b := &domain.Borehole{
		ID:         id,
		Name:       meta.Name,
		Elevation:  meta.Elevation,
		TotalDepth: meta.TotalDepth,
		Layers:     make(map[domain.LayerKind][]domain.Interval, len(meta.Layers)),
	}
	if b.Name == "" {
		b.Name = id
	}

	for rawKind, records := range meta.Layers {
		kind, err := domain.ParseLayerKind(rawKind)
		if err != nil {
			return nil, fmt.Errorf("borehole %s: %w", id, err)
		}
		intervals, err := decodeIntervals(id, string(kind), records)
		if err != nil {
			return nil, fmt.Errorf("borehole %s: %s: %w", id, kind, err)
		}
		b.Layers[kind] = intervals
	}

	for i, c := range meta.Casings {
		casingID := c.ID
		if casingID == "" {
			casingID = id + "/casing-" + strconv.Itoa(i+1)
		}
		elements, err := decodeIntervals(casingID, "casing_element", c.Elements)
		if err != nil {
			return nil, fmt.Errorf("borehole %s: casing %s: %w", id, casingID, err)
		}
		b.Casings = append(b.Casings, domain.Casing{ID: casingID, Name: c.Name, Elements: elements})
	}
	return b, nil
}

func decodeIntervals(parentID, defaultKind string, records []map[string]any) ([]domain.Interval, error) {
	intervals := make([]domain.Interval, 0, len(records))
	for i, raw := range records {
		var rec layerRecord
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &rec,
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(raw); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		if rec.ID == "" {
			rec.ID = parentID + "/" + strconv.Itoa(i+1)
		}
		kind := rec.Kind
		if kind == "" {
			kind = defaultKind
		}
		intervals = append(intervals, domain.Interval{
			ID:        rec.ID,
			ParentID:  parentID,
			FromDepth: rec.From,
			ToDepth:   rec.To,
			Hints:     domain.RenderHints{Unconsolidated: rec.Unconsolidated, Kind: kind},
			Payload:   raw,
		})
	}
	return intervals, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
