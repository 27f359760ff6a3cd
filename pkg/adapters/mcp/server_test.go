package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/strata/pkg/column"
	"github.com/aretw0/strata/pkg/domain"
)

type stubEngine struct {
	kinds []domain.LayerKind
}

func (e *stubEngine) Boreholes(context.Context) ([]string, error) {
	return []string{"bh-1"}, nil
}

func (e *stubEngine) Column(_ context.Context, id string, kind domain.LayerKind) (*column.Column, error) {
	if id != "bh-1" {
		return nil, domain.ErrBoreholeNotFound
	}
	e.kinds = append(e.kinds, kind)
	col := column.Complete(nil, column.WithRange(0, 10))
	return &col, nil
}

func (e *stubEngine) CasingColumn(ctx context.Context, id string) (*column.Column, error) {
	return e.Column(ctx, id, "casing")
}

func TestCompleteColumn(t *testing.T) {
	s := NewServer(&stubEngine{})

	res, err := s.handleCompleteColumn(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"intervals":   `[{"id":"b","from":20,"to":30},{"id":"a","from":0,"to":10,"unconsolidated":true}]`,
		"end":         "40",
		"inheritance": "following",
	})
	require.NoError(t, err)

	require.Len(t, res.Layers, 4)
	assert.Equal(t, "a", res.Layers[0].ID)
	assert.Equal(t, "gap:10-20", res.Layers[1].ID)
	assert.False(t, res.Layers[1].Hints.Unconsolidated, "following policy takes b's hints")
	assert.Equal(t, "gap:30-40", res.Layers[3].ID)
	assert.False(t, res.HasOverlaps)
}

func TestCompleteColumn_InvalidArguments(t *testing.T) {
	s := NewServer(&stubEngine{})
	ctx := context.Background()

	_, err := s.handleCompleteColumn(ctx, mcp.CallToolRequest{}, map[string]interface{}{"intervals": "not json"})
	assert.Error(t, err)

	_, err = s.handleCompleteColumn(ctx, mcp.CallToolRequest{}, map[string]interface{}{"intervals": "[]", "start": "abc"})
	assert.ErrorIs(t, err, domain.ErrUnparsable)

	_, err = s.handleCompleteColumn(ctx, mcp.CallToolRequest{}, map[string]interface{}{"intervals": "[]", "inheritance": "sideways"})
	assert.Error(t, err)
}

func TestBoreholeColumn(t *testing.T) {
	eng := &stubEngine{}
	s := NewServer(eng)
	ctx := context.Background()

	res, err := s.handleBoreholeColumn(ctx, mcp.CallToolRequest{}, map[string]interface{}{"borehole_id": "bh-1"})
	require.NoError(t, err)
	assert.Equal(t, "gap:0-10", res.Layers[0].ID)

	_, err = s.handleBoreholeColumn(ctx, mcp.CallToolRequest{}, map[string]interface{}{"borehole_id": "bh-1", "kind": "backfill"})
	require.NoError(t, err)
	assert.Equal(t, []domain.LayerKind{domain.KindLithology, domain.KindBackfill}, eng.kinds)

	_, err = s.handleBoreholeColumn(ctx, mcp.CallToolRequest{}, map[string]interface{}{"borehole_id": "nope"})
	assert.ErrorIs(t, err, domain.ErrBoreholeNotFound)

	_, err = s.handleBoreholeColumn(ctx, mcp.CallToolRequest{}, map[string]interface{}{"borehole_id": "bh-1", "kind": "geophysics"})
	assert.ErrorIs(t, err, domain.ErrUnknownLayerKind)
}

func TestCasingEnvelope(t *testing.T) {
	s := NewServer(&stubEngine{})

	res, err := s.handleCasingEnvelope(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{"borehole_id": "bh-1"})
	require.NoError(t, err)
	assert.Len(t, res.Layers, 1)
}
