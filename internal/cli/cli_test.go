package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/internal/config"
	"github.com/aretw0/strata/internal/logging"
	"github.com/aretw0/strata/internal/testutils"
	httpAdapter "github.com/aretw0/strata/pkg/adapters/http"
	"github.com/aretw0/strata/pkg/domain"
)

func sampleDataset(t *testing.T) string {
	t.Helper()
	dir, _ := testutils.SetupTestRepo(t)
	testutils.WriteDataset(t, dir, testutils.SampleDataset)
	return dir
}

func TestNewEngine_WiresServices(t *testing.T) {
	sim := httptest.NewServer(httpAdapter.NewSimulatorHandler(httpAdapter.SimulatorTable{
		Boreholes: map[string]httpAdapter.SimulatedBorehole{"bh-1": {Elevation: 500}},
	}))
	defer sim.Close()

	mr := miniredis.RunT(t)
	cfg := config.Defaults()
	cfg.Cache.Redis.Addr = mr.Addr()
	reg := prometheus.NewRegistry()

	eng, cleanup, err := NewEngine(context.Background(), cfg, EngineOptions{
		Dataset:      sampleDataset(t),
		GeometryURL:  sim.URL,
		TransformURL: sim.URL,
		Registerer:   reg,
	}, logging.NewNop())
	require.NoError(t, err)
	defer cleanup()

	v, err := eng.ConvertDepth(context.Background(), "bh-1", domain.MeasuredDepth, "10.0")
	require.NoError(t, err)
	assert.Equal(t, "490.0", v.String())
	assert.True(t, mr.Exists("strata:depth:bh-1"), "conversion is cached in redis")

	_, err = eng.Column(context.Background(), "bh-1", domain.KindLithology)
	require.NoError(t, err)
	count, err := testutil.GatherAndCount(reg, "strata_column_layers")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	r, err := eng.CoordinateReconciler(domain.LV03)
	require.NoError(t, err)
	assert.Equal(t, domain.LV03, r.Active())
}

func TestNewEngine_WithoutGeometry(t *testing.T) {
	cfg := config.Defaults()
	cfg.Transform.BaseURL = ""

	eng, cleanup, err := NewEngine(context.Background(), cfg, EngineOptions{Dataset: sampleDataset(t)}, logging.NewNop())
	require.NoError(t, err)
	defer cleanup()

	_, err = eng.DepthConverter("bh-1")
	assert.ErrorIs(t, err, strata.ErrNotConfigured)
	_, err = eng.CoordinateReconciler(domain.LV95)
	assert.ErrorIs(t, err, strata.ErrNotConfigured)
}

func TestNewEngine_FileCache(t *testing.T) {
	sim := httptest.NewServer(httpAdapter.NewSimulatorHandler(httpAdapter.SimulatorTable{
		Boreholes: map[string]httpAdapter.SimulatedBorehole{"bh-1": {Elevation: 500}},
	}))
	defer sim.Close()

	cfg := config.Defaults()
	cfg.Cache.Dir = t.TempDir()

	eng, cleanup, err := NewEngine(context.Background(), cfg, EngineOptions{
		Dataset:     sampleDataset(t),
		GeometryURL: sim.URL,
	}, logging.NewNop())
	require.NoError(t, err)
	defer cleanup()

	_, err = eng.ConvertDepth(context.Background(), "bh-1", domain.MetersAboveSeaLevel, "480")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(cfg.Cache.Dir, "bh-1.json"))
}

func TestNewEngine_RedisUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := config.Defaults()
	cfg.Cache.Redis.Addr = addr

	_, _, err := NewEngine(context.Background(), cfg, EngineOptions{
		Dataset:     sampleDataset(t),
		GeometryURL: "http://127.0.0.1:1",
	}, logging.NewNop())
	assert.Error(t, err)
}

func TestNewEngine_InvalidColumnPolicy(t *testing.T) {
	cfg := config.Defaults()
	cfg.Column.Inheritance = "sideways"

	_, _, err := NewEngine(context.Background(), cfg, EngineOptions{Dataset: sampleDataset(t)}, logging.NewNop())
	assert.Error(t, err)
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Print(&buf, FormatAuto, "# ignored", map[string]int{"layers": 3}))
	assert.JSONEq(t, `{"layers": 3}`, buf.String(), "non-terminal writers get JSON")

	buf.Reset()
	require.NoError(t, Print(&buf, FormatMarkdown, "# Column", nil))
	assert.Contains(t, buf.String(), "Column")

	assert.Error(t, Print(&buf, "xml", "", nil))
}
