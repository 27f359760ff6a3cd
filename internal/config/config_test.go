package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "strata.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_YAML(t *testing.T) {
	path := write(t, "strata.yaml", `
dataset: ./boreholes
log_level: debug
geometry:
  base_url: http://localhost:8080
  timeout: 2s
cache:
  redis:
    addr: localhost:6379
    db: 2
  ttl: 1h
column:
  inheritance: none
  tolerance: 0.001
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "./boreholes", cfg.Dataset)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.Geometry.TimeoutDuration())
	assert.Equal(t, "localhost:6379", cfg.Cache.Redis.Addr)
	assert.Equal(t, 2, cfg.Cache.Redis.DB)
	assert.Equal(t, time.Hour, cfg.Cache.TTLDuration())
	assert.Equal(t, "https://geodesy.geo.admin.ch", cfg.Transform.BaseURL, "unset keys keep their default")

	opts, err := cfg.ColumnOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 3)
}

func TestLoad_JSON(t *testing.T) {
	path := write(t, "strata.json", `{"dataset": "data", "column": {"tie_break": "to_depth"}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "data", cfg.Dataset)
	assert.Equal(t, "to_depth", cfg.Column.TieBreak)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"policy.yaml":   "column:\n  inheritance: sideways\n",
		"tiebreak.yaml": "column:\n  tie_break: random\n",
		"negative.yaml": "column:\n  tolerance: -1\n",
		"timeout.yaml":  "geometry:\n  timeout: soon\n",
		"syntax.json":   "{",
	}
	for name, content := range cases {
		_, err := Load(write(t, name, content))
		assert.Error(t, err, name)
	}
}
