package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// SetupTestRepo creates a temporary directory and initializes a Loam repository in it.
// It returns the absolute path to the temp dir and the initialized repository.
func SetupTestRepo(t *testing.T, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	repo, err := loam.Init(absPath, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	return absPath, repo
}

// WriteDataset writes borehole documents (file name to content) into dir.
func WriteDataset(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644), "Failed to write %s", name)
	}
}

// SampleDataset is a small dataset with one fully described borehole.
var SampleDataset = map[string]string{
	"bh-1.md": `---
id: bh-1
name: Sample borehole
elevation: 500
total_depth: 100
layers:
  lithology:
    - {id: l1, from: 0, to: 10, unconsolidated: true}
    - {id: l2, from: 20, to: 60}
    - {id: l3, from: 50, to: 80}
  backfill:
    - {id: f1, from: 0, to: 5}
casings:
  - id: c1
    name: Surface casing
    elements:
      - {from: 0, to: 30}
      - {from: 30, to: 45}
  - id: c2
    name: Production casing
    elements:
      - {from: 10, to: 95}
---
Sample borehole used in tests.`,
}
