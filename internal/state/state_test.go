package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cogai-labs/goldenthread/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRun(t *testing.T) *validation.Run {
	t.Helper()
	started := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
	ended := started.Add(5 * time.Second)
	return &validation.Run{
		Summary: validation.RunSummary{
			RunID:        "run-snap",
			DatasetID:    "cogai-thread",
			Status:       validation.StatusPass,
			ChecksTotal:  1,
			ChecksPassed: 1,
			StartedAt:    started,
			EndedAt:      &ended,
			TraceID:      "trace-1",
		},
		Checks: []validation.Check{
			{ID: "auth", Name: "Authenticate session", Status: validation.CheckPass},
		},
	}
}

func TestStoreLoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "last_run.json"))

	run, err := store.Load()
	assert.NoError(t, err)
	assert.Nil(t, run)
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "last_run.json")
	store := NewStore(path)

	saved := sampleRun(t)
	require.NoError(t, store.Save(saved))

	// The snapshot is the wire format, snake_case keys included.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"run_id": "run-snap"`)

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestStoreLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last_run.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))

	_, err := NewStore(path).Load()
	assert.Error(t, err)
}
