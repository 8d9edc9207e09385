package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const runDocument = `{
  "summary": {
    "run_id": "run-7f3a",
    "dataset_id": "cogai-thread",
    "status": "FAIL",
    "checks_total": 2,
    "checks_passed": 1,
    "started_at": "2026-08-27T10:00:00Z",
    "ended_at": "2026-08-27T10:00:42Z",
    "duration_ms": 42000,
    "trace_id": "trace-00af",
    "workflow_id": "wf-golden-1",
    "session_id": "sess-e11e",
    "schema_rev": 4
  },
  "checks": [
    {"id": "auth", "name": "Authenticate session", "status": "pass", "duration_ms": 120},
    {"id": "answer", "name": "Answer with citations", "status": "fail", "evidence_summary": "anchor A2 missing"}
  ],
  "narrative": {
    "elena": "Answer check failed; citations incomplete.",
    "marcus": "Re-ingest and re-run before release."
  }
}`

func TestDecodeRun(t *testing.T) {
	run, err := DecodeRun([]byte(runDocument))
	require.NoError(t, err)
	require.NotNil(t, run)

	// Identifiers come through verbatim, never reformatted.
	assert.Equal(t, "run-7f3a", run.Summary.RunID)
	assert.Equal(t, "trace-00af", run.Summary.TraceID)
	assert.Equal(t, "wf-golden-1", run.Summary.WorkflowID)
	assert.Equal(t, "sess-e11e", run.Summary.SessionID)

	assert.Equal(t, StatusFail, run.Summary.Status)
	assert.Equal(t, 2, run.Summary.ChecksTotal)
	assert.Equal(t, 1, run.Summary.ChecksPassed)
	require.NotNil(t, run.Summary.EndedAt)
	require.NotNil(t, run.Summary.DurationMs)
	assert.Equal(t, int64(42000), *run.Summary.DurationMs)

	require.Len(t, run.Checks, 2)
	assert.Equal(t, "auth", run.Checks[0].ID)
	assert.Equal(t, CheckPass, run.Checks[0].Status)
	require.NotNil(t, run.Checks[0].DurationMs)
	assert.Equal(t, int64(120), *run.Checks[0].DurationMs)
	assert.Equal(t, "answer", run.Checks[1].ID)
	assert.Equal(t, CheckFail, run.Checks[1].Status)
	assert.Equal(t, "anchor A2 missing", run.Checks[1].EvidenceSummary)
	assert.Nil(t, run.Checks[1].DurationMs)

	assert.Equal(t, "Re-ingest and re-run before release.", run.Narrative.Marcus)

	assert.NoError(t, run.Validate())
}

func TestDecodeRunNull(t *testing.T) {
	// The latest-run endpoint answers null when no prior run exists.
	run, err := DecodeRun([]byte("null"))
	assert.NoError(t, err)
	assert.Nil(t, run)
}

func TestDecodeRunMalformed(t *testing.T) {
	_, err := DecodeRun([]byte("{not json"))
	assert.Error(t, err)
}

func TestEncodeRunRoundTrip(t *testing.T) {
	original := terminalRun(3)

	data, err := EncodeRun(original)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"checks_passed": 7`)
	assert.Contains(t, string(data), `"evidence_summary"`)

	decoded, err := DecodeRun(data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}
