package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/cogai-labs/goldenthread/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failedRun() *validation.Run {
	started := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
	ended := started.Add(3 * time.Second)
	duration := int64(120)
	return &validation.Run{
		Summary: validation.RunSummary{
			RunID:        "run-9",
			DatasetID:    "cogai-thread",
			Status:       validation.StatusFail,
			ChecksTotal:  2,
			ChecksPassed: 1,
			StartedAt:    started,
			EndedAt:      &ended,
			TraceID:      "trace-9",
		},
		Checks: []validation.Check{
			{ID: "auth", Name: "Authenticate session", Status: validation.CheckPass, DurationMs: &duration},
			{ID: "answer", Name: "Answer with citations", Status: validation.CheckFail, EvidenceSummary: "anchor A2 missing"},
		},
		Narrative: validation.Narrative{Elena: "Citations incomplete."},
	}
}

func TestRenderRun(t *testing.T) {
	var out, errOut bytes.Buffer
	printer := NewPrinterWithWriters(&out, &errOut, false)

	printer.RenderRun(failedRun())
	text := out.String()

	assert.Contains(t, text, "Status: FAIL  (1/2 checks passed)")
	assert.Contains(t, text, "✓ [auth] Authenticate session (120ms)")
	assert.Contains(t, text, "✗ [answer] Answer with citations")
	// Failed checks keep their evidence.
	assert.Contains(t, text, "anchor A2 missing")

	// Identifiers are printed verbatim; absent ones show the placeholder.
	assert.Contains(t, text, "run_id:      run-9")
	assert.Contains(t, text, "trace_id:    trace-9")
	assert.Contains(t, text, "workflow_id: "+validation.Placeholder)
	assert.Contains(t, text, "session_id:  "+validation.Placeholder)
}

func TestRenderRunPreservesCheckOrder(t *testing.T) {
	var out bytes.Buffer
	printer := NewPrinterWithWriters(&out, &out, false)

	printer.RenderChecklist(failedRun())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Contains(t, lines[0], "[auth]")
}

func TestRenderNilRun(t *testing.T) {
	var out bytes.Buffer
	printer := NewPrinterWithWriters(&out, &out, false)

	printer.RenderRun(nil)

	assert.Contains(t, out.String(), "Status: "+validation.Placeholder)
}

func TestRenderNarrative(t *testing.T) {
	var out bytes.Buffer
	printer := NewPrinterWithWriters(&out, &out, false)

	run := failedRun()
	printer.RenderNarrative(validation.PersonaElena, run)
	assert.Contains(t, out.String(), "Citations incomplete.")

	out.Reset()
	printer.RenderNarrative(validation.PersonaMarcus, run)
	assert.Contains(t, out.String(), "no narrative for marcus")
}

func TestRenderDataset(t *testing.T) {
	var out bytes.Buffer
	printer := NewPrinterWithWriters(&out, &out, false)

	printer.RenderDataset(validation.Dataset{
		ID:       "cogai-thread",
		Name:     "CogAI Golden Thread",
		Filename: "cogai_thread.md",
		Hash:     "sha256:9c1e",
		Size:     "12 KB",
		Anchors:  []string{"A1", "A2"},
	})

	text := out.String()
	assert.Contains(t, text, "cogai-thread")
	assert.Contains(t, text, "anchors: A1, A2")
	assert.Contains(t, text, "sha256:9c1e")
}
