package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusBadge(t *testing.T) {
	tests := []struct {
		name string
		run  *Run
		want Badge
	}{
		{
			name: "nil run",
			run:  nil,
			want: Badge{Label: Placeholder, Tone: ToneNeutral},
		},
		{
			name: "running",
			run:  NewPendingRun("cogai-thread", time.Now()),
			want: Badge{Label: Placeholder, Tone: ToneNeutral},
		},
		{
			name: "pass",
			run:  terminalRun(-1),
			want: Badge{Label: "PASS", Tone: TonePositive},
		},
		{
			name: "fail",
			run:  terminalRun(0),
			want: Badge{Label: "FAIL", Tone: ToneNegative},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusBadge(tt.run))
		})
	}
}

func TestChecklistPreservesServerOrder(t *testing.T) {
	// Deliberately not sorted by id or by status: the server's execution
	// order is the display order.
	run := &Run{
		Summary: RunSummary{Status: StatusFail, ChecksTotal: 3, ChecksPassed: 1},
		Checks: []Check{
			{ID: "zz-last-alphabetically", Name: "Runs first", Status: CheckFail, EvidenceSummary: "bad"},
			{ID: "aa-first-alphabetically", Name: "Runs second", Status: CheckPass},
			{ID: "mm-middle", Name: "Runs third", Status: CheckPending},
		},
	}

	items := Checklist(run)
	require.Len(t, items, 3)
	assert.Equal(t, "zz-last-alphabetically", items[0].ID)
	assert.Equal(t, "aa-first-alphabetically", items[1].ID)
	assert.Equal(t, "mm-middle", items[2].ID)

	assert.Equal(t, ToneNegative, items[0].Tone)
	assert.Equal(t, TonePositive, items[1].Tone)
	assert.Equal(t, ToneNeutral, items[2].Tone)
}

func TestChecklistKeepsFailureEvidence(t *testing.T) {
	run := terminalRun(5)

	items := Checklist(run)
	require.Len(t, items, 8)

	failed := items[5]
	assert.Equal(t, ToneNegative, failed.Tone)
	// Failure evidence is evidence; it is never hidden.
	assert.Equal(t, "expected anchor missing from answer", failed.EvidenceSummary)
}

func TestChecklistNilRun(t *testing.T) {
	assert.Nil(t, Checklist(nil))
}

func TestEvidenceIdentifiers(t *testing.T) {
	t.Run("all present, verbatim", func(t *testing.T) {
		ids := EvidenceIdentifiers(terminalRun(-1))
		assert.Equal(t, Identifiers{
			RunID:      "run-0001",
			TraceID:    "trace-abc",
			WorkflowID: "wf-123",
			SessionID:  "sess-789",
		}, ids)
	})

	t.Run("absent values show the placeholder", func(t *testing.T) {
		// A run that failed before a workflow was created legitimately has
		// no workflow id; absence is shown, not omitted.
		run := terminalRun(0)
		run.Summary.WorkflowID = ""
		run.Summary.SessionID = ""

		ids := EvidenceIdentifiers(run)
		assert.Equal(t, "run-0001", ids.RunID)
		assert.Equal(t, Placeholder, ids.WorkflowID)
		assert.Equal(t, Placeholder, ids.SessionID)
	})

	t.Run("nil run is all placeholders", func(t *testing.T) {
		ids := EvidenceIdentifiers(nil)
		assert.Equal(t, Identifiers{
			RunID:      Placeholder,
			TraceID:    Placeholder,
			WorkflowID: Placeholder,
			SessionID:  Placeholder,
		}, ids)
	})
}

func TestNarrativeForRun(t *testing.T) {
	run := terminalRun(-1)

	text, ok := NarrativeFor(PersonaElena, run)
	assert.True(t, ok)
	assert.Equal(t, "All checks passed; the thread is intact.", text)

	_, ok = NarrativeFor("unknown", run)
	assert.False(t, ok)

	_, ok = NarrativeFor(PersonaElena, nil)
	assert.False(t, ok)
}
